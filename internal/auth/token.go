package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccountGrant is one employee-account grant embedded in a claims token. The
// JSON field names are consumed by other services and must stay stable.
type AccountGrant struct {
	ID      string `json:"id"`
	Partner string `json:"partner"`
	Account string `json:"account"`
	Role    string `json:"role"`
	Name    string `json:"name"`
}

// Claims is the payload of a signed claims token: an employee identity plus
// the account grants it held at issue time. A token is a self-contained
// snapshot; only the grant for the account being acted upon is re-checked
// against the store by the resolver.
type Claims struct {
	EmployeeID string         `json:"employeeId"`
	Email      string         `json:"email"`
	Locale     string         `json:"locale"`
	Username   string         `json:"username"`
	Firstname  string         `json:"firstname"`
	Accounts   []AccountGrant `json:"accounts"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HMAC-signed claims tokens.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec for the given signing secret. An empty secret
// returns ErrMisconfiguredSecret; callers should treat that as fatal at
// startup rather than serving requests that can never authenticate.
func NewTokenCodec(secret string) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrMisconfiguredSecret
	}
	return &TokenCodec{secret: []byte(secret)}, nil
}

// Issue signs claims with HS256 and returns the token string. When ttl is
// positive an exp claim is injected; with a zero ttl the token carries no
// expiry and never expires by payload inspection alone.
func (c *TokenCodec) Issue(claims Claims, ttl time.Duration) (string, error) {
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// DecodeAndVerify validates a token string and returns its claims. The checks
// run in order: structure (ErrMalformedToken, before any cryptographic work),
// signature (ErrInvalidSignature), payload decode (ErrUndecodableToken), and
// expiry when an exp claim is present (ErrTokenExpired).
func (c *TokenCodec) DecodeAndVerify(tokenStr string) (*Claims, error) {
	if !wellFormed(tokenStr) {
		return nil, ErrMalformedToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrUndecodableToken
		}
	}
	if !token.Valid {
		return nil, ErrInvalidSignature
	}
	return claims, nil
}

// wellFormed reports whether s splits into exactly three non-empty
// dot-separated segments of base64url text.
func wellFormed(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if !base64URLSegment(p) {
			return false
		}
	}
	return true
}

func base64URLSegment(s string) bool {
	s = strings.TrimRight(s, "=")
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
