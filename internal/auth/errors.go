package auth

import "errors"

// Sentinel errors for the authentication core. The HTTP boundary maps these to
// status codes: credential/token/grant failures become 401, while
// ErrMalformedCredential and ErrMisconfiguredSecret indicate server-side
// problems and become 500.
var (
	// ErrMissingToken is returned when neither a bearer token nor an API key
	// was presented on a request that requires one.
	ErrMissingToken = errors.New("token is required")

	// ErrMalformedToken is returned when a token fails the structural check
	// (three dot-separated base64url segments). No cryptographic work is
	// performed on a structurally invalid token.
	ErrMalformedToken = errors.New("malformed token")

	// ErrInvalidSignature is returned when a token's signature does not
	// verify against the configured secret.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrUndecodableToken is returned when a token's payload segment cannot
	// be decoded into claims.
	ErrUndecodableToken = errors.New("undecodable token payload")

	// ErrTokenExpired is returned when a token carries an exp claim that has
	// passed. Tokens issued without an expiry never trigger this.
	ErrTokenExpired = errors.New("token expired")

	// ErrMissingClaim is returned when a verified token lacks the employeeId
	// claim the resolver needs.
	ErrMissingClaim = errors.New("token does not contain employeeId")

	// ErrUnauthorized is returned when a verified employee identity holds no
	// grant for the requested account.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMalformedCredential is returned when a stored password hash does not
	// have the expected salt:hash shape. Distinct from a wrong password,
	// which is a plain false result.
	ErrMalformedCredential = errors.New("malformed stored credential")

	// ErrMisconfiguredSecret is returned when the signing secret is absent.
	// This is a fatal configuration error, not a request-level failure.
	ErrMisconfiguredSecret = errors.New("signing secret is not configured")
)
