package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Stored credentials are "<saltHex>:<hashHex>" where the salt is 16 random
// bytes and the hash is PBKDF2-SHA256 of the password. The format is shared
// with the existing employee table, so the parameters must not change without
// a migration.
const (
	saltLength     = 16
	kdfIterations  = 100000
	derivedKeySize = 32
)

// HashPassword derives a salted hash of password suitable for storage. Each
// call draws a fresh random salt, so hashing the same password twice yields
// different stored strings.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, kdfIterations, derivedKeySize, sha256.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword checks attempt against a stored credential. A wrong password
// returns (false, nil); a stored string that does not parse as salt:hash
// returns ErrMalformedCredential so callers can tell data corruption apart
// from a failed login.
func VerifyPassword(stored, attempt string) (bool, error) {
	parts := strings.Split(stored, ":")
	if len(parts) != 2 {
		return false, ErrMalformedCredential
	}
	saltHex, hashHex := parts[0], parts[1]

	if len(saltHex) == 0 || len(saltHex)%2 != 0 {
		return false, ErrMalformedCredential
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false, ErrMalformedCredential
	}

	key := pbkdf2.Key([]byte(attempt), salt, kdfIterations, derivedKeySize, sha256.New)
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(key)), []byte(hashHex)) == 1, nil
}
