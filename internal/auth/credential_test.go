package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	passwords := []string{"hunter22", "correct horse battery staple", "pässwörd-ü", ""}

	for _, p := range passwords {
		stored, err := HashPassword(p)
		if err != nil {
			t.Fatalf("HashPassword(%q): %v", p, err)
		}

		ok, err := VerifyPassword(stored, p)
		if err != nil {
			t.Fatalf("VerifyPassword(%q): %v", p, err)
		}
		if !ok {
			t.Errorf("VerifyPassword(%q): got false, want true", p)
		}
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	stored, err := HashPassword("right-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	ok, err := VerifyPassword(stored, "wrong-password")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("wrong password verified")
	}
}

func TestHashDrawsFreshSalt(t *testing.T) {
	first, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password are identical; salt is not random")
	}

	for _, stored := range []string{first, second} {
		ok, err := VerifyPassword(stored, "secret")
		if err != nil || !ok {
			t.Errorf("VerifyPassword(%q) = (%v, %v), want (true, nil)", stored, ok, err)
		}
	}
}

func TestStoredCredentialFormat(t *testing.T) {
	stored, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	parts := strings.Split(stored, ":")
	if len(parts) != 2 {
		t.Fatalf("stored credential %q: got %d segments, want 2", stored, len(parts))
	}
	if len(parts[0]) != 32 {
		t.Errorf("salt segment: got %d hex chars, want 32", len(parts[0]))
	}
	if len(parts[1]) != 64 {
		t.Errorf("hash segment: got %d hex chars, want 64", len(parts[1]))
	}
}

func TestVerifyMalformedCredential(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"no separator", "deadbeefdeadbeef"},
		{"two separators", "dead:beef:cafe"},
		{"empty salt", ":deadbeef"},
		{"odd salt length", "abc:deadbeef"},
		{"non-hex salt", "zzzzzzzzzzzzzzzz:deadbeef"},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyPassword(tt.stored, "whatever")
			if !errors.Is(err, ErrMalformedCredential) {
				t.Errorf("VerifyPassword(%q): got %v, want ErrMalformedCredential", tt.stored, err)
			}
		})
	}
}
