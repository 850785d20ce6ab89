package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestParseBearerRoundTrip(t *testing.T) {
	v := NewVerifier("test-secret")
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Handle: "alice",
	}
	token := signToken(t, "test-secret", claims)

	userID, handle, err := v.ParseBearer("Bearer " + token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-1" || handle != "alice" {
		t.Fatalf("unexpected claims: %s %s", userID, handle)
	}
}

func TestParseBearerRejectsWrongSecret(t *testing.T) {
	v := NewVerifier("test-secret")
	token := signToken(t, "wrong-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
		Handle:           "alice",
	})
	if _, _, err := v.ParseBearer("Bearer " + token); err == nil {
		t.Fatal("expected an error for a token signed with the wrong secret")
	}
}

func TestParseBearerRejectsExpired(t *testing.T) {
	v := NewVerifier("test-secret")
	token := signToken(t, "test-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	if _, _, err := v.ParseBearer("Bearer " + token); err == nil {
		t.Fatal("expected an error for an expired token")
	}
}

func TestParseBearerRejectsEmpty(t *testing.T) {
	v := NewVerifier("test-secret")
	if _, _, err := v.ParseBearer(""); err == nil {
		t.Fatal("expected an error for an empty header")
	}
}
