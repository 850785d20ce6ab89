// Package auth resolves the external request front-end's bearer token into
// the (userID, handle) pair the engine's RPC entrypoints act on (spec §6,
// "Authentication is a bearer token carrying {userId, handle}"). Issuing
// tokens is out of scope (spec §1); this package only verifies them, the
// same HS256-claims shape as the pack's jwt_service.go.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"crab.casa/tactics-engine/matcherr"
)

// Claims mirrors the minimal {sub, handle} contract the spec's external
// front-end is assumed to issue, embedding jwt.RegisteredClaims the way
// JWTClaims does in the pack.
type Claims struct {
	jwt.RegisteredClaims
	Handle string `json:"handle"`
}

// Verifier validates bearer tokens against a configured HMAC secret.
type Verifier struct {
	secret []byte
}

// NewVerifier builds a Verifier for the given HS256 secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// ParseBearer strips a "Bearer " prefix if present and verifies the token,
// returning the subject (userID) and handle claims.
func (v *Verifier) ParseBearer(header string) (userID, handle string, err error) {
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" {
		return "", "", matcherr.ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", matcherr.ErrInvalidToken
		}
		return "", "", matcherr.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", "", matcherr.ErrInvalidToken
	}

	return claims.Subject, claims.Handle, nil
}
