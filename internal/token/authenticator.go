package token

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Clients send "Authorization: Token <jwt>". The non-standard prefix is kept
// for compatibility with deployed clients.
const headerPrefix = "Token "

var (
	// ErrInvalidToken covers malformed tokens, bad signatures and expiry.
	ErrInvalidToken = errors.New("invalid token")
	// ErrWrongPrincipalType means the token is valid but carries a different
	// principal type than the endpoint expects.
	ErrWrongPrincipalType = errors.New("wrong principal type")
)

// Authenticator validates access tokens and resolves them to claims. Every
// failure branch returns a typed error; it never panics.
type Authenticator struct {
	secret        []byte
	principalType string
}

// NewAuthenticator builds an Authenticator for tokens signed with the access
// secret and carrying the given principal type.
func NewAuthenticator(accessSecret, principalType string) *Authenticator {
	return &Authenticator{secret: []byte(accessSecret), principalType: principalType}
}

// Authenticate parses an Authorization header value, verifies the embedded
// access token and returns its claims.
func (a *Authenticator) Authenticate(header string) (Claims, error) {
	if !strings.HasPrefix(header, headerPrefix) {
		return Claims{}, ErrInvalidToken
	}
	return a.Verify(strings.TrimSpace(header[len(headerPrefix):]))
}

// Verify checks the signature, expiry and principal type of a bare token.
func (a *Authenticator) Verify(tokenStr string) (Claims, error) {
	if tokenStr == "" {
		return Claims{}, ErrInvalidToken
	}
	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.Type != a.principalType {
		return Claims{}, ErrWrongPrincipalType
	}
	if claims.PatientID == 0 {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
