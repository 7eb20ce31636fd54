// Package auth handles the ShippoToken authorization scheme.
//
// Clients format the header with FormatAuthorization; the mock API parses it
// with ParseAuthorization and checks the token with a Validator.
package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
)

// Scheme is the authorization scheme the Shippo API expects.
const Scheme = "ShippoToken"

var (
	ErrUnauthorized  = errors.New("auth: unauthorized")
	ErrMissingHeader = errors.New("auth: missing authorization header")
	ErrBadScheme     = errors.New("auth: unsupported authorization scheme")
)

// Validator validates an authentication token.
type Validator interface {
	Validate(token string) error
}

// StaticToken accepts exactly one shared API token.
type StaticToken struct {
	Token string
}

func (s StaticToken) Validate(token string) error {
	if s.Token == "" {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(s.Token), []byte(token)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// FuncValidator adapts a function into a Validator.
type FuncValidator func(token string) error

func (f FuncValidator) Validate(token string) error {
	return f(token)
}

// FormatAuthorization returns the Authorization header value for token.
func FormatAuthorization(token string) string {
	return Scheme + " " + token
}

// ParseAuthorization extracts the token from an Authorization header value.
// The scheme is matched case-insensitively.
func ParseAuthorization(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingHeader
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, Scheme) {
		return "", ErrBadScheme
	}
	return strings.TrimSpace(token), nil
}

// Authenticate checks the request's Authorization header against v.
func Authenticate(r *http.Request, v Validator) error {
	token, err := ParseAuthorization(r.Header.Get("Authorization"))
	if err != nil {
		return err
	}
	return v.Validate(token)
}
