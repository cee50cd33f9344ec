package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT bearer token with the accessors the auth flow needs.
// It embeds [jwt.Token] for signing and parsing and [jwt.RegisteredClaims]
// for standard claim access.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Only the compact string form is meaningful outside the server.
	*jwt.Token `json:"-"`

	// RegisteredClaims is the standard RFC 7519 claim set (sub, exp, iat).
	jwt.RegisteredClaims

	// SignedString is the compact JWS form, ready for the
	// Authorization header.
	SignedString string `json:"-"`

	// UserID caches the parsed "sub" claim to avoid repeated conversion.
	UserID int64 `json:"-"`
}

// GetUserID extracts the user identifier from the token's "sub" claim and
// parses it as a base-10 int64. Returns an error when the claim is missing
// or not numeric.
func (t *Token) GetUserID() (int64, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
