// Package utils provides general-purpose helpers shared across the
// application: type-safe context keys, request signing, password
// hashing, HTTP response writing, HTTP client construction, JWT token
// generation and validation, and UUID generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys. A dedicated type
// instead of a plain string prevents collisions with other packages
// that store string-keyed values in the same context.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key under which the authenticated user identifier
// is stored in the request context. Paired with GetUserIDFromContext
// for type-safe retrieval.
//
//	ctx := context.WithValue(ctx, utils.UserIDCtxKey, int64(42))
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user identifier from
// the context. The ok flag is false when the value is missing or is not
// an int64.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
