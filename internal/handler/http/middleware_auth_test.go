// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agrostack/fieldsync/internal/service"
	"github.com/agrostack/fieldsync/internal/utils"
	"github.com/agrostack/fieldsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// getTokenFromAuthHeader
// ─────────────────────────────────────────────

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{
			name:      "standard bearer header",
			header:    "Bearer abc.def.ghi",
			wantToken: "abc.def.ghi",
		},
		{
			name:    "scheme without token",
			header:  "Bearer",
			wantErr: ErrInvalidAuthorizationHeader,
		},
		{
			name:    "empty token after scheme",
			header:  "Bearer ",
			wantErr: ErrEmptyToken,
		},
		{
			name:      "extra parts keep only the second",
			header:    "Bearer token extra",
			wantToken: "token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

// ─────────────────────────────────────────────
// auth middleware
// ─────────────────────────────────────────────

func runAuthMiddleware(h *Handler, authHeader string) (*httptest.ResponseRecorder, bool, int64) {
	var nextCalled bool
	var ctxUserID int64

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		ctxUserID, _ = utils.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v2/sync/changes", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	return rr, nextCalled, ctxUserID
}

func TestAuth_ValidTokenStoresUserID(t *testing.T) {
	h := newHandlerWith(t, &service.Services{
		AuthService: &mockAuthService{
			parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
				require.Equal(t, "valid-token", tokenString)
				return models.Token{SignedString: tokenString, UserID: testUserID}, nil
			},
		},
	})

	rr, nextCalled, ctxUserID := runAuthMiddleware(h, "Bearer valid-token")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, nextCalled)
	assert.Equal(t, testUserID, ctxUserID)
}

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		parseErr   error
	}{
		{name: "missing header", authHeader: ""},
		{name: "header without token", authHeader: "Bearer"},
		{name: "empty token", authHeader: "Bearer "},
		{name: "expired token", authHeader: "Bearer stale", parseErr: service.ErrTokenIsExpiredOrInvalid},
		{name: "garbage token", authHeader: "Bearer junk", parseErr: service.ErrTokenIsExpiredOrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWith(t, &service.Services{
				AuthService: &mockAuthService{
					parseTokenFn: func(context.Context, string) (models.Token, error) {
						return models.Token{}, tt.parseErr
					},
				},
			})

			rr, nextCalled, _ := runAuthMiddleware(h, tt.authHeader)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.False(t, nextCalled)
		})
	}
}
