// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agrostack/fieldsync/internal/app"
	"github.com/agrostack/fieldsync/internal/service"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okCreateToken(context.Context, models.User) (models.Token, error) {
	return models.Token{SignedString: "signed-jwt"}, nil
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		registerUserFn func(ctx context.Context, creds models.Credentials) (models.User, error)
		createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
		wantStatus     int
		wantBody       string
		wantAuthHeader string
	}{
		{
			name: "successful registration returns bearer token",
			body: `{"login":"agronomist","password":"secret"}`,
			registerUserFn: func(_ context.Context, creds models.Credentials) (models.User, error) {
				return models.User{UserID: testUserID, Login: creds.Login}, nil
			},
			createTokenFn:  okCreateToken,
			wantStatus:     http.StatusOK,
			wantAuthHeader: "Bearer signed-jwt",
		},
		{
			name:       "malformed JSON is rejected",
			body:       `{"login":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   app.MsgInvalidDataProvided,
		},
		{
			name: "empty credentials are rejected",
			body: `{"login":"","password":""}`,
			registerUserFn: func(context.Context, models.Credentials) (models.User, error) {
				return models.User{}, service.ErrInvalidDataProvided
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   app.MsgInvalidDataProvided,
		},
		{
			name: "taken login answers conflict",
			body: `{"login":"agronomist","password":"secret"}`,
			registerUserFn: func(context.Context, models.Credentials) (models.User, error) {
				return models.User{}, store.ErrLoginAlreadyExists
			},
			wantStatus: http.StatusConflict,
			wantBody:   app.MsgLoginAlreadyExists,
		},
		{
			name: "storage failure answers 500",
			body: `{"login":"agronomist","password":"secret"}`,
			registerUserFn: func(context.Context, models.Credentials) (models.User, error) {
				return models.User{}, errors.New("connection lost")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   app.MsgInternalServerError,
		},
		{
			name: "token creation failure answers 500",
			body: `{"login":"agronomist","password":"secret"}`,
			registerUserFn: func(_ context.Context, creds models.Credentials) (models.User, error) {
				return models.User{UserID: testUserID, Login: creds.Login}, nil
			},
			createTokenFn: func(context.Context, models.User) (models.Token, error) {
				return models.Token{}, service.ErrTokenCreationFailed
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWith(t, &service.Services{
				AuthService: &mockAuthService{
					registerUserFn: tt.registerUserFn,
					createTokenFn:  tt.createTokenFn,
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/api/v2/auth/register", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			h.register(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, strings.TrimSpace(rr.Body.String()))
			}
			if tt.wantAuthHeader != "" {
				assert.Equal(t, tt.wantAuthHeader, rr.Header().Get("Authorization"))
			}
		})
	}
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		loginFn        func(ctx context.Context, creds models.Credentials) (models.User, error)
		wantStatus     int
		wantBody       string
		wantAuthHeader string
	}{
		{
			name: "successful login returns bearer token",
			body: `{"login":"agronomist","password":"secret"}`,
			loginFn: func(_ context.Context, creds models.Credentials) (models.User, error) {
				return models.User{UserID: testUserID, Login: creds.Login}, nil
			},
			wantStatus:     http.StatusOK,
			wantAuthHeader: "Bearer signed-jwt",
		},
		{
			name:       "malformed JSON is rejected",
			body:       `{"login"`,
			wantStatus: http.StatusBadRequest,
			wantBody:   app.MsgInvalidDataProvided,
		},
		{
			name: "unknown user answers unauthorized",
			body: `{"login":"ghost","password":"secret"}`,
			loginFn: func(context.Context, models.Credentials) (models.User, error) {
				return models.User{}, store.ErrUserNotFound
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   app.MsgInvalidLoginPassword,
		},
		{
			name: "wrong password answers unauthorized with the same body",
			body: `{"login":"agronomist","password":"nope"}`,
			loginFn: func(context.Context, models.Credentials) (models.User, error) {
				return models.User{}, service.ErrWrongPassword
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   app.MsgInvalidLoginPassword,
		},
		{
			name: "storage failure answers 500",
			body: `{"login":"agronomist","password":"secret"}`,
			loginFn: func(context.Context, models.Credentials) (models.User, error) {
				return models.User{}, errors.New("connection lost")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWith(t, &service.Services{
				AuthService: &mockAuthService{
					loginFn:       tt.loginFn,
					createTokenFn: okCreateToken,
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/api/v2/auth/login", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			h.login(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, strings.TrimSpace(rr.Body.String()))
			}
			if tt.wantAuthHeader != "" {
				assert.Equal(t, tt.wantAuthHeader, rr.Header().Get("Authorization"))
			}
		})
	}
}

// The login failure body matters: the field client maps the 401 body back to
// its wrong-password sentinel.
func TestLogin_FailureBodyMatchesSharedConstant(t *testing.T) {
	h := newHandlerWith(t, &service.Services{
		AuthService: &mockAuthService{
			loginFn: func(context.Context, models.Credentials) (models.User, error) {
				return models.User{}, service.ErrWrongPassword
			},
			createTokenFn: okCreateToken,
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v2/auth/login", strings.NewReader(`{"login":"a","password":"b"}`))
	rr := httptest.NewRecorder()
	h.login(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, app.MsgInvalidLoginPassword, strings.TrimSpace(rr.Body.String()))
}
