// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/agrostack/fieldsync/internal/adapter"
	"github.com/agrostack/fieldsync/internal/app"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/mock"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestClientAuthService(ctrl *gomock.Controller) (*clientAuthService, *mock.MockSessionRepository, *mock.MockServerAdapter) {
	sessions := mock.NewMockSessionRepository(ctrl)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	svc := &clientAuthService{
		storages: &store.ClientStorages{Session: sessions},
		adapter:  serverAdapter,
		logger:   logger.Nop(),
	}

	return svc, sessions, serverAdapter
}

func TestClientAuthService_Login_PersistsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, sessions, serverAdapter := newTestClientAuthService(ctrl)

	creds := models.Credentials{Login: "agronomist", Password: "secret"}
	serverAdapter.EXPECT().
		Login(gomock.Any(), creds).
		Return(models.Token{SignedString: "jwt-token", UserID: testUserID}, nil)

	var saved models.Session
	sessions.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, session models.Session) error {
			saved = session
			return nil
		})

	session, err := svc.Login(context.Background(), creds)

	require.NoError(t, err)
	assert.Equal(t, "agronomist", session.Login)
	assert.Equal(t, "jwt-token", session.Token)
	assert.Equal(t, testUserID, session.UserID)
	assert.Equal(t, saved, session)
}

func TestClientAuthService_Login_ServerRejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, serverAdapter := newTestClientAuthService(ctrl)

	serverAdapter.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(models.Token{}, fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidLoginPassword))

	_, err := svc.Login(context.Background(), models.Credentials{Login: "agronomist", Password: "wrong"})

	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestClientAuthService_Register_PersistsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, sessions, serverAdapter := newTestClientAuthService(ctrl)

	creds := models.Credentials{Login: "newuser", Password: "secret"}
	serverAdapter.EXPECT().
		Register(gomock.Any(), creds).
		Return(models.Token{SignedString: "jwt-token", UserID: int64(7)}, nil)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	session, err := svc.Register(context.Background(), creds)

	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)
}

func TestClientAuthService_Register_SessionSaveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, sessions, serverAdapter := newTestClientAuthService(ctrl)

	serverAdapter.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(models.Token{SignedString: "jwt-token", UserID: int64(7)}, nil)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := svc.Register(context.Background(), models.Credentials{Login: "newuser", Password: "secret"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist session")
}

func TestClientAuthService_RestoreSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, sessions, serverAdapter := newTestClientAuthService(ctrl)

	stored := models.Session{Login: "agronomist", Token: "stale-or-not", UserID: testUserID}
	sessions.EXPECT().Load(gomock.Any()).Return(stored, nil)
	// the token is handed to the adapter unverified; an expired one fails on
	// the next sync pass instead
	serverAdapter.EXPECT().SetToken("stale-or-not")

	session, err := svc.RestoreSession(context.Background())

	require.NoError(t, err)
	assert.Equal(t, stored, session)
}

func TestClientAuthService_RestoreSession_NoSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, sessions, _ := newTestClientAuthService(ctrl)

	sessions.EXPECT().Load(gomock.Any()).Return(models.Session{}, store.ErrSessionNotFound)

	_, err := svc.RestoreSession(context.Background())

	require.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestClientAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, sessions, serverAdapter := newTestClientAuthService(ctrl)

	sessions.EXPECT().Clear(gomock.Any()).Return(nil)
	serverAdapter.EXPECT().SetToken("")

	require.NoError(t, svc.Logout(context.Background()))
}
