package service

import (
	"context"
	"fmt"
	"time"

	"github.com/agrostack/fieldsync/internal/adapter"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/models"
)

// clientAuthService is the concrete implementation of ClientAuthService. The
// session row it persists is what lets the device keep operating against its
// local replica between network windows.
type clientAuthService struct {
	storages *store.ClientStorages
	adapter  adapter.ServerAdapter

	logger *logger.Logger
}

// NewClientAuthService constructs a ClientAuthService over the local storages
// and the server adapter.
func NewClientAuthService(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{storages: storages, adapter: serverAdapter, logger: logger}
}

// Register implements ClientAuthService.
func (a *clientAuthService) Register(ctx context.Context, creds models.Credentials) (models.Session, error) {
	token, err := a.adapter.Register(ctx, creds)
	if err != nil {
		return models.Session{}, fmt.Errorf("register on server: %w", mapAdapterError(err))
	}

	return a.storeSession(ctx, creds.Login, token)
}

// Login implements ClientAuthService.
func (a *clientAuthService) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	token, err := a.adapter.Login(ctx, creds)
	if err != nil {
		return models.Session{}, fmt.Errorf("login on server: %w", mapAdapterError(err))
	}

	return a.storeSession(ctx, creds.Login, token)
}

// RestoreSession implements ClientAuthService. The token is not validated
// here: the device may be offline, and a stale token will surface as an
// unauthorized error on the next sync pass.
func (a *clientAuthService) RestoreSession(ctx context.Context) (models.Session, error) {
	session, err := a.storages.Session.Load(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}

	a.adapter.SetToken(session.Token)
	return session, nil
}

// Logout implements ClientAuthService.
func (a *clientAuthService) Logout(ctx context.Context) error {
	if err := a.storages.Session.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	a.adapter.SetToken("")
	return nil
}

func (a *clientAuthService) storeSession(ctx context.Context, login string, token models.Token) (models.Session, error) {
	log := logger.FromContext(ctx)

	session := models.Session{
		Login:     login,
		Token:     token.SignedString,
		UserID:    token.UserID,
		UpdatedAt: time.Now().UTC(),
	}

	if err := a.storages.Session.Save(ctx, session); err != nil {
		// the server-side login already succeeded; losing the persisted
		// session only costs a re-login after restart
		log.Err(err).Str("login", login).Msg("failed to persist session")
		return models.Session{}, fmt.Errorf("persist session: %w", err)
	}

	return session, nil
}
