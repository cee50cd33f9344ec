package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/models"
)

// sessionRepository is the SQLite-backed implementation of
// [SessionRepository]. The session table holds a single row pinned to id 1.
type sessionRepository struct {
	*DB
	logger *logger.Logger
}

// NewSessionRepository constructs a [SessionRepository] backed by the client
// database.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		logger: logger,
	}
}

// Save stores the session, replacing whatever was persisted before.
func (r *sessionRepository) Save(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, saveSession,
		session.Login,
		session.Token,
		session.UserID,
		session.UpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.Save").
			Str("login", session.Login).
			Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Load returns the persisted session. Returns [ErrSessionNotFound] when the
// device has never logged in or the session was cleared.
func (r *sessionRepository) Load(ctx context.Context) (models.Session, error) {
	log := logger.FromContext(ctx)

	var (
		session   models.Session
		updatedAt sql.NullTime
	)

	err := r.DB.QueryRowContext(ctx, loadSession).Scan(
		&session.Login,
		&session.Token,
		&session.UserID,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		log.Err(err).
			Str("func", "sessionRepository.Load").
			Msg("failed to scan session row")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	session.UpdatedAt = updatedAt.Time

	return session, nil
}

// Clear removes the persisted session. Clearing an absent session is not an
// error.
func (r *sessionRepository) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, clearSession)
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.Clear").
			Msg("failed to clear session")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
