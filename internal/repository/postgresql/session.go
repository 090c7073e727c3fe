package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/buttercrumb/cakeflow/internal/db"
	"github.com/buttercrumb/cakeflow/internal/repository"
)

// SessionRepo is a postgres-backed store for design sessions. Completion is a
// conditional update so that two racing callers resolve to exactly one winner.
type SessionRepo struct {
	db db.DB
}

func NewSessionRepo(db db.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Create(ctx context.Context, s *repository.DesignSession) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO design_sessions (
            token, kiosk_id, status, created_at, expires_at
        ) VALUES ($1, $2, $3, $4, $5)
    `, s.Token, s.KioskID, s.Status, s.CreatedAt, s.ExpiresAt)
	return err
}

func (r *SessionRepo) Get(ctx context.Context, token string) (*repository.DesignSession, error) {
	var s repository.DesignSession
	err := r.db.Get(ctx, &s, "SELECT * FROM design_sessions WHERE token = $1", token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Complete flips an active, unexpired session to completed. Returns false when
// no such row matched, i.e. the caller lost the race or the session is gone.
func (r *SessionRepo) Complete(ctx context.Context, token string, payload json.RawMessage, completedAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE design_sessions
        SET status = 'completed', payload = $2, completed_at = $3
        WHERE token = $1 AND status = 'active' AND expires_at > $3
    `, token, payload, completedAt)
	if err != nil {
		return false, fmt.Errorf("failed to complete design session: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SessionRepo) Cancel(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `
        UPDATE design_sessions
        SET status = 'cancelled'
        WHERE token = $1 AND status = 'active'
    `, token)
	return err
}

func (r *SessionRepo) MarkExpired(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `
        UPDATE design_sessions
        SET status = 'expired'
        WHERE token = $1 AND status = 'active'
    `, token)
	return err
}

// ExpireBefore is the periodic sweep. Lazy expiry on access is what guarantees
// correctness; this only keeps the table tidy.
func (r *SessionRepo) ExpireBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE design_sessions
        SET status = 'expired'
        WHERE status = 'active' AND expires_at <= $1
    `, cutoff)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
