package postgresql

import (
	"context"

	"github.com/google/uuid"

	"github.com/buttercrumb/cakeflow/internal/db"
	"github.com/buttercrumb/cakeflow/internal/repository"
)

type HistoryRepo struct {
	db db.DB
}

func NewHistoryRepo(db db.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) CreateTx(ctx context.Context, tx db.Tx, entry *repository.StatusHistoryEntry) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO request_status_history (
            request_id, from_status, to_status, actor, notes, changed_at
        ) VALUES ($1, $2, $3, $4, $5, $6)
    `, entry.RequestID, entry.FromStatus, entry.ToStatus, entry.Actor, entry.Notes, entry.ChangedAt)
	return err
}

func (r *HistoryRepo) GetByRequestID(ctx context.Context, requestID uuid.UUID) ([]*repository.StatusHistoryEntry, error) {
	var entries []*repository.StatusHistoryEntry
	err := r.db.Select(ctx, &entries, `
        SELECT * FROM request_status_history
        WHERE request_id = $1
        ORDER BY id ASC
    `, requestID)
	return entries, err
}
