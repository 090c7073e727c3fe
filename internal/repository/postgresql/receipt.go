package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/buttercrumb/cakeflow/internal/db"
	"github.com/buttercrumb/cakeflow/internal/repository"
)

type ReceiptRepo struct {
	db db.DB
}

func NewReceiptRepo(db db.DB) *ReceiptRepo {
	return &ReceiptRepo{db: db}
}

func (r *ReceiptRepo) CreateTx(ctx context.Context, tx db.Tx, receipt *repository.PaymentReceipt) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO payment_receipts (
            id, request_id, amount, method, reference, image_ref,
            verification_status, is_primary, uploaded_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, receipt.ID, receipt.RequestID, receipt.Amount, receipt.Method, receipt.Reference,
		receipt.ImageRef, receipt.VerificationStatus, receipt.IsPrimary, receipt.UploadedAt)
	return err
}

func (r *ReceiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*repository.PaymentReceipt, error) {
	var receipt repository.PaymentReceipt
	err := r.db.Get(ctx, &receipt, "SELECT * FROM payment_receipts WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

func (r *ReceiptRepo) GetByRequestID(ctx context.Context, requestID uuid.UUID) ([]*repository.PaymentReceipt, error) {
	var receipts []*repository.PaymentReceipt
	err := r.db.Select(ctx, &receipts, `
        SELECT * FROM payment_receipts
        WHERE request_id = $1
        ORDER BY uploaded_at ASC
    `, requestID)
	return receipts, err
}

// UpdateVerificationTx records a verification outcome. Receipts are never
// deleted; a rejected receipt keeps its row and notes.
func (r *ReceiptRepo) UpdateVerificationTx(ctx context.Context, tx db.Tx, id uuid.UUID, status string, isPrimary bool, notes *string, verifiedAt time.Time) error {
	tag, err := tx.Exec(ctx, `
        UPDATE payment_receipts
        SET
            verification_status = $2,
            is_primary = $3,
            verification_notes = $4,
            verified_at = $5
        WHERE id = $1
    `, id, status, isPrimary, notes, verifiedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
