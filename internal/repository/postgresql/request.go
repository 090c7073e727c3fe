package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/buttercrumb/cakeflow/internal/db"
	"github.com/buttercrumb/cakeflow/internal/repository"
)

type RequestRepo struct {
	db db.DB
}

func NewRequestRepo(db db.DB) *RequestRepo {
	return &RequestRepo{db: db}
}

func (r *RequestRepo) Create(ctx context.Context, req *repository.CakeRequest) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO cake_requests (
            id, tracking_code, customer_name, customer_phone, customer_email,
            layers, flavors, sizes, theme, frosting_type, decorations, cake_text,
            special_instructions, status, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
    `, req.ID, req.TrackingCode, req.CustomerName, req.CustomerPhone, req.CustomerEmail,
		req.Layers, req.Flavors, req.Sizes, req.Theme, req.FrostingType, req.Decorations,
		req.CakeText, req.SpecialInstructions, req.Status, req.CreatedAt, req.UpdatedAt)
	return err
}

func (r *RequestRepo) CreateTx(ctx context.Context, tx db.Tx, req *repository.CakeRequest) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO cake_requests (
            id, tracking_code, customer_name, customer_phone, customer_email,
            layers, flavors, sizes, theme, frosting_type, decorations, cake_text,
            special_instructions, status, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
    `, req.ID, req.TrackingCode, req.CustomerName, req.CustomerPhone, req.CustomerEmail,
		req.Layers, req.Flavors, req.Sizes, req.Theme, req.FrostingType, req.Decorations,
		req.CakeText, req.SpecialInstructions, req.Status, req.CreatedAt, req.UpdatedAt)
	return err
}

func (r *RequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*repository.CakeRequest, error) {
	var req repository.CakeRequest
	err := r.db.Get(ctx, &req, "SELECT * FROM cake_requests WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &req, nil
}

// GetByIDTx locks the request row for the duration of the transaction so that
// concurrent transitions on the same request serialize.
func (r *RequestRepo) GetByIDTx(ctx context.Context, tx db.Tx, id uuid.UUID) (*repository.CakeRequest, error) {
	var req repository.CakeRequest
	err := tx.Get(ctx, &req, "SELECT * FROM cake_requests WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepo) GetByTrackingCode(ctx context.Context, code string) (*repository.CakeRequest, error) {
	var req repository.CakeRequest
	err := r.db.Get(ctx, &req, "SELECT * FROM cake_requests WHERE tracking_code = $1", code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepo) UpdateTx(ctx context.Context, tx db.Tx, req *repository.CakeRequest) error {
	_, err := tx.Exec(ctx, `
        UPDATE cake_requests
        SET
            customer_name = $1,
            customer_phone = $2,
            customer_email = $3,
            layers = $4,
            flavors = $5,
            sizes = $6,
            theme = $7,
            frosting_type = $8,
            decorations = $9,
            cake_text = $10,
            special_instructions = $11,
            status = $12,
            quoted_price = $13,
            preparation_days = $14,
            scheduled_pickup_at = $15,
            assigned_baker_id = $16,
            baker_notes = $17,
            submitted_at = $18,
            updated_at = $19
        WHERE id = $20
    `, req.CustomerName, req.CustomerPhone, req.CustomerEmail, req.Layers, req.Flavors,
		req.Sizes, req.Theme, req.FrostingType, req.Decorations, req.CakeText,
		req.SpecialInstructions, req.Status, req.QuotedPrice, req.PreparationDays,
		req.ScheduledPickupAt, req.AssignedBakerID, req.BakerNotes, req.SubmittedAt,
		req.UpdatedAt, req.ID)
	return err
}

func (r *RequestRepo) ListByStatus(ctx context.Context, status string, limit int) ([]*repository.CakeRequest, error) {
	query := "SELECT * FROM cake_requests"
	args := []interface{}{}

	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}

	var reqs []*repository.CakeRequest
	err := r.db.Select(ctx, &reqs, query, args...)
	return reqs, err
}

// CountScheduledOnDate counts requests whose pickup falls on the given calendar
// day and that have not been cancelled. Feeds the capacity policy.
func (r *RequestRepo) CountScheduledOnDate(ctx context.Context, date time.Time) (int, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int
	err := r.db.ExecQueryRow(ctx, `
        SELECT COUNT(*) FROM cake_requests
        WHERE scheduled_pickup_at >= $1 AND scheduled_pickup_at < $2
          AND status NOT IN ('cancelled', 'rejected')
    `, dayStart, dayEnd).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count scheduled pickups: %w", err)
	}
	return count, nil
}
