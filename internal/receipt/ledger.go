// Package receipt records uploaded payment receipts and their verification
// outcome. Receipts are append-only: a rejected receipt stays in history and a
// fresh upload is a new row.
package receipt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/buttercrumb/cakeflow/internal/db"
	"github.com/buttercrumb/cakeflow/internal/metrics"
	"github.com/buttercrumb/cakeflow/internal/order"
	"github.com/buttercrumb/cakeflow/internal/repository"
)

const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// ErrAlreadyVerified means the receipt has already been approved or rejected.
var ErrAlreadyVerified = errors.New("receipt already verified")

type RequestReader interface {
	GetByTrackingCode(ctx context.Context, code string) (*repository.CakeRequest, error)
}

type ReceiptStore interface {
	CreateTx(ctx context.Context, tx db.Tx, receipt *repository.PaymentReceipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*repository.PaymentReceipt, error)
	UpdateVerificationTx(ctx context.Context, tx db.Tx, id uuid.UUID, status string, isPrimary bool, notes *string, verifiedAt time.Time) error
}

type Transitioner interface {
	Transition(ctx context.Context, requestID uuid.UUID, to order.Status, actor, notes string, effects ...order.SideEffect) (*repository.CakeRequest, error)
}

type Ledger struct {
	db       db.DB
	machine  Transitioner
	requests RequestReader
	receipts ReceiptStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewLedger(database db.DB, machine Transitioner, requests RequestReader, receipts ReceiptStore, logger *zap.Logger) *Ledger {
	return &Ledger{
		db:       database,
		machine:  machine,
		requests: requests,
		receipts: receipts,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Upload accepts a receipt while the request is quoted, or while verification
// is already pending (a fresh upload after a rejection). The first upload on a
// quoted request drives the quoted -> payment_pending_verification edge in the
// same transaction as the insert.
func (l *Ledger) Upload(ctx context.Context, trackingCode string, amountCents int, method, reference, imageRef string) (*repository.PaymentReceipt, error) {
	req, err := l.requests.GetByTrackingCode(ctx, trackingCode)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, order.ErrNotFound
		}
		return nil, err
	}

	status := order.Status(req.Status)
	if !order.CanUploadReceipt(status) {
		return nil, &order.ConflictError{Current: status, Attempted: order.StatusPaymentPending}
	}

	if amountCents <= 0 {
		return nil, &order.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if strings.TrimSpace(method) == "" {
		return nil, &order.ValidationError{Field: "method", Reason: "required"}
	}
	if !strings.EqualFold(method, "cash") && strings.TrimSpace(reference) == "" {
		return nil, &order.ValidationError{Field: "reference", Reason: "reference number is required for non-cash payments"}
	}

	rec := &repository.PaymentReceipt{
		ID:                 uuid.New(),
		RequestID:          req.ID,
		Amount:             amountCents,
		Method:             method,
		Reference:          reference,
		ImageRef:           imageRef,
		VerificationStatus: VerificationPending,
		UploadedAt:         l.now(),
	}

	if status == order.StatusQuoted {
		_, err = l.machine.Transition(ctx, req.ID, order.StatusPaymentPending, "customer", "",
			func(ctx context.Context, tx db.Tx, _ *repository.CakeRequest) error {
				return l.receipts.CreateTx(ctx, tx, rec)
			})
	} else {
		// Re-upload while verification is pending; no status change.
		err = db.InTx(ctx, l.db, func(tx db.Tx) error {
			return l.receipts.CreateTx(ctx, tx, rec)
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record receipt: %w", err)
	}

	metrics.ReceiptsUploadedTotal.Inc()
	l.logger.Info("Payment receipt uploaded",
		zap.String("tracking_code", trackingCode),
		zap.String("receipt_id", rec.ID.String()),
		zap.String("method", method),
	)
	return rec, nil
}

// Verify records the admin's decision. Approval marks the receipt primary and
// drives payment_pending_verification -> payment_verified; rejection requires
// notes and drives the request back to quoted so the customer can re-upload.
func (l *Ledger) Verify(ctx context.Context, receiptID uuid.UUID, approved bool, notes, actor string) (*repository.PaymentReceipt, error) {
	rec, err := l.receipts.GetByID(ctx, receiptID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, order.ErrNotFound
		}
		return nil, err
	}

	if rec.VerificationStatus != VerificationPending {
		return nil, ErrAlreadyVerified
	}
	if !approved && strings.TrimSpace(notes) == "" {
		return nil, &order.ValidationError{Field: "notes", Reason: "rejection requires an explanation for the customer"}
	}

	target := order.StatusQuoted
	outcome := VerificationRejected
	if approved {
		target = order.StatusPaymentVerified
		outcome = VerificationApproved
	}

	verifiedAt := l.now()
	_, err = l.machine.Transition(ctx, rec.RequestID, target, actor, notes,
		func(ctx context.Context, tx db.Tx, _ *repository.CakeRequest) error {
			return l.receipts.UpdateVerificationTx(ctx, tx, rec.ID, outcome, approved, optionalString(notes), verifiedAt)
		})
	if err != nil {
		return nil, err
	}

	rec.VerificationStatus = outcome
	rec.IsPrimary = approved
	rec.VerificationNotes = optionalString(notes)
	rec.VerifiedAt = &verifiedAt

	metrics.ReceiptsVerifiedTotal.WithLabelValues(outcome).Inc()
	l.logger.Info("Payment receipt verified",
		zap.String("receipt_id", rec.ID.String()),
		zap.String("outcome", outcome),
		zap.String("actor", actor),
	)
	return rec, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
