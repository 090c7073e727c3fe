package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/buttercrumb/cakeflow/internal/db"
	"github.com/buttercrumb/cakeflow/internal/metrics"
	"github.com/buttercrumb/cakeflow/internal/repository"
)

type RequestRepository interface {
	GetByIDTx(ctx context.Context, tx db.Tx, id uuid.UUID) (*repository.CakeRequest, error)
	UpdateTx(ctx context.Context, tx db.Tx, req *repository.CakeRequest) error
}

type HistoryRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, entry *repository.StatusHistoryEntry) error
}

type OutboxRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
}

// SideEffect runs inside the transition transaction, after edge validation and
// before the history append. It may mutate req; the mutated row is what gets
// persisted.
type SideEffect func(ctx context.Context, tx db.Tx, req *repository.CakeRequest) error

// Machine is the only writer of CakeRequest.Status. Every transition locks the
// request row, validates the edge, applies side effects, appends the history
// entry, and enqueues a notification outbox task in a single transaction.
type Machine struct {
	db       db.DB
	requests RequestRepository
	history  HistoryRepository
	outbox   OutboxRepository
	topic    string
	logger   *zap.Logger
	now      func() time.Time
}

func NewMachine(database db.DB, requests RequestRepository, history HistoryRepository, outbox OutboxRepository, topic string, logger *zap.Logger) *Machine {
	return &Machine{
		db:       database,
		requests: requests,
		history:  history,
		outbox:   outbox,
		topic:    topic,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type notificationEvent struct {
	TrackingCode  string    `json:"tracking_code"`
	FromStatus    string    `json:"from_status"`
	ToStatus      string    `json:"to_status"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	ChangedAt     time.Time `json:"changed_at"`
}

// Transition moves the request to the target status. An illegal edge fails
// with ConflictError and nothing is written.
func (m *Machine) Transition(ctx context.Context, requestID uuid.UUID, to Status, actor, notes string, effects ...SideEffect) (*repository.CakeRequest, error) {
	var result *repository.CakeRequest
	var from Status

	err := db.InTx(ctx, m.db, func(tx db.Tx) error {
		req, err := m.requests.GetByIDTx(ctx, tx, requestID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load request: %w", err)
		}

		from = Status(req.Status)
		if !CanTransition(from, to) {
			return &ConflictError{Current: from, Attempted: to}
		}

		for _, effect := range effects {
			if err := effect(ctx, tx, req); err != nil {
				return err
			}
		}

		now := m.now()
		req.Status = string(to)
		req.UpdatedAt = now

		if err := m.requests.UpdateTx(ctx, tx, req); err != nil {
			return fmt.Errorf("failed to update request: %w", err)
		}

		entry := &repository.StatusHistoryEntry{
			RequestID:  req.ID,
			FromStatus: string(from),
			ToStatus:   string(to),
			Actor:      actor,
			Notes:      optionalString(notes),
			ChangedAt:  now,
		}
		if err := m.history.CreateTx(ctx, tx, entry); err != nil {
			return fmt.Errorf("failed to append status history: %w", err)
		}

		payload, err := json.Marshal(notificationEvent{
			TrackingCode:  req.TrackingCode,
			FromStatus:    string(from),
			ToStatus:      string(to),
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
			Notes:         notes,
			ChangedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal notification event: %w", err)
		}
		if err := m.outbox.CreateTx(ctx, tx, &repository.OutboxTask{
			Topic:   m.topic,
			Payload: payload,
		}); err != nil {
			return fmt.Errorf("failed to enqueue notification: %w", err)
		}

		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.TransitionsTotal.WithLabelValues(string(to)).Inc()
	m.logger.Info("Request status transitioned",
		zap.String("request_id", requestID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("actor", actor),
	)

	return result, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
