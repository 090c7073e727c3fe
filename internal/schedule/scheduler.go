// Package schedule assigns pickup slots to verified cake requests.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/buttercrumb/cakeflow/internal/db"
	"github.com/buttercrumb/cakeflow/internal/metrics"
	"github.com/buttercrumb/cakeflow/internal/order"
	"github.com/buttercrumb/cakeflow/internal/repository"
)

type RequestReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*repository.CakeRequest, error)
	CountScheduledOnDate(ctx context.Context, date time.Time) (int, error)
}

type Transitioner interface {
	Transition(ctx context.Context, requestID uuid.UUID, to order.Status, actor, notes string, effects ...order.SideEffect) (*repository.CakeRequest, error)
}

// CapacityPolicy decides whether a pickup date is over capacity. Exceeding
// capacity is a warning for the admin, never a hard failure.
type CapacityPolicy interface {
	Check(ctx context.Context, pickupDate time.Time) (warning string, err error)
}

// MaxPerDayPolicy warns once the number of pickups already booked on a date
// reaches the configured maximum.
type MaxPerDayPolicy struct {
	Requests  RequestReader
	MaxPerDay int
}

func (p *MaxPerDayPolicy) Check(ctx context.Context, pickupDate time.Time) (string, error) {
	if p.MaxPerDay <= 0 {
		return "", nil
	}
	count, err := p.Requests.CountScheduledOnDate(ctx, pickupDate)
	if err != nil {
		return "", err
	}
	if count >= p.MaxPerDay {
		return fmt.Sprintf("%d pickups already scheduled on %s (max %d)",
			count, pickupDate.Format("2006-01-02"), p.MaxPerDay), nil
	}
	return "", nil
}

type Scheduler struct {
	machine  Transitioner
	requests RequestReader
	capacity CapacityPolicy
	logger   *zap.Logger
}

func NewScheduler(machine Transitioner, requests RequestReader, capacity CapacityPolicy, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		machine:  machine,
		requests: requests,
		capacity: capacity,
		logger:   logger,
	}
}

// Result reports a successful scheduling. CapacityWarning is non-empty when
// the pickup date is over the configured capacity.
type Result struct {
	Request         *repository.CakeRequest
	CapacityWarning string
}

// Schedule validates the lead time, checks capacity, and drives the
// payment_verified -> scheduled edge. A pickup earlier than submission plus the
// preparation window fails hard with order.ErrLeadTimeViolation and leaves the
// request untouched.
func (s *Scheduler) Schedule(ctx context.Context, requestID uuid.UUID, pickupAt time.Time, bakerID, bakerNotes, actor string) (*Result, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, order.ErrNotFound
		}
		return nil, err
	}

	if req.SubmittedAt == nil || req.PreparationDays == nil {
		return nil, &order.ConflictError{Current: order.Status(req.Status), Attempted: order.StatusScheduled}
	}
	earliest := req.SubmittedAt.Add(time.Duration(*req.PreparationDays) * 24 * time.Hour)
	if pickupAt.Before(earliest) {
		return nil, order.ErrLeadTimeViolation
	}

	warning, err := s.capacity.Check(ctx, pickupAt)
	if err != nil {
		return nil, fmt.Errorf("capacity check failed: %w", err)
	}

	pickup := pickupAt.UTC()
	updated, err := s.machine.Transition(ctx, requestID, order.StatusScheduled, actor, bakerNotes,
		func(_ context.Context, _ db.Tx, r *repository.CakeRequest) error {
			r.ScheduledPickupAt = &pickup
			if bakerID != "" {
				r.AssignedBakerID = &bakerID
			}
			if bakerNotes != "" {
				r.BakerNotes = &bakerNotes
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	metrics.PickupsScheduledTotal.Inc()
	if warning != "" {
		s.logger.Warn("Pickup scheduled over capacity",
			zap.String("request_id", requestID.String()),
			zap.String("warning", warning),
		)
	} else {
		s.logger.Info("Pickup scheduled",
			zap.String("request_id", requestID.String()),
			zap.Time("pickup_at", pickup),
		)
	}

	return &Result{Request: updated, CapacityWarning: warning}, nil
}
