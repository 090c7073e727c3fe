package order

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/buttercrumb/cakeflow/internal/db"
	"github.com/buttercrumb/cakeflow/internal/metrics"
	"github.com/buttercrumb/cakeflow/internal/quote"
	"github.com/buttercrumb/cakeflow/internal/repository"
)

type RequestStore interface {
	CreateTx(ctx context.Context, tx db.Tx, req *repository.CakeRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*repository.CakeRequest, error)
	GetByTrackingCode(ctx context.Context, code string) (*repository.CakeRequest, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]*repository.CakeRequest, error)
}

type HistoryReader interface {
	CreateTx(ctx context.Context, tx db.Tx, entry *repository.StatusHistoryEntry) error
	GetByRequestID(ctx context.Context, requestID uuid.UUID) ([]*repository.StatusHistoryEntry, error)
}

type ReceiptReader interface {
	GetByRequestID(ctx context.Context, requestID uuid.UUID) ([]*repository.PaymentReceipt, error)
}

// Design is the customization payload produced by the phone editor.
type Design struct {
	Layers              int      `json:"layers"`
	Flavors             []string `json:"flavors"`
	Sizes               []string `json:"sizes"`
	Theme               string   `json:"theme"`
	FrostingType        string   `json:"frosting_type"`
	Decorations         []string `json:"decorations"`
	CakeText            string   `json:"cake_text"`
	SpecialInstructions string   `json:"special_instructions"`
}

type Contact struct {
	Name  string
	Phone string
	Email string
}

// Service owns request creation and the named entry points into the state
// machine. All status changes funnel through the machine.
type Service struct {
	db       db.DB
	machine  *Machine
	requests RequestStore
	history  HistoryReader
	receipts ReceiptReader
	calc     *quote.Calculator
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(database db.DB, machine *Machine, requests RequestStore, history HistoryReader, receipts ReceiptReader, calc *quote.Calculator, logger *zap.Logger) *Service {
	return &Service{
		db:       database,
		machine:  machine,
		requests: requests,
		history:  history,
		receipts: receipts,
		calc:     calc,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

const trackingAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

func newTrackingCode() (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate tracking code: %w", err)
	}
	var sb strings.Builder
	sb.WriteString("CK-")
	for _, b := range buf {
		sb.WriteByte(trackingAlphabet[int(b)%len(trackingAlphabet)])
	}
	return sb.String(), nil
}

// CreateDraft turns a completed design session payload into a draft request.
// The draft and its first history entry are written in one transaction.
func (s *Service) CreateDraft(ctx context.Context, payload json.RawMessage, contact Contact) (*repository.CakeRequest, error) {
	var design Design
	if err := json.Unmarshal(payload, &design); err != nil {
		return nil, &ValidationError{Field: "design", Reason: "malformed design payload"}
	}
	if design.Layers < 1 {
		design.Layers = 1
	}
	if contact.Name == "" {
		return nil, &ValidationError{Field: "customer_name", Reason: "required"}
	}
	if contact.Phone == "" && contact.Email == "" {
		return nil, &ValidationError{Field: "contact", Reason: "phone or email is required"}
	}

	code, err := newTrackingCode()
	if err != nil {
		return nil, err
	}

	now := s.now()
	req := &repository.CakeRequest{
		ID:                  uuid.New(),
		TrackingCode:        code,
		CustomerName:        contact.Name,
		CustomerPhone:       contact.Phone,
		CustomerEmail:       contact.Email,
		Layers:              design.Layers,
		Flavors:             strings.Join(design.Flavors, ","),
		Sizes:               strings.Join(design.Sizes, ","),
		Theme:               design.Theme,
		FrostingType:        design.FrostingType,
		Decorations:         strings.Join(design.Decorations, ","),
		CakeText:            design.CakeText,
		SpecialInstructions: design.SpecialInstructions,
		Status:              string(StatusDraft),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err = db.InTx(ctx, s.db, func(tx db.Tx) error {
		if err := s.requests.CreateTx(ctx, tx, req); err != nil {
			return fmt.Errorf("failed to create draft request: %w", err)
		}
		return s.history.CreateTx(ctx, tx, &repository.StatusHistoryEntry{
			RequestID:  req.ID,
			FromStatus: "",
			ToStatus:   string(StatusDraft),
			Actor:      "customer",
			ChangedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.RequestsCreatedTotal.Inc()
	s.logger.Info("Draft request created",
		zap.String("request_id", req.ID.String()),
		zap.String("tracking_code", req.TrackingCode),
	)
	return req, nil
}

// Submit moves a draft (or a revision round) to pending_review. Flavor and
// size are required at this point.
func (s *Service) Submit(ctx context.Context, trackingCode string) (*repository.CakeRequest, error) {
	req, err := s.getByTrackingCode(ctx, trackingCode)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Flavors) == "" {
		return nil, &ValidationError{Field: "flavors", Reason: "at least one flavor is required"}
	}
	if strings.TrimSpace(req.Sizes) == "" {
		return nil, &ValidationError{Field: "sizes", Reason: "a cake size is required"}
	}

	return s.machine.Transition(ctx, req.ID, StatusPendingReview, "customer", "",
		func(_ context.Context, _ db.Tx, r *repository.CakeRequest) error {
			now := s.now()
			r.SubmittedAt = &now
			return nil
		})
}

// CancelByTrackingCode is the customer-initiated cancellation.
func (s *Service) CancelByTrackingCode(ctx context.Context, trackingCode, notes string) (*repository.CakeRequest, error) {
	req, err := s.getByTrackingCode(ctx, trackingCode)
	if err != nil {
		return nil, err
	}
	return s.machine.Transition(ctx, req.ID, StatusCancelled, "customer", notes)
}

// Cancel is the admin-initiated cancellation.
func (s *Service) Cancel(ctx context.Context, requestID uuid.UUID, actor, notes string) (*repository.CakeRequest, error) {
	return s.machine.Transition(ctx, requestID, StatusCancelled, actor, notes)
}

// Quote records the admin-approved price and preparation window of record.
func (s *Service) Quote(ctx context.Context, requestID uuid.UUID, priceCents, preparationDays int, notes, actor string) (*repository.CakeRequest, error) {
	if priceCents <= 0 {
		return nil, &ValidationError{Field: "quoted_price", Reason: "must be positive"}
	}
	if preparationDays < 1 {
		return nil, &ValidationError{Field: "preparation_days", Reason: "must be at least 1"}
	}

	req, err := s.machine.Transition(ctx, requestID, StatusQuoted, actor, notes,
		func(_ context.Context, _ db.Tx, r *repository.CakeRequest) error {
			r.QuotedPrice = &priceCents
			r.PreparationDays = &preparationDays
			return nil
		})
	if err != nil {
		return nil, err
	}
	metrics.QuotesIssuedTotal.Inc()
	return req, nil
}

// Reject refuses a request under review. Notes are mandatory so the customer
// learns why.
func (s *Service) Reject(ctx context.Context, requestID uuid.UUID, notes, actor string) (*repository.CakeRequest, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, &ValidationError{Field: "notes", Reason: "rejection requires an explanation"}
	}
	return s.machine.Transition(ctx, requestID, StatusRejected, actor, notes)
}

// RequestRevision sends the request back to the customer for changes.
func (s *Service) RequestRevision(ctx context.Context, requestID uuid.UUID, notes, actor string) (*repository.CakeRequest, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, &ValidationError{Field: "notes", Reason: "a revision request needs notes"}
	}
	return s.machine.Transition(ctx, requestID, StatusRevisionRequested, actor, notes)
}

// Advance walks the post-scheduling progression one step:
// scheduled -> in_production -> ready_for_pickup -> completed.
func (s *Service) Advance(ctx context.Context, requestID uuid.UUID, actor string) (*repository.CakeRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	next := NextProductionStage(Status(req.Status))
	if next == "" {
		return nil, &ConflictError{Current: Status(req.Status), Attempted: StatusInProduction}
	}
	return s.machine.Transition(ctx, requestID, next, actor, "")
}

func (s *Service) GetByID(ctx context.Context, requestID uuid.UUID) (*repository.CakeRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *Service) List(ctx context.Context, status string, limit int) ([]*repository.CakeRequest, error) {
	return s.requests.ListByStatus(ctx, status, limit)
}

// SuggestQuote runs the pure price calculator over the request's stored design
// attributes.
func (s *Service) SuggestQuote(ctx context.Context, requestID uuid.UUID) (quote.Breakdown, error) {
	req, err := s.GetByID(ctx, requestID)
	if err != nil {
		return quote.Breakdown{}, err
	}
	return s.calc.Suggest(quote.Attributes{
		Layers:              req.Layers,
		DecorationCount:     countCSV(req.Decorations),
		Theme:               req.Theme,
		CakeText:            req.CakeText,
		FrostingType:        req.FrostingType,
		SpecialInstructions: req.SpecialInstructions,
	}), nil
}

// TrackingView is the public customer-facing projection of a request.
type TrackingView struct {
	TrackingCode      string                           `json:"tracking_code"`
	CurrentStatus     string                           `json:"current_status"`
	QuotedPrice       *int                             `json:"quoted_price,omitempty"`
	PreparationDays   *int                             `json:"preparation_days,omitempty"`
	ScheduledPickupAt *time.Time                       `json:"scheduled_pickup_at,omitempty"`
	History           []*repository.StatusHistoryEntry `json:"status_history"`
	Receipts          []*repository.PaymentReceipt     `json:"receipts"`
	CanUploadReceipt  bool                             `json:"can_upload_receipt"`
	CanCancel         bool                             `json:"can_cancel"`
}

func (s *Service) Track(ctx context.Context, trackingCode string) (*TrackingView, error) {
	req, err := s.getByTrackingCode(ctx, trackingCode)
	if err != nil {
		return nil, err
	}

	history, err := s.history.GetByRequestID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}
	receipts, err := s.receipts.GetByRequestID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipts: %w", err)
	}

	status := Status(req.Status)
	return &TrackingView{
		TrackingCode:      req.TrackingCode,
		CurrentStatus:     req.Status,
		QuotedPrice:       req.QuotedPrice,
		PreparationDays:   req.PreparationDays,
		ScheduledPickupAt: req.ScheduledPickupAt,
		History:           history,
		Receipts:          receipts,
		CanUploadReceipt:  CanUploadReceipt(status),
		CanCancel:         CanCancel(status),
	}, nil
}

func (s *Service) getByTrackingCode(ctx context.Context, trackingCode string) (*repository.CakeRequest, error) {
	req, err := s.requests.GetByTrackingCode(ctx, trackingCode)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func countCSV(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return len(strings.Split(s, ","))
}
