//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/buttercrumb/cakeflow/internal/metrics"
	"github.com/buttercrumb/cakeflow/internal/order"
	"github.com/buttercrumb/cakeflow/internal/quote"
	"github.com/buttercrumb/cakeflow/internal/receipt"
	"github.com/buttercrumb/cakeflow/internal/repository"
	"github.com/buttercrumb/cakeflow/internal/schedule"
	"github.com/buttercrumb/cakeflow/internal/session"
)

type SessionBroker interface {
	Create(ctx context.Context, kioskID string) (*session.Created, error)
	Validate(ctx context.Context, token string) (*repository.DesignSession, error)
	Poll(ctx context.Context, token string) (*session.PollResult, error)
	Complete(ctx context.Context, token string, payload json.RawMessage) error
	Cancel(ctx context.Context, token string) error
}

type OrderService interface {
	CreateDraft(ctx context.Context, payload json.RawMessage, contact order.Contact) (*repository.CakeRequest, error)
	Submit(ctx context.Context, trackingCode string) (*repository.CakeRequest, error)
	CancelByTrackingCode(ctx context.Context, trackingCode, notes string) (*repository.CakeRequest, error)
	Cancel(ctx context.Context, requestID uuid.UUID, actor, notes string) (*repository.CakeRequest, error)
	Quote(ctx context.Context, requestID uuid.UUID, priceCents, preparationDays int, notes, actor string) (*repository.CakeRequest, error)
	Reject(ctx context.Context, requestID uuid.UUID, notes, actor string) (*repository.CakeRequest, error)
	RequestRevision(ctx context.Context, requestID uuid.UUID, notes, actor string) (*repository.CakeRequest, error)
	Advance(ctx context.Context, requestID uuid.UUID, actor string) (*repository.CakeRequest, error)
	Track(ctx context.Context, trackingCode string) (*order.TrackingView, error)
	List(ctx context.Context, status string, limit int) ([]*repository.CakeRequest, error)
	GetByID(ctx context.Context, requestID uuid.UUID) (*repository.CakeRequest, error)
	SuggestQuote(ctx context.Context, requestID uuid.UUID) (quote.Breakdown, error)
}

type ReceiptLedger interface {
	Upload(ctx context.Context, trackingCode string, amountCents int, method, reference, imageRef string) (*repository.PaymentReceipt, error)
	Verify(ctx context.Context, receiptID uuid.UUID, approved bool, notes, actor string) (*repository.PaymentReceipt, error)
}

type PickupScheduler interface {
	Schedule(ctx context.Context, requestID uuid.UUID, pickupAt time.Time, bakerID, bakerNotes, actor string) (*schedule.Result, error)
}

type UserRepo interface {
	ValidateUser(ctx context.Context, username, password string) (string, error)
}

type Server struct {
	sessions     SessionBroker
	orders       OrderService
	receipts     ReceiptLedger
	scheduler    PickupScheduler
	users        UserRepo
	logger       *zap.Logger
	server       *http.Server
	AuditManager *AuditManager
}

func New(sessions SessionBroker, orders OrderService, receipts ReceiptLedger, scheduler PickupScheduler, users UserRepo, logger *zap.Logger) *Server {
	auditManager := NewAuditManager(2, 5, 500*time.Millisecond)
	return &Server{
		sessions:     sessions,
		orders:       orders,
		receipts:     receipts,
		scheduler:    scheduler,
		users:        users,
		logger:       logger,
		AuditManager: auditManager,
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.AuditManager.Start(ctx)

	s.logger.Info("Server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.AuditManager.Shutdown(ctx)
	s.logger.Info("Server shutdown completed")
	return nil
}

func (s *Server) setupRoutes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Session API: kiosk and phone editor.
	r.HandleFunc("/sessions", s.handleCreateSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{token}", s.handleValidateSession).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{token}/poll", s.handlePollSession).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{token}/complete", s.handleCompleteSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{token}/cancel", s.handleCancelSession).Methods(http.MethodPost)

	// Customer API: keyed by public tracking code.
	r.HandleFunc("/requests", s.handleCreateRequest).Methods(http.MethodPost)
	r.HandleFunc("/requests/{code}/submit", s.handleSubmitRequest).Methods(http.MethodPost)
	r.HandleFunc("/requests/{code}/cancel", s.handleCancelRequest).Methods(http.MethodPost)
	r.HandleFunc("/requests/{code}/receipts", s.handleUploadReceipt).Methods(http.MethodPost)
	r.HandleFunc("/track/{code}", s.handleTrackRequest).Methods(http.MethodGet)

	// Admin API: basic auth plus audit trail.
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(s.basicAuthMiddleware, s.auditLogMiddleware)
	admin.HandleFunc("/requests", s.handleListRequests).Methods(http.MethodGet).Name("ListRequests")
	admin.HandleFunc("/requests/{id}", s.handleGetRequest).Methods(http.MethodGet).Name("GetRequest")
	admin.HandleFunc("/requests/{id}/quote-suggestion", s.handleQuoteSuggestion).Methods(http.MethodGet).Name("QuoteSuggestion")
	admin.HandleFunc("/requests/{id}/quote", s.handleCreateQuote).Methods(http.MethodPost).Name("CreateQuote")
	admin.HandleFunc("/requests/{id}/reject", s.handleRejectRequest).Methods(http.MethodPost).Name("RejectRequest")
	admin.HandleFunc("/requests/{id}/request-revision", s.handleRequestRevision).Methods(http.MethodPost).Name("RequestRevision")
	admin.HandleFunc("/requests/{id}/cancel", s.handleAdminCancel).Methods(http.MethodPost).Name("AdminCancel")
	admin.HandleFunc("/requests/{id}/schedule", s.handleSchedulePickup).Methods(http.MethodPost).Name("SchedulePickup")
	admin.HandleFunc("/requests/{id}/advance", s.handleAdvanceRequest).Methods(http.MethodPost).Name("AdvanceRequest")
	admin.HandleFunc("/receipts/{receipt_id}/verify", s.handleVerifyReceipt).Methods(http.MethodPost).Name("VerifyReceipt")

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFromError maps the domain error taxonomy onto HTTP codes.
func statusFromError(err error) int {
	var conflictErr *order.ConflictError
	var validationErr *order.ValidationError

	switch {
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, session.ErrNotFound),
		errors.Is(err, repository.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrExpired):
		return http.StatusGone
	case errors.As(err, &conflictErr),
		errors.Is(err, session.ErrConflict),
		errors.Is(err, receipt.ErrAlreadyVerified):
		return http.StatusConflict
	case errors.As(err, &validationErr),
		errors.Is(err, session.ErrInvalidPayload),
		errors.Is(err, session.ErrInvalidKiosk):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrLeadTimeViolation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondCustomerError hides internal detail from the public surface; the
// specific reason is logged. Validation and state errors pass through so the
// customer knows what to fix.
func (s *Server) respondCustomerError(w http.ResponseWriter, operation string, err error) {
	status := statusFromError(err)
	metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
	s.logger.Warn("Customer operation failed",
		zap.String("operation", operation),
		zap.Int("status", status),
		zap.Error(err),
	)
	if status == http.StatusInternalServerError {
		respondError(w, status, "something went wrong, please try again")
		return
	}
	respondError(w, status, err.Error())
}

// respondAdminError shows the full reason, including the offending current
// state on a conflict, so the operator understands why the action was refused.
func (s *Server) respondAdminError(w http.ResponseWriter, operation string, err error) {
	status := statusFromError(err)
	metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
	s.logger.Warn("Admin operation failed",
		zap.String("operation", operation),
		zap.Int("status", status),
		zap.Error(err),
	)
	respondError(w, status, err.Error())
}
