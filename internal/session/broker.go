// Package session issues and tracks the short-lived kiosk-to-phone design
// handoff sessions. A session is created at the kiosk, completed exactly once
// from the phone editor, and observed by the kiosk through polling.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/buttercrumb/cakeflow/internal/metrics"
	"github.com/buttercrumb/cakeflow/internal/repository"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
)

var (
	ErrNotFound       = errors.New("session not found")
	ErrExpired        = errors.New("session expired")
	ErrConflict       = errors.New("session already completed or cancelled")
	ErrInvalidPayload = errors.New("design payload must be a JSON object")
	ErrInvalidKiosk   = errors.New("kiosk_id is required")
)

// Store is the indexed session store behind the broker. Complete must be
// atomic: of two concurrent callers on an active session, exactly one sees
// true.
type Store interface {
	Create(ctx context.Context, s *repository.DesignSession) error
	Get(ctx context.Context, token string) (*repository.DesignSession, error)
	Complete(ctx context.Context, token string, payload json.RawMessage, completedAt time.Time) (bool, error)
	Cancel(ctx context.Context, token string) error
	MarkExpired(ctx context.Context, token string) error
	ExpireBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type Broker struct {
	store         Store
	ttl           time.Duration
	editorBaseURL string
	logger        *zap.Logger
	now           func() time.Time

	sweepInterval  time.Duration
	wg             sync.WaitGroup
	shutdownSignal chan struct{}
	stopOnce       sync.Once
}

func NewBroker(store Store, ttl time.Duration, editorBaseURL string, sweepInterval time.Duration, logger *zap.Logger) *Broker {
	return &Broker{
		store:          store,
		ttl:            ttl,
		editorBaseURL:  editorBaseURL,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
		sweepInterval:  sweepInterval,
		shutdownSignal: make(chan struct{}),
	}
}

type Created struct {
	Token            string `json:"token"`
	EditorURL        string `json:"editor_url"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Create issues a new session for a kiosk. The returned editor URL is what the
// kiosk renders as a QR code.
func (b *Broker) Create(ctx context.Context, kioskID string) (*Created, error) {
	if kioskID == "" {
		return nil, ErrInvalidKiosk
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := b.now()
	s := &repository.DesignSession{
		Token:     token,
		KioskID:   kioskID,
		Status:    StatusActive,
		CreatedAt: now,
		ExpiresAt: now.Add(b.ttl),
	}
	if err := b.store.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to create design session: %w", err)
	}

	metrics.SessionsCreatedTotal.Inc()
	metrics.ActiveSessions.Inc()
	b.logger.Info("Design session created",
		zap.String("kiosk_id", kioskID),
		zap.Time("expires_at", s.ExpiresAt),
	)

	return &Created{
		Token:            token,
		EditorURL:        fmt.Sprintf("%s?token=%s", b.editorBaseURL, token),
		ExpiresInSeconds: int(b.ttl.Seconds()),
	}, nil
}

// expiredNow evaluates expiry lazily against the wall clock, so a session
// reads as expired the moment its TTL elapses even if no sweep has run.
func (b *Broker) expiredNow(s *repository.DesignSession) bool {
	return s.Status == StatusActive && !b.now().Before(s.ExpiresAt)
}

// Validate looks a session up by token, applying lazy expiry.
func (b *Broker) Validate(ctx context.Context, token string) (*repository.DesignSession, error) {
	s, err := b.get(ctx, token)
	if err != nil {
		return nil, err
	}
	if b.expiredNow(s) {
		b.lazyExpire(ctx, token)
		return nil, ErrExpired
	}
	if s.Status == StatusExpired {
		return nil, ErrExpired
	}
	return s, nil
}

type PollResult struct {
	Status string          `json:"status"`
	Design json.RawMessage `json:"design,omitempty"`
}

// Poll is the kiosk's stateless read. After completion it keeps returning the
// same payload, so a flaky client can retry safely.
func (b *Broker) Poll(ctx context.Context, token string) (*PollResult, error) {
	s, err := b.get(ctx, token)
	if err != nil {
		return nil, err
	}

	switch {
	case s.Status == StatusCompleted:
		return &PollResult{Status: StatusCompleted, Design: s.Payload}, nil
	case s.Status == StatusExpired || s.Status == StatusCancelled:
		return &PollResult{Status: StatusExpired}, nil
	case b.expiredNow(s):
		b.lazyExpire(ctx, token)
		return &PollResult{Status: StatusExpired}, nil
	default:
		return &PollResult{Status: "pending"}, nil
	}
}

// Complete records the design payload. Only the first caller on an active,
// unexpired session succeeds; late or concurrent callers get ErrConflict or
// ErrExpired.
func (b *Broker) Complete(ctx context.Context, token string, payload json.RawMessage) error {
	if len(payload) == 0 || !json.Valid(payload) {
		return ErrInvalidPayload
	}

	ok, err := b.store.Complete(ctx, token, payload, b.now())
	if err != nil {
		return err
	}
	if ok {
		metrics.SessionsCompletedTotal.Inc()
		metrics.ActiveSessions.Dec()
		b.logger.Info("Design session completed", zap.String("token_prefix", tokenPrefix(token)))
		return nil
	}

	// Lost the conditional update; figure out why for a precise error.
	s, err := b.get(ctx, token)
	if err != nil {
		return err
	}
	switch {
	case s.Status == StatusCompleted || s.Status == StatusCancelled:
		return ErrConflict
	case s.Status == StatusExpired || b.expiredNow(s):
		b.lazyExpire(ctx, token)
		return ErrExpired
	default:
		return ErrConflict
	}
}

// Cancel is idempotent: cancelling a completed, cancelled, or expired session
// is a no-op success.
func (b *Broker) Cancel(ctx context.Context, token string) error {
	s, err := b.get(ctx, token)
	if err != nil {
		return err
	}
	if s.Status != StatusActive {
		return nil
	}
	if err := b.store.Cancel(ctx, token); err != nil {
		return fmt.Errorf("failed to cancel design session: %w", err)
	}
	metrics.ActiveSessions.Dec()
	b.logger.Info("Design session cancelled", zap.String("kiosk_id", s.KioskID))
	return nil
}

func (b *Broker) get(ctx context.Context, token string) (*repository.DesignSession, error) {
	s, err := b.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (b *Broker) lazyExpire(ctx context.Context, token string) {
	if err := b.store.MarkExpired(ctx, token); err != nil {
		b.logger.Warn("Failed to mark session expired", zap.Error(err))
		return
	}
	metrics.SessionsExpiredTotal.Inc()
	metrics.ActiveSessions.Dec()
}

// RunSweeper periodically expires overdue sessions. The sweep is an
// optimization; lazy expiry on access is what guarantees correctness.
func (b *Broker) RunSweeper(ctx context.Context) {
	b.wg.Add(1)
	defer b.wg.Done()

	ticker := time.NewTicker(b.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := b.store.ExpireBefore(ctx, b.now())
			if err != nil {
				b.logger.Error("Session sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				metrics.SessionsExpiredTotal.Add(float64(n))
				metrics.ActiveSessions.Sub(float64(n))
				b.logger.Debug("Session sweep expired sessions", zap.Int("count", n))
			}
		case <-b.shutdownSignal:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (b *Broker) Shutdown() {
	b.stopOnce.Do(func() {
		close(b.shutdownSignal)
		b.wg.Wait()
	})
}

func tokenPrefix(token string) string {
	if len(token) > 8 {
		return token[:8]
	}
	return token
}
