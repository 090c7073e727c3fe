package order

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/buttercrumb/cakeflow/internal/db"
	mock_database "github.com/buttercrumb/cakeflow/internal/db/mocks"
	"github.com/buttercrumb/cakeflow/internal/quote"
	"github.com/buttercrumb/cakeflow/internal/repository"
)

// fakeStore backs both the service and the state machine in tests.
type fakeStore struct {
	byID    map[uuid.UUID]*repository.CakeRequest
	history []*repository.StatusHistoryEntry
	tasks   []*repository.OutboxTask
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: make(map[uuid.UUID]*repository.CakeRequest)}
}

func (f *fakeStore) add(req *repository.CakeRequest) {
	reqCopy := *req
	f.byID[req.ID] = &reqCopy
}

func (f *fakeStore) CreateTx(_ context.Context, _ db.Tx, req *repository.CakeRequest) error {
	f.add(req)
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*repository.CakeRequest, error) {
	req, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	reqCopy := *req
	return &reqCopy, nil
}

func (f *fakeStore) GetByIDTx(ctx context.Context, _ db.Tx, id uuid.UUID) (*repository.CakeRequest, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeStore) GetByTrackingCode(_ context.Context, code string) (*repository.CakeRequest, error) {
	for _, req := range f.byID {
		if req.TrackingCode == code {
			reqCopy := *req
			return &reqCopy, nil
		}
	}
	return nil, repository.ErrObjectNotFound
}

func (f *fakeStore) UpdateTx(_ context.Context, _ db.Tx, req *repository.CakeRequest) error {
	f.add(req)
	return nil
}

func (f *fakeStore) ListByStatus(_ context.Context, status string, _ int) ([]*repository.CakeRequest, error) {
	var out []*repository.CakeRequest
	for _, req := range f.byID {
		if status == "" || req.Status == status {
			reqCopy := *req
			out = append(out, &reqCopy)
		}
	}
	return out, nil
}

type fakeHistoryStore struct {
	entries []*repository.StatusHistoryEntry
}

func (f *fakeHistoryStore) CreateTx(_ context.Context, _ db.Tx, entry *repository.StatusHistoryEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeHistoryStore) GetByRequestID(_ context.Context, requestID uuid.UUID) ([]*repository.StatusHistoryEntry, error) {
	var out []*repository.StatusHistoryEntry
	for _, e := range f.entries {
		if e.RequestID == requestID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeReceiptReader struct {
	receipts []*repository.PaymentReceipt
}

func (f *fakeReceiptReader) GetByRequestID(_ context.Context, _ uuid.UUID) ([]*repository.PaymentReceipt, error) {
	return f.receipts, nil
}

type serviceFixture struct {
	service  *Service
	store    *fakeStore
	history  *fakeHistoryStore
	receipts *fakeReceiptReader
}

// newServiceFixture wires a service over a real state machine; txCount is how
// many transactions the exercised path opens.
func newServiceFixture(t *testing.T, txCount int) *serviceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockDB := mock_database.NewMockDB(ctrl)
	if txCount > 0 {
		mockTx := mock_database.NewMockTx(ctrl)
		mockTx.EXPECT().Commit(gomock.Any()).Return(nil).Times(txCount)
		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil).Times(txCount)
	}

	store := newFakeStore()
	history := &fakeHistoryStore{}
	receipts := &fakeReceiptReader{}
	outbox := &fakeOutbox{}

	machine := NewMachine(mockDB, store, history, outbox, "cake_notifications", zap.NewNop())
	service := NewService(mockDB, machine, store, history, receipts, quote.NewCalculator(quote.DefaultRates()), zap.NewNop())

	return &serviceFixture{service: service, store: store, history: history, receipts: receipts}
}

func TestCreateDraft(t *testing.T) {
	f := newServiceFixture(t, 1)
	ctx := context.Background()

	payload := json.RawMessage(`{"layers":2,"flavors":["vanilla","chocolate"],"sizes":["9-inch"],"theme":"space"}`)
	req, err := f.service.CreateDraft(ctx, payload, Contact{Name: "Dana", Phone: "555-1234"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(req.TrackingCode, "CK-"))
	assert.Len(t, req.TrackingCode, 13)
	assert.Equal(t, string(StatusDraft), req.Status)
	assert.Equal(t, 2, req.Layers)
	assert.Equal(t, "vanilla,chocolate", req.Flavors)

	// The first history entry is the draft creation itself.
	require.Len(t, f.history.entries, 1)
	assert.Equal(t, "", f.history.entries[0].FromStatus)
	assert.Equal(t, string(StatusDraft), f.history.entries[0].ToStatus)
	assert.Equal(t, "customer", f.history.entries[0].Actor)
}

func TestCreateDraftValidation(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()
	design := json.RawMessage(`{"layers":1}`)

	tests := []struct {
		name    string
		payload json.RawMessage
		contact Contact
		field   string
	}{
		{"malformed payload", json.RawMessage(`{"layers":`), Contact{Name: "Dana", Phone: "1"}, "design"},
		{"missing name", design, Contact{Phone: "555-1234"}, "customer_name"},
		{"no contact channel", design, Contact{Name: "Dana"}, "contact"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.CreateDraft(ctx, tc.payload, tc.contact)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestCreateDraftClampsLayers(t *testing.T) {
	f := newServiceFixture(t, 1)

	req, err := f.service.CreateDraft(context.Background(), json.RawMessage(`{"layers":0}`), Contact{Name: "Dana", Email: "d@test"})
	require.NoError(t, err)
	assert.Equal(t, 1, req.Layers)
}

func TestSubmit(t *testing.T) {
	f := newServiceFixture(t, 1)
	ctx := context.Background()

	draft := &repository.CakeRequest{
		ID:           uuid.New(),
		TrackingCode: "CK-DRAFT00001",
		Status:       string(StatusDraft),
		Flavors:      "vanilla",
		Sizes:        "9-inch",
	}
	f.store.add(draft)

	req, err := f.service.Submit(ctx, draft.TrackingCode)
	require.NoError(t, err)

	assert.Equal(t, string(StatusPendingReview), req.Status)
	require.NotNil(t, req.SubmittedAt)
}

func TestSubmitRequiresFlavorAndSize(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()

	noFlavor := &repository.CakeRequest{ID: uuid.New(), TrackingCode: "CK-NOFLAVOR01", Status: string(StatusDraft), Sizes: "9-inch"}
	noSize := &repository.CakeRequest{ID: uuid.New(), TrackingCode: "CK-NOSIZE0001", Status: string(StatusDraft), Flavors: "vanilla"}
	f.store.add(noFlavor)
	f.store.add(noSize)

	_, err := f.service.Submit(ctx, noFlavor.TrackingCode)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "flavors", validationErr.Field)

	_, err = f.service.Submit(ctx, noSize.TrackingCode)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "sizes", validationErr.Field)
}

func TestQuoteValidation(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()

	_, err := f.service.Quote(ctx, uuid.New(), 0, 3, "", "admin")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "quoted_price", validationErr.Field)

	_, err = f.service.Quote(ctx, uuid.New(), 4500, 0, "", "admin")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "preparation_days", validationErr.Field)
}

func TestRejectRequiresNotes(t *testing.T) {
	f := newServiceFixture(t, 0)

	_, err := f.service.Reject(context.Background(), uuid.New(), "   ", "admin")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = f.service.RequestRevision(context.Background(), uuid.New(), "", "admin")
	require.ErrorAs(t, err, &validationErr)
}

func TestAdvanceWalksProductionStages(t *testing.T) {
	f := newServiceFixture(t, 3)
	ctx := context.Background()

	req := &repository.CakeRequest{ID: uuid.New(), TrackingCode: "CK-SCHEDULED1", Status: string(StatusScheduled)}
	f.store.add(req)

	for _, want := range []Status{StatusInProduction, StatusReadyForPickup, StatusCompleted} {
		updated, err := f.service.Advance(ctx, req.ID, "admin")
		require.NoError(t, err)
		assert.Equal(t, string(want), updated.Status)
	}
}

func TestAdvanceOutsideProduction(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()

	req := &repository.CakeRequest{ID: uuid.New(), Status: string(StatusQuoted)}
	f.store.add(req)

	_, err := f.service.Advance(ctx, req.ID, "admin")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, StatusQuoted, conflict.Current)
}

func TestTrack(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()

	price := 4500
	days := 3
	req := &repository.CakeRequest{
		ID:              uuid.New(),
		TrackingCode:    "CK-TRACK00001",
		Status:          string(StatusQuoted),
		QuotedPrice:     &price,
		PreparationDays: &days,
	}
	f.store.add(req)
	f.history.entries = []*repository.StatusHistoryEntry{
		{RequestID: req.ID, FromStatus: "", ToStatus: "draft", Actor: "customer", ChangedAt: time.Now()},
		{RequestID: req.ID, FromStatus: "draft", ToStatus: "pending_review", Actor: "customer", ChangedAt: time.Now()},
		{RequestID: req.ID, FromStatus: "pending_review", ToStatus: "quoted", Actor: "admin", ChangedAt: time.Now()},
	}

	view, err := f.service.Track(ctx, req.TrackingCode)
	require.NoError(t, err)

	assert.Equal(t, "quoted", view.CurrentStatus)
	assert.Equal(t, 4500, *view.QuotedPrice)
	assert.Len(t, view.History, 3)
	assert.True(t, view.CanUploadReceipt)
	assert.True(t, view.CanCancel)

	// The status always matches the latest history entry.
	assert.Equal(t, view.CurrentStatus, view.History[len(view.History)-1].ToStatus)
}

func TestTrackUnknownCode(t *testing.T) {
	f := newServiceFixture(t, 0)

	_, err := f.service.Track(context.Background(), "CK-MISSING000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSuggestQuoteCountsDecorations(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()

	req := &repository.CakeRequest{
		ID:          uuid.New(),
		Status:      string(StatusPendingReview),
		Layers:      2,
		Decorations: "flowers,pearls,ribbon",
	}
	f.store.add(req)

	breakdown, err := f.service.SuggestQuote(ctx, req.ID)
	require.NoError(t, err)

	// Three decorations: flat charge applies, increment does not.
	assert.Equal(t, 800, breakdown.DecorationsCost)
	assert.Equal(t, 1.0, breakdown.ComplexityMultiplier)
}
