package receipt

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/buttercrumb/cakeflow/internal/db"
	mock_database "github.com/buttercrumb/cakeflow/internal/db/mocks"
	"github.com/buttercrumb/cakeflow/internal/order"
	"github.com/buttercrumb/cakeflow/internal/repository"
)

type fakeRequests struct {
	byCode map[string]*repository.CakeRequest
}

func (f *fakeRequests) GetByTrackingCode(_ context.Context, code string) (*repository.CakeRequest, error) {
	req, ok := f.byCode[code]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	reqCopy := *req
	return &reqCopy, nil
}

type fakeReceipts struct {
	created  []*repository.PaymentReceipt
	byID     map[uuid.UUID]*repository.PaymentReceipt
	verified []string
}

func (f *fakeReceipts) CreateTx(_ context.Context, _ db.Tx, rec *repository.PaymentReceipt) error {
	recCopy := *rec
	f.created = append(f.created, &recCopy)
	return nil
}

func (f *fakeReceipts) GetByID(_ context.Context, id uuid.UUID) (*repository.PaymentReceipt, error) {
	rec, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	recCopy := *rec
	return &recCopy, nil
}

func (f *fakeReceipts) UpdateVerificationTx(_ context.Context, _ db.Tx, id uuid.UUID, status string, _ bool, _ *string, _ time.Time) error {
	f.verified = append(f.verified, status)
	return nil
}

// fakeMachine validates the edge like the real state machine and applies the
// side effects with a nil transaction.
type fakeMachine struct {
	req     *repository.CakeRequest
	targets []order.Status
}

func (f *fakeMachine) Transition(ctx context.Context, _ uuid.UUID, to order.Status, _, _ string, effects ...order.SideEffect) (*repository.CakeRequest, error) {
	from := order.Status(f.req.Status)
	if !order.CanTransition(from, to) {
		return nil, &order.ConflictError{Current: from, Attempted: to}
	}
	for _, effect := range effects {
		if err := effect(ctx, nil, f.req); err != nil {
			return nil, err
		}
	}
	f.req.Status = string(to)
	f.targets = append(f.targets, to)
	reqCopy := *f.req
	return &reqCopy, nil
}

func newQuotedRequest() *repository.CakeRequest {
	return &repository.CakeRequest{
		ID:           uuid.New(),
		TrackingCode: "CK-QUOTED001",
		Status:       string(order.StatusQuoted),
	}
}

func TestUploadOnQuotedRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := mock_database.NewMockDB(ctrl)

	req := newQuotedRequest()
	requests := &fakeRequests{byCode: map[string]*repository.CakeRequest{req.TrackingCode: req}}
	receipts := &fakeReceipts{}
	machine := &fakeMachine{req: req}
	ledger := NewLedger(mockDB, machine, requests, receipts, zap.NewNop())

	rec, err := ledger.Upload(context.Background(), req.TrackingCode, 4500, "bank_transfer", "TXN-123", "receipts/img1.jpg")
	require.NoError(t, err)

	assert.Equal(t, req.ID, rec.RequestID)
	assert.Equal(t, 4500, rec.Amount)
	assert.Equal(t, VerificationPending, rec.VerificationStatus)

	// The insert and the status change ride the same transition.
	require.Len(t, receipts.created, 1)
	assert.Equal(t, []order.Status{order.StatusPaymentPending}, machine.targets)
	assert.Equal(t, string(order.StatusPaymentPending), req.Status)
}

func TestUploadReuploadWhilePending(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTx := mock_database.NewMockTx(ctrl)
	mockTx.EXPECT().Commit(gomock.Any()).Return(nil)
	mockDB := mock_database.NewMockDB(ctrl)
	mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)

	req := newQuotedRequest()
	req.Status = string(order.StatusPaymentPending)
	requests := &fakeRequests{byCode: map[string]*repository.CakeRequest{req.TrackingCode: req}}
	receipts := &fakeReceipts{}
	machine := &fakeMachine{req: req}
	ledger := NewLedger(mockDB, machine, requests, receipts, zap.NewNop())

	_, err := ledger.Upload(context.Background(), req.TrackingCode, 4500, "cash", "", "")
	require.NoError(t, err)

	// No status change on a re-upload.
	require.Len(t, receipts.created, 1)
	assert.Empty(t, machine.targets)
	assert.Equal(t, string(order.StatusPaymentPending), req.Status)
}

func TestUploadValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := mock_database.NewMockDB(ctrl)

	req := newQuotedRequest()
	requests := &fakeRequests{byCode: map[string]*repository.CakeRequest{req.TrackingCode: req}}
	ledger := NewLedger(mockDB, &fakeMachine{req: req}, requests, &fakeReceipts{}, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name      string
		amount    int
		method    string
		reference string
		field     string
	}{
		{"zero amount", 0, "cash", "", "amount"},
		{"negative amount", -100, "cash", "", "amount"},
		{"missing method", 4500, "", "", "method"},
		{"non-cash without reference", 4500, "bank_transfer", "", "reference"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.Upload(ctx, req.TrackingCode, tc.amount, tc.method, tc.reference, "")
			var validationErr *order.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestUploadWrongStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := mock_database.NewMockDB(ctrl)

	req := newQuotedRequest()
	req.Status = string(order.StatusDraft)
	requests := &fakeRequests{byCode: map[string]*repository.CakeRequest{req.TrackingCode: req}}
	ledger := NewLedger(mockDB, &fakeMachine{req: req}, requests, &fakeReceipts{}, zap.NewNop())

	_, err := ledger.Upload(context.Background(), req.TrackingCode, 4500, "cash", "", "")
	var conflict *order.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, order.StatusDraft, conflict.Current)
}

func TestUploadUnknownTrackingCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := mock_database.NewMockDB(ctrl)

	ledger := NewLedger(mockDB, &fakeMachine{}, &fakeRequests{byCode: map[string]*repository.CakeRequest{}}, &fakeReceipts{}, zap.NewNop())

	_, err := ledger.Upload(context.Background(), "CK-MISSING", 4500, "cash", "", "")
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestVerifyApprove(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := mock_database.NewMockDB(ctrl)

	req := newQuotedRequest()
	req.Status = string(order.StatusPaymentPending)
	rec := &repository.PaymentReceipt{
		ID:                 uuid.New(),
		RequestID:          req.ID,
		Amount:             4500,
		VerificationStatus: VerificationPending,
	}
	receipts := &fakeReceipts{byID: map[uuid.UUID]*repository.PaymentReceipt{rec.ID: rec}}
	machine := &fakeMachine{req: req}
	ledger := NewLedger(mockDB, machine, &fakeRequests{}, receipts, zap.NewNop())

	updated, err := ledger.Verify(context.Background(), rec.ID, true, "matches the quote", "admin")
	require.NoError(t, err)

	assert.Equal(t, VerificationApproved, updated.VerificationStatus)
	assert.True(t, updated.IsPrimary)
	require.NotNil(t, updated.VerifiedAt)
	assert.Equal(t, []order.Status{order.StatusPaymentVerified}, machine.targets)
	assert.Equal(t, []string{VerificationApproved}, receipts.verified)
}

func TestVerifyRejectReturnsToQuoted(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := mock_database.NewMockDB(ctrl)

	req := newQuotedRequest()
	req.Status = string(order.StatusPaymentPending)
	rec := &repository.PaymentReceipt{
		ID:                 uuid.New(),
		RequestID:          req.ID,
		VerificationStatus: VerificationPending,
	}
	receipts := &fakeReceipts{byID: map[uuid.UUID]*repository.PaymentReceipt{rec.ID: rec}}
	machine := &fakeMachine{req: req}
	ledger := NewLedger(mockDB, machine, &fakeRequests{}, receipts, zap.NewNop())

	updated, err := ledger.Verify(context.Background(), rec.ID, false, "amount does not match", "admin")
	require.NoError(t, err)

	assert.Equal(t, VerificationRejected, updated.VerificationStatus)
	assert.False(t, updated.IsPrimary)
	// The request goes back to quoted so the customer can re-upload.
	assert.Equal(t, []order.Status{order.StatusQuoted}, machine.targets)
	assert.Equal(t, string(order.StatusQuoted), req.Status)
}

func TestVerifyRejectRequiresNotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := mock_database.NewMockDB(ctrl)

	rec := &repository.PaymentReceipt{ID: uuid.New(), VerificationStatus: VerificationPending}
	receipts := &fakeReceipts{byID: map[uuid.UUID]*repository.PaymentReceipt{rec.ID: rec}}
	ledger := NewLedger(mockDB, &fakeMachine{}, &fakeRequests{}, receipts, zap.NewNop())

	_, err := ledger.Verify(context.Background(), rec.ID, false, "  ", "admin")
	var validationErr *order.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "notes", validationErr.Field)
}

func TestVerifyTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := mock_database.NewMockDB(ctrl)

	rec := &repository.PaymentReceipt{ID: uuid.New(), VerificationStatus: VerificationApproved}
	receipts := &fakeReceipts{byID: map[uuid.UUID]*repository.PaymentReceipt{rec.ID: rec}}
	ledger := NewLedger(mockDB, &fakeMachine{}, &fakeRequests{}, receipts, zap.NewNop())

	_, err := ledger.Verify(context.Background(), rec.ID, true, "", "admin")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestVerifyUnknownReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := mock_database.NewMockDB(ctrl)

	receipts := &fakeReceipts{byID: map[uuid.UUID]*repository.PaymentReceipt{}}
	ledger := NewLedger(mockDB, &fakeMachine{}, &fakeRequests{}, receipts, zap.NewNop())

	_, err := ledger.Verify(context.Background(), uuid.New(), true, "", "admin")
	assert.ErrorIs(t, err, order.ErrNotFound)
}
