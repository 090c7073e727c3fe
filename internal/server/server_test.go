package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/buttercrumb/cakeflow/internal/order"
	"github.com/buttercrumb/cakeflow/internal/receipt"
	"github.com/buttercrumb/cakeflow/internal/repository"
	"github.com/buttercrumb/cakeflow/internal/schedule"
	mock_server "github.com/buttercrumb/cakeflow/internal/server/mocks"
	"github.com/buttercrumb/cakeflow/internal/session"
)

type testMocks struct {
	sessions  *mock_server.MockSessionBroker
	orders    *mock_server.MockOrderService
	receipts  *mock_server.MockReceiptLedger
	scheduler *mock_server.MockPickupScheduler
	users     *mock_server.MockUserRepo
}

func newTestServer(t *testing.T) (*Server, *testMocks, http.Handler) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &testMocks{
		sessions:  mock_server.NewMockSessionBroker(ctrl),
		orders:    mock_server.NewMockOrderService(ctrl),
		receipts:  mock_server.NewMockReceiptLedger(ctrl),
		scheduler: mock_server.NewMockPickupScheduler(ctrl),
		users:     mock_server.NewMockUserRepo(ctrl),
	}
	srv := New(m.sessions, m.orders, m.receipts, m.scheduler, m.users, zap.NewNop())
	return srv, m, srv.setupRoutes()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}, auth bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader([]byte("{}"))
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.SetBasicAuth("admin", "secret")
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func expectAdmin(m *testMocks) {
	m.users.EXPECT().
		ValidateUser(gomock.Any(), "admin", "secret").
		Return("admin", nil)
}

func TestHandleCreateSession(t *testing.T) {
	_, m, handler := newTestServer(t)

	tests := []struct {
		name           string
		body           map[string]interface{}
		setupMocks     func()
		expectedStatus int
	}{
		{
			name: "successful creation",
			body: map[string]interface{}{"kiosk_id": "kiosk-1"},
			setupMocks: func() {
				m.sessions.EXPECT().
					Create(gomock.Any(), "kiosk-1").
					Return(&session.Created{Token: "tok123", EditorURL: "https://e/x?token=tok123", ExpiresInSeconds: 900}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing kiosk id",
			body: map[string]interface{}{},
			setupMocks: func() {
				m.sessions.EXPECT().
					Create(gomock.Any(), "").
					Return(nil, session.ErrInvalidKiosk)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()
			rr := doJSON(t, handler, http.MethodPost, "/sessions", tc.body, false)
			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestHandleCompleteSessionErrors(t *testing.T) {
	_, m, handler := newTestServer(t)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"already completed", session.ErrConflict, http.StatusConflict},
		{"expired", session.ErrExpired, http.StatusGone},
		{"unknown token", session.ErrNotFound, http.StatusNotFound},
		{"bad payload", session.ErrInvalidPayload, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m.sessions.EXPECT().
				Complete(gomock.Any(), "tok123", gomock.Any()).
				Return(tc.err)

			rr := doJSON(t, handler, http.MethodPost, "/sessions/tok123/complete",
				map[string]interface{}{"layers": 2}, false)
			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestHandleCreateRequest(t *testing.T) {
	_, m, handler := newTestServer(t)

	design := json.RawMessage(`{"layers":2,"flavors":["vanilla"]}`)

	t.Run("successful creation from completed session", func(t *testing.T) {
		m.sessions.EXPECT().
			Poll(gomock.Any(), "tok123").
			Return(&session.PollResult{Status: session.StatusCompleted, Design: design}, nil)
		m.orders.EXPECT().
			CreateDraft(gomock.Any(), design, order.Contact{Name: "Dana", Phone: "555-1234"}).
			Return(&repository.CakeRequest{TrackingCode: "CK-ABCDEF1234", Status: "draft"}, nil)

		rr := doJSON(t, handler, http.MethodPost, "/requests", map[string]interface{}{
			"session_token":  "tok123",
			"customer_name":  "Dana",
			"customer_phone": "555-1234",
		}, false)

		require.Equal(t, http.StatusCreated, rr.Code)
		var resp requestSummary
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "CK-ABCDEF1234", resp.TrackingCode)
		assert.Equal(t, "draft", resp.Status)
	})

	t.Run("session not completed yet", func(t *testing.T) {
		m.sessions.EXPECT().
			Poll(gomock.Any(), "tok123").
			Return(&session.PollResult{Status: "pending"}, nil)

		rr := doJSON(t, handler, http.MethodPost, "/requests", map[string]interface{}{
			"session_token": "tok123",
			"customer_name": "Dana",
		}, false)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("missing session token", func(t *testing.T) {
		rr := doJSON(t, handler, http.MethodPost, "/requests", map[string]interface{}{
			"customer_name": "Dana",
		}, false)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleTrackRequest(t *testing.T) {
	_, m, handler := newTestServer(t)

	t.Run("found", func(t *testing.T) {
		m.orders.EXPECT().
			Track(gomock.Any(), "CK-ABCDEF1234").
			Return(&order.TrackingView{TrackingCode: "CK-ABCDEF1234", CurrentStatus: "quoted", CanUploadReceipt: true, CanCancel: true}, nil)

		req := httptest.NewRequest(http.MethodGet, "/track/CK-ABCDEF1234", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var view order.TrackingView
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
		assert.True(t, view.CanUploadReceipt)
	})

	t.Run("not found", func(t *testing.T) {
		m.orders.EXPECT().
			Track(gomock.Any(), "CK-MISSING000").
			Return(nil, order.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/track/CK-MISSING000", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHandleCancelRequestConflict(t *testing.T) {
	_, m, handler := newTestServer(t)

	m.orders.EXPECT().
		CancelByTrackingCode(gomock.Any(), "CK-LOCKED0001", "").
		Return(nil, &order.ConflictError{Current: order.StatusInProduction, Attempted: order.StatusCancelled})

	rr := doJSON(t, handler, http.MethodPost, "/requests/CK-LOCKED0001/cancel", nil, false)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAdminAuth(t *testing.T) {
	_, m, handler := newTestServer(t)

	t.Run("missing credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/requests", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		m.users.EXPECT().
			ValidateUser(gomock.Any(), "admin", "wrong").
			Return("", repository.ErrObjectNotFound)

		req := httptest.NewRequest(http.MethodGet, "/admin/requests", nil)
		req.SetBasicAuth("admin", "wrong")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("non-admin role", func(t *testing.T) {
		m.users.EXPECT().
			ValidateUser(gomock.Any(), "admin", "secret").
			Return("staff", nil)

		req := httptest.NewRequest(http.MethodGet, "/admin/requests", nil)
		req.SetBasicAuth("admin", "secret")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestHandleCreateQuote(t *testing.T) {
	_, m, handler := newTestServer(t)
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		expectAdmin(m)
		m.orders.EXPECT().
			Quote(gomock.Any(), id, 4500, 3, "buttercream only", "admin").
			Return(&repository.CakeRequest{ID: id, Status: "quoted"}, nil)

		rr := doJSON(t, handler, http.MethodPost, "/admin/requests/"+id.String()+"/quote", map[string]interface{}{
			"quoted_price":     4500,
			"preparation_days": 3,
			"notes":            "buttercream only",
		}, true)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("invalid price", func(t *testing.T) {
		expectAdmin(m)
		m.orders.EXPECT().
			Quote(gomock.Any(), id, 0, 3, "", "admin").
			Return(nil, &order.ValidationError{Field: "quoted_price", Reason: "must be positive"})

		rr := doJSON(t, handler, http.MethodPost, "/admin/requests/"+id.String()+"/quote", map[string]interface{}{
			"quoted_price":     0,
			"preparation_days": 3,
		}, true)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("wrong state", func(t *testing.T) {
		expectAdmin(m)
		m.orders.EXPECT().
			Quote(gomock.Any(), id, 4500, 3, "", "admin").
			Return(nil, &order.ConflictError{Current: order.StatusDraft, Attempted: order.StatusQuoted})

		rr := doJSON(t, handler, http.MethodPost, "/admin/requests/"+id.String()+"/quote", map[string]interface{}{
			"quoted_price":     4500,
			"preparation_days": 3,
		}, true)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), string(order.StatusDraft))
	})

	t.Run("malformed id", func(t *testing.T) {
		expectAdmin(m)
		rr := doJSON(t, handler, http.MethodPost, "/admin/requests/not-a-uuid/quote", map[string]interface{}{
			"quoted_price": 4500,
		}, true)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleSchedulePickup(t *testing.T) {
	_, m, handler := newTestServer(t)
	id := uuid.New()
	pickup := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	t.Run("success with capacity warning", func(t *testing.T) {
		expectAdmin(m)
		m.scheduler.EXPECT().
			Schedule(gomock.Any(), id, pickup, "baker-7", "", "admin").
			Return(&schedule.Result{
				Request:         &repository.CakeRequest{ID: id, Status: "scheduled"},
				CapacityWarning: "6 pickups already scheduled on 2025-06-10 (max 6)",
			}, nil)

		rr := doJSON(t, handler, http.MethodPost, "/admin/requests/"+id.String()+"/schedule", map[string]interface{}{
			"pickup_date": "2025-06-10",
			"pickup_time": "14:00",
			"baker_id":    "baker-7",
		}, true)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Contains(t, resp["capacity_warning"], "6 pickups")
	})

	t.Run("lead time violation", func(t *testing.T) {
		expectAdmin(m)
		m.scheduler.EXPECT().
			Schedule(gomock.Any(), id, pickup, "", "", "admin").
			Return(nil, order.ErrLeadTimeViolation)

		rr := doJSON(t, handler, http.MethodPost, "/admin/requests/"+id.String()+"/schedule", map[string]interface{}{
			"pickup_date": "2025-06-10",
			"pickup_time": "14:00",
		}, true)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("malformed date", func(t *testing.T) {
		expectAdmin(m)
		rr := doJSON(t, handler, http.MethodPost, "/admin/requests/"+id.String()+"/schedule", map[string]interface{}{
			"pickup_date": "June 10",
			"pickup_time": "2pm",
		}, true)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleVerifyReceipt(t *testing.T) {
	_, m, handler := newTestServer(t)
	receiptID := uuid.New()

	t.Run("approve", func(t *testing.T) {
		expectAdmin(m)
		m.receipts.EXPECT().
			Verify(gomock.Any(), receiptID, true, "", "admin").
			Return(&repository.PaymentReceipt{ID: receiptID, VerificationStatus: "approved", IsPrimary: true}, nil)

		rr := doJSON(t, handler, http.MethodPost, "/admin/receipts/"+receiptID.String()+"/verify", map[string]interface{}{
			"approved": true,
		}, true)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("already verified", func(t *testing.T) {
		expectAdmin(m)
		m.receipts.EXPECT().
			Verify(gomock.Any(), receiptID, true, "", "admin").
			Return(nil, receipt.ErrAlreadyVerified)

		rr := doJSON(t, handler, http.MethodPost, "/admin/receipts/"+receiptID.String()+"/verify", map[string]interface{}{
			"approved": true,
		}, true)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestHandleListRequests(t *testing.T) {
	_, m, handler := newTestServer(t)

	expectAdmin(m)
	m.orders.EXPECT().
		List(gomock.Any(), "pending_review", 50).
		Return([]*repository.CakeRequest{
			{ID: uuid.New(), Status: "pending_review"},
			{ID: uuid.New(), Status: "pending_review"},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/requests?status=pending_review", nil)
	req.SetBasicAuth("admin", "secret")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string][]*repository.CakeRequest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp["requests"], 2)
}
