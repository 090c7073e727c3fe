package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/buttercrumb/cakeflow/internal/order"
	"github.com/buttercrumb/cakeflow/internal/repository"
	"github.com/buttercrumb/cakeflow/internal/session"
)

type createRequestBody struct {
	SessionToken  string `json:"session_token"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
}

type requestSummary struct {
	TrackingCode string `json:"tracking_code"`
	Status       string `json:"status"`
}

func summarize(req *repository.CakeRequest) requestSummary {
	return requestSummary{
		TrackingCode: req.TrackingCode,
		Status:       req.Status,
	}
}

// handleCreateRequest converts a completed design session into a draft cake
// request. The design payload comes from the session, never from the body.
func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var body createRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.SessionToken == "" {
		respondError(w, http.StatusBadRequest, "session_token is required")
		return
	}

	poll, err := s.sessions.Poll(r.Context(), body.SessionToken)
	if err != nil {
		s.respondCustomerError(w, "create_request", err)
		return
	}
	if poll.Status != session.StatusCompleted {
		respondError(w, http.StatusConflict, "design session is not completed")
		return
	}

	req, err := s.orders.CreateDraft(r.Context(), poll.Design, order.Contact{
		Name:  body.CustomerName,
		Phone: body.CustomerPhone,
		Email: body.CustomerEmail,
	})
	if err != nil {
		s.respondCustomerError(w, "create_request", err)
		return
	}
	respondJSON(w, http.StatusCreated, summarize(req))
}

func (s *Server) handleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	req, err := s.orders.Submit(r.Context(), code)
	if err != nil {
		s.respondCustomerError(w, "submit_request", err)
		return
	}
	respondJSON(w, http.StatusOK, summarize(req))
}

type cancelRequestBody struct {
	Reason string `json:"reason"`
}

func (s *Server) handleCancelRequest(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var body cancelRequestBody
	// Body is optional for a customer cancellation.
	_ = json.NewDecoder(r.Body).Decode(&body)

	req, err := s.orders.CancelByTrackingCode(r.Context(), code, body.Reason)
	if err != nil {
		s.respondCustomerError(w, "cancel_request", err)
		return
	}
	respondJSON(w, http.StatusOK, summarize(req))
}

type uploadReceiptBody struct {
	AmountCents int    `json:"amount_cents"`
	Method      string `json:"method"`
	Reference   string `json:"reference"`
	ImageRef    string `json:"image_ref"`
}

func (s *Server) handleUploadReceipt(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var body uploadReceiptBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.receipts.Upload(r.Context(), code, body.AmountCents, body.Method, body.Reference, body.ImageRef)
	if err != nil {
		s.respondCustomerError(w, "upload_receipt", err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleTrackRequest(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	view, err := s.orders.Track(r.Context(), code)
	if err != nil {
		s.respondCustomerError(w, "track_request", err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
