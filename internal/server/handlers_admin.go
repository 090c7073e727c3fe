package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const defaultListLimit = 50

func requestIDFromPath(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	return id, err == nil
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	requests, err := s.orders.List(r.Context(), status, limit)
	if err != nil {
		s.respondAdminError(w, "list_requests", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIDFromPath(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	req, err := s.orders.GetByID(r.Context(), id)
	if err != nil {
		s.respondAdminError(w, "get_request", err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

func (s *Server) handleQuoteSuggestion(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIDFromPath(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	breakdown, err := s.orders.SuggestQuote(r.Context(), id)
	if err != nil {
		s.respondAdminError(w, "quote_suggestion", err)
		return
	}
	respondJSON(w, http.StatusOK, breakdown)
}

type createQuoteBody struct {
	QuotedPrice     int    `json:"quoted_price"`
	PreparationDays int    `json:"preparation_days"`
	Notes           string `json:"notes"`
}

func (s *Server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIDFromPath(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var body createQuoteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := s.orders.Quote(r.Context(), id, body.QuotedPrice, body.PreparationDays, body.Notes, actorFromContext(r.Context()))
	if err != nil {
		s.respondAdminError(w, "create_quote", err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

type notesBody struct {
	Notes string `json:"notes"`
}

func (s *Server) handleRejectRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIDFromPath(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var body notesBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := s.orders.Reject(r.Context(), id, body.Notes, actorFromContext(r.Context()))
	if err != nil {
		s.respondAdminError(w, "reject_request", err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

func (s *Server) handleRequestRevision(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIDFromPath(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var body notesBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := s.orders.RequestRevision(r.Context(), id, body.Notes, actorFromContext(r.Context()))
	if err != nil {
		s.respondAdminError(w, "request_revision", err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

func (s *Server) handleAdminCancel(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIDFromPath(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var body notesBody
	_ = json.NewDecoder(r.Body).Decode(&body)

	req, err := s.orders.Cancel(r.Context(), id, actorFromContext(r.Context()), body.Notes)
	if err != nil {
		s.respondAdminError(w, "admin_cancel", err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

type schedulePickupBody struct {
	PickupDate string `json:"pickup_date"`
	PickupTime string `json:"pickup_time"`
	BakerID    string `json:"baker_id"`
	BakerNotes string `json:"baker_notes"`
}

func (b schedulePickupBody) pickupAt() (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", b.PickupDate+" "+b.PickupTime, time.UTC)
}

func (s *Server) handleSchedulePickup(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIDFromPath(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var body schedulePickupBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pickupAt, err := body.pickupAt()
	if err != nil {
		respondError(w, http.StatusBadRequest, "pickup_date must be YYYY-MM-DD and pickup_time HH:MM")
		return
	}

	result, err := s.scheduler.Schedule(r.Context(), id, pickupAt, body.BakerID, body.BakerNotes, actorFromContext(r.Context()))
	if err != nil {
		s.respondAdminError(w, "schedule_pickup", err)
		return
	}

	response := map[string]interface{}{"request": result.Request}
	if result.CapacityWarning != "" {
		response["capacity_warning"] = result.CapacityWarning
	}
	respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleAdvanceRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIDFromPath(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	req, err := s.orders.Advance(r.Context(), id, actorFromContext(r.Context()))
	if err != nil {
		s.respondAdminError(w, "advance_request", err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

type verifyReceiptBody struct {
	Approved bool   `json:"approved"`
	Notes    string `json:"notes"`
}

func (s *Server) handleVerifyReceipt(w http.ResponseWriter, r *http.Request) {
	receiptID, err := uuid.Parse(mux.Vars(r)["receipt_id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid receipt id")
		return
	}

	var body verifyReceiptBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.receipts.Verify(r.Context(), receiptID, body.Approved, body.Notes, actorFromContext(r.Context()))
	if err != nil {
		s.respondAdminError(w, "verify_receipt", err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}
