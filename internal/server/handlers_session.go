package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type createSessionRequest struct {
	KioskID string `json:"kiosk_id"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.sessions.Create(r.Context(), body.KioskID)
	if err != nil {
		s.respondCustomerError(w, "create_session", err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleValidateSession(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	sess, err := s.sessions.Validate(r.Context(), token)
	if err != nil {
		s.respondCustomerError(w, "validate_session", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     sess.Status,
		"kiosk_id":   sess.KioskID,
		"expires_at": sess.ExpiresAt,
	})
}

func (s *Server) handlePollSession(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	result, err := s.sessions.Poll(r.Context(), token)
	if err != nil {
		s.respondCustomerError(w, "poll_session", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var payload json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.sessions.Complete(r.Context(), token, payload); err != nil {
		s.respondCustomerError(w, "complete_session", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	if err := s.sessions.Cancel(r.Context(), token); err != nil {
		s.respondCustomerError(w, "cancel_session", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
