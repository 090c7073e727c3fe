package server

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// auditLogMiddleware records every admin API call: who did it, which request
// or receipt it touched, and what went over the wire.
func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := AuditLogEntry{
			Timestamp: time.Now().UTC(),
			Method:    r.Method,
			Path:      r.URL.Path,
		}

		if route := mux.CurrentRoute(r); route != nil {
			entry.Route = route.GetName()
		}
		if username, _, ok := r.BasicAuth(); ok {
			entry.Actor = username
		}

		vars := mux.Vars(r)
		entry.RequestID = vars["id"]
		entry.ReceiptID = vars["receipt_id"]

		if r.Body != nil {
			requestBody, _ := io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = string(requestBody)
		}

		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		entry.StatusCode = wrw.GetStatusCode()
		entry.Response = string(wrw.GetBody())

		s.AuditManager.LogEntry(r.Context(), entry)
	})
}
