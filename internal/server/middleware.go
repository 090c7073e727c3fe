package server

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

type contextKey string

const actorContextKey contextKey = "actor"

// basicAuthMiddleware gates the admin surface. Credentials are checked
// against the users table; only the admin role gets through.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="cakeflow admin"`)
			respondError(w, http.StatusUnauthorized, "authorization required")
			return
		}

		role, err := s.users.ValidateUser(r.Context(), username, password)
		if err != nil {
			s.logger.Warn("Authentication failed", zap.String("username", username))
			w.Header().Set("WWW-Authenticate", `Basic realm="cakeflow admin"`)
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if role != "admin" {
			respondError(w, http.StatusForbidden, "admin role required")
			return
		}

		ctx := context.WithValue(r.Context(), actorContextKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func actorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorContextKey).(string); ok {
		return actor
	}
	return "admin"
}
