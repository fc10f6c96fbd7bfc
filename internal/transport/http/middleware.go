package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/comida-compartida/donation-service/internal/domain"
	"github.com/google/uuid"
)

type contextKey string

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = contextKey("requestID")

	userIDHeader   = "X-User-Id"
	userRoleHeader = "X-User-Role"
	actorKey       = contextKey("actor")
)

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey).(string); ok {
		return reqID
	}

	return ""
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := getRequestID(r.Context())

		log := s.log.With(
			slog.String("request_id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("user_agent", r.UserAgent()),
		)
		log.Info("request started")

		t1 := time.Now()

		next.ServeHTTP(w, r)

		log.Info("request completed",
			slog.String("duration", time.Since(t1).String()),
		)
	})
}

// actorIdentity lifts the already-authenticated identity from trusted headers
// into the request context. Authentication itself happens upstream; the core
// only consumes the resulting identity and never reads ambient state.
func (s *Server) actorIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userIDHeader)
		role, err := domain.ParseRole(r.Header.Get(userRoleHeader))

		if userID == "" || err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), actorKey, domain.Actor{ID: userID, Role: role})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireActor fetches the actor from the context and writes a 401 when the
// request carried no usable identity.
func (s *Server) requireActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := r.Context().Value(actorKey).(domain.Actor)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "missing or invalid actor identity")
		return domain.Actor{}, false
	}

	return actor, true
}
