package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"dolegal-backend/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID keeps an incoming X-Request-ID or assigns a new one, echoes it on
// the response and stores it in the request context for logging.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			r.Header.Set(RequestIDHeader, requestID)
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), logger.ContextKeyRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
