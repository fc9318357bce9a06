package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request an id, reusing an inbound X-Request-ID, and
// echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(RequestIDHeader, chimiddleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r)
	})
	return chimiddleware.RequestID(echo)
}

// GetRequestID returns the id assigned by RequestID
func GetRequestID(r *http.Request) string {
	return chimiddleware.GetReqID(r.Context())
}
