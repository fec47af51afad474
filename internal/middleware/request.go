package middleware

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type ctxKey int

const requestTimeKey ctxKey = iota

// RequestID tags every request with a uuid, reusing an incoming X-Request-Id.
// It replaces chi's middleware.RequestID, whose host-prefixed counter restarts
// with the process, so ids stay unique across restarts and replicas. The id
// is stored under chi's key so middleware.Logger and GetReqID still see it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(chimw.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(chimw.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), chimw.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestTime stamps the request with the time it arrived.
func RequestTime(now func() time.Time) func(http.Handler) http.Handler {
	if now == nil {
		now = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), requestTimeKey, now().UTC())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestedAt returns the stamp set by RequestTime.
func RequestedAt(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(requestTimeKey).(time.Time)
	return t, ok
}
