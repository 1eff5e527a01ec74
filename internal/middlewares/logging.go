package middlewares

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestIDKey struct{}

type requestLogKey struct{}

// requestLog collects facts learned further down the chain for the response line.
type requestLog struct {
	userID int64
	authed bool
}

// RequestIDFromContext returns the ID LoggingMiddleware assigned to the request.
func RequestIDFromContext(ctx context.Context) string {
	reqID, _ := ctx.Value(requestIDKey{}).(string)
	return reqID
}

// noteUser records the authenticated user for the response log line.
func noteUser(ctx context.Context, userID int64) {
	if rl, ok := ctx.Value(requestLogKey{}).(*requestLog); ok {
		rl.userID = userID
		rl.authed = true
	}
}

// LoggingMiddleware logs each request and its response with a fresh X-Request-ID.
// The response line carries the matched route and, behind AuthMiddleware, the user ID.
func LoggingMiddleware(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := uuid.New().String()
			start := time.Now()

			rl := &requestLog{}
			ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
			ctx = context.WithValue(ctx, requestLogKey{}, rl)
			r = r.WithContext(ctx)
			w.Header().Set("X-Request-ID", reqID)

			log.Infow("request",
				"request_id", reqID,
				"method", r.Method,
				"uri", r.RequestURI,
			)

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			fields := []any{
				"request_id", reqID,
				"route", routePattern(r),
				"status", rw.statusCode,
				"response_size", strconv.Itoa(rw.size) + "B",
				"duration", time.Since(start),
			}
			if rl.authed {
				fields = append(fields, "user_id", rl.userID)
			}
			log.Infow("response", fields...)
		})
	}
}

// routePattern returns the chi pattern that served r, or "unmatched".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}
