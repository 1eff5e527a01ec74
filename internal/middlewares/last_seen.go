package middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
)

//go:generate mockgen -source=last_seen.go -destination=last_seen_mock.go -package=middlewares

// LastSeenToucher records user activity.
type LastSeenToucher interface {
	TouchLastSeen(ctx context.Context, userID int64) error
}

// LastSeenMiddleware stamps the authenticated user's last_seen on every request.
// Must run after AuthMiddleware. A failed update is logged and the request proceeds.
func LastSeenMiddleware(toucher LastSeenToucher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := UserIDFromContext(r.Context()); ok {
				if err := toucher.TouchLastSeen(r.Context(), userID); err != nil {
					logger.Log.Warnw("failed to touch last seen", "userID", userID, "err", err)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
