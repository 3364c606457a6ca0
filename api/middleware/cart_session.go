package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/chexseeds/chexseeds-backend/pkg/logger"
)

const cartSessionHeader = "X-Cart-Session"

type cartSessionKey struct{}

// CartSession resolves the caller's cart session id, minting a fresh one when
// the header is absent or malformed. The id is echoed back so browsers can
// persist it.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(cartSessionHeader)
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}

			w.Header().Set(cartSessionHeader, sessionID)

			ctx := context.WithValue(r.Context(), cartSessionKey{}, sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartSessionFromContext returns the session id set by CartSession.
func CartSessionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(cartSessionKey{}).(string); ok {
		return v
	}
	return ""
}
