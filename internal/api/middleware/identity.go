package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/mnemosyne-app/retain-api/internal/api/shared"
	"github.com/mnemosyne-app/retain-api/internal/platform/logger"
)

// UserIDHeader carries the authenticated user's ID, installed by the
// host application's auth layer in front of this service. Session
// issuance and credential checking are that layer's concern, not ours.
const UserIDHeader = "X-User-ID"

// IdentityMiddleware extracts the user ID header, parses it as a UUID
// and stores it in the request context. Requests without a valid user
// ID are rejected before reaching any handler.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			log.Warn("missing user ID header", slog.String("path", r.URL.Path))
			shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID is required")
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			log.Warn("invalid user ID header",
				slog.String("path", r.URL.Path),
				slog.String("user_id", raw))
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid user ID")
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
