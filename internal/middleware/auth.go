package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"mediashelf-api/internal/identity"
	"mediashelf-api/pkg/logging"
)

type userCtxKey int

const userKey userCtxKey = iota

// UserFromContext returns the verified user, or nil on unauthenticated
// requests (only reachable behind RequireUser, so nil means a bug).
func UserFromContext(ctx context.Context) *identity.User {
	user, _ := ctx.Value(userKey).(*identity.User)
	return user
}

// RequireUser verifies the bearer token against the identity service and
// stores the resulting user in the request context. The cached catalog
// endpoints never sit behind this; only user-data mutations do.
func RequireUser(verifier identity.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := logging.L(ctx)

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				unauthorized(w)
				return
			}
			token := strings.TrimPrefix(authz, "Bearer ")

			user, err := verifier.Verify(ctx, token)
			if err != nil {
				if !errors.Is(err, identity.ErrUnauthorized) {
					logger.Warn("auth verification error", zap.Error(err))
				}
				unauthorized(w)
				return
			}

			ctx = context.WithValue(ctx, userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"not_authenticated"}`))
}
