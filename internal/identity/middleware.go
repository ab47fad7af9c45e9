package identity

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"enigma/internal/puzzle/models"
	"enigma/pkg/platform/httputil"
)

// HeaderUUID carries the access UUID when it is not in the query string.
const HeaderUUID = "X-Enigma-UUID"

type contextKeyIdentity struct{}

// WithIdentity stores a resolved identity.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKeyIdentity{}, id)
}

// FromContext returns the identity stored by RequireRole.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(contextKeyIdentity{}).(*Identity)
	return id, ok && id != nil
}

// UUIDFromRequest reads the uuid query parameter, then the header.
func UUIDFromRequest(r *http.Request) string {
	if v := strings.TrimSpace(r.URL.Query().Get("uuid")); v != "" {
		return v
	}
	return strings.TrimSpace(r.Header.Get(HeaderUUID))
}

// RequireRole resolves the caller and rejects it unless it holds one of
// roles. The identity is stored in the request context for handlers.
func RequireRole(resolver *Resolver, logger *slog.Logger, roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id, err := resolver.Require(ctx, UUIDFromRequest(r), roles...)
			if err != nil {
				if logger != nil {
					logger.InfoContext(ctx, "access rejected",
						"path", r.URL.Path,
						"error", err,
					)
				}
				httputil.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, id)))
		})
	}
}
