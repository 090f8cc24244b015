// Package identity extracts the authenticated principal forwarded by the
// gateway. Authentication itself happens upstream; this middleware only
// trusts the already-verified headers.
package identity

import (
	"context"
	"net/http"
	"strconv"

	"github.com/clearmart/oms/order/internal/service/models/principal"
)

type contextKey struct{}

const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"
)

// NewIdentityMiddleware rejects requests without a forwarded principal and
// stores the principal in the request context.
func NewIdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.Header.Get(headerUserID), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "missing or invalid principal", http.StatusUnauthorized)

			return
		}

		role := principal.Role(r.Header.Get(headerUserRole))
		switch role {
		case principal.RoleCustomer, principal.RoleManager, principal.RoleAdmin:
		default:
			http.Error(w, "missing or invalid principal role", http.StatusUnauthorized)

			return
		}

		ctx := context.WithValue(r.Context(), contextKey{}, principal.Principal{ID: id, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the principal stored by the middleware.
func FromContext(ctx context.Context) (principal.Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(principal.Principal)

	return p, ok
}
