package middleware

import (
	"net/http"

	"github.com/fhuszti/tourism-ms-go/internal/api_context"
	"github.com/fhuszti/tourism-ms-go/internal/handler/api"
	"github.com/fhuszti/tourism-ms-go/internal/logger"
)

const (
	RoleAdmin  = "admin"
	RoleTenant = "tenant"
)

// RequireAnyRole lets the request through only when WithAuth stored one of
// roles for the caller.
func RequireAnyRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := api_context.AuthUserIDFromContext(r.Context()); !ok {
				api.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
			if !api_context.HasAnyRole(r.Context(), roles...) {
				logger.Warnf(r.Context(), "❌  Caller lacks any of roles %v for %s %s", roles, r.Method, r.URL.Path)
				api.WriteError(w, http.StatusForbidden, "forbidden", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
