// AngelaMos | 2026
// middleware.go

package authz

import (
	"log/slog"
	"net/http"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/middleware"
)

// Authorizer evaluates the policy for an authenticated staff request.
// Routes the policy does not cover are denied.
type Authorizer struct {
	policy *Policy
	roles  RoleTable
}

func New(policy *Policy, roles RoleTable) *Authorizer {
	return &Authorizer{policy: policy, roles: roles}
}

func (a *Authorizer) Allowed(role, method, path string) bool {
	capability, ok := a.policy.Match(method, path)
	if !ok {
		return false
	}
	return a.roles.Can(role, capability)
}

func (a *Authorizer) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := middleware.GetUserRole(r.Context())
		if role == "" {
			core.Unauthorized(w, "")
			return
		}

		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if !a.Allowed(role, r.Method, r.URL.Path) {
			slog.Debug("authorization denied",
				"role", role,
				"method", r.Method,
				"path", r.URL.Path,
				"user_id", middleware.GetUserID(r.Context()),
			)
			core.Forbidden(w, "insufficient permissions")
			return
		}

		next.ServeHTTP(w, r)
	})
}
