package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/salary-calculator/internal"
	"github.com/frahmantamala/salary-calculator/internal/transport"
	"github.com/frahmantamala/salary-calculator/internal/user"
)

// RoleAuthorization gates routes on the signed-in user's role. It expects
// SessionMiddleware to have run first.
type RoleAuthorization struct {
	*transport.BaseHandler
}

func NewRoleAuthorization(logger *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{BaseHandler: transport.NewBaseHandler(logger)}
}

func (ra *RoleAuthorization) RequireRole(role user.Role, denied *internal.AppError) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok {
				ra.Logger.Warn("authorization check failed: user not found in context")
				ra.HandleServiceError(w, internal.ErrNotAuthenticated)
				return
			}

			if u.Role != role {
				ra.Logger.WarnContext(r.Context(), "access denied: role mismatch",
					"user_id", u.ID,
					"required_role", role,
					"user_role", u.Role)
				ra.HandleServiceError(w, denied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireCompany admits only company accounts.
func (ra *RoleAuthorization) RequireCompany() func(http.Handler) http.Handler {
	return ra.RequireRole(user.RoleCompany, internal.ErrCompanyRequired)
}
