package appMiddleware

import (
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

// RequireRole lets the request through only when the principal holds one of
// roles. It runs after authentication; a missing principal is a 401 and a
// principal with the wrong role is a 403.
func RequireRole(logger *slog.Logger, roles ...types.Role) func(next http.Handler) http.Handler {
	allowed := make(map[types.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			p, ok := PrincipalFromContext(ctx)
			if !ok {
				logger.ErrorContext(ctx, "Role check reached without a principal", slog.String("path", r.URL.Path))
				api.ErrorResponse(w, r, http.StatusUnauthorized, api.ErrUnauthenticated.Error())
				return
			}

			if _, ok := allowed[p.Role]; !ok {
				logger.WarnContext(ctx, "Role check failed",
					slog.String("subject", p.Subject),
					slog.String("role", string(p.Role)),
					slog.Any("allowed_roles", roles),
				)
				api.FailureResponse(w, r, http.StatusForbidden, "role", api.ErrForbidden.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
