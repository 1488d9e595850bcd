package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/SMASobur/tcmosque/internal/core/domain"
	"github.com/SMASobur/tcmosque/internal/pkg/metrics"
)

// RequireRole enforces a minimum role on the user resolved by Auth. It must be
// chained after Auth; a missing user is treated as unauthenticated.
func RequireRole(min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				metrics.GateRejectionsTotal.WithLabelValues(rejectionReason(domain.ErrMissingCredential)).Inc()
				return domain.ErrMissingCredential
			}
			if !user.Role.Satisfies(min) {
				metrics.GateRejectionsTotal.WithLabelValues(rejectionReason(domain.ErrInsufficientRole)).Inc()
				return domain.ErrInsufficientRole
			}
			return next(c)
		}
	}
}

// SuperAdminOnly guards irreversible operations.
func SuperAdminOnly() echo.MiddlewareFunc {
	return RequireRole(domain.RoleSuperAdmin)
}
