package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/SMASobur/tcmosque/internal/core/domain"
	"github.com/SMASobur/tcmosque/internal/pkg/metrics"
)

// Authenticator resolves a raw session token to the current user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Auth validates the bearer token, resolves the user from the store and
// injects it into the context. Failures are returned to the HTTP error handler
// and the next handler is never invoked.
func Auth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.GateRejectionsTotal.WithLabelValues(rejectionReason(domain.ErrMissingCredential)).Inc()
				return domain.ErrMissingCredential
			}

			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				metrics.GateRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return err
			}

			SetUser(c, user)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, domain.ErrExpiredToken):
		return "expired_token"
	case errors.Is(err, domain.ErrUnknownIdentity):
		return "unknown_identity"
	case errors.Is(err, domain.ErrInsufficientRole):
		return "insufficient_role"
	default:
		return "store_error"
	}
}
