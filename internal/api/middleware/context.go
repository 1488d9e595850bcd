package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/SMASobur/tcmosque/internal/core/domain"
)

const userKey = "user"

// SetUser attaches the resolved user to the request context.
func SetUser(c echo.Context, user *domain.User) {
	c.Set(userKey, user)
}

// CurrentUser returns the user attached by Auth.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(userKey).(*domain.User)
	return user, ok && user != nil
}
