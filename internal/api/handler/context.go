package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SMASobur/tcmosque/internal/api/middleware"
	"github.com/SMASobur/tcmosque/internal/core/domain"
)

// ctxUser returns the user resolved by the Auth middleware. Its absence means
// the route was registered without the gate, which is treated as unauthenticated.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, domain.ErrMissingCredential
	}
	return user, nil
}

// bindAndValidate decodes the body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
