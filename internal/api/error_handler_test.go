package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/SMASobur/tcmosque/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrMissingCredential, http.StatusUnauthorized, "Invalid or missing token"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "Invalid or missing token"},
		{domain.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
		{domain.ErrUnknownIdentity, http.StatusUnauthorized, "User not found"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{domain.ErrInsufficientRole, http.StatusForbidden, "Insufficient permissions"},
		{domain.ErrCannotDeleteSuperAdmin, http.StatusForbidden, "Cannot delete a Super Admin"},
		{domain.ErrInvalidRegistrationCode, http.StatusBadRequest, "Invalid registration code."},
		{domain.ErrEmailAlreadyRegistered, http.StatusBadRequest, "Email already registered."},
		{domain.ErrCurrentPasswordMismatch, http.StatusBadRequest, "Current password incorrect"},
		{domain.ErrPasswordTooLong, http.StatusBadRequest, "Password must be at most 72 bytes"},
		{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many failed login attempts, try again later"},
		{fmt.Errorf("wrapped: %w", domain.ErrInvalidToken), http.StatusUnauthorized, "Invalid or missing token"},
		{echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{errors.New("connection refused 10.0.0.3:27017"), http.StatusInternalServerError, "Internal server error"},
	}

	e := echo.New()
	h := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		h(tc.err, e.NewContext(req, rec))

		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%v: invalid json: %v", tc.err, err)
		}
		if body["message"] != tc.message {
			t.Fatalf("%v: expected message %q, got %q", tc.err, tc.message, body["message"])
		}
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrInvalidToken, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response must be left alone, got %d %q", rec.Code, rec.Body.String())
	}
}
