package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SMASobur/tcmosque/internal/api/middleware"
	"github.com/SMASobur/tcmosque/internal/core/domain"
	"github.com/SMASobur/tcmosque/internal/core/ports"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn          func(ctx context.Context, email, password string) (string, error)
	updateProfileFn  func(ctx context.Context, userID, name string) (*domain.User, error)
	changePasswordFn func(ctx context.Context, userID, current, next string) error
	deleteAccountFn  func(ctx context.Context, userID, current string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrInvalidToken
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID, name string) (*domain.User, error) {
	return s.updateProfileFn(ctx, userID, name)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	return s.changePasswordFn(ctx, userID, current, next)
}

func (s *stubAuthService) DeleteAccount(ctx context.Context, userID, current string) error {
	return s.deleteAccountFn(ctx, userID, current)
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != code {
		t.Fatalf("expected HTTP %d error, got %v", code, err)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Email != "alice@example.com" || in.Code != "member" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{
				ID: "u1", Name: in.Name, Email: in.Email, PasswordHash: "hash",
				Role: domain.RoleUser, CreatedAt: time.Now(),
			}, nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1","code":"member"}`)

	if err := NewAuthHandler(stub).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decodeBody(t, rec)
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["email"] != "alice@example.com" || user["role"] != "user" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password must not be serialized")
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_ServiceErrorPropagates(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrEmailAlreadyRegistered
		},
	}
	c, _ := newTestContext(http.MethodPost, "/auth/register",
		`{"name":"Bob","email":"bob@example.com","password":"secret1","code":"member"}`)

	if err := NewAuthHandler(stub).Register(c); !errors.Is(err, domain.ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	for _, body := range []string{
		"not-json",
		`{"name":"Bob","email":"not-an-email","password":"secret1","code":"x"}`,
		`{"name":"Bob","email":"bob@example.com","password":"123","code":"x"}`,
		`{"email":"bob@example.com","password":"secret1","code":"x"}`,
		`{"name":"Bob","email":"bob@example.com","password":"secret1"}`,
	} {
		c, _ := newTestContext(http.MethodPost, "/auth/register", body)
		expectHTTPError(t, NewAuthHandler(stub).Register(c), http.StatusBadRequest)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"secret"}`)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	c, _ := newTestContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"bad"}`)

	if err := NewAuthHandler(stub).Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	c, _ := newTestContext(http.MethodPost, "/auth/login", "{")

	expectHTTPError(t, NewAuthHandler(stub).Login(c), http.StatusBadRequest)
}

func TestAuthHandler_Me(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/auth/me", "")
	middleware.SetUser(c, &domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", Role: domain.RoleAdmin})

	if err := NewAuthHandler(&stubAuthService{}).Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["id"] != "u1" || resp["role"] != "admin" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked")
	}
}

func TestAuthHandler_Me_WithoutGate(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/auth/me", "")
	if err := NewAuthHandler(&stubAuthService{}).Me(c); !errors.Is(err, domain.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestAuthHandler_UpdateMe(t *testing.T) {
	stub := &stubAuthService{
		updateProfileFn: func(_ context.Context, userID, name string) (*domain.User, error) {
			if userID != "u1" || name != "Alice B" {
				t.Fatalf("unexpected args: %s %s", userID, name)
			}
			return &domain.User{ID: "u1", Name: name, Role: domain.RoleUser}, nil
		},
	}
	c, rec := newTestContext(http.MethodPut, "/auth/me", `{"name":"Alice B"}`)
	middleware.SetUser(c, &domain.User{ID: "u1", Role: domain.RoleUser})

	if err := NewAuthHandler(stub).UpdateMe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Profile updated" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	stub := &stubAuthService{
		changePasswordFn: func(_ context.Context, userID, current, next string) error {
			if current != "old" {
				return domain.ErrCurrentPasswordMismatch
			}
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/auth/me/password", `{"currentPassword":"old","newPassword":"newpass"}`)
	middleware.SetUser(c, &domain.User{ID: "u1"})
	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newTestContext(http.MethodPut, "/auth/me/password", `{"currentPassword":"wrong","newPassword":"newpass"}`)
	middleware.SetUser(c, &domain.User{ID: "u1"})
	if err := h.ChangePassword(c); !errors.Is(err, domain.ErrCurrentPasswordMismatch) {
		t.Fatalf("expected ErrCurrentPasswordMismatch, got %v", err)
	}
}

func TestAuthHandler_DeleteMe(t *testing.T) {
	deleted := ""
	stub := &stubAuthService{
		deleteAccountFn: func(_ context.Context, userID, current string) error {
			deleted = userID
			return nil
		},
	}
	c, rec := newTestContext(http.MethodDelete, "/auth/me", `{"password":"pw"}`)
	middleware.SetUser(c, &domain.User{ID: "u1"})

	if err := NewAuthHandler(stub).DeleteMe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != "u1" || rec.Code != http.StatusOK {
		t.Fatalf("expected u1 deleted with 200, got %q %d", deleted, rec.Code)
	}

	c, _ = newTestContext(http.MethodDelete, "/auth/me", `{}`)
	middleware.SetUser(c, &domain.User{ID: "u1"})
	expectHTTPError(t, NewAuthHandler(stub).DeleteMe(c), http.StatusBadRequest)
}
