package domain

import "errors"

// Session gate failures.
var (
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpiredToken      = errors.New("token expired")
	ErrUnknownIdentity   = errors.New("unknown identity")
	ErrInsufficientRole  = errors.New("insufficient role")
)

// Registration and credential failures.
var (
	ErrInvalidRegistrationCode = errors.New("invalid registration code")
	ErrEmailAlreadyRegistered  = errors.New("email already registered")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrCurrentPasswordMismatch = errors.New("current password incorrect")
	ErrPasswordTooLong         = errors.New("password exceeds 72 bytes")
	ErrTooManyAttempts         = errors.New("too many failed login attempts")
)

// User management failures.
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidRole            = errors.New("invalid role")
	ErrCannotDeleteSuperAdmin = errors.New("cannot delete a super admin")
	ErrForbidden              = errors.New("access forbidden")
)
