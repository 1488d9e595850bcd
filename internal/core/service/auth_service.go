package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/SMASobur/tcmosque/internal/core/domain"
	"github.com/SMASobur/tcmosque/internal/core/ports"
	"github.com/SMASobur/tcmosque/internal/pkg/metrics"
)

const maxPasswordBytes = 72

// LoginThrottle limits repeated failed logins per email (Redis).
type LoginThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration, login and self-service account
// management on top of the credential store.
type AuthService struct {
	repo         ports.UserRepository
	tokens       *TokenManager
	registration RegistrationGate
	throttle     LoginThrottle
	hashCost     int
	now          func() time.Time
	log          zerolog.Logger
}

// AuthOption customizes an AuthService.
type AuthOption func(*AuthService)

// WithLoginThrottle enables failed-login throttling.
func WithLoginThrottle(t LoginThrottle) AuthOption {
	return func(s *AuthService) { s.throttle = t }
}

// WithHashCost overrides the bcrypt cost.
func WithHashCost(cost int) AuthOption {
	return func(s *AuthService) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.hashCost = cost
		}
	}
}

func NewAuthService(
	repo ports.UserRepository,
	tokens *TokenManager,
	registration RegistrationGate,
	log zerolog.Logger,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		repo:         repo,
		tokens:       tokens,
		registration: registration,
		hashCost:     bcrypt.DefaultCost,
		now:          time.Now,
		log:          log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account whose role is decided by the registration code.
// The email check and the insert are not atomic; a concurrent duplicate falls
// through to the store's unique index.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role, err := s.registration.ResolveRole(in.Code)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(in.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Insert(ctx, &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(role)).Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", string(role)).Msg("user registered")
	return created, nil
}

// Login returns a session token. An unknown email and a wrong password are
// reported identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			metrics.ThrottleErrorsTotal.Inc()
			s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
		} else if !allowed {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			metrics.ThrottleErrorsTotal.Inc()
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, nil
}

// Authenticate verifies the token and performs exactly one store lookup. The
// returned user carries the role currently stored, not the one in the token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnknownIdentity
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the display name. An empty name keeps the current one.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.repo.FindByID(ctx, userID)
	}
	return s.repo.Update(ctx, userID, ports.UserPatch{Name: &name})
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if _, err := s.verifyPassword(ctx, userID, currentPassword); err != nil {
		return err
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}
	encoded := string(hash)
	if _, err := s.repo.Update(ctx, userID, ports.UserPatch{PasswordHash: &encoded}); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

// DeleteAccount removes the caller's own account after re-checking the password.
func (s *AuthService) DeleteAccount(ctx context.Context, userID, currentPassword string) error {
	if _, err := s.verifyPassword(ctx, userID, currentPassword); err != nil {
		return err
	}
	if _, err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("account deleted")
	return nil
}

// hashPassword rejects input bcrypt would refuse; its limit is in bytes, not characters.
func (s *AuthService) hashPassword(password string) ([]byte, error) {
	if len(password) > maxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}
	return bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
}

func (s *AuthService) verifyPassword(ctx context.Context, userID, password string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrCurrentPasswordMismatch
	}
	return user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		metrics.ThrottleErrorsTotal.Inc()
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
