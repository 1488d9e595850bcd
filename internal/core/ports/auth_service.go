package ports

import (
	"context"

	"github.com/SMASobur/tcmosque/internal/core/domain"
)

// RegisterInput carries the public registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Code     string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	// Authenticate verifies a raw session token and resolves the current user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, name string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, userID, currentPassword string) error
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUserRole(ctx context.Context, actor *domain.User, targetID string, role string) (*domain.User, error)
	DeleteUser(ctx context.Context, actor *domain.User, targetID string) error
}
