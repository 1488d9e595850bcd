package ports

import (
	"context"

	"github.com/SMASobur/tcmosque/internal/core/domain"
)

// UserPatch lists the mutable fields of a user; nil fields are left untouched.
type UserPatch struct {
	Name         *string
	PasswordHash *string
	Role         *domain.Role
}

// UserRepository is the credential store. Lookups that miss return
// domain.ErrUserNotFound.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
