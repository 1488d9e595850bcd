package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/SMASobur/tcmosque/internal/core/domain"
	"github.com/SMASobur/tcmosque/internal/core/ports"
)

// AdminService implements user management for privileged roles. Route-level
// role requirements are enforced by the session gate; the rules here guard
// the targets.
type AdminService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewAdminService(repo ports.UserRepository, log zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, log: log}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// UpdateUserRole assigns user or admin; superadmin may only be granted by a
// superadmin, and only a superadmin may change a superadmin's role.
func (s *AdminService) UpdateUserRole(ctx context.Context, actor *domain.User, targetID string, role string) (*domain.User, error) {
	newRole, ok := domain.ParseRole(role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}
	if newRole == domain.RoleSuperAdmin && !actor.Role.IsSuperAdmin() {
		return nil, domain.ErrInvalidRole
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.Role.IsSuperAdmin() && !actor.Role.IsSuperAdmin() {
		return nil, domain.ErrForbidden
	}

	updated, err := s.repo.Update(ctx, targetID, ports.UserPatch{Role: &newRole})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("actor_id", actor.ID).
		Str("user_id", targetID).
		Str("from", string(target.Role)).
		Str("to", string(newRole)).
		Msg("user role updated")
	return updated, nil
}

// DeleteUser removes another account. Superadmins cannot be deleted this way.
func (s *AdminService) DeleteUser(ctx context.Context, actor *domain.User, targetID string) error {
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role.IsSuperAdmin() {
		return domain.ErrCannotDeleteSuperAdmin
	}

	if _, err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}

	s.log.Info().Str("actor_id", actor.ID).Str("user_id", targetID).Msg("user deleted")
	return nil
}
