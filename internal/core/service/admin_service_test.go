package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/SMASobur/tcmosque/internal/core/domain"
)

func seedUser(repo *stubUserRepo, id string, role domain.Role) *domain.User {
	u := &domain.User{ID: id, Name: id, Email: id + "@example.com", Role: role}
	repo.users[id] = u
	return cloneUser(u)
}

func TestAdminService_ListUsers(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "a", domain.RoleUser)
	seedUser(repo, "b", domain.RoleAdmin)

	users, err := NewAdminService(repo, zerolog.Nop()).ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestAdminService_UpdateUserRole(t *testing.T) {
	repo := newStubUserRepo()
	admin := seedUser(repo, "admin", domain.RoleAdmin)
	seedUser(repo, "member", domain.RoleUser)
	svc := NewAdminService(repo, zerolog.Nop())

	updated, err := svc.UpdateUserRole(context.Background(), admin, "member", "admin")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("expected admin, got %s", updated.Role)
	}
}

func TestAdminService_UpdateUserRole_Rules(t *testing.T) {
	repo := newStubUserRepo()
	admin := seedUser(repo, "admin", domain.RoleAdmin)
	super := seedUser(repo, "super", domain.RoleSuperAdmin)
	seedUser(repo, "member", domain.RoleUser)
	seedUser(repo, "other-super", domain.RoleSuperAdmin)
	svc := NewAdminService(repo, zerolog.Nop())

	tests := []struct {
		name    string
		actor   *domain.User
		target  string
		role    string
		wantErr error
	}{
		{"unknown role", admin, "member", "owner", domain.ErrInvalidRole},
		{"admin cannot grant superadmin", admin, "member", "superadmin", domain.ErrInvalidRole},
		{"admin cannot demote superadmin", admin, "other-super", "user", domain.ErrForbidden},
		{"missing target", admin, "nobody", "user", domain.ErrUserNotFound},
		{"superadmin can grant superadmin", super, "member", "superadmin", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateUserRole(context.Background(), tc.actor, tc.target, tc.role)
			if tc.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	if repo.users["other-super"].Role != domain.RoleSuperAdmin {
		t.Fatalf("superadmin role must be untouched by an admin")
	}
}

func TestAdminService_DeleteUser(t *testing.T) {
	repo := newStubUserRepo()
	super := seedUser(repo, "super", domain.RoleSuperAdmin)
	seedUser(repo, "member", domain.RoleUser)
	seedUser(repo, "other-super", domain.RoleSuperAdmin)
	svc := NewAdminService(repo, zerolog.Nop())

	if err := svc.DeleteUser(context.Background(), super, "other-super"); !errors.Is(err, domain.ErrCannotDeleteSuperAdmin) {
		t.Fatalf("expected ErrCannotDeleteSuperAdmin, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), super, "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), super, "member"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.users["member"]; ok {
		t.Fatalf("expected member to be deleted")
	}
}
