package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/critiq/review-platform/internal/core/domain"
	"github.com/critiq/review-platform/internal/core/ports"
)

var (
	testAdmin = domain.Principal{Username: "root", Role: domain.RoleAdmin, Authenticated: true}
	testUser  = domain.Principal{Username: "alice", Role: domain.RoleUser, Authenticated: true}
	testSuper = domain.Principal{Username: "boot", Role: domain.RoleUser, Superuser: true, Authenticated: true}
	testMod   = domain.Principal{Username: "mod", Role: domain.RoleModerator, Authenticated: true}
)

func seedUser(t *testing.T, repo *stubUserRepo, username string, role domain.Role) {
	t.Helper()
	err := repo.Create(context.Background(), &domain.User{
		Username:  username,
		Email:     username + "@x.com",
		Role:      role,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
}

func TestUserService_ListRequiresAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	seedUser(t, repo, "alice", domain.RoleUser)

	if _, err := svc.List(context.Background(), testUser, ports.ListUsersFilter{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("plain user: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.List(context.Background(), domain.Anonymous, ports.ListUsersFilter{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("anonymous: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.List(context.Background(), testMod, ports.ListUsersFilter{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("moderator: expected ErrForbidden, got %v", err)
	}

	page, err := svc.List(context.Background(), testSuper, ports.ListUsersFilter{})
	if err != nil {
		t.Fatalf("superuser with user role must pass admin gate: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("total = %d, want 1", page.Total)
	}
}

func TestUserService_CreateValidatesRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	u, err := svc.Create(context.Background(), testAdmin, ports.CreateUserInput{Username: "bob", Email: "bob@x.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if u.Role != domain.RoleUser {
		t.Fatalf("default role = %q, want user", u.Role)
	}

	if _, err := svc.Create(context.Background(), testAdmin, ports.CreateUserInput{Username: "eve", Email: "eve@x.com", Role: "owner"}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := svc.Create(context.Background(), testAdmin, ports.CreateUserInput{Username: "me", Email: "me@x.com"}); !errors.Is(err, domain.ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername for 'me', got %v", err)
	}
}

func TestUserService_UpdateMeDropsRoleChange(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	seedUser(t, repo, "alice", domain.RoleUser)

	role := domain.RoleAdmin
	bio := "hello"
	u, err := svc.UpdateMe(context.Background(), testUser, ports.UpdateUserInput{Role: &role, Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateMe failed: %v", err)
	}
	if u.Role != domain.RoleUser {
		t.Fatalf("role escalation applied: got %q", u.Role)
	}
	if u.Bio != "hello" {
		t.Fatalf("bio not applied: %q", u.Bio)
	}

	stored, _ := repo.FindByUsername(context.Background(), "alice")
	if stored.Role != domain.RoleUser {
		t.Fatalf("persisted role = %q, want user", stored.Role)
	}
}

func TestUserService_AdminUpdateAppliesRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	seedUser(t, repo, "alice", domain.RoleUser)

	role := domain.RoleModerator
	u, err := svc.Update(context.Background(), testAdmin, "alice", ports.UpdateUserInput{Role: &role})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if u.Role != domain.RoleModerator {
		t.Fatalf("role = %q, want moderator", u.Role)
	}
}

func TestUserService_GetAndDeleteAdminOnly(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	seedUser(t, repo, "alice", domain.RoleUser)

	if _, err := svc.Get(context.Background(), testUser, "alice"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-admin get: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), testUser, "alice"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-admin delete: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), testAdmin, "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("missing user: expected ErrUserNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), testAdmin, "alice"); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
}

func TestUserService_Me(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	seedUser(t, repo, "alice", domain.RoleUser)

	u, err := svc.Me(context.Background(), testUser)
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("username = %q", u.Username)
	}
	if _, err := svc.Me(context.Background(), domain.Anonymous); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("anonymous Me: expected ErrUnauthenticated, got %v", err)
	}
}
