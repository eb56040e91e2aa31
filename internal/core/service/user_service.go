package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/critiq/review-platform/internal/core/domain"
	"github.com/critiq/review-platform/internal/core/permission"
	"github.com/critiq/review-platform/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// UserService is the admin-only account surface plus the self-profile
// endpoint. The admin operations are gated by the AdminOnly policy, the
// profile operations by SelfOnly.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) List(ctx context.Context, actor domain.Principal, filter ports.ListUsersFilter) (*ports.UserPage, error) {
	if !permission.AdminOnly.AllowCollection(actor, permission.Safe) {
		return nil, permission.Denial(actor)
	}

	filter.Page = filter.Page.Normalize(defaultPageLimit, maxPageLimit)
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.UserPage{
		Items: users,
		Total: total,
		Page:  filter.Page.Page,
		Limit: filter.Page.Limit,
	}, nil
}

func (s *UserService) Create(ctx context.Context, actor domain.Principal, in ports.CreateUserInput) (*domain.User, error) {
	if !permission.AdminOnly.AllowCollection(actor, permission.Unsafe) {
		return nil, permission.Denial(actor)
	}
	if in.Username == "me" || !usernamePattern.MatchString(in.Username) {
		return nil, domain.ErrInvalidUsername
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	user := &domain.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, actor domain.Principal, username string) (*domain.User, error) {
	if !permission.AdminOnly.AllowCollection(actor, permission.Safe) {
		return nil, permission.Denial(actor)
	}
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !permission.AdminOnly.AllowObject(actor, permission.Safe, user) {
		return nil, permission.Denial(actor)
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, actor domain.Principal, username string, in ports.UpdateUserInput) (*domain.User, error) {
	if !permission.AdminOnly.AllowCollection(actor, permission.Unsafe) {
		return nil, permission.Denial(actor)
	}
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !permission.AdminOnly.AllowObject(actor, permission.Unsafe, user) {
		return nil, permission.Denial(actor)
	}
	return s.applyUpdate(ctx, actor, user, in)
}

func (s *UserService) Delete(ctx context.Context, actor domain.Principal, username string) error {
	if !permission.AdminOnly.AllowCollection(actor, permission.Unsafe) {
		return permission.Denial(actor)
	}
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !permission.AdminOnly.AllowObject(actor, permission.Unsafe, user) {
		return permission.Denial(actor)
	}
	if err := s.repo.Delete(ctx, user.Username); err != nil {
		return err
	}
	s.log.Info().Str("username", username).Msg("user deleted")
	return nil
}

// Me returns the actor's own record, looked up fresh from storage.
func (s *UserService) Me(ctx context.Context, actor domain.Principal) (*domain.User, error) {
	if !permission.SelfOnly.AllowCollection(actor, permission.Safe) {
		return nil, permission.Denial(actor)
	}
	user, err := s.repo.FindByUsername(ctx, actor.Username)
	if err != nil {
		return nil, err
	}
	if !permission.SelfOnly.AllowObject(actor, permission.Safe, user) {
		return nil, permission.Denial(actor)
	}
	return user, nil
}

// UpdateMe partially updates the actor's own record. A role change in the
// payload is silently dropped unless the actor is an admin.
func (s *UserService) UpdateMe(ctx context.Context, actor domain.Principal, in ports.UpdateUserInput) (*domain.User, error) {
	if !permission.SelfOnly.AllowCollection(actor, permission.Unsafe) {
		return nil, permission.Denial(actor)
	}
	user, err := s.repo.FindByUsername(ctx, actor.Username)
	if err != nil {
		return nil, err
	}
	if !permission.SelfOnly.AllowObject(actor, permission.Unsafe, user) {
		return nil, permission.Denial(actor)
	}
	return s.applyUpdate(ctx, actor, user, in)
}

func (s *UserService) applyUpdate(ctx context.Context, actor domain.Principal, user *domain.User, in ports.UpdateUserInput) (*domain.User, error) {
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Role != nil && actor.IsAdmin() {
		if !domain.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidRole
		}
		user.Role = *in.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
