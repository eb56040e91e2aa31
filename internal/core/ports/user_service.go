package ports

import (
	"context"

	"github.com/critiq/review-platform/internal/core/domain"
)

// CreateUserInput is the admin user-creation payload.
type CreateUserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      domain.Role // empty defaults to user
}

// UpdateUserInput is a partial update; nil fields are left untouched.
// Role is honored only for admin actors; for self-service updates it is
// silently dropped.
type UpdateUserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *domain.Role
}

// UserPage is one page of the user list.
type UserPage struct {
	Items []domain.User
	Total int64
	Page  int
	Limit int
}

// UserService is the admin-gated account surface plus the self-service
// profile operations.
type UserService interface {
	List(ctx context.Context, actor domain.Principal, filter ListUsersFilter) (*UserPage, error)
	Create(ctx context.Context, actor domain.Principal, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, actor domain.Principal, username string) (*domain.User, error)
	Update(ctx context.Context, actor domain.Principal, username string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Principal, username string) error

	// Me and UpdateMe operate on the actor's own record.
	Me(ctx context.Context, actor domain.Principal) (*domain.User, error)
	UpdateMe(ctx context.Context, actor domain.Principal, in UpdateUserInput) (*domain.User, error)
}
