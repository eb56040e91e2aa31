package ports

import (
	"context"

	"github.com/critiq/review-platform/internal/core/domain"
)

// ListUsersFilter carries query parameters for the user list.
type ListUsersFilter struct {
	// Search matches username substrings when non-empty.
	Search string
	Page   PageRequest
}

// UserRepository defines persistence for accounts. Username and email are
// both unique; Create surfaces a collision as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]domain.User, int64, error)
	// Update replaces the mutable fields of the user identified by Username.
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, username string) error
}
