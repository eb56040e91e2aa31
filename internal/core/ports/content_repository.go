package ports

import (
	"context"

	"github.com/critiq/review-platform/internal/core/domain"
)

// ListTaxonomyFilter is shared by the category and genre lists.
type ListTaxonomyFilter struct {
	// Search matches name substrings when non-empty.
	Search string
	Page   PageRequest
}

// CategoryRepository persists categories keyed by slug.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context, filter ListTaxonomyFilter) ([]domain.Category, int64, error)
	Delete(ctx context.Context, slug string) error
}

// GenreRepository persists genres keyed by slug.
type GenreRepository interface {
	Create(ctx context.Context, g *domain.Genre) error
	// FindBySlugs resolves a set of slugs, failing with domain.ErrGenreNotFound
	// when any slug is unknown.
	FindBySlugs(ctx context.Context, slugs []string) ([]domain.Genre, error)
	List(ctx context.Context, filter ListTaxonomyFilter) ([]domain.Genre, int64, error)
	Delete(ctx context.Context, slug string) error
}

// ListTitlesFilter carries the title search parameters.
type ListTitlesFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string // substring match
	Year         int    // 0 = any
	Page         PageRequest
}

// TitleRepository persists titles. Create assigns the numeric id.
// Rating is not stored; callers annotate it from review aggregation.
type TitleRepository interface {
	Create(ctx context.Context, t *domain.Title) error
	FindByID(ctx context.Context, id int64) (*domain.Title, error)
	List(ctx context.Context, filter ListTitlesFilter) ([]domain.Title, int64, error)
	Update(ctx context.Context, t *domain.Title) error
	Delete(ctx context.Context, id int64) error
}
