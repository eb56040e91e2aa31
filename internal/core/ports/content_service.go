package ports

import (
	"context"

	"github.com/critiq/review-platform/internal/core/domain"
)

// TaxonomyPage is one page of categories or genres.
type TaxonomyPage[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

// CategoryService exposes the deliberately restricted verb set for
// categories: list, create, delete. No retrieve-by-slug, no update.
type CategoryService interface {
	List(ctx context.Context, actor domain.Principal, filter ListTaxonomyFilter) (*TaxonomyPage[domain.Category], error)
	Create(ctx context.Context, actor domain.Principal, name, slug string) (*domain.Category, error)
	Delete(ctx context.Context, actor domain.Principal, slug string) error
}

// GenreService mirrors CategoryService for genres.
type GenreService interface {
	List(ctx context.Context, actor domain.Principal, filter ListTaxonomyFilter) (*TaxonomyPage[domain.Genre], error)
	Create(ctx context.Context, actor domain.Principal, name, slug string) (*domain.Genre, error)
	Delete(ctx context.Context, actor domain.Principal, slug string) error
}

// CreateTitleInput references category and genres by slug; unknown slugs fail
// with the respective not-found error surfaced as a validation problem.
type CreateTitleInput struct {
	Name        string
	Year        int
	Description string
	Category    string
	Genres      []string
}

// UpdateTitleInput is a partial update; nil fields are left untouched.
type UpdateTitleInput struct {
	Name        *string
	Year        *int
	Description *string
	Category    *string
	Genres      *[]string
}

// TitlePage is one page of titles, rating-annotated.
type TitlePage struct {
	Items []domain.Title
	Total int64
	Page  int
	Limit int
}

// TitleService manages titles under the admin-or-read-only policy. All reads
// annotate the live average review score.
type TitleService interface {
	List(ctx context.Context, actor domain.Principal, filter ListTitlesFilter) (*TitlePage, error)
	Get(ctx context.Context, actor domain.Principal, id int64) (*domain.Title, error)
	Create(ctx context.Context, actor domain.Principal, in CreateTitleInput) (*domain.Title, error)
	Update(ctx context.Context, actor domain.Principal, id int64, in UpdateTitleInput) (*domain.Title, error)
	Delete(ctx context.Context, actor domain.Principal, id int64) error
}
