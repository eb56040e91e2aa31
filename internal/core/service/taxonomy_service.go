package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/critiq/review-platform/internal/core/domain"
	"github.com/critiq/review-platform/internal/core/permission"
	"github.com/critiq/review-platform/internal/core/ports"
)

// CategoryService implements the list/create/delete-only verb set for
// categories under the admin-or-read-only policy. Category and genre have no
// per-instance owner, so only collection-level checks apply.
type CategoryService struct {
	repo ports.CategoryRepository
	log  zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

func (s *CategoryService) List(ctx context.Context, actor domain.Principal, filter ports.ListTaxonomyFilter) (*ports.TaxonomyPage[domain.Category], error) {
	if !permission.AdminOrReadOnly.AllowCollection(actor, permission.Safe) {
		return nil, permission.Denial(actor)
	}
	filter.Page = filter.Page.Normalize(defaultPageLimit, maxPageLimit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.TaxonomyPage[domain.Category]{
		Items: items,
		Total: total,
		Page:  filter.Page.Page,
		Limit: filter.Page.Limit,
	}, nil
}

func (s *CategoryService) Create(ctx context.Context, actor domain.Principal, name, slug string) (*domain.Category, error) {
	if !permission.AdminOrReadOnly.AllowCollection(actor, permission.Unsafe) {
		return nil, permission.Denial(actor)
	}
	c := &domain.Category{Name: name, Slug: slug}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info().Str("slug", slug).Msg("category created")
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, actor domain.Principal, slug string) error {
	if !permission.AdminOrReadOnly.AllowCollection(actor, permission.Unsafe) {
		return permission.Denial(actor)
	}
	if err := s.repo.Delete(ctx, slug); err != nil {
		return err
	}
	s.log.Info().Str("slug", slug).Msg("category deleted")
	return nil
}

// GenreService mirrors CategoryService for genres.
type GenreService struct {
	repo ports.GenreRepository
	log  zerolog.Logger
}

func NewGenreService(repo ports.GenreRepository, log zerolog.Logger) *GenreService {
	return &GenreService{repo: repo, log: log}
}

func (s *GenreService) List(ctx context.Context, actor domain.Principal, filter ports.ListTaxonomyFilter) (*ports.TaxonomyPage[domain.Genre], error) {
	if !permission.AdminOrReadOnly.AllowCollection(actor, permission.Safe) {
		return nil, permission.Denial(actor)
	}
	filter.Page = filter.Page.Normalize(defaultPageLimit, maxPageLimit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.TaxonomyPage[domain.Genre]{
		Items: items,
		Total: total,
		Page:  filter.Page.Page,
		Limit: filter.Page.Limit,
	}, nil
}

func (s *GenreService) Create(ctx context.Context, actor domain.Principal, name, slug string) (*domain.Genre, error) {
	if !permission.AdminOrReadOnly.AllowCollection(actor, permission.Unsafe) {
		return nil, permission.Denial(actor)
	}
	g := &domain.Genre{Name: name, Slug: slug}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	s.log.Info().Str("slug", slug).Msg("genre created")
	return g, nil
}

func (s *GenreService) Delete(ctx context.Context, actor domain.Principal, slug string) error {
	if !permission.AdminOrReadOnly.AllowCollection(actor, permission.Unsafe) {
		return permission.Denial(actor)
	}
	if err := s.repo.Delete(ctx, slug); err != nil {
		return err
	}
	s.log.Info().Str("slug", slug).Msg("genre deleted")
	return nil
}
