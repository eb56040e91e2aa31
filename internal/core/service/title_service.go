package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/critiq/review-platform/internal/core/domain"
	"github.com/critiq/review-platform/internal/core/permission"
	"github.com/critiq/review-platform/internal/core/ports"
)

// TitleService manages titles under the admin-or-read-only policy and
// annotates every read with the live average review score. The average is
// recomputed from the reviews on each request; no denormalized counter is
// kept, so concurrent review writes can never leave a stale rating behind.
type TitleService struct {
	titles     ports.TitleRepository
	categories ports.CategoryRepository
	genres     ports.GenreRepository
	reviews    ports.ReviewRepository
	log        zerolog.Logger
}

func NewTitleService(
	titles ports.TitleRepository,
	categories ports.CategoryRepository,
	genres ports.GenreRepository,
	reviews ports.ReviewRepository,
	log zerolog.Logger,
) *TitleService {
	return &TitleService{
		titles:     titles,
		categories: categories,
		genres:     genres,
		reviews:    reviews,
		log:        log,
	}
}

func (s *TitleService) List(ctx context.Context, actor domain.Principal, filter ports.ListTitlesFilter) (*ports.TitlePage, error) {
	if !permission.AdminOrReadOnly.AllowCollection(actor, permission.Safe) {
		return nil, permission.Denial(actor)
	}

	filter.Page = filter.Page.Normalize(defaultPageLimit, maxPageLimit)
	items, total, err := s.titles.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.annotateRatings(ctx, items); err != nil {
		return nil, err
	}
	return &ports.TitlePage{
		Items: items,
		Total: total,
		Page:  filter.Page.Page,
		Limit: filter.Page.Limit,
	}, nil
}

func (s *TitleService) Get(ctx context.Context, actor domain.Principal, id int64) (*domain.Title, error) {
	if !permission.AdminOrReadOnly.AllowCollection(actor, permission.Safe) {
		return nil, permission.Denial(actor)
	}
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !permission.AdminOrReadOnly.AllowObject(actor, permission.Safe, nil) {
		return nil, permission.Denial(actor)
	}

	one := []domain.Title{*title}
	if err := s.annotateRatings(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (s *TitleService) Create(ctx context.Context, actor domain.Principal, in ports.CreateTitleInput) (*domain.Title, error) {
	if !permission.AdminOrReadOnly.AllowCollection(actor, permission.Unsafe) {
		return nil, permission.Denial(actor)
	}

	category, genres, err := s.resolveTaxonomy(ctx, in.Category, in.Genres)
	if err != nil {
		return nil, err
	}

	title := &domain.Title{
		Name:        in.Name,
		Year:        in.Year,
		Description: in.Description,
		Category:    *category,
		Genres:      genres,
	}
	if err := s.titles.Create(ctx, title); err != nil {
		return nil, err
	}

	s.log.Info().Int64("title_id", title.ID).Str("name", title.Name).Msg("title created")
	return title, nil
}

func (s *TitleService) Update(ctx context.Context, actor domain.Principal, id int64, in ports.UpdateTitleInput) (*domain.Title, error) {
	if !permission.AdminOrReadOnly.AllowCollection(actor, permission.Unsafe) {
		return nil, permission.Denial(actor)
	}
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !permission.AdminOrReadOnly.AllowObject(actor, permission.Unsafe, nil) {
		return nil, permission.Denial(actor)
	}

	if in.Name != nil {
		title.Name = *in.Name
	}
	if in.Year != nil {
		title.Year = *in.Year
	}
	if in.Description != nil {
		title.Description = *in.Description
	}
	if in.Category != nil {
		category, err := s.categories.FindBySlug(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		title.Category = *category
	}
	if in.Genres != nil {
		genres, err := s.genres.FindBySlugs(ctx, *in.Genres)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	if err := s.titles.Update(ctx, title); err != nil {
		return nil, err
	}

	one := []domain.Title{*title}
	if err := s.annotateRatings(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (s *TitleService) Delete(ctx context.Context, actor domain.Principal, id int64) error {
	if !permission.AdminOrReadOnly.AllowCollection(actor, permission.Unsafe) {
		return permission.Denial(actor)
	}
	if _, err := s.titles.FindByID(ctx, id); err != nil {
		return err
	}
	if !permission.AdminOrReadOnly.AllowObject(actor, permission.Unsafe, nil) {
		return permission.Denial(actor)
	}

	if err := s.titles.Delete(ctx, id); err != nil {
		return err
	}
	// Orphan cleanup is best effort; the title itself is gone.
	if err := s.reviews.DeleteByTitle(ctx, id); err != nil {
		s.log.Warn().Err(err).Int64("title_id", id).Msg("failed to delete reviews of removed title")
	}

	s.log.Info().Int64("title_id", id).Msg("title deleted")
	return nil
}

func (s *TitleService) resolveTaxonomy(ctx context.Context, categorySlug string, genreSlugs []string) (*domain.Category, []domain.Genre, error) {
	category, err := s.categories.FindBySlug(ctx, categorySlug)
	if err != nil {
		return nil, nil, err
	}
	genres, err := s.genres.FindBySlugs(ctx, genreSlugs)
	if err != nil {
		return nil, nil, err
	}
	return category, genres, nil
}

func (s *TitleService) annotateRatings(ctx context.Context, titles []domain.Title) error {
	if len(titles) == 0 {
		return nil
	}
	ids := make([]int64, len(titles))
	for i := range titles {
		ids[i] = titles[i].ID
	}
	averages, err := s.reviews.AverageScores(ctx, ids)
	if err != nil {
		return err
	}
	for i := range titles {
		if avg, ok := averages[titles[i].ID]; ok {
			v := avg
			titles[i].Rating = &v
		} else {
			titles[i].Rating = nil
		}
	}
	return nil
}
