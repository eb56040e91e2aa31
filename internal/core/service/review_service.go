package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/critiq/review-platform/internal/core/domain"
	"github.com/critiq/review-platform/internal/core/permission"
	"github.com/critiq/review-platform/internal/core/ports"
)

// ReviewService manages reviews nested under a title.
//
// Check ordering on every operation: collection-level policy first, then the
// parent title (missing title is 404 and masks any object-level denial), then
// the object fetch, then the object-level policy.
type ReviewService struct {
	reviews  ports.ReviewRepository
	titles   ports.TitleRepository
	comments ports.CommentRepository
	log      zerolog.Logger
}

func NewReviewService(
	reviews ports.ReviewRepository,
	titles ports.TitleRepository,
	comments ports.CommentRepository,
	log zerolog.Logger,
) *ReviewService {
	return &ReviewService{reviews: reviews, titles: titles, comments: comments, log: log}
}

func (s *ReviewService) List(ctx context.Context, actor domain.Principal, titleID int64, page ports.PageRequest) (*ports.ReviewPage, error) {
	if !permission.ReviewComment.AllowCollection(actor, permission.Safe) {
		return nil, permission.Denial(actor)
	}
	if _, err := s.titles.FindByID(ctx, titleID); err != nil {
		return nil, err
	}

	page = page.Normalize(defaultPageLimit, maxPageLimit)
	items, total, err := s.reviews.List(ctx, titleID, page)
	if err != nil {
		return nil, err
	}
	return &ports.ReviewPage{Items: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

// Create writes a new review. Author and title come from the request context
// and path, never from the body. A duplicate (author, title) pair surfaces
// the repository's ErrReviewExists; the unique index behind it makes the
// one-review invariant hold under concurrent submissions.
func (s *ReviewService) Create(ctx context.Context, actor domain.Principal, titleID int64, in ports.CreateReviewInput) (*domain.Review, error) {
	if !permission.ReviewComment.AllowCollection(actor, permission.Unsafe) {
		return nil, permission.Denial(actor)
	}
	if _, err := s.titles.FindByID(ctx, titleID); err != nil {
		return nil, err
	}
	if in.Score < domain.MinScore || in.Score > domain.MaxScore {
		return nil, domain.ErrInvalidScore
	}

	review := &domain.Review{
		TitleID:   titleID,
		Author:    actor.Username,
		Text:      in.Text,
		Score:     in.Score,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.log.Info().Int64("title_id", titleID).Int64("review_id", review.ID).Str("author", review.Author).Msg("review created")
	return review, nil
}

func (s *ReviewService) Get(ctx context.Context, actor domain.Principal, titleID, reviewID int64) (*domain.Review, error) {
	if !permission.ReviewComment.AllowCollection(actor, permission.Safe) {
		return nil, permission.Denial(actor)
	}
	review, err := s.resolve(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !permission.ReviewComment.AllowObject(actor, permission.Safe, review) {
		return nil, permission.Denial(actor)
	}
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, actor domain.Principal, titleID, reviewID int64, in ports.UpdateReviewInput) (*domain.Review, error) {
	if !permission.ReviewComment.AllowCollection(actor, permission.Unsafe) {
		return nil, permission.Denial(actor)
	}
	review, err := s.resolve(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !permission.ReviewComment.AllowObject(actor, permission.Unsafe, review) {
		return nil, permission.Denial(actor)
	}

	if in.Text != nil {
		review.Text = *in.Text
	}
	if in.Score != nil {
		if *in.Score < domain.MinScore || *in.Score > domain.MaxScore {
			return nil, domain.ErrInvalidScore
		}
		review.Score = *in.Score
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor domain.Principal, titleID, reviewID int64) error {
	if !permission.ReviewComment.AllowCollection(actor, permission.Unsafe) {
		return permission.Denial(actor)
	}
	review, err := s.resolve(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !permission.ReviewComment.AllowObject(actor, permission.Unsafe, review) {
		return permission.Denial(actor)
	}

	if err := s.reviews.Delete(ctx, titleID, reviewID); err != nil {
		return err
	}
	// Orphan cleanup is best effort; the review itself is gone.
	if err := s.comments.DeleteByReview(ctx, reviewID); err != nil {
		s.log.Warn().Err(err).Int64("review_id", reviewID).Msg("failed to delete comments of removed review")
	}
	s.log.Info().Int64("title_id", titleID).Int64("review_id", reviewID).Msg("review deleted")
	return nil
}

// resolve walks the parent chain: title first, then the review scoped to it.
func (s *ReviewService) resolve(ctx context.Context, titleID, reviewID int64) (*domain.Review, error) {
	if _, err := s.titles.FindByID(ctx, titleID); err != nil {
		return nil, err
	}
	return s.reviews.FindByID(ctx, titleID, reviewID)
}
