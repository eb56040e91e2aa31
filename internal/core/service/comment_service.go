package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/critiq/review-platform/internal/core/domain"
	"github.com/critiq/review-platform/internal/core/permission"
	"github.com/critiq/review-platform/internal/core/ports"
)

// CommentService manages comments under a review. The parent chain is two
// levels deep: the review must exist *and* belong to the title named in the
// path; a review under a different title is a not-found condition.
type CommentService struct {
	comments ports.CommentRepository
	reviews  ports.ReviewRepository
	titles   ports.TitleRepository
	log      zerolog.Logger
}

func NewCommentService(
	comments ports.CommentRepository,
	reviews ports.ReviewRepository,
	titles ports.TitleRepository,
	log zerolog.Logger,
) *CommentService {
	return &CommentService{comments: comments, reviews: reviews, titles: titles, log: log}
}

func (s *CommentService) List(ctx context.Context, actor domain.Principal, titleID, reviewID int64, page ports.PageRequest) (*ports.CommentPage, error) {
	if !permission.ReviewComment.AllowCollection(actor, permission.Safe) {
		return nil, permission.Denial(actor)
	}
	if _, err := s.resolveParent(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	page = page.Normalize(defaultPageLimit, maxPageLimit)
	items, total, err := s.comments.List(ctx, reviewID, page)
	if err != nil {
		return nil, err
	}
	return &ports.CommentPage{Items: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}

func (s *CommentService) Create(ctx context.Context, actor domain.Principal, titleID, reviewID int64, text string) (*domain.Comment, error) {
	if !permission.ReviewComment.AllowCollection(actor, permission.Unsafe) {
		return nil, permission.Denial(actor)
	}
	if _, err := s.resolveParent(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ReviewID:  reviewID,
		Author:    actor.Username,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.log.Info().Int64("review_id", reviewID).Int64("comment_id", comment.ID).Str("author", comment.Author).Msg("comment created")
	return comment, nil
}

func (s *CommentService) Get(ctx context.Context, actor domain.Principal, titleID, reviewID, commentID int64) (*domain.Comment, error) {
	if !permission.ReviewComment.AllowCollection(actor, permission.Safe) {
		return nil, permission.Denial(actor)
	}
	comment, err := s.resolve(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !permission.ReviewComment.AllowObject(actor, permission.Safe, comment) {
		return nil, permission.Denial(actor)
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, actor domain.Principal, titleID, reviewID, commentID int64, text string) (*domain.Comment, error) {
	if !permission.ReviewComment.AllowCollection(actor, permission.Unsafe) {
		return nil, permission.Denial(actor)
	}
	comment, err := s.resolve(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !permission.ReviewComment.AllowObject(actor, permission.Unsafe, comment) {
		return nil, permission.Denial(actor)
	}

	comment.Text = text
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actor domain.Principal, titleID, reviewID, commentID int64) error {
	if !permission.ReviewComment.AllowCollection(actor, permission.Unsafe) {
		return permission.Denial(actor)
	}
	comment, err := s.resolve(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if !permission.ReviewComment.AllowObject(actor, permission.Unsafe, comment) {
		return permission.Denial(actor)
	}

	if err := s.comments.Delete(ctx, reviewID, commentID); err != nil {
		return err
	}
	s.log.Info().Int64("review_id", reviewID).Int64("comment_id", commentID).Msg("comment deleted")
	return nil
}

// resolveParent verifies title → review linkage before any comment access.
func (s *CommentService) resolveParent(ctx context.Context, titleID, reviewID int64) (*domain.Review, error) {
	if _, err := s.titles.FindByID(ctx, titleID); err != nil {
		return nil, err
	}
	return s.reviews.FindByID(ctx, titleID, reviewID)
}

func (s *CommentService) resolve(ctx context.Context, titleID, reviewID, commentID int64) (*domain.Comment, error) {
	if _, err := s.resolveParent(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.comments.FindByID(ctx, reviewID, commentID)
}
