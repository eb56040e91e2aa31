package ports

import (
	"context"

	"github.com/critiq/review-platform/internal/core/domain"
)

// ReviewRepository persists reviews. Create assigns the numeric id and
// surfaces a second review by the same author on the same title as
// domain.ErrReviewExists (backed by a unique index, so two concurrent
// creations cannot both succeed).
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	// FindByID retrieves a review only when it belongs to titleID; a review
	// under a different title is domain.ErrReviewNotFound.
	FindByID(ctx context.Context, titleID, reviewID int64) (*domain.Review, error)
	List(ctx context.Context, titleID int64, page PageRequest) ([]domain.Review, int64, error)
	Update(ctx context.Context, r *domain.Review) error
	Delete(ctx context.Context, titleID, reviewID int64) error
	// AverageScores returns the mean review score per title for the given
	// ids. Titles without reviews are absent from the result.
	AverageScores(ctx context.Context, titleIDs []int64) (map[int64]float64, error)
	// DeleteByTitle removes all reviews under a deleted title.
	DeleteByTitle(ctx context.Context, titleID int64) error
}

// CommentRepository persists comments under reviews.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	FindByID(ctx context.Context, reviewID, commentID int64) (*domain.Comment, error)
	List(ctx context.Context, reviewID int64, page PageRequest) ([]domain.Comment, int64, error)
	Update(ctx context.Context, c *domain.Comment) error
	Delete(ctx context.Context, reviewID, commentID int64) error
	// DeleteByReview removes all comments under a deleted review.
	DeleteByReview(ctx context.Context, reviewID int64) error
}
