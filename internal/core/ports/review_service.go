package ports

import (
	"context"

	"github.com/critiq/review-platform/internal/core/domain"
)

// CreateReviewInput carries the client-supplied review fields. Author and
// title are injected server-side and never read from the request body.
type CreateReviewInput struct {
	Text  string
	Score int
}

// UpdateReviewInput is a partial update of an existing review.
type UpdateReviewInput struct {
	Text  *string
	Score *int
}

// ReviewPage is one page of reviews under a title.
type ReviewPage struct {
	Items []domain.Review
	Total int64
	Page  int
	Limit int
}

// ReviewService manages reviews nested under a title. Every operation
// resolves the path title first; a missing title is a not-found condition
// regardless of the caller's privileges.
type ReviewService interface {
	List(ctx context.Context, actor domain.Principal, titleID int64, page PageRequest) (*ReviewPage, error)
	Create(ctx context.Context, actor domain.Principal, titleID int64, in CreateReviewInput) (*domain.Review, error)
	Get(ctx context.Context, actor domain.Principal, titleID, reviewID int64) (*domain.Review, error)
	Update(ctx context.Context, actor domain.Principal, titleID, reviewID int64, in UpdateReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, actor domain.Principal, titleID, reviewID int64) error
}

// CommentPage is one page of comments under a review.
type CommentPage struct {
	Items []domain.Comment
	Total int64
	Page  int
	Limit int
}

// CommentService manages comments nested under a review. The parent review
// must exist and belong to the path's title; otherwise not-found.
type CommentService interface {
	List(ctx context.Context, actor domain.Principal, titleID, reviewID int64, page PageRequest) (*CommentPage, error)
	Create(ctx context.Context, actor domain.Principal, titleID, reviewID int64, text string) (*domain.Comment, error)
	Get(ctx context.Context, actor domain.Principal, titleID, reviewID, commentID int64) (*domain.Comment, error)
	Update(ctx context.Context, actor domain.Principal, titleID, reviewID, commentID int64, text string) (*domain.Comment, error)
	Delete(ctx context.Context, actor domain.Principal, titleID, reviewID, commentID int64) error
}
