package domain

import "errors"

// Access errors. Services return these when the permission engine denies an
// operation; the HTTP layer maps them to 401/403.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")
)

// Not-found errors. A broken parent chain (review under the wrong title,
// missing title in the path) surfaces as the parent's not-found error, never
// as a permission failure.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrTitleNotFound    = errors.New("title not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCommentNotFound  = errors.New("comment not found")
)

// Validation and uniqueness errors.
var (
	ErrUserExists      = errors.New("username or email already taken")
	ErrCategoryExists  = errors.New("category slug already exists")
	ErrGenreExists     = errors.New("genre slug already exists")
	ErrReviewExists    = errors.New("author already reviewed this title")
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidScore    = errors.New("score out of range")
	ErrInvalidCode     = errors.New("invalid confirmation code")
)
