package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/critiq/review-platform/internal/core/domain"
	"github.com/critiq/review-platform/internal/core/ports"
)

func newCommentFixture(t *testing.T) (*CommentService, int64, int64, int64) {
	t.Helper()
	titles := newStubTitleRepo()
	reviews := newStubReviewRepo()
	comments := newStubCommentRepo()

	titleA := &domain.Title{Name: "Dune", Year: 1965}
	titleB := &domain.Title{Name: "Solaris", Year: 1961}
	for _, title := range []*domain.Title{titleA, titleB} {
		if err := titles.Create(context.Background(), title); err != nil {
			t.Fatalf("seed title: %v", err)
		}
	}
	review := &domain.Review{TitleID: titleA.ID, Author: "alice", Text: "good", Score: 8}
	if err := reviews.Create(context.Background(), review); err != nil {
		t.Fatalf("seed review: %v", err)
	}

	svc := NewCommentService(comments, reviews, titles, zerolog.Nop())
	return svc, titleA.ID, titleB.ID, review.ID
}

func TestCommentService_WrongTitleInChainIsNotFound(t *testing.T) {
	svc, _, titleB, reviewID := newCommentFixture(t)

	// The review exists, but not under titleB.
	if _, err := svc.List(context.Background(), domain.Anonymous, titleB, reviewID, ports.PageRequest{}); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Fatalf("list: expected ErrReviewNotFound, got %v", err)
	}
	if _, err := svc.Create(context.Background(), testUser, titleB, reviewID, "hi"); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Fatalf("create: expected ErrReviewNotFound, got %v", err)
	}
}

func TestCommentService_MissingTitleMasksEverything(t *testing.T) {
	svc, _, _, reviewID := newCommentFixture(t)

	if _, err := svc.Create(context.Background(), domain.Anonymous, 999, reviewID, "hi"); !errors.Is(err, domain.ErrUnauthenticated) {
		// Collection check runs before parent resolution for create.
		t.Fatalf("anonymous create: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Get(context.Background(), domain.Anonymous, 999, reviewID, 1); !errors.Is(err, domain.ErrTitleNotFound) {
		t.Fatalf("get: expected ErrTitleNotFound, got %v", err)
	}
}

func TestCommentService_CreateInjectsAuthorAndReview(t *testing.T) {
	svc, titleA, _, reviewID := newCommentFixture(t)

	c, err := svc.Create(context.Background(), testUser, titleA, reviewID, "nice take")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if c.Author != "alice" || c.ReviewID != reviewID {
		t.Fatalf("server-side injection wrong: %+v", c)
	}
}

func TestCommentService_UnsafeObjectRule(t *testing.T) {
	svc, titleA, _, reviewID := newCommentFixture(t)

	c, err := svc.Create(context.Background(), testUser, titleA, reviewID, "mine")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	other := domain.Principal{Username: "bob", Role: domain.RoleUser, Authenticated: true}
	if _, err := svc.Update(context.Background(), other, titleA, reviewID, c.ID, "hijack"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-author update: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), testAdmin, titleA, reviewID, c.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin delete: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), testMod, titleA, reviewID, c.ID); err != nil {
		t.Fatalf("moderator delete failed: %v", err)
	}
}

func TestCommentService_AnonymousReadAllowed(t *testing.T) {
	svc, titleA, _, reviewID := newCommentFixture(t)

	c, err := svc.Create(context.Background(), testUser, titleA, reviewID, "text")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), domain.Anonymous, titleA, reviewID, c.ID); err != nil {
		t.Fatalf("anonymous get failed: %v", err)
	}
	if _, err := svc.List(context.Background(), domain.Anonymous, titleA, reviewID, ports.PageRequest{}); err != nil {
		t.Fatalf("anonymous list failed: %v", err)
	}
}
