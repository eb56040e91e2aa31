package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/critiq/review-platform/internal/core/domain"
	"github.com/critiq/review-platform/internal/core/ports"
)

func newReviewFixture(t *testing.T) (*ReviewService, *stubReviewRepo, *stubTitleRepo, int64) {
	t.Helper()
	titles := newStubTitleRepo()
	reviews := newStubReviewRepo()
	title := &domain.Title{Name: "Dune", Year: 1965}
	if err := titles.Create(context.Background(), title); err != nil {
		t.Fatalf("seed title: %v", err)
	}
	return NewReviewService(reviews, titles, newStubCommentRepo(), zerolog.Nop()), reviews, titles, title.ID
}

func TestReviewService_AnonymousListAllowed(t *testing.T) {
	svc, _, _, titleID := newReviewFixture(t)

	page, err := svc.List(context.Background(), domain.Anonymous, titleID, ports.PageRequest{})
	if err != nil {
		t.Fatalf("anonymous list failed: %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("total = %d, want 0", page.Total)
	}
}

func TestReviewService_AnonymousCreateUnauthenticated(t *testing.T) {
	svc, _, _, titleID := newReviewFixture(t)

	_, err := svc.Create(context.Background(), domain.Anonymous, titleID, ports.CreateReviewInput{Text: "x", Score: 5})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestReviewService_MissingTitleIsNotFound(t *testing.T) {
	svc, _, _, _ := newReviewFixture(t)

	if _, err := svc.List(context.Background(), domain.Anonymous, 999, ports.PageRequest{}); !errors.Is(err, domain.ErrTitleNotFound) {
		t.Fatalf("list: expected ErrTitleNotFound, got %v", err)
	}
	if _, err := svc.Create(context.Background(), testUser, 999, ports.CreateReviewInput{Text: "x", Score: 5}); !errors.Is(err, domain.ErrTitleNotFound) {
		t.Fatalf("create: expected ErrTitleNotFound, got %v", err)
	}
}

func TestReviewService_CreateInjectsAuthorAndTitle(t *testing.T) {
	svc, _, _, titleID := newReviewFixture(t)

	rev, err := svc.Create(context.Background(), testUser, titleID, ports.CreateReviewInput{Text: "great", Score: 9})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rev.Author != "alice" || rev.TitleID != titleID {
		t.Fatalf("server-side injection wrong: %+v", rev)
	}
}

func TestReviewService_SecondReviewSameAuthorConflicts(t *testing.T) {
	svc, _, _, titleID := newReviewFixture(t)

	if _, err := svc.Create(context.Background(), testUser, titleID, ports.CreateReviewInput{Text: "a", Score: 7}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.Create(context.Background(), testUser, titleID, ports.CreateReviewInput{Text: "b", Score: 3})
	if !errors.Is(err, domain.ErrReviewExists) {
		t.Fatalf("expected ErrReviewExists, got %v", err)
	}
}

func TestReviewService_ScoreBounds(t *testing.T) {
	svc, _, _, titleID := newReviewFixture(t)

	for _, score := range []int{0, 11, -1} {
		if _, err := svc.Create(context.Background(), testUser, titleID, ports.CreateReviewInput{Text: "x", Score: score}); !errors.Is(err, domain.ErrInvalidScore) {
			t.Errorf("score %d: expected ErrInvalidScore, got %v", score, err)
		}
	}
}

func TestReviewService_UpdateOwnership(t *testing.T) {
	svc, _, _, titleID := newReviewFixture(t)

	rev, err := svc.Create(context.Background(), testUser, titleID, ports.CreateReviewInput{Text: "mine", Score: 8})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	text := "edited"
	other := domain.Principal{Username: "bob", Role: domain.RoleUser, Authenticated: true}
	if _, err := svc.Update(context.Background(), other, titleID, rev.ID, ports.UpdateReviewInput{Text: &text}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-author: expected ErrForbidden, got %v", err)
	}
	// Admin holds no special rights over reviews.
	if _, err := svc.Update(context.Background(), testAdmin, titleID, rev.ID, ports.UpdateReviewInput{Text: &text}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin: expected ErrForbidden, got %v", err)
	}

	updated, err := svc.Update(context.Background(), testMod, titleID, rev.ID, ports.UpdateReviewInput{Text: &text})
	if err != nil {
		t.Fatalf("moderator update failed: %v", err)
	}
	if updated.Text != "edited" {
		t.Fatalf("text = %q", updated.Text)
	}

	score := 2
	if _, err := svc.Update(context.Background(), testUser, titleID, rev.ID, ports.UpdateReviewInput{Score: &score}); err != nil {
		t.Fatalf("author update failed: %v", err)
	}
}

func TestReviewService_GetOpenToAnonymous(t *testing.T) {
	svc, _, _, titleID := newReviewFixture(t)

	rev, err := svc.Create(context.Background(), testUser, titleID, ports.CreateReviewInput{Text: "x", Score: 5})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), domain.Anonymous, titleID, rev.ID); err != nil {
		t.Fatalf("anonymous get failed: %v", err)
	}
}

func TestReviewService_DeleteOwnership(t *testing.T) {
	svc, _, titles, titleID := newReviewFixture(t)

	rev, err := svc.Create(context.Background(), testUser, titleID, ports.CreateReviewInput{Text: "x", Score: 5})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	other := domain.Principal{Username: "bob", Role: domain.RoleUser, Authenticated: true}
	if err := svc.Delete(context.Background(), other, titleID, rev.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-author delete: expected ErrForbidden, got %v", err)
	}

	// Review addressed through a different title resolves as not-found,
	// which masks the would-be permission outcome.
	otherTitle := &domain.Title{Name: "Solaris", Year: 1961}
	if err := titles.Create(context.Background(), otherTitle); err != nil {
		t.Fatalf("seed title: %v", err)
	}
	if err := svc.Delete(context.Background(), other, otherTitle.ID, rev.ID); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Fatalf("wrong title: expected ErrReviewNotFound, got %v", err)
	}

	if err := svc.Delete(context.Background(), testUser, titleID, rev.ID); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
}
