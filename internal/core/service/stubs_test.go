package service

import (
	"context"
	"sort"
	"strings"

	"github.com/critiq/review-platform/internal/core/domain"
	"github.com/critiq/review-platform/internal/core/ports"
)

// In-memory repository stubs shared by the service tests.

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.Username]; ok {
		return domain.ErrUserExists
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	r.users[user.Username] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, filter ports.ListUsersFilter) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range r.users {
		if filter.Search != "" && !strings.Contains(u.Username, filter.Search) {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.Username]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.Username] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, username string) error {
	if _, ok := r.users[username]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, username)
	return nil
}

type stubCodeStore struct {
	codes  map[string]string
	issued int
}

func newStubCodeStore() *stubCodeStore {
	return &stubCodeStore{codes: make(map[string]string)}
}

func (s *stubCodeStore) Issue(_ context.Context, username string) (string, error) {
	s.issued++
	code := "code-" + username
	s.codes[username] = code
	return code, nil
}

func (s *stubCodeStore) Verify(_ context.Context, username, code string) error {
	stored, ok := s.codes[username]
	if !ok || stored != code {
		return domain.ErrInvalidCode
	}
	delete(s.codes, username)
	return nil
}

type stubSender struct {
	sent []string // email addresses, in dispatch order
}

func (s *stubSender) Send(_ context.Context, email, _, _ string) error {
	s.sent = append(s.sent, email)
	return nil
}

type stubTitleRepo struct {
	titles map[int64]*domain.Title
	nextID int64
}

func newStubTitleRepo() *stubTitleRepo {
	return &stubTitleRepo{titles: make(map[int64]*domain.Title)}
}

func (r *stubTitleRepo) Create(_ context.Context, t *domain.Title) error {
	r.nextID++
	t.ID = r.nextID
	c := *t
	r.titles[t.ID] = &c
	return nil
}

func (r *stubTitleRepo) FindByID(_ context.Context, id int64) (*domain.Title, error) {
	t, ok := r.titles[id]
	if !ok {
		return nil, domain.ErrTitleNotFound
	}
	c := *t
	return &c, nil
}

func (r *stubTitleRepo) List(_ context.Context, _ ports.ListTitlesFilter) ([]domain.Title, int64, error) {
	var out []domain.Title
	for _, t := range r.titles {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *stubTitleRepo) Update(_ context.Context, t *domain.Title) error {
	if _, ok := r.titles[t.ID]; !ok {
		return domain.ErrTitleNotFound
	}
	c := *t
	r.titles[t.ID] = &c
	return nil
}

func (r *stubTitleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.titles[id]; !ok {
		return domain.ErrTitleNotFound
	}
	delete(r.titles, id)
	return nil
}

type stubReviewRepo struct {
	reviews map[int64]*domain.Review
	nextID  int64
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[int64]*domain.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, rev *domain.Review) error {
	for _, existing := range r.reviews {
		if existing.TitleID == rev.TitleID && existing.Author == rev.Author {
			return domain.ErrReviewExists
		}
	}
	r.nextID++
	rev.ID = r.nextID
	c := *rev
	r.reviews[rev.ID] = &c
	return nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, titleID, reviewID int64) (*domain.Review, error) {
	rev, ok := r.reviews[reviewID]
	if !ok || rev.TitleID != titleID {
		return nil, domain.ErrReviewNotFound
	}
	c := *rev
	return &c, nil
}

func (r *stubReviewRepo) List(_ context.Context, titleID int64, _ ports.PageRequest) ([]domain.Review, int64, error) {
	var out []domain.Review
	for _, rev := range r.reviews {
		if rev.TitleID == titleID {
			out = append(out, *rev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *stubReviewRepo) Update(_ context.Context, rev *domain.Review) error {
	if _, ok := r.reviews[rev.ID]; !ok {
		return domain.ErrReviewNotFound
	}
	c := *rev
	r.reviews[rev.ID] = &c
	return nil
}

func (r *stubReviewRepo) Delete(_ context.Context, titleID, reviewID int64) error {
	rev, ok := r.reviews[reviewID]
	if !ok || rev.TitleID != titleID {
		return domain.ErrReviewNotFound
	}
	delete(r.reviews, reviewID)
	return nil
}

func (r *stubReviewRepo) AverageScores(_ context.Context, titleIDs []int64) (map[int64]float64, error) {
	sums := make(map[int64]int)
	counts := make(map[int64]int)
	for _, rev := range r.reviews {
		sums[rev.TitleID] += rev.Score
		counts[rev.TitleID]++
	}
	out := make(map[int64]float64)
	for _, id := range titleIDs {
		if counts[id] > 0 {
			out[id] = float64(sums[id]) / float64(counts[id])
		}
	}
	return out, nil
}

func (r *stubReviewRepo) DeleteByTitle(_ context.Context, titleID int64) error {
	for id, rev := range r.reviews {
		if rev.TitleID == titleID {
			delete(r.reviews, id)
		}
	}
	return nil
}

type stubCommentRepo struct {
	comments map[int64]*domain.Comment
	nextID   int64
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[int64]*domain.Comment)}
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) error {
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.comments[c.ID] = &cp
	return nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, reviewID, commentID int64) (*domain.Comment, error) {
	c, ok := r.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return nil, domain.ErrCommentNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCommentRepo) List(_ context.Context, reviewID int64, _ ports.PageRequest) ([]domain.Comment, int64, error) {
	var out []domain.Comment
	for _, c := range r.comments {
		if c.ReviewID == reviewID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *stubCommentRepo) Update(_ context.Context, c *domain.Comment) error {
	if _, ok := r.comments[c.ID]; !ok {
		return domain.ErrCommentNotFound
	}
	cp := *c
	r.comments[c.ID] = &cp
	return nil
}

func (r *stubCommentRepo) Delete(_ context.Context, reviewID, commentID int64) error {
	c, ok := r.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, commentID)
	return nil
}

func (r *stubCommentRepo) DeleteByReview(_ context.Context, reviewID int64) error {
	for id, c := range r.comments {
		if c.ReviewID == reviewID {
			delete(r.comments, id)
		}
	}
	return nil
}

type stubCategoryRepo struct {
	categories map[string]*domain.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	if _, ok := r.categories[c.Slug]; ok {
		return domain.ErrCategoryExists
	}
	cp := *c
	r.categories[c.Slug] = &cp
	return nil
}

func (r *stubCategoryRepo) FindBySlug(_ context.Context, slug string) (*domain.Category, error) {
	c, ok := r.categories[slug]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCategoryRepo) List(_ context.Context, filter ports.ListTaxonomyFilter) ([]domain.Category, int64, error) {
	var out []domain.Category
	for _, c := range r.categories {
		if filter.Search != "" && !strings.Contains(c.Name, filter.Search) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, int64(len(out)), nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, slug string) error {
	if _, ok := r.categories[slug]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.categories, slug)
	return nil
}

type stubGenreRepo struct {
	genres map[string]*domain.Genre
}

func newStubGenreRepo() *stubGenreRepo {
	return &stubGenreRepo{genres: make(map[string]*domain.Genre)}
}

func (r *stubGenreRepo) Create(_ context.Context, g *domain.Genre) error {
	if _, ok := r.genres[g.Slug]; ok {
		return domain.ErrGenreExists
	}
	gp := *g
	r.genres[g.Slug] = &gp
	return nil
}

func (r *stubGenreRepo) FindBySlugs(_ context.Context, slugs []string) ([]domain.Genre, error) {
	out := make([]domain.Genre, 0, len(slugs))
	for _, slug := range slugs {
		g, ok := r.genres[slug]
		if !ok {
			return nil, domain.ErrGenreNotFound
		}
		out = append(out, *g)
	}
	return out, nil
}

func (r *stubGenreRepo) List(_ context.Context, filter ports.ListTaxonomyFilter) ([]domain.Genre, int64, error) {
	var out []domain.Genre
	for _, g := range r.genres {
		if filter.Search != "" && !strings.Contains(g.Name, filter.Search) {
			continue
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, int64(len(out)), nil
}

func (r *stubGenreRepo) Delete(_ context.Context, slug string) error {
	if _, ok := r.genres[slug]; !ok {
		return domain.ErrGenreNotFound
	}
	delete(r.genres, slug)
	return nil
}
