package mongo

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/critiq/review-platform/internal/core/domain"
	"github.com/critiq/review-platform/internal/core/ports"
)

const (
	collectionCategories = "categories"
	collectionGenres     = "genres"
)

// taxonomyDoc is the persisted shape shared by categories and genres; the
// slug doubles as the document id, making slug uniqueness an index property.
type taxonomyDoc struct {
	Slug string `bson:"_id"`
	Name string `bson:"name"`
}

// listTaxonomy pages through a taxonomy collection, optionally filtered by a
// name substring, ordered by slug.
func listTaxonomy(ctx context.Context, col *mongo.Collection, filter ports.ListTaxonomyFilter) ([]taxonomyDoc, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
	}

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(filter.Page.Offset()).
		SetLimit(int64(filter.Page.Limit))

	cur, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var docs []taxonomyDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection(collectionCategories)}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, taxonomyDoc{Slug: c.Slug, Name: c.Name}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrCategoryExists
		}
		return err
	}
	return nil
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc taxonomyDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": slug}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &domain.Category{Name: doc.Name, Slug: doc.Slug}, nil
}

func (r *CategoryRepository) List(ctx context.Context, filter ports.ListTaxonomyFilter) ([]domain.Category, int64, error) {
	docs, total, err := listTaxonomy(ctx, r.col, filter)
	if err != nil {
		return nil, 0, err
	}
	categories := make([]domain.Category, 0, len(docs))
	for _, d := range docs {
		categories = append(categories, domain.Category{Name: d.Name, Slug: d.Slug})
	}
	return categories, total, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, slug string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": slug})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

type GenreRepository struct {
	col *mongo.Collection
}

func NewGenreRepository(db *mongo.Database) *GenreRepository {
	return &GenreRepository{col: db.Collection(collectionGenres)}
}

func (r *GenreRepository) Create(ctx context.Context, g *domain.Genre) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, taxonomyDoc{Slug: g.Slug, Name: g.Name}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrGenreExists
		}
		return err
	}
	return nil
}

// FindBySlugs resolves the given slugs, preserving input order. Any unknown
// slug fails the whole lookup with domain.ErrGenreNotFound.
func (r *GenreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]domain.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": slugs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []taxonomyDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	bySlug := make(map[string]domain.Genre, len(docs))
	for _, d := range docs {
		bySlug[d.Slug] = domain.Genre{Name: d.Name, Slug: d.Slug}
	}

	genres := make([]domain.Genre, 0, len(slugs))
	for _, slug := range slugs {
		g, ok := bySlug[slug]
		if !ok {
			return nil, domain.ErrGenreNotFound
		}
		genres = append(genres, g)
	}
	return genres, nil
}

func (r *GenreRepository) List(ctx context.Context, filter ports.ListTaxonomyFilter) ([]domain.Genre, int64, error) {
	docs, total, err := listTaxonomy(ctx, r.col, filter)
	if err != nil {
		return nil, 0, err
	}
	genres := make([]domain.Genre, 0, len(docs))
	for _, d := range docs {
		genres = append(genres, domain.Genre{Name: d.Name, Slug: d.Slug})
	}
	return genres, total, nil
}

func (r *GenreRepository) Delete(ctx context.Context, slug string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": slug})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrGenreNotFound
	}
	return nil
}
