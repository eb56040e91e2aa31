package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/critiq/review-platform/internal/core/domain"
	"github.com/critiq/review-platform/internal/core/ports"
)

const collectionTitles = "titles"

// taxonomyRef is the denormalized category/genre embedded in a title
// document. Renames of a taxonomy entry do not propagate; the slug is the
// stable key.
type taxonomyRef struct {
	Name string `bson:"name"`
	Slug string `bson:"slug"`
}

// titleDoc is the persisted shape of a title. The rating is deliberately
// absent: it is aggregated from reviews on read.
type titleDoc struct {
	ID          int64         `bson:"_id"`
	Name        string        `bson:"name"`
	Year        int           `bson:"year"`
	Description string        `bson:"description,omitempty"`
	Category    taxonomyRef   `bson:"category"`
	Genres      []taxonomyRef `bson:"genres"`
}

func toTitleDoc(t *domain.Title) titleDoc {
	genres := make([]taxonomyRef, 0, len(t.Genres))
	for _, g := range t.Genres {
		genres = append(genres, taxonomyRef{Name: g.Name, Slug: g.Slug})
	}
	return titleDoc{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Category:    taxonomyRef{Name: t.Category.Name, Slug: t.Category.Slug},
		Genres:      genres,
	}
}

func (d titleDoc) toDomain() *domain.Title {
	genres := make([]domain.Genre, 0, len(d.Genres))
	for _, g := range d.Genres {
		genres = append(genres, domain.Genre{Name: g.Name, Slug: g.Slug})
	}
	return &domain.Title{
		ID:          d.ID,
		Name:        d.Name,
		Year:        d.Year,
		Description: d.Description,
		Category:    domain.Category{Name: d.Category.Name, Slug: d.Category.Slug},
		Genres:      genres,
	}
}

type TitleRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewTitleRepository(db *mongo.Database) *TitleRepository {
	return &TitleRepository{db: db, col: db.Collection(collectionTitles)}
}

// Create assigns the next title id and inserts the document.
func (r *TitleRepository) Create(ctx context.Context, t *domain.Title) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSeq(ctx, r.db, collectionTitles)
	if err != nil {
		return err
	}
	t.ID = id

	_, err = r.col.InsertOne(ctx, toTitleDoc(t))
	return err
}

func (r *TitleRepository) FindByID(ctx context.Context, id int64) (*domain.Title, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc titleDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTitleNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// List returns a page of titles ordered by id, narrowed by the filter's
// category slug, genre slug, name substring and exact year.
func (r *TitleRepository) List(ctx context.Context, filter ports.ListTitlesFilter) ([]domain.Title, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CategorySlug != "" {
		query["category.slug"] = filter.CategorySlug
	}
	if filter.GenreSlug != "" {
		query["genres.slug"] = filter.GenreSlug
	}
	if filter.Name != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.Name), "$options": "i"}
	}
	if filter.Year != 0 {
		query["year"] = filter.Year
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(filter.Page.Offset()).
		SetLimit(int64(filter.Page.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var docs []titleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	titles := make([]domain.Title, 0, len(docs))
	for _, d := range docs {
		titles = append(titles, *d.toDomain())
	}
	return titles, total, nil
}

func (r *TitleRepository) Update(ctx context.Context, t *domain.Title) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, toTitleDoc(t))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTitleNotFound
	}
	return nil
}

func (r *TitleRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTitleNotFound
	}
	return nil
}

// EnsureIndexes creates the search indexes used by List.
func (r *TitleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category.slug", Value: 1}}},
		{Keys: bson.D{{Key: "genres.slug", Value: 1}}},
		{Keys: bson.D{{Key: "year", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
