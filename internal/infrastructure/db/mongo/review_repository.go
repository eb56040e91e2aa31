package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/critiq/review-platform/internal/core/domain"
	"github.com/critiq/review-platform/internal/core/ports"
)

const collectionReviews = "reviews"

type reviewDoc struct {
	ID        int64     `bson:"_id"`
	TitleID   int64     `bson:"title_id"`
	Author    string    `bson:"author"`
	Text      string    `bson:"text"`
	Score     int       `bson:"score"`
	CreatedAt time.Time `bson:"created_at"`
}

func toReviewDoc(rv *domain.Review) reviewDoc {
	return reviewDoc{
		ID:        rv.ID,
		TitleID:   rv.TitleID,
		Author:    rv.Author,
		Text:      rv.Text,
		Score:     rv.Score,
		CreatedAt: rv.CreatedAt,
	}
}

func (d reviewDoc) toDomain() *domain.Review {
	return &domain.Review{
		ID:        d.ID,
		TitleID:   d.TitleID,
		Author:    d.Author,
		Text:      d.Text,
		Score:     d.Score,
		CreatedAt: d.CreatedAt,
	}
}

type ReviewRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{db: db, col: db.Collection(collectionReviews)}
}

// Create assigns the next review id and inserts the document. The unique
// (title_id, author) index turns a second review by the same author into
// domain.ErrReviewExists even under concurrent creation.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSeq(ctx, r.db, collectionReviews)
	if err != nil {
		return err
	}
	rv.ID = id

	if _, err := r.col.InsertOne(ctx, toReviewDoc(rv)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrReviewExists
		}
		return err
	}
	return nil
}

// FindByID retrieves a review scoped to its title; a review id that exists
// under a different title is not found.
func (r *ReviewRepository) FindByID(ctx context.Context, titleID, reviewID int64) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc reviewDoc
	err := r.col.FindOne(ctx, bson.M{"_id": reviewID, "title_id": titleID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ReviewRepository) List(ctx context.Context, titleID int64, page ports.PageRequest) ([]domain.Review, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"title_id": titleID}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(page.Offset()).
		SetLimit(int64(page.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var docs []reviewDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	reviews := make([]domain.Review, 0, len(docs))
	for _, d := range docs {
		reviews = append(reviews, *d.toDomain())
	}
	return reviews, total, nil
}

func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": rv.ID, "title_id": rv.TitleID}, toReviewDoc(rv))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, titleID, reviewID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": reviewID, "title_id": titleID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

// AverageScores computes the mean score per title for the given title ids.
// Titles without reviews produce no entry.
func (r *ReviewRepository) AverageScores(ctx context.Context, titleIDs []int64) (map[int64]float64, error) {
	if len(titleIDs) == 0 {
		return map[int64]float64{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"title_id": bson.M{"$in": titleIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$title_id", "avg": bson.M{"$avg": "$score"}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		TitleID int64   `bson:"_id"`
		Avg     float64 `bson:"avg"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	averages := make(map[int64]float64, len(rows))
	for _, row := range rows {
		averages[row.TitleID] = row.Avg
	}
	return averages, nil
}

// DeleteByTitle removes all reviews under a deleted title.
func (r *ReviewRepository) DeleteByTitle(ctx context.Context, titleID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"title_id": titleID})
	return err
}

// EnsureIndexes creates the unique one-review-per-author-per-title index and
// the listing index.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title_id", Value: 1}, {Key: "author", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "title_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
