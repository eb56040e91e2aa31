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

const collectionComments = "comments"

type commentDoc struct {
	ID        int64     `bson:"_id"`
	ReviewID  int64     `bson:"review_id"`
	Author    string    `bson:"author"`
	Text      string    `bson:"text"`
	CreatedAt time.Time `bson:"created_at"`
}

func toCommentDoc(c *domain.Comment) commentDoc {
	return commentDoc{
		ID:        c.ID,
		ReviewID:  c.ReviewID,
		Author:    c.Author,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func (d commentDoc) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        d.ID,
		ReviewID:  d.ReviewID,
		Author:    d.Author,
		Text:      d.Text,
		CreatedAt: d.CreatedAt,
	}
}

type CommentRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{db: db, col: db.Collection(collectionComments)}
}

// Create assigns the next comment id and inserts the document.
func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSeq(ctx, r.db, collectionComments)
	if err != nil {
		return err
	}
	c.ID = id

	_, err = r.col.InsertOne(ctx, toCommentDoc(c))
	return err
}

// FindByID retrieves a comment scoped to its review.
func (r *CommentRepository) FindByID(ctx context.Context, reviewID, commentID int64) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc commentDoc
	err := r.col.FindOne(ctx, bson.M{"_id": commentID, "review_id": reviewID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *CommentRepository) List(ctx context.Context, reviewID int64, page ports.PageRequest) ([]domain.Comment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"review_id": reviewID}

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

	var docs []commentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	comments := make([]domain.Comment, 0, len(docs))
	for _, d := range docs {
		comments = append(comments, *d.toDomain())
	}
	return comments, total, nil
}

func (r *CommentRepository) Update(ctx context.Context, c *domain.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID, "review_id": c.ReviewID}, toCommentDoc(c))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, reviewID, commentID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": commentID, "review_id": reviewID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

// DeleteByReview removes all comments under a deleted review.
func (r *CommentRepository) DeleteByReview(ctx context.Context, reviewID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"review_id": reviewID})
	return err
}

// EnsureIndexes creates the listing index.
func (r *CommentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "review_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
