package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every index the repositories rely on. Index creation
// is idempotent; run it at startup before serving traffic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := NewTitleRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("title indexes: %w", err)
	}
	if err := NewReviewRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("review indexes: %w", err)
	}
	if err := NewCommentRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("comment indexes: %w", err)
	}
	return nil
}
