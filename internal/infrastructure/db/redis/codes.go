package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/critiq/review-platform/internal/core/domain"
)

// codeBytes of entropy per confirmation code; hex-encoded on the wire.
const codeBytes = 16

// CodeStore keeps one-time confirmation codes in Redis, bcrypt-hashed so a
// dump of the store cannot be replayed. Key format: confirm:<username>.
type CodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCodeStore creates a CodeStore wrapping the given Redis client. Codes
// expire after ttl.
func NewCodeStore(client *redis.Client, ttl time.Duration) *CodeStore {
	return &CodeStore{client: client, ttl: ttl}
}

// Issue generates a fresh code for the user, stores its hash and returns the
// plaintext. Any previous code for the same user is replaced.
func (s *CodeStore) Issue(ctx context.Context, username string) (string, error) {
	buf := make([]byte, codeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	code := hex.EncodeToString(buf)

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash code: %w", err)
	}

	if err := s.client.Set(ctx, s.key(username), hash, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}
	return code, nil
}

// Verify compares code against the stored hash. A match consumes the code; a
// mismatch or a missing/expired code is domain.ErrInvalidCode.
func (s *CodeStore) Verify(ctx context.Context, username, code string) error {
	hash, err := s.client.Get(ctx, s.key(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ErrInvalidCode
		}
		return fmt.Errorf("load code: %w", err)
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(code)) != nil {
		return domain.ErrInvalidCode
	}

	if err := s.client.Del(ctx, s.key(username)).Err(); err != nil {
		return fmt.Errorf("consume code: %w", err)
	}
	return nil
}

func (s *CodeStore) key(username string) string {
	return "confirm:" + username
}
