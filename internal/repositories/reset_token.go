package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-microblog/internal/logger"
)

// ResetTokenRepository remembers spent password reset tokens in Redis
// until they would have expired anyway.
type ResetTokenRepository struct {
	client *redis.Client
}

func NewResetTokenRepository(client *redis.Client) *ResetTokenRepository {
	return &ResetTokenRepository{client: client}
}

func resetTokenKey(tokenID string) string {
	return fmt.Sprintf("reset_token:spent:%s", tokenID)
}

// MarkSpent records tokenID as used for ttl. Reports false if it was already spent.
func (r *ResetTokenRepository) MarkSpent(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	key := resetTokenKey(tokenID)
	ok, err := r.client.SetNX(ctx, key, time.Now().Unix(), ttl).Result()

	logger.Log.Infow("redis setnx",
		"key", key,
		"ttl", ttl,
		"result", ok,
		"error", err,
	)

	return ok, err
}

// IsSpent reports whether tokenID was already used.
func (r *ResetTokenRepository) IsSpent(ctx context.Context, tokenID string) (bool, error) {
	key := resetTokenKey(tokenID)
	n, err := r.client.Exists(ctx, key).Result()

	logger.Log.Infow("redis exists",
		"key", key,
		"result", n,
		"error", err,
	)

	return n > 0, err
}
