package draft

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/auracity/admin-review-bot/internal/review"
)

// draftTTL bounds abandoned drafts in redis. Unlike the in-process
// registry, redis outlives restarts, so leaked drafts need a ceiling.
const draftTTL = 24 * time.Hour

// RedisRegistry stores each draft as a redis hash keyed by the
// (admin, rater) pair, one hash field per category. HSET is atomic on the
// server, so concurrent picks for the same key cannot lose a field.
type RedisRegistry struct {
	client *redis.Client
}

func NewRedisRegistry(client *redis.Client) *RedisRegistry {
	return &RedisRegistry{client: client}
}

func draftKey(key review.DraftKey) string {
	return fmt.Sprintf("draft:%s:%s", key.AdminID, key.RaterID)
}

func (r *RedisRegistry) load(ctx context.Context, key review.DraftKey) (review.Draft, error) {
	fields, err := r.client.HGetAll(ctx, draftKey(key)).Result()
	if err != nil {
		return review.Draft{}, fmt.Errorf("hgetall draft: %w", err)
	}

	var d review.Draft
	for _, cat := range review.Categories {
		raw, ok := fields[string(cat)]
		if !ok {
			continue
		}
		score, err := strconv.Atoi(raw)
		if err != nil {
			return review.Draft{}, fmt.Errorf("corrupt draft field %s=%q: %w", cat, raw, err)
		}
		d.Set(cat, score)
	}
	return d, nil
}

func (r *RedisRegistry) GetOrCreate(ctx context.Context, key review.DraftKey) (review.Draft, error) {
	// The hash materializes on the first field write; an empty hash and a
	// fresh draft are indistinguishable, so a read suffices here.
	return r.load(ctx, key)
}

func (r *RedisRegistry) SetField(ctx context.Context, key review.DraftKey, cat review.Category, score int) (review.Draft, error) {
	k := draftKey(key)
	if err := r.client.HSet(ctx, k, string(cat), score).Err(); err != nil {
		return review.Draft{}, fmt.Errorf("hset draft: %w", err)
	}
	if err := r.client.Expire(ctx, k, draftTTL).Err(); err != nil {
		return review.Draft{}, fmt.Errorf("expire draft: %w", err)
	}
	return r.load(ctx, key)
}

func (r *RedisRegistry) Remove(ctx context.Context, key review.DraftKey) error {
	if err := r.client.Del(ctx, draftKey(key)).Err(); err != nil {
		return fmt.Errorf("del draft: %w", err)
	}
	return nil
}
