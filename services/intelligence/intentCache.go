package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"slotwise/models"

	"github.com/go-redis/redis/v8"
)

const intentCachePrefix = "intent:"

// intentKeyLayout matches the clock resolution the prompt gives the model.
const intentKeyLayout = "2006-01-02T15:04"

// RedisIntentCache stores extracted intents keyed by the prompt's current
// minute and the normalised text. Relative phrases like "in two hours" resolve
// against that minute, so an entry is only reused within it.
type RedisIntentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisIntentCache returns a cache whose entries expire after ttl.
func NewRedisIntentCache(client *redis.Client, ttl time.Duration) *RedisIntentCache {
	return &RedisIntentCache{client: client, ttl: ttl}
}

// Get returns the intent stored for text at now, if any.
func (s *RedisIntentCache) Get(ctx context.Context, now time.Time, text string) (*models.StructuredIntent, bool, error) {
	data, err := s.client.Get(ctx, intentKey(now, text)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var intent models.StructuredIntent
	if err := json.Unmarshal([]byte(data), &intent); err != nil {
		return nil, false, err
	}
	return &intent, true, nil
}

// Set stores intent for text at now.
func (s *RedisIntentCache) Set(ctx context.Context, now time.Time, text string, intent *models.StructuredIntent) error {
	b, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, intentKey(now, text), b, s.ttl).Err()
}

// Clear drops the entry for text at now.
func (s *RedisIntentCache) Clear(ctx context.Context, now time.Time, text string) error {
	return s.client.Del(ctx, intentKey(now, text)).Err()
}

func intentKey(now time.Time, text string) string {
	sum := sha256.Sum256([]byte(normalise(text)))
	return intentCachePrefix + now.Format(intentKeyLayout) + ":" + hex.EncodeToString(sum[:])
}

func normalise(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
