package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when nothing is cached under a key
var ErrMiss = errors.New("cache miss")

// ArticleEntry is a previously fetched article API body
type ArticleEntry struct {
	Body      string    `json:"body"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ArticleCache keeps article API responses so a 304 revalidation can be served
type ArticleCache interface {
	GetArticle(ctx context.Context, locale, articleID string) (*ArticleEntry, error)
	SetArticle(ctx context.Context, locale, articleID string, entry *ArticleEntry) error
}

type redisArticleCache struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

func NewRedisArticleCache(redisClient *redis.Client, ttl time.Duration) ArticleCache {
	return &redisArticleCache{
		redisClient: redisClient,
		keyPrefix:   "kbarticle:article:",
		ttl:         ttl,
	}
}

func articleKey(prefix, locale, articleID string) string {
	return prefix + locale + ":" + articleID
}

func (c *redisArticleCache) GetArticle(ctx context.Context, locale, articleID string) (*ArticleEntry, error) {
	key := articleKey(c.keyPrefix, locale, articleID)
	val, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("failed to get cached article %s: %w", key, err)
	}

	var entry ArticleEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, fmt.Errorf("failed to decode cached article %s: %w", key, err)
	}

	return &entry, nil
}

func (c *redisArticleCache) SetArticle(ctx context.Context, locale, articleID string, entry *ArticleEntry) error {
	key := articleKey(c.keyPrefix, locale, articleID)
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode article %s: %w", key, err)
	}

	if err := c.redisClient.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache article %s: %w", key, err)
	}
	return nil
}
