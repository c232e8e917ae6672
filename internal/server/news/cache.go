package news

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "news:"

// cacheClient is the part of *redis.Client the cache needs.
type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedProvider serves repeated category lookups from Redis. Cache errors
// are logged and bypassed; they never fail a fetch.
type CachedProvider struct {
	next   *Provider
	client cacheClient
	ttl    time.Duration
	logger logging.Logger
}

func NewCachedProvider(next *Provider, client cacheClient, ttl time.Duration, logger logging.Logger) *CachedProvider {
	return &CachedProvider{next: next, client: client, ttl: ttl, logger: logger.With("module", "news-cache")}
}

func (c *CachedProvider) Fetch(ctx context.Context, category string) ([]Article, error) {
	// placeholders are cheap and must disappear as soon as a key is configured
	if !c.next.Configured() {
		return c.next.Fetch(ctx, category)
	}

	key := cacheKey(category)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var articles []Article
		if jerr := json.Unmarshal(raw, &articles); jerr == nil {
			return articles, nil
		}
		c.logger.Warn(ctx, "dropping undecodable cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn(ctx, "news cache read failed", "key", key, "error", err)
	}

	articles, err := c.next.Fetch(ctx, category)
	if err != nil {
		return nil, err
	}

	if payload, jerr := json.Marshal(articles); jerr == nil {
		if serr := c.client.Set(ctx, key, payload, c.ttl).Err(); serr != nil {
			c.logger.Warn(ctx, "news cache write failed", "key", key, "error", serr)
		}
	}
	return articles, nil
}

// cacheKey folds every unrecognised category onto the general key, since
// they all produce the same upstream query.
func cacheKey(category string) string {
	if _, ok := categoryQueries[category]; !ok {
		category = "general"
	}
	return cacheKeyPrefix + category
}

// NewRedisClient opens a client for addr.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}
