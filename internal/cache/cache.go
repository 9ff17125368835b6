package cache

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "page:"

// PageCache memoizes rendered HTML responses in redis, keyed by path+query.
// A nil redis client disables caching entirely.
type PageCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *PageCache {
	return &PageCache{rdb: rdb, ttl: ttl}
}

// Middleware serves the cached body for GET requests until the TTL lapses.
// Stale entries are expected: a deleted post stays on a cached page until
// expiry or an explicit Clear.
func (p *PageCache) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if p.rdb == nil || c.Method() != fiber.MethodGet {
			return c.Next()
		}

		key := keyPrefix + c.OriginalURL()
		if body, err := p.rdb.Get(c.Context(), key).Bytes(); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
			return c.Send(body)
		}

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			if err := p.rdb.Set(c.Context(), key, body, p.ttl).Err(); err != nil {
				log.Printf("page cache set: %v", err)
			}
		}
		return nil
	}
}

// Clear drops every cached page.
func (p *PageCache) Clear(ctx context.Context) error {
	if p.rdb == nil {
		return nil
	}
	iter := p.rdb.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := p.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
