package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/dkowalski/wardrobe-api/internal/config"
)

// cachedResponse is the envelope stored in Redis: enough to replay a
// successful JSON response byte for byte.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// captureWriter tees the response body so a successful reply can be stored
// after it has been sent to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	limit  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.buf.Len() < cw.limit {
		room := cw.limit - cw.buf.Len()
		if len(b) <= room {
			cw.buf.Write(b)
		} else {
			cw.buf.Write(b[:room])
		}
	}
	return cw.ResponseWriter.Write(b)
}

// CacheKey builds the Redis key for one user's view of one route. Keys are
// namespaced per user so one account can never be served another account's
// cached wardrobe, and so the closet.changed consumer can drop everything
// for a single owner with a `prefix:u<id>:*` scan.
func CacheKey(prefix string, userID uint64, route, query string) string {
	sum := sha1.Sum([]byte(route + "?" + query))
	return fmt.Sprintf("%s:u%d:%x", prefix, userID, sum[:8])
}

// UserCacheKeyPattern is the match pattern covering every cached response
// owned by one user.
func UserCacheKeyPattern(prefix string, userID uint64) string {
	return fmt.Sprintf("%s:u%d:*", prefix, userID)
}

// responseStore is the slice of the Redis API the cache uses.
type responseStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// redisStore adapts *redis.Client to responseStore.
type redisStore struct{ rdb *redis.Client }

func (s redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.rdb.Get(ctx, key).Bytes()
}

func (s redisStore) SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.rdb.SetEx(ctx, key, value, ttl).Err()
}

// ResponseCache returns a middleware caching successful GET responses in
// Redis for authenticated routes. It must run after TokenAuth, since the
// cache key includes the authenticated user id. With caching disabled or
// no Redis client available it degrades to a passthrough.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return responseCache(cfg, redisStore{rdb: rdb})
}

func responseCache(cfg config.CacheConfig, store responseStore) echo.MiddlewareFunc {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			uid, ok := c.Get(ContextUserID).(uint64)
			if !ok {
				return next(c)
			}

			// Key on the concrete request path, not the registered route
			// pattern: /v1/items/1 and /v1/items/2 are distinct entries.
			ctx := c.Request().Context()
			key := CacheKey(cfg.Prefix, uid, c.Request().URL.Path, c.Request().URL.RawQuery)

			if bs, err := store.Get(ctx, key); err == nil {
				var cr cachedResponse
				if json.Unmarshal(bs, &cr) == nil && cr.Status != 0 {
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(cr.Status, cr.ContentType, cr.Body)
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			// Only complete 200s are worth replaying; failed or truncated
			// captures are skipped rather than served wrong later.
			if cw.status == http.StatusOK && cw.buf.Len() < cfg.MaxBodyBytes {
				payload, err := json.Marshal(cachedResponse{
					Status:      cw.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        cw.buf.Bytes(),
				})
				if err == nil {
					_ = store.SetEx(context.Background(), key, payload, ttl)
				}
			}
			return nil
		}
	}
}
