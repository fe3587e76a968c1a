package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/restaurant-booking/internal/catalog"
	"github.com/iliyamo/restaurant-booking/internal/config"
)

const cacheWriteTimeout = time.Second

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// cachedMenu is what a cache entry holds.  Only 200 responses are stored,
// so the status is implied.
type cachedMenu struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// bodyRecorder copies the response body while it is written to the
// client.  Once more than limit bytes have been written the copy is
// dropped and overflow is set.
type bodyRecorder struct {
	http.ResponseWriter
	status   int
	body     bytes.Buffer
	limit    int
	overflow bool
}

func (r *bodyRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	if !r.overflow {
		if r.limit > 0 && r.body.Len()+len(b) > r.limit {
			r.overflow = true
			r.body.Reset()
		} else {
			r.body.Write(b)
		}
	}
	return r.ResponseWriter.Write(b)
}

// menuCacheKey maps a menu request to its cache key.  Listing requests are
// keyed by the parsed catalog.Query, so ?category=lunch&veg=1 and
// ?veg=true&category=Lunch share an entry.  ok is false when the query
// does not parse; the handler answers those with 400.
func menuCacheKey(prefix string, c echo.Context) (key string, ok bool) {
	if id := c.Param("id"); id != "" {
		return fmt.Sprintf("%s:item:%x", prefix, sha1.Sum([]byte(id))), true
	}
	q, err := catalog.ParseQuery(c.QueryParam)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%s:menu:%x", prefix, sha1.Sum([]byte(q.Key()))), true
}

// NewMenuCache serves GET /menu and GET /menu/items/:id from Redis.  A
// miss runs the handler and stores its 200 response for cfg.TTL.  Redis
// errors are logged and the request is served uncached.
func NewMenuCache(cfg config.CacheConfig, rdb *redis.Client, log *zap.Logger) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}
	if log == nil {
		log = zap.NewNop()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			key, ok := menuCacheKey(cfg.Prefix, c)
			if !ok {
				return next(c)
			}

			ctx := c.Request().Context()
			raw, err := rdb.Get(ctx, key).Bytes()
			switch {
			case err == nil:
				var hit cachedMenu
				if json.Unmarshal(raw, &hit) == nil {
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(http.StatusOK, hit.ContentType, hit.Body)
				}
				log.Warn("menu cache: corrupt entry", zap.String("key", key))
			case !errors.Is(err, redis.Nil):
				log.Warn("menu cache: read failed", zap.String("key", key), zap.Error(err))
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")
			if err := next(c); err != nil {
				return err
			}
			if rec.status != http.StatusOK || rec.overflow {
				return nil
			}

			entry, err := json.Marshal(cachedMenu{
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				Body:        rec.body.Bytes(),
			})
			if err != nil {
				return nil
			}
			// The response is already flushed; the client may be gone.
			wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
			defer cancel()
			if err := rdb.Set(wctx, key, entry, cfg.TTL).Err(); err != nil {
				log.Warn("menu cache: write failed", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}
