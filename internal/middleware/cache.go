package middleware

import (
    "bytes"
    "crypto/sha1"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/christianq-alva/laboratorios-sub000/internal/config"
)

// bodyRecorder forwards the response to the client while keeping a
// copy for the cache.
type bodyRecorder struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
}

func (r *bodyRecorder) WriteHeader(code int) {
    r.status = code
    r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
    r.buf.Write(b)
    return r.ResponseWriter.Write(b)
}

// CacheGET caches successful JSON responses of GET endpoints in Redis,
// keyed by route and query string.  Responses whose status is not 200
// are never cached, so conflict verdicts and errors stay fresh.  Only
// a subset of routes opts in (per-group registration); with no Redis
// the middleware is a no-op.
func CacheGET(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passthrough
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }
            key := cacheKey(cfg.Prefix, c)
            ctx := c.Request().Context()
            if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
                c.Response().Header().Set("X-Cache", "HIT")
                return c.JSONBlob(http.StatusOK, body)
            }

            rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK}
            c.Response().Writer = rec
            if err := next(c); err != nil {
                return err
            }
            if rec.status == http.StatusOK && rec.buf.Len() > 0 {
                _ = rdb.Set(ctx, key, rec.buf.Bytes(), cfg.TTL).Err()
            }
            return nil
        }
    }
}

// InvalidateCache flushes the cache namespace after a successful write
// so read endpoints never serve a reservation state that no longer
// exists.  Called by write handlers, not registered as middleware.
func InvalidateCache(cfg config.CacheConfig, rdb *redis.Client, c echo.Context) {
    if rdb == nil {
        return
    }
    ctx := c.Request().Context()
    iter := rdb.Scan(ctx, 0, cfg.Prefix+":*", 200).Iterator()
    keys := make([]string, 0, 16)
    for iter.Next(ctx) {
        keys = append(keys, iter.Val())
    }
    if len(keys) > 0 {
        _ = rdb.Del(ctx, keys...).Err()
    }
}

func cacheKey(prefix string, c echo.Context) string {
    r := c.Request()
    sum := sha1.Sum([]byte(c.Path() + "?" + r.URL.RawQuery))
    return fmt.Sprintf("%s:%x", prefix, sum[:])
}
