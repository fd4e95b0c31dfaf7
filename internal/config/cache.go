package config

import (
    "os"
    "strconv"
    "time"
)

// CacheConfig controls the Redis response cache applied to read-only
// GET endpoints (availability checks, stock browse).
type CacheConfig struct {
    Enabled bool          // master switch
    TTL     time.Duration // lifetime of a cached response
    Prefix  string        // key namespace
}

// LoadCacheConfig reads CACHE_* variables with sane defaults.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled: envBool("CACHE_ENABLED", true),
        TTL:     envDur("CACHE_TTL", 15*time.Second),
        Prefix:  envStr("CACHE_PREFIX", "cache"),
    }
}

// RateLimitConfig controls the fixed-window request limiter.
type RateLimitConfig struct {
    Enabled bool          // master switch
    Limit   int           // max requests per window
    Window  time.Duration // window length
    Prefix  string        // key namespace
}

// LoadRateLimitConfig reads RATE_LIMIT_* variables with sane defaults.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled: envBool("RATE_LIMIT_ENABLED", true),
        Limit:   envInt("RATE_LIMIT_MAX", 120),
        Window:  envDur("RATE_LIMIT_WINDOW", time.Minute),
        Prefix:  envStr("RATE_LIMIT_PREFIX", "rl"),
    }
    if cfg.Limit < 1 {
        cfg.Limit = 1
    }
    if cfg.Window <= 0 {
        cfg.Window = time.Minute
    }
    return cfg
}

func envStr(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func envBool(key string, def bool) bool {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    b, err := strconv.ParseBool(v)
    if err != nil {
        return def
    }
    return b
}

func envInt(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    if n, err := strconv.Atoi(v); err == nil {
        return n
    }
    return def
}

func envDur(key string, def time.Duration) time.Duration {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    if d, err := time.ParseDuration(v); err == nil {
        return d
    }
    return def
}
