package config

import "time"

// RateLimitConfig drives the Redis token bucket middleware.  Each key
// starts with Capacity tokens and regains RefillTokens every
// RefillInterval; a request costs one token.  Buckets idle for TTL expire.
//
// KeyStrategy is one of ip, vendor, route, ip_vendor, vendor_route,
// ip_route or all.  Debug logs blocks and Redis errors and exposes the bucket key in
// X-RateLimit-Key.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
    Debug          bool
}

func LoadRateLimitConfig() RateLimitConfig {
    c := RateLimitConfig{
        Enabled:        envBool("RATE_LIMIT_ENABLED", true),
        Capacity:       envInt("RATE_LIMIT_CAPACITY", 60),
        RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:    envStr("RATE_LIMIT_KEY_STRATEGY", "ip_route"),
        Prefix:         envStr("RATE_LIMIT_PREFIX", "market:rl"),
        Debug:          envBool("RATE_LIMIT_DEBUG", false),
    }
    return c.normalized()
}

// normalized clamps values so the Lua script never sees a zero capacity or
// interval, and keys outlive at least five refill periods.
func (c RateLimitConfig) normalized() RateLimitConfig {
    if c.Capacity < 1 {
        c.Capacity = 1
    }
    if c.RefillTokens < 1 {
        c.RefillTokens = 1
    }
    if c.RefillInterval <= 0 {
        c.RefillInterval = time.Second
    }
    if minTTL := 5 * c.RefillInterval; c.TTL < minTTL {
        c.TTL = minTTL
    }
    return c
}
