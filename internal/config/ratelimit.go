package config

import (
    "strings"
    "time"
)

// RateLimitConfig configures the Redis token bucket placed in front of the
// API.  Requests that change reservations (POST, PUT, DELETE) draw from a
// smaller bucket of WriteCapacity tokens so a script hammering the booking
// endpoint cannot starve people browsing the timeline.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    WriteCapacity  int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
    SkipPaths      map[string]bool
    Debug          bool
}

// LoadRateLimitConfig reads RATE_LIMIT_* variables and clamps them to
// usable values.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        envBool("RATE_LIMIT_ENABLED", true),
        Capacity:       envInt("RATE_LIMIT_CAPACITY", 60),
        WriteCapacity:  envInt("RATE_LIMIT_WRITE_CAPACITY", 10),
        RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:    envStr("RATE_LIMIT_KEY_STRATEGY", "ip_route"),
        Prefix:         envStr("RATE_LIMIT_PREFIX", "lab:rl"),
        SkipPaths:      map[string]bool{},
        Debug:          envBool("RATE_LIMIT_DEBUG", false),
    }
    for _, p := range strings.Split(envStr("RATE_LIMIT_SKIP_PATHS", "/healthz,/readyz"), ",") {
        if p = strings.TrimSpace(p); p != "" {
            cfg.SkipPaths[p] = true
        }
    }
    if cfg.Capacity < 1 {
        cfg.Capacity = 1
    }
    if cfg.WriteCapacity > cfg.Capacity {
        cfg.WriteCapacity = cfg.Capacity
    }
    if cfg.RefillTokens < 1 {
        cfg.RefillTokens = 1
    }
    if cfg.RefillInterval <= 0 {
        cfg.RefillInterval = time.Second
    }
    // a bucket must outlive several refills or it resets to full
    if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
        cfg.TTL = minTTL
    }
    return cfg
}
