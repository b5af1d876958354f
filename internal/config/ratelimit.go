package config

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// RateLimitConfig configures the throttle in front of the credential forms
// (login and registration).  Every bucket holds Capacity attempts and gets
// one back per RefillInterval.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillInterval time.Duration
    TTL            time.Duration // idle buckets are dropped after this long
    Prefix         string
}

// LoadRateLimitConfig builds a RateLimitConfig from RATE_LIMIT_* variables.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        envBool("RATE_LIMIT_ENABLED", true),
        Capacity:       max(envInt("RATE_LIMIT_CAPACITY", 5), 1),
        RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", 12*time.Second),
        Prefix:         envStr("RATE_LIMIT_PREFIX", "rl"),
    }
    if cfg.RefillInterval <= 0 {
        cfg.RefillInterval = time.Second
    }
    // a bucket must outlive its own refill or it resets early
    full := time.Duration(cfg.Capacity) * cfg.RefillInterval
    cfg.TTL = max(envDur("RATE_LIMIT_TTL", full), full)
    return cfg
}

func envStr(k, d string) string {
    if v := os.Getenv(k); v != "" {
        return v
    }
    return d
}

func envBool(k string, d bool) bool {
    switch strings.ToLower(os.Getenv(k)) {
    case "1", "true", "yes", "on":
        return true
    case "0", "false", "no", "off":
        return false
    }
    return d
}

func envInt(k string, d int) int {
    if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
        return n
    }
    return d
}

func envDur(k string, d time.Duration) time.Duration {
    if dur, err := time.ParseDuration(os.Getenv(k)); err == nil {
        return dur
    }
    return d
}
