package middleware

import (
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/iliyamo/cinema-ticketing/internal/config"
    "github.com/iliyamo/cinema-ticketing/internal/logging"
)

// takeToken refills every bucket in KEYS, then takes one token from each
// of them only if all of them have one.  Returns {allowed, remaining,
// retry_after_ms}.
var takeToken = redis.NewScript(`
local now = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local buckets = {}
local denied = false
local wait = 0
for i, key in ipairs(KEYS) do
    local state = redis.call('HMGET', key, 'tokens', 'refilled_ms')
    local tokens = tonumber(state[1]) or capacity
    local refilled = tonumber(state[2]) or now
    local gained = math.floor(math.max(0, now - refilled) / interval)
    if gained > 0 then
        tokens = math.min(capacity, tokens + gained)
        refilled = refilled + gained * interval
    end
    if tokens < 1 then
        denied = true
        wait = math.max(wait, interval - (now - refilled))
    end
    buckets[i] = {tokens, refilled}
end

local remaining = capacity
for i, key in ipairs(KEYS) do
    local tokens = buckets[i][1]
    if not denied then
        tokens = tokens - 1
    end
    remaining = math.min(remaining, tokens)
    redis.call('HSET', key, 'tokens', tokens, 'refilled_ms', buckets[i][2])
    redis.call('EXPIRE', key, ttl)
end

if denied then
    return {0, remaining, wait}
end
return {1, remaining, 0}
`)

// NewLoginThrottle limits POSTs to the credential forms.  Each request
// draws from two Redis token buckets: one for the client address and one
// for the e-mail address it submits, so guessing one account's password
// from many addresses is throttled as well.  Redis errors fail open.
func NewLoginThrottle(cfg config.RateLimitConfig, rdb *redis.Client, logger *zap.Logger) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ctx := c.Request().Context()
            keys := rateKeys(cfg, c)
            res, err := takeToken.Run(ctx, rdb, keys,
                time.Now().UnixMilli(),
                cfg.Capacity,
                cfg.RefillInterval.Milliseconds(),
                int64(cfg.TTL/time.Second),
            ).Int64Slice()
            if err != nil || len(res) != 3 {
                logging.Or(ctx, logger).Warn("rate limit check failed", zap.Strings("keys", keys), zap.Error(err))
                return next(c)
            }

            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(max(res[1], 0), 10))
            if res[0] == 1 {
                return next(c)
            }

            secs := int(math.Ceil(float64(res[2]) / 1000))
            h.Set("Retry-After", strconv.Itoa(secs))
            logging.Or(ctx, logger).Info("credential attempt throttled", zap.Strings("keys", keys))
            return c.JSON(http.StatusTooManyRequests, echo.Map{
                "error":       "too_many_requests",
                "message":     "too many attempts, try again later",
                "retry_after": secs,
            })
        }
    }
}

// rateKeys names the buckets a credential request draws from:
// "<prefix>:<method> <route>:ip:<addr>" always, and
// "<prefix>:<method> <route>:account:<email>" when an e-mail was submitted.
// The e-mail is normalised the way the user service stores it.
func rateKeys(cfg config.RateLimitConfig, c echo.Context) []string {
    base := cfg.Prefix + ":" + c.Request().Method + " " + c.Path()
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    keys := []string{base + ":ip:" + ip}
    if email := strings.ToLower(strings.TrimSpace(c.FormValue("email"))); email != "" {
        keys = append(keys, base+":account:"+email)
    }
    return keys
}
