package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// rateLimitScript implements a fixed window counter atomically: the first hit
// in a window sets the expiry, later hits only increment. Returns the count
// inside the current window.
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimit limits each client IP to limit requests per window on the routes
// it wraps. Intended for the public intake endpoints. If Redis is down the
// request passes; availability wins over throttling accuracy.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ratelimit:" + c.Path() + ":" + c.RealIP()

			count, err := rateLimitScript.Run(c.Request().Context(), rdb,
				[]string{key}, window.Milliseconds()).Int64()
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limit check failed, allowing request")
				return next(c)
			}

			if count > int64(limit) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, slow down")
			}
			return next(c)
		}
	}
}
