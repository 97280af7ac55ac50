package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"mayz/internal/models"
)

// RateLimitConfig controls the fixed-window rate limiter.
type RateLimitConfig struct {
	// Max requests allowed per window.
	Max int
	// Window duration.
	Window time.Duration
	// KeyPrefix namespaces counters in Redis.
	KeyPrefix string
}

// DefaultRateLimit is applied to authentication endpoints.
var DefaultRateLimit = RateLimitConfig{
	Max:       10,
	Window:    time.Minute,
	KeyPrefix: "ratelimit:auth",
}

// RateLimiter returns a Fiber middleware enforcing a fixed-window limit per
// client IP, backed by Redis INCR. If Redis is unavailable the request is
// allowed through rather than failing the whole API.
func RateLimiter(rdb *redis.Client, cfg RateLimitConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil {
			return c.Next()
		}

		ctx := c.UserContext()
		key := fmt.Sprintf("%s:%s", cfg.KeyPrefix, c.IP())

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			RedisErrors.WithLabelValues("incr").Inc()
			Logger.WarnContext(ctx, "rate limiter unavailable, allowing request", "error", err)
			return c.Next()
		}

		if count == 1 {
			if err := rdb.Expire(ctx, key, cfg.Window).Err(); err != nil {
				RedisErrors.WithLabelValues("expire").Inc()
			}
		}

		if count > int64(cfg.Max) {
			ttl, err := rdb.TTL(ctx, key).Result()
			if err != nil || ttl < 0 {
				ttl = cfg.Window
			}
			c.Set("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, slow down",
				Code:  "RATE_LIMITED",
			})
		}

		return c.Next()
	}
}
