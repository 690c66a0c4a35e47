package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/qbank-backend/internal/config"
	"github.com/stemsi/qbank-backend/internal/response"
)

// RateLimiter is a per-IP fixed window counter kept in Redis, so every
// server instance shares the same budget.
type RateLimiter struct {
	rdb    *redis.Client
	scope  string
	limit  int           // Requests per window
	window time.Duration // Window length
	log    zerolog.Logger
}

// NewRateLimiter creates a RateLimiter (e.g., 30 requests per minute).
func NewRateLimiter(rdb *redis.Client, scope string, limit int, window time.Duration, log zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		rdb:    rdb,
		scope:  scope,
		limit:  limit,
		window: window,
		log:    log.With().Str("component", "rate_limiter").Str("scope", scope).Logger(),
	}
}

// Middleware returns a Gin middleware that rate-limits requests by IP.
// A Redis outage lets requests through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		key := config.CacheKey.RateLimitKey(rl.scope, c.ClientIP())
		ctx := c.Request.Context()

		var (
			incr *redis.IntCmd
			ttl  *redis.DurationCmd
		)
		_, err := rl.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, key)
			ttl = pipe.TTL(ctx, key)
			return nil
		})
		if err != nil {
			rl.log.Warn().Err(err).Msg("Rate limit check skipped")
			c.Next()
			return
		}
		count := incr.Val()

		// A counter without expiry opens (or repairs) the window. Detached from the
		// request so a client disconnect cannot leave the key without a TTL.
		window := ttl.Val()
		if window <= 0 {
			window = rl.window
			if err := rl.rdb.Expire(context.WithoutCancel(ctx), key, rl.window).Err(); err != nil {
				rl.log.Warn().Err(err).Str("key", key).Msg("Rate limit window not set")
			}
		}

		remaining := int64(rl.limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(rl.limit) {
			c.Header("Retry-After", strconv.Itoa(int(window.Round(time.Second)/time.Second)))
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}
