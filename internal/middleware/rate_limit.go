package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// RateLimiter counts requests per user in fixed redis windows. Without
// redis, or while redis fails, it falls back to an in-process token bucket
// per user with the same average rate.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig

	mu        sync.Mutex
	local     map[string]*localLimiter
	lastSweep time.Time
	now       func() time.Time
}

// localLimiter is a per-user token bucket and when it was last used
type localLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a new rate limiter instance. redisClient may be nil.
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		local:  make(map[string]*localLimiter),
		now:    time.Now,
	}
}

// NewRecipeCreationRateLimiter limits how many recipes a user may publish
func NewRecipeCreationRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    window,
		Limit:     limit,
		KeyPrefix: "rate_limit:recipe_creation",
	})
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting.
// It must run after AuthMiddleware.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := ViewerFrom(c)
		if !viewer.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication credentials were not provided"})
			return
		}

		userID := viewer.ID.String()
		var (
			allowed   bool
			remaining = -1
			resetTime time.Time
			err       error
		)
		if rl.redis != nil {
			allowed, remaining, resetTime, err = rl.IsAllowed(c.Request.Context(), userID)
			if err != nil {
				log.Warn().Err(err).Str("prefix", rl.config.KeyPrefix).Msg("redis rate limit failed, using local limiter")
			}
		}
		if rl.redis == nil || err != nil {
			allowed = rl.allowLocal(userID)
			remaining, resetTime = -1, time.Time{}
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		if remaining >= 0 {
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
			c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))
		}

		if !allowed {
			body := gin.H{
				"error": fmt.Sprintf("rate limit exceeded: at most %d requests per %v", rl.config.Limit, rl.config.Window),
			}
			if !resetTime.IsZero() {
				retryAfter := int(time.Until(resetTime).Seconds())
				c.Header("Retry-After", strconv.Itoa(retryAfter))
				body["retry_after"] = retryAfter
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, body)
			return
		}

		c.Next()
	}
}

// IsAllowed checks if a request from the given user is allowed
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, userID string) (bool, int, time.Time, error) {
	if rl.redis == nil {
		return false, 0, time.Time{}, fmt.Errorf("redis not configured")
	}

	now := time.Now()
	windowStart := now.Truncate(rl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, userID, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}

func (rl *RateLimiter) allowLocal(userID string) bool {
	rl.mu.Lock()
	now := rl.now()
	rl.sweepLocked(now)
	entry, ok := rl.local[userID]
	if !ok {
		every := rl.config.Window / time.Duration(max(rl.config.Limit, 1))
		entry = &localLimiter{limiter: rate.NewLimiter(rate.Every(every), rl.config.Limit)}
		rl.local[userID] = entry
	}
	entry.lastSeen = now
	rl.mu.Unlock()
	return entry.limiter.AllowN(now, 1)
}

// sweepLocked drops buckets idle for a whole window, at most once per
// window. An idle bucket has refilled completely, so dropping it does not
// change any decision.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.config.Window {
		return
	}
	rl.lastSweep = now
	for userID, entry := range rl.local {
		if now.Sub(entry.lastSeen) >= rl.config.Window {
			delete(rl.local, userID)
		}
	}
}
