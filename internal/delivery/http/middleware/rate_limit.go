package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/logger"
	"job-board-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis
	KeyPrefix string
	// Custom key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
}

// DefaultRateLimitConfig is the global per-IP limit.
func DefaultRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{Limit: limit, Window: window, KeyPrefix: "rl:ip:"}
}

// AuthRateLimitConfig is the strict limit for registration, login and OTP endpoints.
func AuthRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{Limit: limit, Window: window, KeyPrefix: "rl:auth:"}
}

// KEYS[1] = counter key, ARGV[1] = window in seconds.
// Returns {count, ttl}.
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`)

// RateLimiter counts requests in Redis and falls back to per-key token
// buckets in memory when Redis is absent or failing.
type RateLimiter struct {
	client *goredis.Client
	config RateLimitConfig
	secLog *security.SecurityLogger

	mu       sync.Mutex
	fallback map[string]*rate.Limiter
}

func NewRateLimiter(client *goredis.Client, config RateLimitConfig, secLog *security.SecurityLogger) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if config.Limit <= 0 {
		config.Limit = 100
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if secLog == nil {
		secLog = security.NopSecurityLogger()
	}
	return &RateLimiter{
		client:   client,
		config:   config,
		secLog:   secLog,
		fallback: make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.config.KeyPrefix + rl.config.KeyFunc(c)

		allowed, remaining, resetAt := rl.allow(c.Request.Context(), key)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			rl.secLog.LogRateLimitTriggered(c.Request.Context(), c.ClientIP(),
				c.GetString(string(domain.KeyRequestID)), c.FullPath())
			c.Error(apperror.TooManyRequests("Rate limit exceeded. Please try again later."))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string) (bool, int, time.Time) {
	if rl.client != nil {
		count, resetAt, err := rl.checkRedis(ctx, key)
		if err == nil {
			remaining := rl.config.Limit - count
			if remaining < 0 {
				remaining = 0
			}
			return count <= rl.config.Limit, remaining, resetAt
		}
		logger.Log.Warn("Rate limiter falling back to memory", "error", err)
	}
	return rl.checkMemory(key)
}

func (rl *RateLimiter) checkRedis(ctx context.Context, key string) (int, time.Time, error) {
	vals, err := rateLimitScript.Run(ctx, rl.client, []string{key}, int(rl.config.Window.Seconds())).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit: %w", err)
	}
	if len(vals) < 2 {
		return 0, time.Time{}, fmt.Errorf("redis rate limit: unexpected reply %v", vals)
	}
	return int(vals[0]), time.Now().Add(time.Duration(vals[1]) * time.Second), nil
}

const maxFallbackKeys = 10000

// checkMemory spreads Limit tokens over Window, with a full bucket as burst.
func (rl *RateLimiter) checkMemory(key string) (bool, int, time.Time) {
	rl.mu.Lock()
	lim, ok := rl.fallback[key]
	if !ok {
		if len(rl.fallback) >= maxFallbackKeys {
			rl.fallback = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(rate.Every(rl.config.Window/time.Duration(rl.config.Limit)), rl.config.Limit)
		rl.fallback[key] = lim
	}
	rl.mu.Unlock()

	now := time.Now()
	r := lim.ReserveN(now, 1)
	if !r.OK() {
		return false, 0, now.Add(rl.config.Window)
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, 0, now.Add(delay)
	}
	return true, int(lim.TokensAt(now)), now.Add(rl.config.Window)
}

// UploadQuotaMiddleware applies the upload limiter to an employer route.
// It must run after RequireEmployer.
func UploadQuotaMiddleware(limiter *security.UploadLimiter, secLog *security.SecurityLogger) gin.HandlerFunc {
	if secLog == nil {
		secLog = security.NopSecurityLogger()
	}
	return func(c *gin.Context) {
		p, _ := EmployerFrom(c)

		allowed, retryAfter, err := limiter.AllowUpload(c.Request.Context(), c.ClientIP(), p.ID)
		if err != nil {
			logger.Log.Warn("Upload limiter unavailable", "error", err)
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			secLog.LogUploadLimited(c.Request.Context(), p.ID, c.ClientIP(), retryAfter)
			c.Error(apperror.TooManyRequests("Upload limit reached. Please try again later."))
			c.Abort()
			return
		}
		c.Next()
	}
}
