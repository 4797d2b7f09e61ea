package security

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// UploadLimiter caps how often presigned upload URLs are handed out, per IP
// per minute and per account per day, using Redis sliding windows.
type UploadLimiter struct {
	client       *goredis.Client
	maxPerMinute int
	maxPerDay    int
}

// KEYS[1] = rate limit key
// ARGV[1] = max count allowed
// ARGV[2] = window size in seconds
// ARGV[3] = current timestamp
// ARGV[4] = unique member
// Returns: 1 if allowed, 0 if rate limited
var uploadRateLimitScript = goredis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

if redis.call('ZCARD', key) >= limit then
    return 0
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('EXPIRE', key, window)
return 1
`)

// NewUploadLimiter creates an upload rate limiter.
// Default: 10 uploads/min per IP, 50 uploads/day per account.
// A nil client disables the limiter.
func NewUploadLimiter(client *goredis.Client, perMin, perDay int) *UploadLimiter {
	if perMin <= 0 {
		perMin = 10
	}
	if perDay <= 0 {
		perDay = 50
	}
	return &UploadLimiter{
		client:       client,
		maxPerMinute: perMin,
		maxPerDay:    perDay,
	}
}

// AllowUpload returns (allowed, retryAfterSeconds, error). Redis errors deny the request.
func (ul *UploadLimiter) AllowUpload(ctx context.Context, ip, accountID string) (bool, int, error) {
	if ul.client == nil {
		return true, 0, nil
	}

	now := time.Now()

	allowed, err := ul.checkLimit(ctx, "ratelimit:upload:ip:"+ip, ul.maxPerMinute, 60, now)
	if err != nil {
		return false, 60, fmt.Errorf("rate limit check failed: %w", err)
	}
	if !allowed {
		return false, 60, nil
	}

	if accountID != "" {
		allowed, err = ul.checkLimit(ctx, "ratelimit:upload:user:"+accountID, ul.maxPerDay, 86400, now)
		if err != nil {
			return false, 3600, fmt.Errorf("rate limit check failed: %w", err)
		}
		if !allowed {
			return false, 3600, nil
		}
	}

	return true, 0, nil
}

func (ul *UploadLimiter) checkLimit(ctx context.Context, key string, limit, window int, now time.Time) (bool, error) {
	member := fmt.Sprintf("%d", now.UnixNano())
	allowed, err := uploadRateLimitScript.Run(ctx, ul.client, []string{key}, limit, window, now.Unix(), member).Int64()
	if err != nil {
		return false, err
	}
	return allowed == 1, nil
}
