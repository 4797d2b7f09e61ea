package redis

import (
	"context"
	"errors"
	"time"

	"job-board-backend/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// consumeIfMatch deletes the key only when it holds the given code.
// Returns 1 on a match, 0 otherwise. A wrong guess leaves the code in place.
var consumeIfMatch = goredis.NewScript(`
local current = redis.call("GET", KEYS[1])
if current and current == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

type otpStore struct {
	client *goredis.Client
}

// NewOTPStore keeps codes in Redis and lets key expiry handle the TTL.
func NewOTPStore(client *goredis.Client) domain.OTPStore {
	return &otpStore{client: client}
}

// Save overwrites any earlier code for the key and restarts its TTL.
func (s *otpStore) Save(ctx context.Context, key, code string, ttl time.Duration) error {
	return s.client.Set(ctx, key, code, ttl).Err()
}

func (s *otpStore) Consume(ctx context.Context, key, code string) (bool, error) {
	n, err := consumeIfMatch.Run(ctx, s.client, []string{key}, code).Int()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, err
	}
	return n == 1, nil
}

func (s *otpStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
