package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "bankist:ratelimit:"

type RateLimiter struct {
	client *redis.Client
}

type RateLimitConfig struct {
	Requests int           // Number of requests allowed
	Window   time.Duration // Time window
}

// Common rate limit configurations. Exceeding a limit only delays the
// client; nothing is ever locked out.
var (
	// Login attempts
	LoginRateLimit = RateLimitConfig{
		Requests: 20,
		Window:   time.Minute,
	}

	// Session commands that change the ledger
	CommandRateLimit = RateLimitConfig{
		Requests: 30,
		Window:   time.Minute,
	}

	// Everything else
	GeneralRateLimit = RateLimitConfig{
		Requests: 120,
		Window:   time.Minute,
	}
)

type RateLimitInfo struct {
	Limit      int           `json:"limit"`
	Remaining  int           `json:"remaining"`
	Reset      time.Time     `json:"reset"`
	RetryAfter time.Duration `json:"retry_after,omitempty"`
	Allowed    bool          `json:"allowed"`
}

func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{
		client: redisClient,
	}
}

// CheckLimit checks if the request is within rate limits
func (rl *RateLimiter) CheckLimit(ctx context.Context, key string, config RateLimitConfig) (bool, error) {
	info, err := rl.CheckLimitWithInfo(ctx, key, config)
	if err != nil {
		return false, err
	}
	return info.Allowed, nil
}

// CheckLimitWithInfo records the request in a sliding window and reports
// how much of the window is left.
func (rl *RateLimiter) CheckLimitWithInfo(ctx context.Context, key string, config RateLimitConfig) (*RateLimitInfo, error) {
	now := time.Now()
	windowStart := now.Add(-config.Window)
	redisKey := keyPrefix + key

	// Sorted set: score is the request time in ms, member is unique per request
	pipe := rl.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart.UnixMilli()))
	countCmd := pipe.ZCard(ctx, redisKey)
	oldestCmd := pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString()),
	})
	pipe.Expire(ctx, redisKey, config.Window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	count := int(countCmd.Val())
	info := &RateLimitInfo{
		Limit:   config.Requests,
		Reset:   now.Add(config.Window),
		Allowed: count < config.Requests,
	}

	info.Remaining = config.Requests - count - 1
	if info.Remaining < 0 {
		info.Remaining = 0
	}

	if oldest := oldestCmd.Val(); len(oldest) > 0 {
		oldestAt := time.UnixMilli(int64(oldest[0].Score))
		info.Reset = oldestAt.Add(config.Window)
		if !info.Allowed {
			info.RetryAfter = info.Reset.Sub(now)
			if info.RetryAfter < time.Second {
				info.RetryAfter = time.Second
			}
		}
	}

	return info, nil
}
