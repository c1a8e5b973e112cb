package ratelimit

import (
	redisClient "adcraft-server/internal/clients/redis"
	"adcraft-server/internal/observability"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const window = time.Minute

// Result represents the result of a rate limit check
type Result struct {
	Allowed      bool      `json:"allowed"`
	Limit        int       `json:"limit"`
	Remaining    int       `json:"remaining"`
	ResetAt      time.Time `json:"reset_at"`
	RetryAfterMs int       `json:"retry_after_ms,omitempty"`
}

// Service limits how often a user may trigger Meta Graph calls
type Service struct {
	redis  *redisClient.Client
	logger *observability.Logger
	now    func() time.Time
}

// NewService creates a new rate limiting service. Without Redis every
// request is allowed.
func NewService(redis *redisClient.Client, logger *observability.Logger) *Service {
	return &Service{
		redis:  redis,
		logger: logger,
		now:    time.Now,
	}
}

// Allow records one request for key and reports whether it fits in the
// one-minute sliding window.
func (s *Service) Allow(ctx context.Context, key string, limit int) (Result, error) {
	now := s.now()
	rdb := s.redis.GetClient()
	if rdb == nil || limit <= 0 {
		return Result{Allowed: true, Limit: limit, Remaining: limit, ResetAt: now.Add(window)}, nil
	}

	// Members are request timestamps scored in milliseconds
	redisKey := "rl:" + key
	nowMs := now.UnixMilli()
	windowStartMs := now.Add(-window).UnixMilli()

	if err := rdb.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStartMs, 10)).Err(); err != nil {
		return Result{}, fmt.Errorf("failed to remove old entries: %w", err)
	}

	count, err := rdb.ZCard(ctx, redisKey).Result()
	if err != nil {
		return Result{}, fmt.Errorf("failed to count requests: %w", err)
	}

	if int(count) >= limit {
		return s.denied(ctx, rdb, redisKey, limit, now), nil
	}

	member := fmt.Sprintf("%d-%s", nowMs, uuid.NewString())
	if err := rdb.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowMs), Member: member}).Err(); err != nil {
		return Result{}, fmt.Errorf("failed to add request: %w", err)
	}
	if err := rdb.Expire(ctx, redisKey, 2*window).Err(); err != nil {
		s.logger.Warn(ctx, "failed to set expiration on rate limit key",
			observability.Field{Key: "rate_limit_key", Value: redisKey},
		)
	}

	return Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - int(count) - 1,
		ResetAt:   now.Add(window),
	}, nil
}

func (s *Service) denied(ctx context.Context, rdb *redis.Client, key string, limit int, now time.Time) Result {
	result := Result{
		Allowed:      false,
		Limit:        limit,
		ResetAt:      now.Add(window),
		RetryAfterMs: int(window.Milliseconds()),
	}

	oldest, err := rdb.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil || len(oldest) == 0 {
		return result
	}

	resetAt := time.UnixMilli(int64(oldest[0].Score)).Add(window)
	retryAfter := resetAt.Sub(now)
	if retryAfter < 0 {
		retryAfter = 0
	}
	result.ResetAt = resetAt
	result.RetryAfterMs = int(retryAfter.Milliseconds())
	return result
}
