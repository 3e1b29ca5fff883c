package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var limiterTracer = otel.Tracer("redis.ratelimiter")

// RateLimiter 基于滑动窗口的限流器
type RateLimiter struct {
	client *Client
	window time.Duration
	limit  int
}

// NewRateLimiter 创建限流器
//
// window 为滑动窗口长度，limit 为窗口内允许的最大请求数
func NewRateLimiter(client *Client, window time.Duration, limit int) *RateLimiter {
	return &RateLimiter{
		client: client,
		window: window,
		limit:  limit,
	}
}

// Allow 判断请求是否被允许
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	ctx, span := limiterTracer.Start(ctx, "ratelimiter.Allow",
		trace.WithAttributes(attribute.String("ratelimit.key", key)))
	defer span.End()

	now := time.Now()
	windowStart := now.Add(-r.window)

	pipe := r.client.rdb.TxPipeline()

	// 清理窗口外的记录
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))

	// 统计窗口内请求数
	countCmd := pipe.ZCard(ctx, key)

	// 记录本次请求
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString()),
	})

	pipe.Expire(ctx, key, r.window)

	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("rate limiter pipeline failed: %w", err)
	}

	count := countCmd.Val()
	allowed := count < int64(r.limit)

	span.SetAttributes(
		attribute.Int64("ratelimit.count", count),
		attribute.Bool("ratelimit.allowed", allowed),
	)

	if !allowed {
		// 超限的请求不计入窗口
		r.client.rdb.ZRemRangeByRank(ctx, key, -1, -1)
	}

	return allowed, nil
}

// Remaining 返回窗口内剩余的可用请求数
func (r *RateLimiter) Remaining(ctx context.Context, key string) (int, error) {
	ctx, span := limiterTracer.Start(ctx, "ratelimiter.Remaining",
		trace.WithAttributes(attribute.String("ratelimit.key", key)))
	defer span.End()

	windowStart := time.Now().Add(-r.window)

	pipe := r.client.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	countCmd := pipe.ZCard(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return 0, err
	}

	remaining := r.limit - int(countCmd.Val())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Reset 重置指定键的限流状态
func (r *RateLimiter) Reset(ctx context.Context, key string) error {
	ctx, span := limiterTracer.Start(ctx, "ratelimiter.Reset",
		trace.WithAttributes(attribute.String("ratelimit.key", key)))
	defer span.End()

	return r.client.rdb.Del(ctx, key).Err()
}

// BuildUserRateLimitKey 构建按用户维度的限流键
func BuildUserRateLimitKey(userID, endpoint string) string {
	return fmt.Sprintf("ratelimit:user:%s:%s", userID, endpoint)
}

// BuildIPRateLimitKey 构建按 IP 维度的限流键
func BuildIPRateLimitKey(ip, endpoint string) string {
	return fmt.Sprintf("ratelimit:ip:%s:%s", ip, endpoint)
}
