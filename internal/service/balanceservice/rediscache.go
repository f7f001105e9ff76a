package balanceservice

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var _ BalanceCache = (*RedisCache)(nil)

// RedisCache keeps derived balances under a short TTL. Every failure path
// degrades to a cache miss so Redis being down never blocks a read.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func balanceKey(userID int64) string {
	return "payouts:balance:" + strconv.FormatInt(userID, 10)
}

func (c *RedisCache) Get(ctx context.Context, userID int64) (int64, bool) {
	val, err := c.client.Get(ctx, balanceKey(userID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Warn("balance cache read failed", zap.Error(err))
		}
		return 0, false
	}
	balance, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return balance, true
}

func (c *RedisCache) Set(ctx context.Context, userID int64, balance int64) {
	if err := c.client.Set(ctx, balanceKey(userID), strconv.FormatInt(balance, 10), c.ttl).Err(); err != nil {
		zap.L().Warn("balance cache write failed", zap.Error(err))
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, userID int64) {
	if err := c.client.Del(ctx, balanceKey(userID)).Err(); err != nil {
		zap.L().Warn("balance cache invalidation failed", zap.Error(err))
	}
}
