package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockClient struct {
	setNXFunc func(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	setXXFunc func(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	getFunc   func(ctx context.Context, key string) *redis.StringCmd
	delFunc   func(ctx context.Context, keys ...string) *redis.IntCmd
}

func (m mockClient) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	return m.setNXFunc(ctx, key, value, expiration)
}

func (m mockClient) SetXX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	return m.setXXFunc(ctx, key, value, expiration)
}

func (m mockClient) Get(ctx context.Context, key string) *redis.StringCmd {
	return m.getFunc(ctx, key)
}

func (m mockClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return m.delFunc(ctx, keys...)
}
