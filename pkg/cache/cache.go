// Copyright 2025 Atrium Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss indicates that the key was not found in cache
	ErrCacheMiss = redis.Nil
)

// ICache define cache interface (abstract)
type ICache interface {
	// Get fetch a cached value
	Get(ctx context.Context, key string) *redis.StringCmd
	// Set store a value with expiration
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	// Del delete keys
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	// Exists check key presence
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	// TTL remaining lifetime of a key
	TTL(ctx context.Context, key string) *redis.DurationCmd
	// Expire set the expiration of a key
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisCache Redis-backed ICache implementation
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps a redis client in the ICache interface
func NewRedisCache(client *redis.Client) ICache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.client.Get(ctx, key)
}

func (r *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	return r.client.Set(ctx, key, value, expiration)
}

func (r *RedisCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return r.client.Del(ctx, keys...)
}

func (r *RedisCache) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	return r.client.Exists(ctx, keys...)
}

func (r *RedisCache) TTL(ctx context.Context, key string) *redis.DurationCmd {
	return r.client.TTL(ctx, key)
}

func (r *RedisCache) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	return r.client.Expire(ctx, key, expiration)
}
