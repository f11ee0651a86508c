package metadata

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps the scope's keys in a single Redis hash, which makes
// multi-key writes and Clear atomic without Lua.
type RedisRepository struct {
	client redis.UniversalClient
	hash   string
}

// NewRedisRepository creates a repository storing values under
// "<prefix><scope>".
func NewRedisRepository(client redis.UniversalClient, prefix, scope string) *RedisRepository {
	return &RedisRepository{client: client, hash: prefix + scope}
}

func (r *RedisRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	if len(values) == 0 {
		return nil
	}
	args := make([]any, 0, len(values)*2)
	for k, v := range values {
		args = append(args, k, v)
	}
	if err := r.client.HSet(ctx, r.hash, args...).Err(); err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.HDel(ctx, r.hash, keys...).Err(); err != nil {
		return fmt.Errorf("redis hdel %s: %w", strings.Join(keys, ","), err)
	}
	return nil
}

func (r *RedisRepository) List(ctx context.Context) (map[string][]byte, error) {
	m, err := r.client.HGetAll(ctx, r.hash).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	result := make(map[string][]byte, len(m))
	for k, v := range m {
		result[k] = []byte(v)
	}
	return result, nil
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.hash).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
