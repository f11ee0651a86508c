package metadata

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedis connects to PORTFOLIO_TEST_REDIS_ADDR (default localhost:6379)
// and skips the test when nothing answers.
func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("PORTFOLIO_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		_ = client.Close()
	})

	return client
}

func TestRedisRepository_Roundtrip(t *testing.T) {
	c := setupRedis(t)
	r := NewRedisRepository(c, "portfolio:test:", "http://api")
	ctx := context.Background()

	m, err := r.List(ctx)
	require.NoError(t, err)
	require.Empty(t, m)

	require.NoError(t, r.SetMany(ctx, map[string][]byte{
		"auth_token": []byte("tok"),
		"user":       []byte(`{"id":"u1"}`),
	}))

	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []byte("tok"), m["auth_token"])

	require.NoError(t, r.Delete(ctx, "auth_token", "user"))
	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestRedisRepository_ScopesAreIsolated(t *testing.T) {
	c := setupRedis(t)
	a := NewRedisRepository(c, "portfolio:test:", "http://a")
	b := NewRedisRepository(c, "portfolio:test:", "http://b")
	ctx := context.Background()

	require.NoError(t, a.SetMany(ctx, map[string][]byte{"k": []byte("A")}))
	require.NoError(t, b.SetMany(ctx, map[string][]byte{"k": []byte("B")}))
	require.NoError(t, b.Clear(ctx))

	m, err := a.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"k": []byte("A")}, m)

	m, err = b.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestRedisRepository_EmptyBatchesAreNoops(t *testing.T) {
	c := setupRedis(t)
	r := NewRedisRepository(c, "portfolio:test:", "http://api")
	ctx := context.Background()

	require.NoError(t, r.SetMany(ctx, nil))
	require.NoError(t, r.Delete(ctx))
}
