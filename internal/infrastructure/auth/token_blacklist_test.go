package auth

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_Revoke(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.Revoke(ctx, "jti-1", time.Hour))

	revoked, err := blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = blacklist.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_Expiry(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	blacklist.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, blacklist.Revoke(ctx, "short", time.Minute))
	require.NoError(t, blacklist.Revoke(ctx, "long", time.Hour))

	now = now.Add(2 * time.Minute)

	revoked, err := blacklist.IsRevoked(ctx, "short")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = blacklist.IsRevoked(ctx, "long")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, 1, blacklist.Len())
}

func TestInMemoryTokenBlacklist_RevokeSweepsExpired(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	blacklist.now = func() time.Time { return now }
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, blacklist.Revoke(ctx, id, time.Second))
	}
	now = now.Add(time.Minute)
	require.NoError(t, blacklist.Revoke(ctx, "d", time.Hour))

	assert.Equal(t, 1, blacklist.Len())
}

func TestInMemoryTokenBlacklist_NonPositiveTTL(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()

	require.NoError(t, blacklist.Revoke(context.Background(), "expired", 0))
	assert.Zero(t, blacklist.Len())
}

func TestRedisTokenBlacklist_NonPositiveTTLSkipsRedis(t *testing.T) {
	// nothing listens here; a round trip would fail
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	blacklist := NewRedisTokenBlacklist(client)
	defer blacklist.Close()

	assert.NoError(t, blacklist.Revoke(context.Background(), "expired", -time.Second))
}

func TestRedisTokenBlacklist_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	blacklist := NewRedisTokenBlacklist(client)
	defer blacklist.Close()

	_, err := blacklist.IsRevoked(context.Background(), "jti")
	assert.Error(t, err)
}
