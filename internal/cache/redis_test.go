package cache

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cfg := DefaultRedisConfig()
	return NewRedisStoreWithClient(client, cfg)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newTestRedisStore(t)
	h := Fingerprint("x", "s")

	hit, err := store.Lookup(h)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, store.Record(h))
	hit, err = store.Lookup(h)
	require.NoError(t, err)
	assert.True(t, hit)

	info, err := store.Info()
	require.NoError(t, err)
	assert.Equal(t, "redis", info.Backend)
	assert.Equal(t, 1, info.Entries)

	require.NoError(t, store.Clear())
	hit, err = store.Lookup(h)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisStoreKeysArePrefixed(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreWithClient(client, DefaultRedisConfig())

	h := Fingerprint("y", "s")
	require.NoError(t, store.Record(h))
	assert.True(t, mr.Exists("styler:"+h))
}
