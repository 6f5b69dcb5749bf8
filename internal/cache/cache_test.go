package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyNormalization(t *testing.T) {
	// Equivalent spellings land on the same key.
	assert.Equal(t, Key("search", "Go  Basics"), Key("search", "go basics"))
	assert.Equal(t, Key("search", " go basics "), Key("search", "GO BASICS"))

	// Different content or namespace means a different key.
	assert.NotEqual(t, Key("search", "go basics"), Key("search", "go basic"))
	assert.NotEqual(t, Key("search", "go basics"), Key("playlist", "go basics"))

	// Part boundaries matter.
	assert.NotEqual(t, Key("search", "ab", "c"), Key("search", "a", "bc"))
}

func TestKeyShape(t *testing.T) {
	key := Key("search", "anything")
	assert.True(t, strings.HasPrefix(key, "search:"))
	assert.Len(t, key, len("search:")+16)
}

func TestNilCacheIsAMiss(t *testing.T) {
	var c *Cache

	var out []string
	assert.False(t, c.GetJSON(context.Background(), "k", &out))
	c.SetJSON(context.Background(), "k", []string{"x"}) // must not panic
}

func TestNewNilClient(t *testing.T) {
	assert.Nil(t, New(nil, 0))
}

func TestRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	c := New(rdb, time.Minute)
	ctx := context.Background()
	key := Key("search", "go basics")

	var out []string
	assert.False(t, c.GetJSON(ctx, key, &out))

	c.SetJSON(ctx, key, []string{"a", "b"})
	assert.True(t, c.GetJSON(ctx, key, &out))
	assert.Equal(t, []string{"a", "b"}, out)

	// Entries expire with the configured TTL.
	mr.FastForward(2 * time.Minute)
	var again []string
	assert.False(t, c.GetJSON(ctx, key, &again))
}

func TestRoundTripCorruptEntry(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	c := New(rdb, time.Minute)
	require.NoError(t, mr.Set("search:deadbeef00000000", "{not json"))

	var out []string
	assert.False(t, c.GetJSON(context.Background(), "search:deadbeef00000000", &out))
}
