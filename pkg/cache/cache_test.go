package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNoop(t *testing.T) {
	c := NewNoop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	_, err := c.Get(ctx, "k")
	require.ErrorIs(t, err, ErrMiss)
	require.NoError(t, c.Delete(ctx, "k"))
	require.NoError(t, c.DeletePrefix(ctx, "k"))
}

// Runs against a real Redis when TEST_REDIS_ADDR is set.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	c := NewRedisCache(NewRedisClient(addr, WithPassword(os.Getenv("TEST_REDIS_PASSWORD"))), "catalog_test")
	t.Cleanup(func() {
		require.NoError(t, c.DeletePrefix(ctx, ""))
		c.Close()
	})
	require.NoError(t, c.Ping(ctx))

	require.NoError(t, c.Set(ctx, "tree:a", []byte(`{"id":"a"}`), time.Minute))
	require.NoError(t, c.Set(ctx, "tree:b", []byte(`{"id":"b"}`), time.Minute))
	require.NoError(t, c.Set(ctx, "other", []byte(`x`), time.Minute))

	got, err := c.Get(ctx, "tree:a")
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"a"}`, string(got))

	require.NoError(t, c.DeletePrefix(ctx, "tree:"))
	_, err = c.Get(ctx, "tree:b")
	require.ErrorIs(t, err, ErrMiss)

	got, err = c.Get(ctx, "other")
	require.NoError(t, err)
	require.Equal(t, "x", string(got))
}
