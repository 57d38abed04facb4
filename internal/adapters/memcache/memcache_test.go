package memcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestCache_MissReturnsNil(t *testing.T) {
	c := New()
	got, err := c.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_ExpiresAtTTL(t *testing.T) {
	c := New()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	c.SetNow(func() time.Time { return base })
	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	c.SetNow(func() time.Time { return base.Add(time.Minute - time.Second) })
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.NotNil(t, got)

	c.SetNow(func() time.Time { return base.Add(time.Minute) })
	got, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_Delete(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}
