package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient_SetGet(t *testing.T) {
	c := NewMemoryClient(10)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	value, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
}

func TestMemoryClient_Miss(t *testing.T) {
	c := NewMemoryClient(10)

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_Expiry(t *testing.T) {
	c := NewMemoryClient(10)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_Delete(t *testing.T) {
	c := NewMemoryClient(10)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_DeleteByPrefix(t *testing.T) {
	c := NewMemoryClient(10)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, ResponsePrefix+"a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, ResponsePrefix+"b", []byte("2"), time.Minute))
	require.NoError(t, c.Set(ctx, "other:c", []byte("3"), time.Minute))

	require.NoError(t, c.DeleteByPrefix(ctx, ResponsePrefix))

	_, err := c.Get(ctx, ResponsePrefix+"a")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, ResponsePrefix+"b")
	assert.ErrorIs(t, err, ErrCacheMiss)

	value, err := c.Get(ctx, "other:c")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), value)
}

func TestMemoryClient_EvictsWhenFull(t *testing.T) {
	c := NewMemoryClient(2)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 2*time.Minute))
	require.NoError(t, c.Set(ctx, "c", []byte("3"), 3*time.Minute))

	// "a" expires soonest and is evicted to make room.
	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)

	_, err = c.Get(ctx, "b")
	assert.NoError(t, err)
	_, err = c.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestMemoryClient_CloseStopsCleanup(t *testing.T) {
	c := NewMemoryClient(10)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	select {
	case <-c.done:
	default:
		t.Fatal("done channel not closed, cleanup goroutine would leak")
	}

	// Closing only stops the sweeper; the cache itself keeps working.
	value, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
}

func TestResponseKey_StableAndDistinct(t *testing.T) {
	metadata := map[string]string{"student_name": "Ana", "term": "Fall 2026"}
	key := ResponseKey("drop a class", metadata)

	assert.Equal(t, key, ResponseKey("drop a class", map[string]string{
		"term":         "Fall 2026",
		"student_name": "Ana",
	}))
	assert.NotEqual(t, key, ResponseKey("drop a class", nil))
	assert.NotEqual(t, key, ResponseKey("add a class", metadata))
	assert.NotEqual(t, key, ResponseKey("drop a class", map[string]string{"student_name": "Bea", "term": "Fall 2026"}))

	assert.Contains(t, key, ResponsePrefix)
}

func TestKey_JoinsParts(t *testing.T) {
	assert.Equal(t, "a:b:c", Key("a", "b", "c"))
}
