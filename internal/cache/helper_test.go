package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Level int    `json:"level"`
	}

	found, err := GetJSON(ctx, "missing", &payload{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "p", payload{Name: "pikachu", Level: 10}, time.Minute))

	var got payload
	found, err = GetJSON(ctx, "p", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "pikachu", Level: 10}, got)
}

func TestAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *string) func() error {
		return func() error {
			calls++
			*dest = "fetched"
			return nil
		}
	}

	var v string
	require.NoError(t, Aside(ctx, "k", &v, time.Minute, fetch(&v)))
	assert.Equal(t, "fetched", v)
	assert.Equal(t, 1, calls)

	// Second read is served from the cache.
	var v2 string
	require.NoError(t, Aside(ctx, "k", &v2, time.Minute, fetch(&v2)))
	assert.Equal(t, "fetched", v2)
	assert.Equal(t, 1, calls)
}

func TestAsidePropagatesFetchError(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	sentinel := errors.New("source down")
	var v string
	err := Aside(ctx, "k", &v, time.Minute, func() error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestInvalidateTrainer(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, TrainerKey("u1"), "x", time.Minute))
	require.NoError(t, SetJSON(ctx, PokedexPageKey("u1", 50, 0), "y", time.Minute))
	require.NoError(t, SetJSON(ctx, PokedexPageKey("u1", 50, 50), "z", time.Minute))
	require.NoError(t, SetJSON(ctx, PokedexPageKey("u2", 50, 0), "w", time.Minute))

	InvalidateTrainer(ctx, "u1")

	assert.False(t, mr.Exists(TrainerKey("u1")))
	assert.False(t, mr.Exists(PokedexPageKey("u1", 50, 0)))
	assert.False(t, mr.Exists(PokedexPageKey("u1", 50, 50)))
	// Another trainer's pages survive.
	assert.True(t, mr.Exists(PokedexPageKey("u2", 50, 0)))
}

func TestInvalidateGalleryPages(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, GalleryPageKey(20, 0), "a", time.Minute))
	require.NoError(t, SetJSON(ctx, GalleryPageKey(20, 20), "b", time.Minute))
	require.NoError(t, SetJSON(ctx, TrainerKey("u1"), "x", time.Minute))

	InvalidateGalleryPages(ctx)

	assert.False(t, mr.Exists(GalleryPageKey(20, 0)))
	assert.False(t, mr.Exists(GalleryPageKey(20, 20)))
	assert.True(t, mr.Exists(TrainerKey("u1")))
}

func TestNilClientDegrades(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	found, err := GetJSON(ctx, "k", &struct{}{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "k", "v", time.Minute))

	// Aside falls straight through to the fetch.
	var v string
	require.NoError(t, Aside(ctx, "k", &v, time.Minute, func() error {
		v = "direct"
		return nil
	}))
	assert.Equal(t, "direct", v)
}
