package species

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"pokehaven/internal/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newSpeciesServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		switch r.URL.Path {
		case "/pokemon-species/1":
			_, _ = w.Write([]byte(`{"name":"bulbasaur"}`))
		case "/pokemon-species/25":
			_, _ = w.Write([]byte(`{"name":"pikachu"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientName(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	hits := 0
	srv := newSpeciesServer(t, &hits)
	client := NewClient(srv.URL)
	ctx := context.Background()

	assert.Equal(t, "bulbasaur", client.Name(ctx, 1))
	assert.Equal(t, 1, hits)

	// Second resolution is served from the cache.
	assert.Equal(t, "bulbasaur", client.Name(ctx, 1))
	assert.Equal(t, 1, hits)

	assert.Equal(t, "pikachu", client.Name(ctx, 25))
	assert.Equal(t, 2, hits)
}

func TestClientNameDegradesToUnknown(t *testing.T) {
	hits := 0
	srv := newSpeciesServer(t, &hits)
	client := NewClient(srv.URL)
	ctx := context.Background()

	// Dex 7 makes the upstream fail with a 500.
	assert.Equal(t, UnknownName, client.Name(ctx, 7))
	assert.Equal(t, 1, hits)

	// Out of Pokédex range, never hits the upstream.
	assert.Equal(t, UnknownName, client.Name(ctx, 5000))
	assert.Equal(t, UnknownName, client.Name(ctx, 0))
	assert.Equal(t, 1, hits)
}

func TestClientNameUnreachableService(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	assert.Equal(t, UnknownName, client.Name(context.Background(), 1))
}

func TestStaticLookup(t *testing.T) {
	s := Static{1: "bulbasaur"}
	assert.Equal(t, "bulbasaur", s.Name(context.Background(), 1))
	assert.Equal(t, UnknownName, s.Name(context.Background(), 2))
}
