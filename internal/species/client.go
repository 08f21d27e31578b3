// Package species resolves Pokédex numbers to display names via the external
// species service.
package species

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"pokehaven/internal/cache"
	"pokehaven/internal/middleware"
	"pokehaven/internal/models"
)

// UnknownName is the sentinel used when the lookup service cannot answer.
// Lookup failures are degraded, never propagated: a wonder trade must still
// succeed when the species service is down.
const UnknownName = "Unknown"

// Lookup resolves a Pokédex number to a species display name.
type Lookup interface {
	Name(ctx context.Context, pokedexID int) string
}

// Client queries the species HTTP service, memoizing results through the
// Redis cache layer with a TTL instead of an unbounded in-process map.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for the given service base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type speciesResponse struct {
	Name string `json:"name"`
}

// Name resolves pokedexID to a display name. On any failure it logs, counts
// the degradation and returns UnknownName.
func (c *Client) Name(ctx context.Context, pokedexID int) string {
	if pokedexID < models.MinPokedexID || pokedexID > models.MaxPokedexID {
		return UnknownName
	}

	var name string
	err := cache.Aside(ctx, cache.SpeciesKey(pokedexID), &name, cache.SpeciesTTL, func() error {
		fetched, err := c.fetch(ctx, pokedexID)
		if err != nil {
			return err
		}
		name = fetched
		return nil
	})
	if err != nil || name == "" {
		middleware.SpeciesLookupFailures.Inc()
		middleware.Logger.WarnContext(ctx, "species lookup degraded",
			slog.Int("pokedex_id", pokedexID),
			slog.Any("error", err),
		)
		return UnknownName
	}
	return name
}

func (c *Client) fetch(ctx context.Context, pokedexID int) (string, error) {
	url := fmt.Sprintf("%s/pokemon-species/%d", c.baseURL, pokedexID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("species service returned status %d", resp.StatusCode)
	}

	var body speciesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.Name == "" {
		return "", fmt.Errorf("species service returned empty name for %d", pokedexID)
	}
	return body.Name, nil
}

// Static is a Lookup backed by a fixed map. Used in tests and seeding.
type Static map[int]string

// Name returns the mapped name or UnknownName.
func (s Static) Name(_ context.Context, pokedexID int) string {
	if name, ok := s[pokedexID]; ok {
		return name
	}
	return UnknownName
}
