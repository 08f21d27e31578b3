package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	TrainerKeyPrefix     = "trainer:%s"
	PokedexKeyPrefix     = "trainer:%s:pokedex"
	SpeciesKeyPrefix     = "species:%d"
	GalleryPageKeyPrefix = "gallery:page:%d:%d"
)

const (
	TrainerTTL = 5 * time.Minute
	PokedexTTL = 2 * time.Minute
	// SpeciesTTL is long since species names never change upstream; the TTL
	// only bounds memory in Redis.
	SpeciesTTL = 24 * time.Hour
	GalleryTTL = time.Minute
)

func TrainerKey(userID string) string {
	return fmt.Sprintf(TrainerKeyPrefix, userID)
}

func PokedexKey(userID string) string {
	return fmt.Sprintf(PokedexKeyPrefix, userID)
}

// PokedexPageKey caches one page of a trainer's collection.
func PokedexPageKey(userID string, limit, offset int) string {
	return fmt.Sprintf("%s:%d:%d", PokedexKey(userID), limit, offset)
}

func SpeciesKey(pokedexID int) string {
	return fmt.Sprintf(SpeciesKeyPrefix, pokedexID)
}

func GalleryPageKey(limit, offset int) string {
	return fmt.Sprintf(GalleryPageKeyPrefix, limit, offset)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePattern deletes every key matching the glob pattern via SCAN.
// Best-effort like Invalidate; stale entries age out through their TTL anyway.
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

// InvalidateTrainer drops the trainer record and every cached collection page.
func InvalidateTrainer(ctx context.Context, userID string) {
	Invalidate(ctx, TrainerKey(userID))
	InvalidatePattern(ctx, PokedexKey(userID)+"*")
}

// InvalidateGalleryPages drops all cached gallery feed pages. Called on post
// creation, deletion and like toggles.
func InvalidateGalleryPages(ctx context.Context) {
	InvalidatePattern(ctx, "gallery:page:*")
}
