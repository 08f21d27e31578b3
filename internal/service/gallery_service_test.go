package service

import (
	"context"
	"strings"
	"testing"

	"pokehaven/internal/models"
	"pokehaven/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGalleryServiceForTest(db *gorm.DB) *GalleryService {
	trainerRepo := repository.NewTrainerRepository(db)
	pokemonRepo := repository.NewPokemonRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	return NewGalleryService(galleryRepo, trainerRepo, pokemonRepo)
}

func TestCreatePost(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("freezes the favorite team into the post", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newGalleryServiceForTest(db)
		trainer := createTestTrainer(t, db, "author", 0)
		p1 := createTestPokemon(t, db, trainer.ID, nil)
		p2 := createTestPokemon(t, db, trainer.ID, func(p *models.Pokemon) {
			p.PokedexID = 7
			p.Name = "squirtle"
			p.Shiny = true
		})
		trainer.Favorites = models.FavoriteIDs{p1.ID, p2.ID}
		require.NoError(t, db.Save(trainer).Error)

		post, err := svc.CreatePost(ctx, CreatePostInput{UserID: "author", Message: "my squad"})
		require.NoError(t, err)

		assert.Equal(t, trainer.UserID, post.AuthorID)
		assert.Equal(t, trainer.Username, post.AuthorName)
		assert.Len(t, post.Team, 2)

		// Mutating the creature afterwards must not alter the snapshot.
		p2.Name = "wartortle"
		require.NoError(t, db.Save(p2).Error)

		reloaded, err := svc.galleryRepo.GetByID(ctx, post.ID, trainer.ID)
		require.NoError(t, err)
		names := []string{reloaded.Team[0].Name, reloaded.Team[1].Name}
		assert.Contains(t, names, "squirtle")
		assert.NotContains(t, names, "wartortle")
	})

	t.Run("empty team is allowed", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newGalleryServiceForTest(db)
		createTestTrainer(t, db, "author", 0)

		post, err := svc.CreatePost(ctx, CreatePostInput{UserID: "author", Message: "no team yet"})
		require.NoError(t, err)
		assert.Empty(t, post.Team)
	})

	t.Run("message is required and bounded", func(t *testing.T) {
		db := setupServiceTestDB(t)
		svc := newGalleryServiceForTest(db)
		createTestTrainer(t, db, "author", 0)

		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: "author", Message: "   "})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")

		_, err = svc.CreatePost(ctx, CreatePostInput{UserID: "author", Message: strings.Repeat("x", 501)})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})
}

func TestToggleLike(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupServiceTestDB(t)
	svc := newGalleryServiceForTest(db)
	createTestTrainer(t, db, "author", 0)
	createTestTrainer(t, db, "fan", 0)

	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: "author", Message: "look"})
	require.NoError(t, err)

	liked, err := svc.ToggleLike(ctx, "fan", post.ID)
	require.NoError(t, err)
	assert.True(t, liked.HasLiked)
	assert.Equal(t, 1, liked.LikesCount)

	// Second toggle reverts to the prior state.
	unliked, err := svc.ToggleLike(ctx, "fan", post.ID)
	require.NoError(t, err)
	assert.False(t, unliked.HasLiked)
	assert.Zero(t, unliked.LikesCount)

	// And a third like works again after the hard delete.
	reliked, err := svc.ToggleLike(ctx, "fan", post.ID)
	require.NoError(t, err)
	assert.True(t, reliked.HasLiked)
	assert.Equal(t, 1, reliked.LikesCount)
}

func TestToggleLikeMissingPost(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupServiceTestDB(t)
	svc := newGalleryServiceForTest(db)
	createTestTrainer(t, db, "fan", 0)

	_, err := svc.ToggleLike(ctx, "fan", 999)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestDeletePost(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	setup := func(t *testing.T) (*gorm.DB, *GalleryService, *models.GalleryPost) {
		db := setupServiceTestDB(t)
		svc := newGalleryServiceForTest(db)
		createTestTrainer(t, db, "author", 0)
		post, err := svc.CreatePost(ctx, CreatePostInput{UserID: "author", Message: "hello"})
		require.NoError(t, err)
		return db, svc, post
	}

	t.Run("author can delete", func(t *testing.T) {
		db, svc, post := setup(t)
		require.NoError(t, svc.DeletePost(ctx, "author", post.ID))

		var count int64
		require.NoError(t, db.Model(&models.GalleryPost{}).Where("id = ?", post.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("moderator can delete", func(t *testing.T) {
		db, svc, post := setup(t)
		mod := createTestTrainer(t, db, "mod", 0)
		mod.IsModerator = true
		require.NoError(t, db.Save(mod).Error)

		require.NoError(t, svc.DeletePost(ctx, "mod", post.ID))
	})

	t.Run("other trainers are rejected", func(t *testing.T) {
		db, svc, post := setup(t)
		createTestTrainer(t, db, "stranger", 0)

		err := svc.DeletePost(ctx, "stranger", post.ID)
		assertAppErrorCode(t, err, "POLICY_REJECTED")

		var count int64
		require.NoError(t, db.Model(&models.GalleryPost{}).Where("id = ?", post.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})
}
