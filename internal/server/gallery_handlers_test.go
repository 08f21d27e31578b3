package server

import (
	"fmt"
	"net/http"
	"testing"

	"pokehaven/internal/models"

	"github.com/gofiber/fiber/v2"
)

func TestGalleryPostAndLikeToggle(t *testing.T) {
	_, app, _ := newTestServer(t)
	authorToken := registerTrainer(t, app, "author", "ash")
	fanToken := registerTrainer(t, app, "fan", "misty")

	created := doJSON(t, app, http.MethodPost, "/api/gallery/post", authorToken, fiber.Map{
		"userId":  "author",
		"message": "check out my squad",
	})
	defer func() { _ = created.Body.Close() }()
	if created.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", created.StatusCode)
	}
	var post models.GalleryPost
	decodeJSON(t, created.Body, &post)
	if post.ID == 0 {
		t.Fatal("expected a post ID")
	}

	like := doJSON(t, app, http.MethodPost, "/api/gallery/like", fanToken, fiber.Map{
		"userId": "fan",
		"postId": post.ID,
	})
	defer func() { _ = like.Body.Close() }()
	if like.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", like.StatusCode)
	}
	var liked models.GalleryPost
	decodeJSON(t, like.Body, &liked)
	if !liked.HasLiked || liked.LikesCount != 1 {
		t.Fatalf("expected hasLiked with count 1, got %v/%d", liked.HasLiked, liked.LikesCount)
	}

	// Second like toggles it off.
	unlike := doJSON(t, app, http.MethodPost, "/api/gallery/like", fanToken, fiber.Map{
		"userId": "fan",
		"postId": post.ID,
	})
	defer func() { _ = unlike.Body.Close() }()
	var unliked models.GalleryPost
	decodeJSON(t, unlike.Body, &unliked)
	if unliked.HasLiked || unliked.LikesCount != 0 {
		t.Fatalf("expected like removed, got %v/%d", unliked.HasLiked, unliked.LikesCount)
	}
}

func TestGalleryFeedIsPublic(t *testing.T) {
	_, app, _ := newTestServer(t)
	authorToken := registerTrainer(t, app, "author", "ash")

	created := doJSON(t, app, http.MethodPost, "/api/gallery/post", authorToken, fiber.Map{
		"userId":  "author",
		"message": "hello world",
	})
	_ = created.Body.Close()

	resp := doJSON(t, app, http.MethodGet, "/api/gallery", "", nil)
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var feed struct {
		Success bool                 `json:"success"`
		Posts   []models.GalleryPost `json:"posts"`
	}
	decodeJSON(t, resp.Body, &feed)
	if !feed.Success {
		t.Fatal("expected success envelope")
	}
	if len(feed.Posts) != 1 {
		t.Fatalf("expected one post, got %d", len(feed.Posts))
	}
}

func TestDeleteGalleryPostAuthorization(t *testing.T) {
	_, app, db := newTestServer(t)
	authorToken := registerTrainer(t, app, "author", "ash")
	strangerToken := registerTrainer(t, app, "stranger", "gary")
	modToken := registerTrainer(t, app, "mod", "oak")

	if err := db.Model(&models.Trainer{}).
		Where("user_id = ?", "mod").
		Update("is_moderator", true).Error; err != nil {
		t.Fatalf("promote moderator: %v", err)
	}

	newPost := func() uint {
		created := doJSON(t, app, http.MethodPost, "/api/gallery/post", authorToken, fiber.Map{
			"userId":  "author",
			"message": "delete me",
		})
		defer func() { _ = created.Body.Close() }()
		var post models.GalleryPost
		decodeJSON(t, created.Body, &post)
		return post.ID
	}

	t.Run("stranger rejected", func(t *testing.T) {
		id := newPost()
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/gallery/post/%d", id), strangerToken, nil)
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", resp.StatusCode)
		}
	})

	t.Run("author allowed", func(t *testing.T) {
		id := newPost()
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/gallery/post/%d", id), authorToken, nil)
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", resp.StatusCode)
		}
	})

	t.Run("moderator allowed", func(t *testing.T) {
		id := newPost()
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/gallery/post/%d", id), modToken, nil)
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", resp.StatusCode)
		}
	})
}
