package services

import (
	"testing"

	"github.com/conduitapp/conduit/internal/models"
)

func TestFavoriteIdempotent(t *testing.T) {
	db := newTestDB(t)
	ana := seedUser(t, db, "ana")
	bob := seedUser(t, db, "bob")
	article := seedArticle(t, db, ana, "Favorite Me")

	if err := FavoriteArticle(db, bob, article); err != nil {
		t.Fatalf("FavoriteArticle failed: %v", err)
	}
	if err := FavoriteArticle(db, bob, article); err != nil {
		t.Fatalf("Repeated FavoriteArticle failed: %v", err)
	}

	if article.FavoritesCount != 1 {
		t.Errorf("Expected count 1 after repeated favorite, got %d", article.FavoritesCount)
	}

	favorited, err := IsFavorited(db, bob.ID, article.ID)
	if err != nil {
		t.Fatalf("IsFavorited failed: %v", err)
	}
	if !favorited {
		t.Error("Expected article to be favorited")
	}
}

func TestFavoritesCountAcrossUsers(t *testing.T) {
	db := newTestDB(t)
	ana := seedUser(t, db, "ana")
	article := seedArticle(t, db, ana, "Popular")

	fans := []*models.User{
		seedUser(t, db, "bob"),
		seedUser(t, db, "carol"),
		seedUser(t, db, "dave"),
	}
	for _, fan := range fans {
		if err := FavoriteArticle(db, fan, article); err != nil {
			t.Fatalf("FavoriteArticle by %s failed: %v", fan.Username, err)
		}
	}
	if article.FavoritesCount != 3 {
		t.Errorf("Expected count 3, got %d", article.FavoritesCount)
	}

	if err := UnfavoriteArticle(db, fans[0], article); err != nil {
		t.Fatalf("UnfavoriteArticle failed: %v", err)
	}
	if article.FavoritesCount != 2 {
		t.Errorf("Expected count 2 after one unfavorite, got %d", article.FavoritesCount)
	}

	// Removing an absent entry changes nothing.
	if err := UnfavoriteArticle(db, fans[0], article); err != nil {
		t.Fatalf("Repeated UnfavoriteArticle failed: %v", err)
	}
	if article.FavoritesCount != 2 {
		t.Errorf("Expected count unchanged at 2, got %d", article.FavoritesCount)
	}

	// The persisted counter matches the in-memory one.
	reloaded, err := GetArticleBySlug(db, article.Slug)
	if err != nil {
		t.Fatalf("GetArticleBySlug failed: %v", err)
	}
	if reloaded.FavoritesCount != 2 {
		t.Errorf("Expected persisted count 2, got %d", reloaded.FavoritesCount)
	}
}

func TestFollowUnfollow(t *testing.T) {
	db := newTestDB(t)
	ana := seedUser(t, db, "ana")
	bob := seedUser(t, db, "bob")

	following, err := IsFollowing(db, bob.ID, ana.ID)
	if err != nil {
		t.Fatalf("IsFollowing failed: %v", err)
	}
	if following {
		t.Error("Expected no follow edge initially")
	}

	if err := FollowUser(db, bob, ana); err != nil {
		t.Fatalf("FollowUser failed: %v", err)
	}
	if err := FollowUser(db, bob, ana); err != nil {
		t.Fatalf("Repeated FollowUser failed: %v", err)
	}

	following, err = IsFollowing(db, bob.ID, ana.ID)
	if err != nil {
		t.Fatalf("IsFollowing failed: %v", err)
	}
	if !following {
		t.Error("Expected bob to follow ana")
	}

	// The edge is directional.
	reverse, err := IsFollowing(db, ana.ID, bob.ID)
	if err != nil {
		t.Fatalf("IsFollowing failed: %v", err)
	}
	if reverse {
		t.Error("Expected ana not to follow bob")
	}

	if err := UnfollowUser(db, bob, ana); err != nil {
		t.Fatalf("UnfollowUser failed: %v", err)
	}
	following, err = IsFollowing(db, bob.ID, ana.ID)
	if err != nil {
		t.Fatalf("IsFollowing failed: %v", err)
	}
	if following {
		t.Error("Expected follow edge removed")
	}
}
