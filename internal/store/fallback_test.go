package store

import (
	"errors"
	"testing"

	"vitrine/internal/shared"
)

func TestDegradedStore(t *testing.T) {
	s := Unavailable(testLogger())

	t.Run("ListAll serves the placeholder set", func(t *testing.T) {
		users, err := s.Users.ListAll()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(users) != 3 {
			t.Fatalf("expected 3 fallback users, got %d", len(users))
		}
		if users[0].Name != "DB" || users[0].Role != RoleAdmin {
			t.Errorf("unexpected first fallback user: %+v", users[0])
		}
	})

	t.Run("mutations fail explicitly", func(t *testing.T) {
		if _, err := s.Users.Create(NewUser{Name: "x"}); !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Errorf("Users.Create: expected ErrStoreUnavailable, got %v", err)
		}
		if _, err := s.Contents.Insert(NewContent{Title: "x"}); !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Errorf("Contents.Insert: expected ErrStoreUnavailable, got %v", err)
		}
		if _, err := s.Contents.Update(1, ContentUpdate{}); !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Errorf("Contents.Update: expected ErrStoreUnavailable, got %v", err)
		}
		if _, err := s.Contents.Delete(1); !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Errorf("Contents.Delete: expected ErrStoreUnavailable, got %v", err)
		}
		if _, err := s.Likes.Toggle(1, 1); !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Errorf("Likes.Toggle: expected ErrStoreUnavailable, got %v", err)
		}
		if _, err := s.Favorites.Toggle(1, 1); !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Errorf("Favorites.Toggle: expected ErrStoreUnavailable, got %v", err)
		}
		if err := s.SeedDemo(); !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Errorf("SeedDemo: expected ErrStoreUnavailable, got %v", err)
		}
	})

	t.Run("reads are empty, never errors", func(t *testing.T) {
		if u, err := s.Users.FindByEmail("a@b.c"); u != nil || err != nil {
			t.Errorf("FindByEmail = (%v, %v), want (nil, nil)", u, err)
		}
		if c, err := s.Contents.GetBySlug("x"); c != nil || err != nil {
			t.Errorf("GetBySlug = (%v, %v), want (nil, nil)", c, err)
		}
		if items, err := s.Contents.ListFiltered(Filter{}); len(items) != 0 || err != nil {
			t.Errorf("ListFiltered = (%v, %v), want empty", items, err)
		}
		if liked, err := s.Likes.Has(1, 1); liked || err != nil {
			t.Errorf("Likes.Has = (%v, %v), want (false, nil)", liked, err)
		}
		if count, err := s.Likes.Count(1); count != 0 || err != nil {
			t.Errorf("Likes.Count = (%v, %v), want (0, nil)", count, err)
		}
		if items, err := s.Favorites.ListOfUser(1); len(items) != 0 || err != nil {
			t.Errorf("Favorites.ListOfUser = (%v, %v), want empty", items, err)
		}
	})
}
