package store

import (
	"errors"
	"testing"

	"vitrine/internal/shared"
)

func TestUserRepository(t *testing.T) {
	t.Run("Create and FindByEmail", func(t *testing.T) {
		s := setupTestStore(t)

		id, err := s.Users.Create(NewUser{
			Name:         "Erika",
			Email:        "erika@example.com",
			PasswordHash: "$2a$10$fakehash",
			Role:         RoleEditor,
		})
		if err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
		if id == 0 {
			t.Fatal("expected a non-zero user ID")
		}

		found, err := s.Users.FindByEmail("erika@example.com")
		if err != nil {
			t.Fatalf("failed to find user: %v", err)
		}
		if found == nil {
			t.Fatal("expected user, got nil")
		}
		if found.ID != id || found.Name != "Erika" || found.Role != RoleEditor {
			t.Errorf("unexpected user: %+v", found)
		}
		if found.PasswordHash != "$2a$10$fakehash" {
			t.Errorf("password hash not round-tripped: %q", found.PasswordHash)
		}
	})

	t.Run("FindByEmail is case-insensitive", func(t *testing.T) {
		s := setupTestStore(t)

		if _, err := s.Users.Create(NewUser{Name: "Erika", Email: "Erika@Example.com", Role: RoleUser}); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		found, err := s.Users.FindByEmail("erika@example.COM")
		if err != nil {
			t.Fatalf("failed to find user: %v", err)
		}
		if found == nil {
			t.Fatal("expected case-insensitive match, got nil")
		}
	})

	t.Run("FindByEmail returns nil when absent", func(t *testing.T) {
		s := setupTestStore(t)

		found, err := s.Users.FindByEmail("nobody@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found != nil {
			t.Errorf("expected nil, got %+v", found)
		}
	})

	t.Run("duplicate email violates constraint ignoring case", func(t *testing.T) {
		s := setupTestStore(t)

		if _, err := s.Users.Create(NewUser{Name: "Erika", Email: "erika@example.com", Role: RoleUser}); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		_, err := s.Users.Create(NewUser{Name: "Impostor", Email: "ERIKA@example.com", Role: RoleUser})
		if !errors.Is(err, shared.ErrConstraint) {
			t.Fatalf("expected ErrConstraint, got %v", err)
		}
	})

	t.Run("users without email do not collide", func(t *testing.T) {
		s := setupTestStore(t)

		for _, name := range []string{"Max", "Erika"} {
			if _, err := s.Users.Create(NewUser{Name: name, Role: RoleUser}); err != nil {
				t.Fatalf("failed to create email-less user %s: %v", name, err)
			}
		}
	})

	t.Run("ListAll orders by ID", func(t *testing.T) {
		s := setupTestStore(t)

		for _, name := range []string{"Max", "Erika", "Sam"} {
			insertTestUser(t, s, name)
		}

		users, err := s.Users.ListAll()
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if len(users) != 3 {
			t.Fatalf("expected 3 users, got %d", len(users))
		}
		for i := 1; i < len(users); i++ {
			if users[i].ID <= users[i-1].ID {
				t.Errorf("users not ordered by ID: %d after %d", users[i].ID, users[i-1].ID)
			}
		}
		if users[0].Email != "" {
			t.Errorf("expected empty email for user without one, got %q", users[0].Email)
		}
	})

	t.Run("ListAuthors orders by name ignoring case", func(t *testing.T) {
		s := setupTestStore(t)

		for _, name := range []string{"charlie", "Ada", "bob"} {
			insertTestUser(t, s, name)
		}

		authors, err := s.Users.ListAuthors()
		if err != nil {
			t.Fatalf("failed to list authors: %v", err)
		}

		want := []string{"Ada", "bob", "charlie"}
		if len(authors) != len(want) {
			t.Fatalf("expected %d authors, got %d", len(want), len(authors))
		}
		for i, a := range authors {
			if a.Name != want[i] {
				t.Errorf("author %d: name = %q, want %q", i, a.Name, want[i])
			}
		}
	})
}
