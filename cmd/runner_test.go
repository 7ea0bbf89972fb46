package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"

	"vitrine/internal/shared"
	"vitrine/internal/store"
)

// testRunner wires a Runner to a migrated in-memory store and a capture buffer.
func testRunner(t *testing.T) (*Runner, *store.Store, *bytes.Buffer) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	logger := shared.NewLogger(io.Discard)
	if err := store.Migrate(db, logger); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	s := store.New(db, logger)
	out := &bytes.Buffer{}
	r := NewRunner(RunnerOpts{
		Config: shared.DefaultConfig(),
		Logger: logger,
		Output: out,
		Store:  s,
	})
	return r, s, out
}

func runCLI(t *testing.T, r *Runner, args ...string) error {
	t.Helper()

	app := &cli.Command{Name: "vitrine", Commands: r.register()}
	return app.Run(context.Background(), append([]string{"vitrine"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner applies defaults", func(t *testing.T) {
		r := NewRunner(RunnerOpts{})

		if r.config == nil {
			t.Error("config should default")
		}
		if r.logger == nil {
			t.Error("logger should default")
		}
		if r.output == nil {
			t.Error("output should default")
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		out := &bytes.Buffer{}
		r := NewRunner(RunnerOpts{Output: out, Logger: shared.NewLogger(io.Discard)})

		if err := r.writeJSON(map[string]int{"likes": 3}, false); err != nil {
			t.Fatalf("writeJSON failed: %v", err)
		}
		if !strings.Contains(out.String(), `"likes":3`) {
			t.Errorf("unexpected JSON output: %s", out.String())
		}
	})
}

func TestUsersCommands(t *testing.T) {
	t.Run("create hashes the password", func(t *testing.T) {
		r, s, _ := testRunner(t)

		err := runCLI(t, r, "users", "create",
			"--name", "Erika", "--email", "erika@example.com", "--password", "s3cret", "--role", "editor")
		if err != nil {
			t.Fatalf("users create failed: %v", err)
		}

		u, err := s.Users.FindByEmail("erika@example.com")
		if err != nil || u == nil {
			t.Fatalf("created user not found: %v", err)
		}
		if u.Role != store.RoleEditor {
			t.Errorf("role = %q, want editor", u.Role)
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")) != nil {
			t.Error("stored hash does not verify against the password")
		}
	})

	t.Run("create rejects invalid role", func(t *testing.T) {
		r, _, _ := testRunner(t)

		err := runCLI(t, r, "users", "create",
			"--name", "x", "--email", "x@example.com", "--password", "p", "--role", "root")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("create surfaces duplicate email as constraint violation", func(t *testing.T) {
		r, _, _ := testRunner(t)

		args := []string{"users", "create", "--name", "Erika", "--email", "erika@example.com", "--password", "p"}
		if err := runCLI(t, r, args...); err != nil {
			t.Fatalf("first create failed: %v", err)
		}
		if err := runCLI(t, r, args...); !errors.Is(err, shared.ErrConstraint) {
			t.Fatalf("expected ErrConstraint, got %v", err)
		}
	})

	t.Run("list outputs JSON", func(t *testing.T) {
		r, s, out := testRunner(t)

		if _, err := s.Users.Insert("Max", store.RoleAdmin); err != nil {
			t.Fatal(err)
		}

		if err := runCLI(t, r, "users", "list", "--json"); err != nil {
			t.Fatalf("users list failed: %v", err)
		}
		if !strings.Contains(out.String(), `"name":"Max"`) {
			t.Errorf("unexpected output: %s", out.String())
		}
	})
}

func TestContentsCommands(t *testing.T) {
	t.Run("add and get round trip", func(t *testing.T) {
		r, s, out := testRunner(t)

		if _, err := s.Users.Insert("Max", store.RoleAdmin); err != nil {
			t.Fatal(err)
		}

		err := runCLI(t, r, "contents", "add",
			"--title", "Die Zeitmaschine!", "--description", "Klassiker",
			"--category", "Automatic", "--image", "/uploads/z.jpg",
			"--owner", "1")
		if err != nil {
			t.Fatalf("contents add failed: %v", err)
		}

		if err := runCLI(t, r, "contents", "get", "die-zeitmaschine"); err != nil {
			t.Fatalf("contents get failed: %v", err)
		}
		if !strings.Contains(out.String(), `"slug": "die-zeitmaschine"`) {
			t.Errorf("unexpected output: %s", out.String())
		}
	})

	t.Run("add rejects invalid category", func(t *testing.T) {
		r, _, _ := testRunner(t)

		err := runCLI(t, r, "contents", "add",
			"--title", "t", "--description", "d", "--category", "Quartz",
			"--image", "/i.jpg", "--owner", "1")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("get of unknown slug fails", func(t *testing.T) {
		r, _, _ := testRunner(t)

		if err := runCLI(t, r, "contents", "get", "missing"); err == nil {
			t.Fatal("expected error for unknown slug")
		}
	})

	t.Run("list filters by category", func(t *testing.T) {
		r, s, out := testRunner(t)

		owner, err := s.Users.Insert("Max", store.RoleAdmin)
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range []struct{ title, category string }{
			{"Flieger", store.CategoryFlying},
			{"Handaufzug", store.CategoryManual},
		} {
			if _, err := s.Contents.Insert(store.NewContent{
				Title: c.title, Description: "d", Category: c.category,
				ImagePath: "/i.jpg", OwnerID: owner,
			}); err != nil {
				t.Fatal(err)
			}
		}

		if err := runCLI(t, r, "contents", "list", "--category", "Flying", "--json"); err != nil {
			t.Fatalf("contents list failed: %v", err)
		}
		if !strings.Contains(out.String(), "Flieger") || strings.Contains(out.String(), "Handaufzug") {
			t.Errorf("unexpected output: %s", out.String())
		}
	})
}

func TestEngageCommands(t *testing.T) {
	t.Run("like toggle reports state and count", func(t *testing.T) {
		r, s, out := testRunner(t)

		if _, err := s.Users.Insert("Erika", store.RoleUser); err != nil {
			t.Fatal(err)
		}
		owner, err := s.Users.Insert("Max", store.RoleAdmin)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.Contents.Insert(store.NewContent{
			Title: "t", Description: "d", Category: store.CategoryManual,
			ImagePath: "/i.jpg", OwnerID: owner,
		}); err != nil {
			t.Fatal(err)
		}

		if err := runCLI(t, r, "engage", "like", "--user", "1", "--content", "1"); err != nil {
			t.Fatalf("like toggle failed: %v", err)
		}
		if !strings.Contains(out.String(), `"active":true`) || !strings.Contains(out.String(), `"count":1`) {
			t.Errorf("unexpected output: %s", out.String())
		}

		out.Reset()
		if err := runCLI(t, r, "engage", "like", "--user", "1", "--content", "1"); err != nil {
			t.Fatalf("second like toggle failed: %v", err)
		}
		if !strings.Contains(out.String(), `"active":false`) || !strings.Contains(out.String(), `"count":0`) {
			t.Errorf("unexpected output: %s", out.String())
		}
	})

	t.Run("favorites list is scoped to the user", func(t *testing.T) {
		r, s, out := testRunner(t)

		fan, err := s.Users.Insert("Erika", store.RoleUser)
		if err != nil {
			t.Fatal(err)
		}
		id, err := s.Contents.Insert(store.NewContent{
			Title: "Gemerkt", Description: "d", Category: store.CategoryFlying,
			ImagePath: "/i.jpg", OwnerID: fan,
		})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.Favorites.Toggle(fan, id); err != nil {
			t.Fatal(err)
		}

		if err := runCLI(t, r, "engage", "favorites", "--user", "1", "--json"); err != nil {
			t.Fatalf("favorites list failed: %v", err)
		}
		if !strings.Contains(out.String(), "Gemerkt") {
			t.Errorf("unexpected output: %s", out.String())
		}
	})
}
