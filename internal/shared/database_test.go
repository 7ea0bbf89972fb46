package shared

import "testing"

func TestNewDatabase(t *testing.T) {
	t.Run("opens in-memory database", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		var enabled int
		if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
			t.Fatalf("failed to read foreign_keys pragma: %v", err)
		}
		if enabled != 1 {
			t.Error("foreign key enforcement should be enabled by the DSN")
		}
	})

	t.Run("rejects unreadable path", func(t *testing.T) {
		if _, err := NewDatabase("/nonexistent-dir/sub/vitrine.db"); err == nil {
			t.Error("expected error for unopenable database path")
		}
	})
}
