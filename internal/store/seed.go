package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"vitrine/internal/shared"
)

// demoSeedKey marks the one-time demo seed in app_meta. The marker is
// never overwritten; its presence alone gates re-execution.
const demoSeedKey = "demo_seed_v1"

// SeedDemo runs the one-time demo seed. Fails with
// [shared.ErrStoreUnavailable] on a degraded store.
func (s *Store) SeedDemo() error {
	if s.db == nil {
		return shared.ErrStoreUnavailable
	}
	return SeedDemoDB(s.db, s.logger)
}

// SeedDemoDB populates a fresh database with demo users and a couple of
// content items, exactly once. The whole seed, marker included, runs in a
// single transaction.
func SeedDemoDB(db *sql.DB, logger *log.Logger) error {
	var one int
	err := db.QueryRow(`SELECT 1 FROM app_meta WHERE key = ? LIMIT 1`, demoSeedKey).Scan(&one)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check seed marker: %w", err)
	}

	err = inTx(db, func(tx *sql.Tx) error {
		demoUsers := []struct {
			name, role string
		}{
			{"Max", RoleAdmin},
			{"Erika", RoleUser},
			{"Sam", RoleEditor},
		}

		var ownerID int64
		for i, u := range demoUsers {
			res, err := tx.Exec(`INSERT INTO users (name, role, created_at) VALUES (?, ?, datetime('now'))`, u.name, u.role)
			if err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.name, err)
			}
			if i == 0 {
				if ownerID, err = res.LastInsertId(); err != nil {
					return err
				}
			}
		}

		demoContents := []struct {
			title, description, category string
		}{
			{"Die Zeitmaschine", "Ein Klassiker zum Einstieg.", CategoryAutomatic},
			{"Erster Flugversuch", "Aufnahme vom Wochenende.", CategoryFlying},
		}

		for _, c := range demoContents {
			slug, err := uniqueSlug(tx, Slugify(c.title))
			if err != nil {
				return err
			}
			imagePath := fmt.Sprintf("/uploads/demo-%s.jpg", shared.GenerateID())
			if _, err := tx.Exec(`INSERT INTO contents (title, description, category, image_path, owner_id, slug, created_at)
				VALUES (?, ?, ?, ?, ?, ?, datetime('now'))`,
				c.title, c.description, c.category, imagePath, ownerID, slug); err != nil {
				return fmt.Errorf("failed to seed content %q: %w", c.title, err)
			}
		}

		_, err := tx.Exec(`INSERT INTO app_meta (key, value) VALUES (?, ?)`,
			demoSeedKey, time.Now().UTC().Format(time.RFC3339))
		return err
	})
	if err != nil {
		return err
	}

	logger.Info("demo seed applied", "users", 3, "contents", 2)
	return nil
}
