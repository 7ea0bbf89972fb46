package store

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"

	"vitrine/internal/shared"
)

// Migrate converges the database to the target schema. Every step is
// idempotent, so Migrate may run on every process start; a failing step
// wraps [shared.ErrMigrationFailed] and the caller must not serve
// repository operations afterwards.
func Migrate(db *sql.DB, logger *log.Logger) error {
	steps := []struct {
		name string
		run  func(db *sql.DB, logger *log.Logger) error
	}{
		{"pragmas", applyPragmas},
		{"base tables", createBaseTables},
		{"repair user timestamps", repairUserTimestamps},
		{"retrofit columns", retrofitColumns},
		{"backfill slugs", backfillSlugs},
		{"unique indexes", createUniqueIndexes},
		{"engagement tables", createEngagementTables},
	}

	for _, step := range steps {
		if err := step.run(db, logger); err != nil {
			return fmt.Errorf("%w: %s: %v", shared.ErrMigrationFailed, step.name, err)
		}
	}

	logger.Debug("schema migration complete")
	return nil
}

// execAll runs each statement on its own so a failure reports the
// offending statement.
func execAll(db *sql.DB, statements ...string) error {
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %w\nStatement: %s", err, stmt)
		}
	}
	return nil
}

// applyPragmas enforces foreign keys and WAL journaling. The DSN already
// requests both per connection; repeating them here makes the migration
// self-sufficient for handles opened elsewhere.
func applyPragmas(db *sql.DB, logger *log.Logger) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}
	// journal_mode is a query-style pragma and returns the resulting mode
	var mode string
	if err := db.QueryRow("PRAGMA journal_mode = WAL").Scan(&mode); err != nil {
		return err
	}
	logger.Debug("journal mode", "mode", mode)
	return nil
}

func createBaseTables(db *sql.DB, logger *log.Logger) error {
	return execAll(db,
		`CREATE TABLE IF NOT EXISTS app_meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			role        TEXT NOT NULL DEFAULT 'user' CHECK(role IN ('admin','user','editor')),
			created_at  TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE TABLE IF NOT EXISTS contents (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			category    TEXT NOT NULL CHECK(category IN ('Flying','Automatic','Manual')),
			image_path  TEXT NOT NULL,
			owner_id    INTEGER NOT NULL,
			slug        TEXT,
			created_at  TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY(owner_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contents_created_at ON contents(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_contents_category ON contents(category)`,
		`CREATE INDEX IF NOT EXISTS idx_contents_owner ON contents(owner_id)`,
	)
}

// repairUserTimestamps fills created_at for legacy rows written before the
// column had a default.
func repairUserTimestamps(db *sql.DB, logger *log.Logger) error {
	_, err := db.Exec(`UPDATE users
		SET created_at = datetime('now')
		WHERE created_at IS NULL OR TRIM(created_at) = ''`)
	return err
}

// hasColumn checks live schema state so column retrofits never run a blind
// ALTER, which would fail on a second pass.
func hasColumn(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to introspect %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func retrofitColumns(db *sql.DB, logger *log.Logger) error {
	retrofits := []struct {
		table, column, definition string
	}{
		{"users", "email", "TEXT"},
		{"users", "password_hash", "TEXT"},
		{"contents", "slug", "TEXT"},
	}

	for _, r := range retrofits {
		present, err := hasColumn(db, r.table, r.column)
		if err != nil {
			return err
		}
		if present {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", r.table, r.column, r.definition)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to add column %s.%s: %w", r.table, r.column, err)
		}
		logger.Info("added column", "table", r.table, "column", r.column)
	}
	return nil
}

// backfillSlugs derives slugs for content rows created before the slug
// column existed. The whole batch runs in one transaction so a crash never
// leaves the table half slugged; probing inside the same transaction keeps
// freshly assigned slugs visible to later rows of the batch.
func backfillSlugs(db *sql.DB, logger *log.Logger) error {
	return inTx(db, func(tx *sql.Tx) error {
		rows, err := tx.Query(`SELECT id, title FROM contents WHERE slug IS NULL OR TRIM(slug) = ''`)
		if err != nil {
			return fmt.Errorf("failed to select rows needing slugs: %w", err)
		}

		type pending struct {
			id    int64
			title string
		}
		var todo []pending
		for rows.Next() {
			var p pending
			if err := rows.Scan(&p.id, &p.title); err != nil {
				rows.Close()
				return err
			}
			todo = append(todo, p)
		}
		if err := rows.Close(); err != nil {
			return err
		}

		for _, p := range todo {
			slug, err := uniqueSlug(tx, Slugify(p.title))
			if err != nil {
				return err
			}
			if _, err := tx.Exec(`UPDATE contents SET slug = ? WHERE id = ?`, slug, p.id); err != nil {
				return fmt.Errorf("failed to backfill slug for content %d: %w", p.id, err)
			}
		}

		if len(todo) > 0 {
			logger.Info("backfilled content slugs", "count", len(todo))
		}
		return nil
	})
}

// createUniqueIndexes runs after the backfill so the slug constraint is
// built against collision-free data. Genuine duplicates surface here and
// abort startup.
func createUniqueIndexes(db *sql.DB, logger *log.Logger) error {
	return execAll(db,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_contents_slug_unique ON contents(slug)`,
		// replaced by the case-insensitive variant below
		`DROP INDEX IF EXISTS idx_users_email_unique`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_nocase ON users(email COLLATE NOCASE)`,
	)
}

func createEngagementTables(db *sql.DB, logger *log.Logger) error {
	return execAll(db,
		`CREATE TABLE IF NOT EXISTS likes (
			user_id    INTEGER NOT NULL,
			content_id INTEGER NOT NULL,
			created_at TEXT    NOT NULL DEFAULT (datetime('now')),
			PRIMARY KEY (user_id, content_id),
			FOREIGN KEY(user_id)    REFERENCES users(id)    ON DELETE CASCADE,
			FOREIGN KEY(content_id) REFERENCES contents(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_likes_content ON likes(content_id)`,
		`CREATE INDEX IF NOT EXISTS idx_likes_user ON likes(user_id)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			user_id    INTEGER NOT NULL,
			content_id INTEGER NOT NULL,
			created_at TEXT    NOT NULL DEFAULT (datetime('now')),
			PRIMARY KEY (user_id, content_id),
			FOREIGN KEY(user_id)    REFERENCES users(id)    ON DELETE CASCADE,
			FOREIGN KEY(content_id) REFERENCES contents(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fav_content ON favorites(content_id)`,
		`CREATE INDEX IF NOT EXISTS idx_fav_user ON favorites(user_id)`,
	)
}
