package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	sqlite3 "github.com/mattn/go-sqlite3"

	"vitrine/internal/shared"
)

// Users persists and retrieves user identities.
type Users interface {
	// Create inserts a registered user and returns the new ID. Fails with
	// [shared.ErrConstraint] when the email is already taken, ignoring case.
	Create(u NewUser) (int64, error)
	// Insert adds a minimal user without credentials, as used by seeding.
	Insert(name, role string) (int64, error)
	// FindByEmail returns the user with the given email, matched
	// case-insensitively, or nil when no such user exists.
	FindByEmail(email string) (*User, error)
	// ListAll returns all users ordered by ID ascending.
	ListAll() ([]User, error)
	// ListAuthors returns (id, name) pairs ordered by name, ignoring case.
	ListAuthors() ([]Author, error)
}

// Contents persists shared content items.
type Contents interface {
	// Insert stores a new content item, deriving a unique slug from the
	// title, and returns the new ID.
	Insert(c NewContent) (int64, error)
	// GetBySlug returns the item with the given slug, or nil when absent.
	GetBySlug(slug string) (*Content, error)
	// GetByID returns the item with the given ID, or nil when absent.
	GetByID(id int64) (*Content, error)
	// Update changes the textual fields and, when u.ImagePath is non-empty,
	// the image reference. The slug never changes. Returns rows changed.
	Update(id int64, u ContentUpdate) (int64, error)
	// Delete removes the item; likes and favorites cascade away with it.
	// Returns rows changed.
	Delete(id int64) (int64, error)
	// ListFiltered returns items matching the filter with aggregated like
	// counts and owner names joined in.
	ListFiltered(f Filter) ([]Content, error)
}

// Likes records which users like which content items.
type Likes interface {
	Has(userID, contentID int64) (bool, error)
	// Toggle flips the membership and returns the new state together with
	// the fresh aggregate count.
	Toggle(userID, contentID int64) (LikeState, error)
	Count(contentID int64) (int, error)
	// LikedContentIDs returns the set of content IDs the user has liked.
	LikedContentIDs(userID int64) (map[int64]bool, error)
}

// Favorites records each user's private save-list.
type Favorites interface {
	Has(userID, contentID int64) (bool, error)
	// Toggle flips the membership and returns the new state.
	Toggle(userID, contentID int64) (bool, error)
	// ListOfUser returns the user's favorited items, most recently
	// favorited first.
	ListOfUser(userID int64) ([]Content, error)
}

// Store bundles the repositories over one shared database handle. Build it
// once at startup with [Open] and close it on shutdown; Close is
// idempotent.
type Store struct {
	Users     Users
	Contents  Contents
	Likes     Likes
	Favorites Favorites

	db        *sql.DB
	logger    *log.Logger
	closeOnce sync.Once
}

// Open opens the database at path, migrates it and returns a connected
// Store. Open errors wrap [shared.ErrStoreUnavailable]; migration errors
// wrap [shared.ErrMigrationFailed] and must be treated as fatal.
func Open(path string, maxOpenConns, maxIdleConns int, logger *log.Logger) (*Store, error) {
	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}
	shared.ConfigureDatabase(db, maxOpenConns, maxIdleConns)

	if err := Migrate(db, logger); err != nil {
		db.Close()
		return nil, err
	}

	return New(db, logger), nil
}

// New builds a connected Store over an already migrated database handle.
func New(db *sql.DB, logger *log.Logger) *Store {
	return &Store{
		Users:     &userRepository{db: db},
		Contents:  &contentRepository{db: db},
		Likes:     &likeStore{db: db},
		Favorites: &favoriteStore{db: db},
		db:        db,
		logger:    logger,
	}
}

// Unavailable builds the degraded-mode Store used when the database cannot
// be opened: reads serve fixed placeholder data, mutations fail with
// [shared.ErrStoreUnavailable].
func Unavailable(logger *log.Logger) *Store {
	return &Store{
		Users:     fallbackUserRepository{},
		Contents:  fallbackContentRepository{},
		Likes:     fallbackLikeStore{},
		Favorites: fallbackFavoriteStore{},
		logger:    logger,
	}
}

// Available reports whether the Store is backed by a real database.
func (s *Store) Available() bool {
	return s.db != nil
}

// Close releases the database handle. Safe to call more than once and on a
// degraded Store.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.db != nil {
			err = s.db.Close()
		}
	})
	return err
}

// inTx runs fn inside a transaction: commit on success, rollback on any
// failure, release guaranteed on all exit paths.
func inTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure on the given column (e.g. "contents.slug").
func isUniqueViolation(err error, column string) bool {
	var serr sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	if serr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return false
	}
	return strings.Contains(serr.Error(), column)
}
