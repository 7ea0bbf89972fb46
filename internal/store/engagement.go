package store

import (
	"database/sql"
	"fmt"
)

// Likes and favorites are structurally identical relations kept
// deliberately independent: a like is a public signal whose aggregate
// count is part of the listing surface, a favorite is a private save-list.

// likeStore implements [Likes] against a connected database.
type likeStore struct {
	db *sql.DB
}

func membershipExists(q rowQuerier, table string, userID, contentID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE user_id = ? AND content_id = ? LIMIT 1`, table)
	var one int
	err := q.QueryRow(query, userID, contentID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s membership: %w", table, err)
	}
	return true, nil
}

func (s *likeStore) Has(userID, contentID int64) (bool, error) {
	return membershipExists(s.db, "likes", userID, contentID)
}

// Toggle flips the like inside one transaction so the read, the write and
// the fresh count observe the same state. SQLite's single-writer
// discipline serializes concurrent toggles on the same pair.
func (s *likeStore) Toggle(userID, contentID int64) (LikeState, error) {
	var state LikeState
	err := inTx(s.db, func(tx *sql.Tx) error {
		active, err := membershipExists(tx, "likes", userID, contentID)
		if err != nil {
			return err
		}

		if active {
			_, err = tx.Exec(`DELETE FROM likes WHERE user_id = ? AND content_id = ?`, userID, contentID)
		} else {
			_, err = tx.Exec(`INSERT INTO likes (user_id, content_id) VALUES (?, ?)`, userID, contentID)
		}
		if err != nil {
			return fmt.Errorf("failed to toggle like: %w", err)
		}

		state.Active = !active
		return tx.QueryRow(`SELECT COUNT(*) FROM likes WHERE content_id = ?`, contentID).Scan(&state.Count)
	})
	if err != nil {
		return LikeState{}, err
	}
	return state, nil
}

func (s *likeStore) Count(contentID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM likes WHERE content_id = ?`, contentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func (s *likeStore) LikedContentIDs(userID int64) (map[int64]bool, error) {
	rows, err := s.db.Query(`SELECT content_id FROM likes WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked content: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// favoriteStore implements [Favorites] against a connected database.
type favoriteStore struct {
	db *sql.DB
}

func (s *favoriteStore) Has(userID, contentID int64) (bool, error) {
	return membershipExists(s.db, "favorites", userID, contentID)
}

func (s *favoriteStore) Toggle(userID, contentID int64) (bool, error) {
	var active bool
	err := inTx(s.db, func(tx *sql.Tx) error {
		current, err := membershipExists(tx, "favorites", userID, contentID)
		if err != nil {
			return err
		}

		if current {
			_, err = tx.Exec(`DELETE FROM favorites WHERE user_id = ? AND content_id = ?`, userID, contentID)
		} else {
			_, err = tx.Exec(`INSERT INTO favorites (user_id, content_id) VALUES (?, ?)`, userID, contentID)
		}
		if err != nil {
			return fmt.Errorf("failed to toggle favorite: %w", err)
		}

		active = !current
		return nil
	})
	if err != nil {
		return false, err
	}
	return active, nil
}

func (s *favoriteStore) ListOfUser(userID int64) ([]Content, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.title, c.description, c.category, c.image_path,
			c.owner_id, u.name, c.slug, c.created_at
		FROM favorites f
		JOIN contents c ON c.id = f.content_id
		LEFT JOIN users u ON u.id = c.owner_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var items []Content
	for rows.Next() {
		var (
			c         Content
			ownerName sql.NullString
			createdAt string
		)
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.ImagePath,
			&c.OwnerID, &ownerName, &c.Slug, &createdAt); err != nil {
			return nil, err
		}
		c.OwnerName = ownerName.String
		c.CreatedAt = parseTime(createdAt)
		items = append(items, c)
	}
	return items, rows.Err()
}
