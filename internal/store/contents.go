package store

import (
	"database/sql"
	"fmt"

	"vitrine/internal/shared"
)

// contentRepository implements [Contents] against a connected database.
type contentRepository struct {
	db *sql.DB
}

// slugInsertAttempts bounds the retry on slug unique violations. Two
// concurrent inserts can derive the same slug between probe and commit;
// the unique index rejects the loser, which re-probes and retries.
const slugInsertAttempts = 3

func (r *contentRepository) Insert(c NewContent) (int64, error) {
	base := Slugify(c.Title)

	var id int64
	var err error
	for attempt := 0; attempt < slugInsertAttempts; attempt++ {
		err = inTx(r.db, func(tx *sql.Tx) error {
			slug, serr := uniqueSlug(tx, base)
			if serr != nil {
				return serr
			}
			res, serr := tx.Exec(`INSERT INTO contents (title, description, category, image_path, owner_id, slug, created_at)
				VALUES (?, ?, ?, ?, ?, ?, datetime('now'))`,
				c.Title, c.Description, c.Category, c.ImagePath, c.OwnerID, slug)
			if serr != nil {
				return serr
			}
			id, serr = res.LastInsertId()
			return serr
		})
		if err == nil {
			return id, nil
		}
		if !isUniqueViolation(err, "contents.slug") {
			return 0, fmt.Errorf("failed to insert content: %w", err)
		}
	}

	return 0, fmt.Errorf("%w: could not assign a unique slug for %q", shared.ErrConstraint, c.Title)
}

const contentSelect = `
	SELECT c.id, c.title, c.description, c.category, c.image_path,
		c.owner_id, u.name, c.slug, c.created_at
	FROM contents c
	LEFT JOIN users u ON u.id = c.owner_id
`

func (r *contentRepository) getOne(where string, arg any) (*Content, error) {
	var (
		c         Content
		ownerName sql.NullString
		createdAt string
	)
	err := r.db.QueryRow(contentSelect+where+" LIMIT 1", arg).Scan(
		&c.ID, &c.Title, &c.Description, &c.Category, &c.ImagePath,
		&c.OwnerID, &ownerName, &c.Slug, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query content: %w", err)
	}

	c.OwnerName = ownerName.String
	c.CreatedAt = parseTime(createdAt)
	return &c, nil
}

func (r *contentRepository) GetBySlug(slug string) (*Content, error) {
	return r.getOne("WHERE c.slug = ?", slug)
}

func (r *contentRepository) GetByID(id int64) (*Content, error) {
	return r.getOne("WHERE c.id = ?", id)
}

func (r *contentRepository) Update(id int64, u ContentUpdate) (int64, error) {
	var res sql.Result
	var err error

	// The image reference only changes when a replacement was uploaded;
	// the slug never changes.
	if u.ImagePath != "" {
		res, err = r.db.Exec(`UPDATE contents
			SET title = ?, description = ?, category = ?, image_path = ?
			WHERE id = ?`,
			u.Title, u.Description, u.Category, u.ImagePath, id)
	} else {
		res, err = r.db.Exec(`UPDATE contents
			SET title = ?, description = ?, category = ?
			WHERE id = ?`,
			u.Title, u.Description, u.Category, id)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to update content: %w", err)
	}
	return res.RowsAffected()
}

func (r *contentRepository) Delete(id int64) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM contents WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete content: %w", err)
	}
	return res.RowsAffected()
}

func (r *contentRepository) ListFiltered(f Filter) ([]Content, error) {
	var p predicates
	if f.Category != "" {
		p.add("c.category = ?", f.Category)
	}
	if f.OwnerID != 0 {
		p.add("c.owner_id = ?", f.OwnerID)
	}

	// id DESC breaks ties in both orders so the listing stays total and
	// stable when counts and timestamps collide
	orderBy := "c.created_at DESC, c.id DESC"
	if f.Sort == SortLikes {
		orderBy = "COALESCE(lc.like_count, 0) DESC, c.created_at DESC, c.id DESC"
	}

	query := fmt.Sprintf(`
		SELECT c.id, c.title, c.description, c.category, c.image_path,
			c.owner_id, u.name, c.slug, COALESCE(lc.like_count, 0), c.created_at
		FROM contents c
		LEFT JOIN users u ON u.id = c.owner_id
		LEFT JOIN (
			SELECT content_id, COUNT(*) AS like_count
			FROM likes
			GROUP BY content_id
		) lc ON lc.content_id = c.id
		%s
		ORDER BY %s`, p.where(), orderBy)

	rows, err := r.db.Query(query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contents: %w", err)
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
			&c.OwnerID, &ownerName, &c.Slug, &c.LikeCount, &createdAt); err != nil {
			return nil, err
		}
		c.OwnerName = ownerName.String
		c.CreatedAt = parseTime(createdAt)
		items = append(items, c)
	}
	return items, rows.Err()
}
