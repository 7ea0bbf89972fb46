package store

import (
	"database/sql"
	"fmt"

	"vitrine/internal/shared"
)

// userRepository implements [Users] against a connected database.
type userRepository struct {
	db *sql.DB
}

func (r *userRepository) Create(u NewUser) (int64, error) {
	// NULL rather than "" so the case-insensitive unique index ignores
	// users without an email
	var email, hash any
	if u.Email != "" {
		email = u.Email
	}
	if u.PasswordHash != "" {
		hash = u.PasswordHash
	}

	res, err := r.db.Exec(`INSERT INTO users (name, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, datetime('now'))`,
		u.Name, email, hash, u.Role)
	if isUniqueViolation(err, "users.email") {
		return 0, fmt.Errorf("%w: email %q is already registered", shared.ErrConstraint, u.Email)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	return res.LastInsertId()
}

func (r *userRepository) Insert(name, role string) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO users (name, role) VALUES (?, ?)`, name, role)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return res.LastInsertId()
}

func (r *userRepository) FindByEmail(email string) (*User, error) {
	query := `
		SELECT id, name, role, email, password_hash, created_at
		FROM users
		WHERE email = ? COLLATE NOCASE
		LIMIT 1
	`

	var (
		u         User
		mail      sql.NullString
		hash      sql.NullString
		createdAt string
	)
	err := r.db.QueryRow(query, email).Scan(&u.ID, &u.Name, &u.Role, &mail, &hash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	u.Email = mail.String
	u.PasswordHash = hash.String
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}

func (r *userRepository) ListAll() ([]User, error) {
	rows, err := r.db.Query(`
		SELECT id, name, role, email, created_at
		FROM users
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var (
			u         User
			mail      sql.NullString
			createdAt string
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Role, &mail, &createdAt); err != nil {
			return nil, err
		}
		u.Email = mail.String
		u.CreatedAt = parseTime(createdAt)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) ListAuthors() ([]Author, error) {
	rows, err := r.db.Query(`
		SELECT id, name
		FROM users
		ORDER BY name COLLATE NOCASE
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	var authors []Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}
