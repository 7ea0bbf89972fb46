package store

import "time"

// User roles form a closed set enforced by a CHECK constraint.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleUser   = "user"
)

// Content categories form a closed set enforced by a CHECK constraint.
const (
	CategoryFlying    = "Flying"
	CategoryAutomatic = "Automatic"
	CategoryManual    = "Manual"
)

// Sort orders accepted by [Contents.ListFiltered].
const (
	SortNewest = "newest"
	SortLikes  = "likes"
)

// ValidRole reports whether role is one of the closed role set.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor || role == RoleUser
}

// ValidCategory reports whether category is one of the closed category set.
func ValidCategory(category string) bool {
	return category == CategoryFlying || category == CategoryAutomatic || category == CategoryManual
}

// User is a stored identity. Email and PasswordHash are empty when unset.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Author is the minimal (id, name) projection used by filter dropdowns.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Content is a shared record. OwnerName is denormalized from the owning
// user and empty when that user no longer exists. LikeCount is populated
// by listings.
type Content struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImagePath   string    `json:"image_path"`
	OwnerID     int64     `json:"owner_id"`
	OwnerName   string    `json:"owner_name,omitempty"`
	Slug        string    `json:"slug"`
	LikeCount   int       `json:"like_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUser carries the fields for [Users.Create]. The password hash is
// produced by the caller; this layer never sees plaintext credentials.
type NewUser struct {
	Name         string
	Email        string
	PasswordHash string
	Role         string
}

// NewContent carries the fields for [Contents.Insert]. Category must
// already be validated against the closed set; ImagePath is an opaque
// reference owned by the upload layer.
type NewContent struct {
	Title       string
	Description string
	Category    string
	ImagePath   string
	OwnerID     int64
}

// ContentUpdate carries the fields for [Contents.Update]. An empty
// ImagePath leaves the stored image reference untouched.
type ContentUpdate struct {
	Title       string
	Description string
	Category    string
	ImagePath   string
}

// Filter narrows and orders a content listing. Zero values mean "no
// filter"; Sort defaults to [SortNewest].
type Filter struct {
	Category string
	OwnerID  int64
	Sort     string
}

// LikeState is the outcome of a like toggle: the new membership state and
// the fresh aggregate count for the content item.
type LikeState struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

// timeLayout matches SQLite's datetime('now') output.
const timeLayout = "2006-01-02 15:04:05"

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
