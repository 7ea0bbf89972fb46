package store

import (
	"time"

	"vitrine/internal/shared"
)

// fallbackUsers is the fixed placeholder set served when the database is
// unavailable. Non-authoritative; it only keeps the surrounding system
// observable.
var fallbackUsers = []User{
	{ID: 1, Name: "DB", Role: RoleAdmin, CreatedAt: time.Date(2024, time.November, 2, 0, 0, 0, 0, time.UTC)},
	{ID: 2, Name: "Fallback", Role: RoleUser, CreatedAt: time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)},
	{ID: 3, Name: "Data", Role: RoleEditor, CreatedAt: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)},
}

type fallbackUserRepository struct{}

func (fallbackUserRepository) Create(NewUser) (int64, error) {
	return 0, shared.ErrStoreUnavailable
}

func (fallbackUserRepository) Insert(string, string) (int64, error) {
	return 0, shared.ErrStoreUnavailable
}

func (fallbackUserRepository) FindByEmail(string) (*User, error) {
	return nil, nil
}

func (fallbackUserRepository) ListAll() ([]User, error) {
	users := make([]User, len(fallbackUsers))
	copy(users, fallbackUsers)
	return users, nil
}

func (fallbackUserRepository) ListAuthors() ([]Author, error) {
	return nil, nil
}

type fallbackContentRepository struct{}

func (fallbackContentRepository) Insert(NewContent) (int64, error) {
	return 0, shared.ErrStoreUnavailable
}

func (fallbackContentRepository) GetBySlug(string) (*Content, error) {
	return nil, nil
}

func (fallbackContentRepository) GetByID(int64) (*Content, error) {
	return nil, nil
}

func (fallbackContentRepository) Update(int64, ContentUpdate) (int64, error) {
	return 0, shared.ErrStoreUnavailable
}

func (fallbackContentRepository) Delete(int64) (int64, error) {
	return 0, shared.ErrStoreUnavailable
}

func (fallbackContentRepository) ListFiltered(Filter) ([]Content, error) {
	return nil, nil
}

type fallbackLikeStore struct{}

func (fallbackLikeStore) Has(int64, int64) (bool, error) {
	return false, nil
}

func (fallbackLikeStore) Toggle(int64, int64) (LikeState, error) {
	return LikeState{}, shared.ErrStoreUnavailable
}

func (fallbackLikeStore) Count(int64) (int, error) {
	return 0, nil
}

func (fallbackLikeStore) LikedContentIDs(int64) (map[int64]bool, error) {
	return map[int64]bool{}, nil
}

type fallbackFavoriteStore struct{}

func (fallbackFavoriteStore) Has(int64, int64) (bool, error) {
	return false, nil
}

func (fallbackFavoriteStore) Toggle(int64, int64) (bool, error) {
	return false, shared.ErrStoreUnavailable
}

func (fallbackFavoriteStore) ListOfUser(int64) ([]Content, error) {
	return nil, nil
}
