package specification

import (
	"notefiber-editor/internal/entity"

	"gorm.io/gorm"
)

// ByID filters by ID
type ByID struct {
	ID string
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

func (s ByID) Matches(note *entity.StoredNote) bool {
	return note.Id == s.ID
}

// NotDeleted filters out soft-deleted records (explicitly)
// Note: GORM handles soft delete automatically if DeletedAt is present,
// but this can be used to be explicit or if global scope is disabled.
type NotDeleted struct{}

func (s NotDeleted) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

func (s NotDeleted) Matches(note *entity.StoredNote) bool {
	return !note.IsDeleted
}
