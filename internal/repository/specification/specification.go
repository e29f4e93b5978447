package specification

import (
	"notefiber-editor/internal/entity"

	"gorm.io/gorm"
)

// Specification defines the interface for query specifications
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// Matcher is implemented by specifications that can also filter in-memory notes.
type Matcher interface {
	Matches(note *entity.StoredNote) bool
}
