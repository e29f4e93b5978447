package entity

import (
	"time"
)

// Note is the editable payload of a note. Persistence identity lives outside of it.
type Note struct {
	Title            string
	Description      string
	Date             time.Time
	ButtonContent    string
	ButtonUrl        string
	ShowCallToAction bool
}

// EmptyNote is the record an editor starts from when nothing was loaded.
func EmptyNote() Note {
	return Note{}
}

// Equal compares field by field. Dates compare by instant, not by location.
func (n Note) Equal(other Note) bool {
	return n.Title == other.Title &&
		n.Description == other.Description &&
		n.Date.Equal(other.Date) &&
		n.ButtonContent == other.ButtonContent &&
		n.ButtonUrl == other.ButtonUrl &&
		n.ShowCallToAction == other.ShowCallToAction
}

// Clone returns an independent copy. Note holds only values, so assignment never aliases.
func (n Note) Clone() Note {
	return n
}

// StoredNote is a note as held by the store, together with its identifier.
type StoredNote struct {
	Id        string
	Note      Note
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
