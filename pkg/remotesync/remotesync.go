// Package remotesync is the session's view of the notes store: one record
// fetched, created or updated per call, with failures classified as
// apperror kinds NotFound, Validation or Transport.
package remotesync

import (
	"context"

	"notefiber-editor/internal/entity"
)

type RemoteSync interface {
	// Fetch loads the record with the given id.
	Fetch(ctx context.Context, id string) (entity.StoredNote, error)
	// Create stores a new record. id is a hint; empty lets the store assign one.
	Create(ctx context.Context, id string, note entity.Note) (entity.StoredNote, error)
	// Update replaces the editable fields of an existing record.
	Update(ctx context.Context, id string, note entity.Note) (entity.StoredNote, error)
}
