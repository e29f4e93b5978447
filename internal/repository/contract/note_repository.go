package contract

import (
	"context"

	"notefiber-editor/internal/entity"
	"notefiber-editor/internal/repository/specification"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.StoredNote) error
	Update(ctx context.Context, note *entity.StoredNote) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StoredNote, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
