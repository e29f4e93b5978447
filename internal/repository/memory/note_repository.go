package memory

import (
	"context"
	"fmt"
	"time"

	"notefiber-editor/internal/entity"
	"notefiber-editor/internal/repository/contract"
	"notefiber-editor/internal/repository/specification"

	"github.com/patrickmn/go-cache"
)

// NoteRepository keeps notes in process memory. It serves development runs
// without DB_CONNECTION_STRING and the service tests.
type NoteRepository struct {
	cache *cache.Cache
}

func NewNoteRepository() *NoteRepository {
	// Notes never expire; there is no janitor to run.
	c := cache.New(cache.NoExpiration, 0)
	return &NoteRepository{
		cache: c,
	}
}

var _ contract.NoteRepository = (*NoteRepository)(nil)

func (r *NoteRepository) Create(ctx context.Context, note *entity.StoredNote) error {
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	stored := *note
	if err := r.cache.Add(note.Id, &stored, cache.NoExpiration); err != nil {
		return fmt.Errorf("note %s already exists", note.Id)
	}
	return nil
}

func (r *NoteRepository) Update(ctx context.Context, note *entity.StoredNote) error {
	now := time.Now()
	note.UpdatedAt = &now
	stored := *note
	if err := r.cache.Replace(note.Id, &stored, cache.NoExpiration); err != nil {
		return fmt.Errorf("note %s does not exist", note.Id)
	}
	return nil
}

func (r *NoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StoredNote, error) {
	for _, item := range r.cache.Items() {
		note := item.Object.(*entity.StoredNote)
		ok, err := matchesAll(note, specs)
		if err != nil {
			return nil, err
		}
		if ok {
			found := *note
			return &found, nil
		}
	}
	return nil, nil
}

func (r *NoteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	for _, item := range r.cache.Items() {
		ok, err := matchesAll(item.Object.(*entity.StoredNote), specs)
		if err != nil {
			return 0, err
		}
		if ok {
			count++
		}
	}
	return count, nil
}

func matchesAll(note *entity.StoredNote, specs []specification.Specification) (bool, error) {
	for _, spec := range specs {
		matcher, ok := spec.(specification.Matcher)
		if !ok {
			return false, fmt.Errorf("specification %T is not supported in memory", spec)
		}
		if !matcher.Matches(note) {
			return false, nil
		}
	}
	return true, nil
}
