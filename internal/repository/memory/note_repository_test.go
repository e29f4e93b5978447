package memory

import (
	"context"
	"testing"

	"notefiber-editor/internal/entity"
	"notefiber-editor/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type unsupportedSpec struct{}

func (unsupportedSpec) Apply(db *gorm.DB) *gorm.DB { return db }

func TestNoteRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository()

	note := &entity.StoredNote{Id: "2", Note: entity.Note{Title: "A"}}
	require.NoError(t, repo.Create(ctx, note))
	assert.False(t, note.CreatedAt.IsZero())

	found, err := repo.FindOne(ctx, specification.ByID{ID: "2"}, specification.NotDeleted{})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "A", found.Note.Title)

	missing, err := repo.FindOne(ctx, specification.ByID{ID: "3"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestNoteRepositoryCreateDuplicateFails(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository()

	require.NoError(t, repo.Create(ctx, &entity.StoredNote{Id: "2"}))
	assert.Error(t, repo.Create(ctx, &entity.StoredNote{Id: "2"}))
}

func TestNoteRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository()

	assert.Error(t, repo.Update(ctx, &entity.StoredNote{Id: "nope"}))

	require.NoError(t, repo.Create(ctx, &entity.StoredNote{Id: "2", Note: entity.Note{Title: "A"}}))
	updated := &entity.StoredNote{Id: "2", Note: entity.Note{Title: "A2"}}
	require.NoError(t, repo.Update(ctx, updated))
	assert.NotNil(t, updated.UpdatedAt)

	found, err := repo.FindOne(ctx, specification.ByID{ID: "2"})
	require.NoError(t, err)
	assert.Equal(t, "A2", found.Note.Title)
}

func TestNoteRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository()
	require.NoError(t, repo.Create(ctx, &entity.StoredNote{Id: "2", Note: entity.Note{Title: "A"}}))

	found, _ := repo.FindOne(ctx, specification.ByID{ID: "2"})
	found.Note.Title = "mutated"

	again, _ := repo.FindOne(ctx, specification.ByID{ID: "2"})
	assert.Equal(t, "A", again.Note.Title)
}

func TestNoteRepositoryCountAndUnsupportedSpec(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository()
	require.NoError(t, repo.Create(ctx, &entity.StoredNote{Id: "1"}))
	require.NoError(t, repo.Create(ctx, &entity.StoredNote{Id: "2", IsDeleted: true}))

	count, err := repo.Count(ctx, specification.NotDeleted{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = repo.FindOne(ctx, unsupportedSpec{})
	assert.Error(t, err)
}

func TestRepositoryFactorySharesStorage(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory()

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.NoteRepository().Create(ctx, &entity.StoredNote{Id: "2"}))
	require.NoError(t, uow.Commit())

	count, err := factory.NewUnitOfWork(ctx).NoteRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
