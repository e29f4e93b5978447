package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"notefiber-editor/internal/dto"
	"notefiber-editor/internal/entity"
	"notefiber-editor/internal/pkg/apperror"
	"notefiber-editor/internal/pkg/logger"
	"notefiber-editor/internal/repository/cache"
	"notefiber-editor/internal/repository/memory"
	"notefiber-editor/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu       sync.Mutex
	messages []dto.NoteChangedMessage
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	var msg dto.NoteChangedMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

// countingFactory wraps the memory factory and counts how each unit of work
// is finished.
type countingFactory struct {
	inner     *memory.RepositoryFactory
	mu        sync.Mutex
	commits   int
	rollbacks int
}

type countingUnitOfWork struct {
	unitofwork.UnitOfWork
	factory *countingFactory
}

func (f *countingFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &countingUnitOfWork{UnitOfWork: f.inner.NewUnitOfWork(ctx), factory: f}
}

func (u *countingUnitOfWork) Commit() error {
	u.factory.mu.Lock()
	u.factory.commits++
	u.factory.mu.Unlock()
	return u.UnitOfWork.Commit()
}

func (u *countingUnitOfWork) Rollback() error {
	u.factory.mu.Lock()
	u.factory.rollbacks++
	u.factory.mu.Unlock()
	return u.UnitOfWork.Rollback()
}

func (f *countingFactory) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commits, f.rollbacks
}

type fixture struct {
	svc       INoteService
	factory   *memory.RepositoryFactory
	cache     *cache.MemoryNoteCache
	publisher *recordingPublisher
}

func newFixture() *fixture {
	f := &fixture{
		factory:   memory.NewRepositoryFactory(),
		cache:     cache.NewMemoryNoteCache(),
		publisher: &recordingPublisher{},
	}
	f.svc = NewNoteService(f.factory, f.cache, f.publisher, logger.NewNopLogger())
	return f
}

func TestCreateAssignsIdWhenMissing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.svc.Create(ctx, &dto.CreateNoteRequest{Title: "A"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Id)

	require.Len(t, f.publisher.messages, 1)
	assert.Equal(t, dto.NoteChangeCreated, f.publisher.messages[0].Type)
	assert.Equal(t, res.Id, f.publisher.messages[0].NoteId)
}

func TestCreateHonoursIdHintAndRejectsDuplicates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.svc.Create(ctx, &dto.CreateNoteRequest{Id: "2", Title: "A"})
	require.NoError(t, err)
	assert.Equal(t, "2", res.Id)

	_, err = f.svc.Create(ctx, &dto.CreateNoteRequest{Id: "2", Title: "B"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestCreateNormalizes(t *testing.T) {
	f := newFixture()
	loc := time.FixedZone("WIB", 7*3600)

	res, err := f.svc.Create(context.Background(), &dto.CreateNoteRequest{
		Title:         "  Launch  ",
		ButtonContent: " Go ",
		Date:          time.Date(2024, 1, 1, 7, 0, 0, 500, loc),
	})
	require.NoError(t, err)
	assert.Equal(t, "Launch", res.Title)
	assert.Equal(t, "Go", res.ButtonContent)
	assert.Equal(t, time.UTC, res.Date.Location())
	assert.True(t, res.Date.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCreateRequiresUrlWhenCallToActionShown(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), &dto.CreateNoteRequest{Title: "A", ShowCTA: true})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = f.svc.Create(context.Background(), &dto.CreateNoteRequest{Title: "   "})
	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, f.publisher.messages)
}

func TestShowReadsThroughCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Show(ctx, "2")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	require.NoError(t, f.factory.NewUnitOfWork(ctx).NoteRepository().Create(ctx, &entity.StoredNote{
		Id:   "2",
		Note: entity.Note{Title: "A"},
	}))

	res, err := f.svc.Show(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "A", res.Title)

	_, found, _ := f.cache.Get(ctx, "2")
	assert.True(t, found, "show populates the cache")
}

func TestUpdate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Update(ctx, &dto.UpdateNoteRequest{Id: "missing", Title: "A"})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.svc.Create(ctx, &dto.CreateNoteRequest{Id: "2", Title: "A"})
	require.NoError(t, err)

	res, err := f.svc.Update(ctx, &dto.UpdateNoteRequest{
		Id:        "2",
		Title:     "B",
		ButtonUrl: "https://example.com",
		ShowCTA:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "B", res.Title)
	assert.True(t, res.ShowCTA)
	assert.NotNil(t, res.UpdatedAt)

	cached, found, _ := f.cache.Get(ctx, "2")
	require.True(t, found)
	assert.Equal(t, "B", cached.Note.Title, "update writes through the cache")

	require.Len(t, f.publisher.messages, 2)
	assert.Equal(t, dto.NoteChangeUpdated, f.publisher.messages[1].Type)
}

func TestWritesRollBackOnlyWhenNotCommitted(t *testing.T) {
	factory := &countingFactory{inner: memory.NewRepositoryFactory()}
	svc := NewNoteService(factory, cache.NewMemoryNoteCache(), &recordingPublisher{}, logger.NewNopLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.CreateNoteRequest{Id: "2", Title: "A"})
	require.NoError(t, err)
	commits, rollbacks := factory.counts()
	assert.Equal(t, 1, commits)
	assert.Equal(t, 0, rollbacks)

	_, err = svc.Update(ctx, &dto.UpdateNoteRequest{Id: "2", Title: "B"})
	require.NoError(t, err)
	commits, rollbacks = factory.counts()
	assert.Equal(t, 2, commits)
	assert.Equal(t, 0, rollbacks)

	_, err = svc.Create(ctx, &dto.CreateNoteRequest{Id: "2", Title: "C"})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	_, err = svc.Update(ctx, &dto.UpdateNoteRequest{Id: "9", Title: "C"})
	assert.True(t, apperror.IsNotFound(err))
	commits, rollbacks = factory.counts()
	assert.Equal(t, 2, commits)
	assert.Equal(t, 2, rollbacks)
}
