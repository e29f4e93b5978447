package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"notefiber-editor/internal/dto"
	"notefiber-editor/internal/entity"
	"notefiber-editor/internal/mapper"
	"notefiber-editor/internal/pkg/apperror"
	"notefiber-editor/internal/pkg/logger"
	"notefiber-editor/internal/repository/cache"
	"notefiber-editor/internal/repository/specification"
	"notefiber-editor/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const noteModule = "NoteService"

type INoteService interface {
	Show(ctx context.Context, id string) (*dto.NoteResponse, error)
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	noteCache        cache.NoteCache
	publisherService IPublisherService
	mapper           *mapper.NoteMapper
	logger           logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	noteCache cache.NoteCache,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		noteCache:        noteCache,
		publisherService: publisherService,
		mapper:           mapper.NewNoteMapper(),
		logger:           log,
	}
}

func (s *noteService) Show(ctx context.Context, id string) (*dto.NoteResponse, error) {
	if cached, found, err := s.noteCache.Get(ctx, id); err != nil {
		s.logger.Warn(noteModule, "Cache read failed", map[string]interface{}{"note_id": id, "error": err.Error()})
	} else if found {
		return s.mapper.ToResponse(cached), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal("failed to load note", err)
	}
	if note == nil {
		return nil, apperror.NotFound("note " + id + " not found")
	}

	s.cacheNote(ctx, note)
	return s.mapper.ToResponse(note), nil
}

func (s *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	note := normalize(s.mapper.FromCreateRequest(req))
	if err := checkCallToAction(note); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(req.Id)
	if id == "" {
		id = uuid.New().String()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("failed to begin transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = uow.Rollback()
		}
	}()

	existing, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal("failed to check note", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("note " + id + " already exists")
	}

	stored := &entity.StoredNote{
		Id:        id,
		Note:      note,
		CreatedAt: time.Now(),
	}
	if err := uow.NoteRepository().Create(ctx, stored); err != nil {
		return nil, apperror.Internal("failed to create note", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("failed to commit note", err)
	}
	committed = true

	s.logger.Info(noteModule, "Note created", map[string]interface{}{"note_id": id})
	s.cacheNote(ctx, stored)
	s.publishChange(ctx, stored, dto.NoteChangeCreated)

	return s.mapper.ToResponse(stored), nil
}

func (s *noteService) Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	note := normalize(s.mapper.FromUpdateRequest(req))
	if err := checkCallToAction(note); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("failed to begin transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = uow.Rollback()
		}
	}()

	stored, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, apperror.Internal("failed to load note", err)
	}
	if stored == nil {
		return nil, apperror.NotFound("note " + req.Id + " not found")
	}

	now := time.Now()
	stored.Note = note
	stored.UpdatedAt = &now
	if err := uow.NoteRepository().Update(ctx, stored); err != nil {
		return nil, apperror.Internal("failed to update note", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("failed to commit note", err)
	}
	committed = true

	s.logger.Info(noteModule, "Note updated", map[string]interface{}{"note_id": stored.Id})
	s.cacheNote(ctx, stored)
	s.publishChange(ctx, stored, dto.NoteChangeUpdated)

	return s.mapper.ToResponse(stored), nil
}

// normalize is the store's canonical form; clients adopt it after a save.
func normalize(n entity.Note) entity.Note {
	n.Title = strings.TrimSpace(n.Title)
	n.ButtonContent = strings.TrimSpace(n.ButtonContent)
	n.ButtonUrl = strings.TrimSpace(n.ButtonUrl)
	if !n.Date.IsZero() {
		n.Date = n.Date.UTC().Truncate(time.Second)
	}
	return n
}

func checkCallToAction(n entity.Note) error {
	if n.Title == "" {
		return apperror.Validation("Title is required")
	}
	if n.ShowCallToAction && n.ButtonUrl == "" {
		return apperror.Validation("ButtonUrl is required when the call to action is shown")
	}
	return nil
}

func (s *noteService) cacheNote(ctx context.Context, note *entity.StoredNote) {
	if err := s.noteCache.Set(ctx, note); err != nil {
		s.logger.Warn(noteModule, "Cache write failed", map[string]interface{}{"note_id": note.Id, "error": err.Error()})
	}
}

// publishChange is best effort: the write already committed.
func (s *noteService) publishChange(ctx context.Context, note *entity.StoredNote, changeType string) {
	payload, err := json.Marshal(dto.NoteChangedMessage{
		NoteId:     note.Id,
		Type:       changeType,
		Title:      note.Note.Title,
		OccurredAt: time.Now(),
	})
	if err == nil {
		err = s.publisherService.Publish(ctx, payload)
	}
	if err != nil {
		s.logger.Warn(noteModule, "Failed to publish note change", map[string]interface{}{"note_id": note.Id, "error": err.Error()})
	}
}
