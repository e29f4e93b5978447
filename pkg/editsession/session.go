// Package editsession holds the editing state of a single note: the baseline
// last confirmed by the store, the working copy the operator edits, and the
// load and save flows that move data between them.
package editsession

import (
	"context"
	"errors"
	"sync"

	"notefiber-editor/internal/entity"
	"notefiber-editor/internal/pkg/apperror"
	"notefiber-editor/internal/pkg/logger"
	"notefiber-editor/pkg/remotesync"
)

const module = "EditSession"

type Mode int

const (
	Unloaded Mode = iota
	Loading
	Ready
	Saving
)

func (m Mode) String() string {
	switch m {
	case Unloaded:
		return "Unloaded"
	case Loading:
		return "Loading"
	case Ready:
		return "Ready"
	case Saving:
		return "Saving"
	}
	return "Unknown"
}

var (
	ErrAlreadyStarted = errors.New("edit session already initialized")
	ErrNotReady       = errors.New("edit session is not ready")
	ErrSaveInProgress = errors.New("save already in progress")
	ErrClosed         = errors.New("edit session closed")
)

type Config struct {
	// RecordId identifies the note to load and update. Empty starts a new note.
	RecordId string
}

type Option func(*Session)

func WithLogger(log logger.ILogger) Option {
	return func(s *Session) { s.logger = log }
}

// State is a consistent copy of the session for presentation.
type State struct {
	Working          entity.Note
	Baseline         entity.Note
	Mode             Mode
	LastError        error
	Dirty            bool
	IsExistingRecord bool
	RecordId         string
}

// Session is safe for concurrent use. Remote calls run without the lock held,
// so readers see Loading or Saving while a call is outstanding.
type Session struct {
	mu     sync.Mutex
	remote remotesync.RemoteSync
	logger logger.ILogger

	recordId   string
	baseline   entity.Note
	working    entity.Note
	mode       Mode
	lastError  error
	isExisting bool

	started bool
	loadErr error
	closed  bool
	saved   bool
}

func New(remote remotesync.RemoteSync, cfg Config, opts ...Option) *Session {
	s := &Session{
		remote:   remote,
		logger:   logger.NewNopLogger(),
		recordId: cfg.RecordId,
		baseline: entity.EmptyNote(),
		working:  entity.EmptyNote(),
		mode:     Unloaded,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the baseline. A missing record does not fail the call: it
// is kept as LastError and the session starts from empty defaults, so the
// first save creates it. Any other failure is kept as LastError and returned.
// The session is Ready either way. A load that failed may be retried until the
// record is known to exist; a settled load cannot be repeated.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	switch {
	case s.mode == Loading:
		s.mu.Unlock()
		return ErrAlreadyStarted
	case s.mode == Saving:
		s.mu.Unlock()
		return ErrSaveInProgress
	case s.started && (s.loadErr == nil || s.isExisting):
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.mode = Loading
	s.lastError = nil
	s.loadErr = nil
	id := s.recordId
	s.mu.Unlock()

	if id == "" {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return ErrClosed
		}
		s.reset(entity.EmptyNote(), false)
		s.logger.Info(module, "Starting new note", nil)
		return nil
	}

	stored, err := s.remote.Fetch(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	switch {
	case err == nil:
		if stored.Id != "" {
			s.recordId = stored.Id
		}
		s.reset(stored.Note, true)
		s.logger.Info(module, "Note loaded", map[string]interface{}{"note_id": s.recordId})
		return nil
	case apperror.IsNotFound(err):
		s.reset(entity.EmptyNote(), false)
		s.lastError = err
		s.loadErr = err
		s.logger.Info(module, "Note not found, starting from empty defaults", map[string]interface{}{"note_id": id})
		return nil
	default:
		s.reset(entity.EmptyNote(), false)
		s.lastError = err
		s.loadErr = err
		s.logger.Error(module, "Failed to load note", map[string]interface{}{"note_id": id, "error": err.Error()})
		return err
	}
}

// reset replaces both copies and settles in Ready. Caller holds mu.
func (s *Session) reset(note entity.Note, existing bool) {
	s.baseline = note.Clone()
	s.working = note.Clone()
	s.isExisting = existing
	s.mode = Ready
}

// SetField edits the working copy. It reports false, changing nothing, while
// saving, after Close, or when field is unknown or value has the wrong type.
func (s *Session) SetField(field Field, value any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.mode == Saving {
		return false
	}
	return assign(&s.working, field, value)
}

func (s *Session) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty()
}

func (s *Session) dirty() bool {
	return !s.working.Equal(s.baseline)
}

// Discard resets the working copy to the baseline. It is a no-op returning
// false unless the session is dirty and not saving.
func (s *Session) Discard() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.mode == Saving || !s.dirty() {
		return false
	}
	s.working = s.baseline.Clone()
	return true
}

// Save persists the working copy, updating when the record exists and creating
// it otherwise. On success the stored record becomes both baseline and working
// copy. On failure the error is kept as LastError and both copies are untouched.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return ErrClosed
	case s.mode == Saving:
		s.mu.Unlock()
		return ErrSaveInProgress
	case s.mode != Ready:
		s.mu.Unlock()
		return ErrNotReady
	}
	s.mode = Saving
	s.lastError = nil
	payload := s.working.Clone()
	id := s.recordId
	existing := s.isExisting
	s.mu.Unlock()

	var (
		stored entity.StoredNote
		err    error
	)
	if existing {
		stored, err = s.remote.Update(ctx, id, payload)
	} else {
		stored, err = s.remote.Create(ctx, id, payload)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.mode = Ready

	if err != nil {
		s.lastError = err
		s.logger.Error(module, "Failed to save note", map[string]interface{}{
			"note_id": id,
			"create":  !existing,
			"error":   err.Error(),
		})
		return err
	}

	if stored.Id != "" {
		s.recordId = stored.Id
	}
	s.baseline = stored.Note.Clone()
	s.working = stored.Note.Clone()
	s.isExisting = true
	s.saved = true
	s.logger.Info(module, "Note saved", map[string]interface{}{"note_id": s.recordId, "create": !existing})
	return nil
}

// ConsumeSaved reports a successful save once; later calls return false until
// the next success.
func (s *Session) ConsumeSaved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := s.saved
	s.saved = false
	return saved
}

func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = nil
}

// Close disposes the session. Results of calls still outstanding are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Working:          s.working.Clone(),
		Baseline:         s.baseline.Clone(),
		Mode:             s.mode,
		LastError:        s.lastError,
		Dirty:            s.dirty(),
		IsExistingRecord: s.isExisting,
		RecordId:         s.recordId,
	}
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *Session) Working() entity.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.working.Clone()
}

func (s *Session) Baseline() entity.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseline.Clone()
}

func (s *Session) IsExistingRecord() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isExisting
}

func (s *Session) RecordId() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordId
}
