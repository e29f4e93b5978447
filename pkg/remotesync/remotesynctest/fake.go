// Package remotesynctest provides an in-memory RemoteSync for session tests.
package remotesynctest

import (
	"context"
	"fmt"
	"sync"

	"notefiber-editor/internal/entity"
	"notefiber-editor/internal/pkg/apperror"
)

type Call struct {
	Op   string
	Id   string
	Note entity.Note
}

// Fake stores notes in a map. Tests can queue errors per operation, install a
// Normalize hook that mimics store-side rewriting, or set Gate to hold calls
// until the channel is closed or receives.
type Fake struct {
	mu        sync.Mutex
	notes     map[string]entity.Note
	calls     []Call
	errs      map[string][]error
	nextId    int
	Normalize func(entity.Note) entity.Note
	Gate      chan struct{}
	Entered   chan string
}

func New() *Fake {
	return &Fake{
		notes: make(map[string]entity.Note),
		errs:  make(map[string][]error),
	}
}

// Put seeds a stored record.
func (f *Fake) Put(id string, note entity.Note) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes[id] = note
}

func (f *Fake) Get(id string) (entity.Note, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notes[id]
	return n, ok
}

// FailNext makes the next call to op ("Fetch", "Create", "Update") return err.
func (f *Fake) FailNext(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op] = append(f.errs[op], err)
}

func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

func (f *Fake) CallCount(op string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (f *Fake) enter(ctx context.Context, op, id string, note entity.Note) error {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Op: op, Id: id, Note: note})
	var err error
	if queued := f.errs[op]; len(queued) > 0 {
		err, f.errs[op] = queued[0], queued[1:]
	}
	gate, entered := f.Gate, f.Entered
	f.mu.Unlock()

	if entered != nil {
		entered <- op
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return apperror.Transport("request canceled", ctx.Err())
		}
	}
	return err
}

func (f *Fake) normalize(n entity.Note) entity.Note {
	if f.Normalize != nil {
		return f.Normalize(n)
	}
	return n
}

func (f *Fake) Fetch(ctx context.Context, id string) (entity.StoredNote, error) {
	if err := f.enter(ctx, "Fetch", id, entity.Note{}); err != nil {
		return entity.StoredNote{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notes[id]
	if !ok {
		return entity.StoredNote{}, apperror.NotFound(fmt.Sprintf("note %s not found", id))
	}
	return entity.StoredNote{Id: id, Note: n}, nil
}

func (f *Fake) Create(ctx context.Context, id string, note entity.Note) (entity.StoredNote, error) {
	if err := f.enter(ctx, "Create", id, note); err != nil {
		return entity.StoredNote{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == "" {
		f.nextId++
		id = fmt.Sprintf("generated-%d", f.nextId)
	}
	if _, exists := f.notes[id]; exists {
		return entity.StoredNote{}, apperror.Validation(fmt.Sprintf("note %s already exists", id))
	}
	stored := f.normalize(note)
	f.notes[id] = stored
	return entity.StoredNote{Id: id, Note: stored}, nil
}

func (f *Fake) Update(ctx context.Context, id string, note entity.Note) (entity.StoredNote, error) {
	if err := f.enter(ctx, "Update", id, note); err != nil {
		return entity.StoredNote{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.notes[id]; !exists {
		return entity.StoredNote{}, apperror.NotFound(fmt.Sprintf("note %s not found", id))
	}
	stored := f.normalize(note)
	f.notes[id] = stored
	return entity.StoredNote{Id: id, Note: stored}, nil
}
