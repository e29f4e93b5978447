package memory

import (
	"context"

	"notefiber-editor/internal/repository/contract"
	"notefiber-editor/internal/repository/unitofwork"
)

// RepositoryFactory hands out units of work over one shared in-memory repository.
type RepositoryFactory struct {
	notes *NoteRepository
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{notes: NewNoteRepository()}
}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{notes: f.notes}
}

// unitOfWork has no isolation; Begin/Commit/Rollback only satisfy the contract.
type unitOfWork struct {
	notes *NoteRepository
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) NoteRepository() contract.NoteRepository {
	return u.notes
}
