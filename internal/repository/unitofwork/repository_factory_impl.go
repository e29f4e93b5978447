package unitofwork

import (
	"context"

	"gorm.io/gorm"
)

// GormRepositoryFactory opens a unit of work per request over the shared pool.
type GormRepositoryFactory struct {
	db *gorm.DB
}

func NewRepositoryFactory(db *gorm.DB) RepositoryFactory {
	return &GormRepositoryFactory{
		db: db,
	}
}

func (f *GormRepositoryFactory) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return NewUnitOfWork(f.db.WithContext(ctx))
}
