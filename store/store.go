package store

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Store is the relational data-access layer. It holds only the shared gorm
// handle, which is safe for concurrent use.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Ping checks the underlying connection pool.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// affected turns a conditional mutation result into the bool the caller sees.
func affected(res *gorm.DB) (bool, error) {
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected != 0, nil
}
