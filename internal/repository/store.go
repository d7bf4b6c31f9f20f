// Package repository holds every query the service layer runs. A Store is
// an explicit handle on either the pool or an open transaction, so the same
// methods serve both and callers decide the unit of work.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a looked-up row does not exist
var ErrNotFound = errors.New("record not found")

// Store wraps a gorm handle
type Store struct {
	db *gorm.DB
}

// New creates a Store over db
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle, mainly for tests and health checks
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn against a Store bound to a single transaction.
// Returning an error from fn rolls every write back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
