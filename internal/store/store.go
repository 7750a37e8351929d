// Package store persists the last-entered basin input between sessions.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
)

// ErrNoSnapshot is returned by Load when nothing has been saved.
var ErrNoSnapshot = errors.New("no saved snapshot")

// snapshotID is the single row every save overwrites.
const snapshotID = 1

// Snapshot is the stored row. Input is the JSON form of a basin.Input so
// unset fields survive as null.
type Snapshot struct {
	ID        uint `gorm:"primaryKey"`
	Input     string
	UpdatedAt time.Time
}

// Store is a sqlite-backed single-snapshot store.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Save replaces the stored snapshot with in.
func (s *Store) Save(ctx context.Context, in basin.Input) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	snap := Snapshot{ID: snapshotID, Input: string(data)}
	if err := s.db.WithContext(ctx).Save(&snap).Error; err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot, or ErrNoSnapshot.
func (s *Store) Load(ctx context.Context) (basin.Input, error) {
	var snap Snapshot
	err := s.db.WithContext(ctx).First(&snap, snapshotID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return basin.Input{}, ErrNoSnapshot
	}
	if err != nil {
		return basin.Input{}, fmt.Errorf("load snapshot: %w", err)
	}

	var in basin.Input
	if err := json.Unmarshal([]byte(snap.Input), &in); err != nil {
		return basin.Input{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return in, nil
}

// Clear removes the stored snapshot. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Delete(&Snapshot{}, snapshotID).Error; err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
