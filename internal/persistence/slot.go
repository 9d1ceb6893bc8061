package persistence

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"expensetracker/internal/models"
)

// ErrNoRecord is returned by a Slot that has never been written.
var ErrNoRecord = errors.New("persistence: no stored record")

// Slot is a single named storage cell holding one serialized state record.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
	Clear(ctx context.Context) error
}

// GormSlot keeps the record in the state_snapshots table, one row per key.
type GormSlot struct {
	db  *gorm.DB
	key string
}

// NewGormSlot creates a slot stored under key.
func NewGormSlot(db *gorm.DB, key string) *GormSlot {
	return &GormSlot{db: db, key: key}
}

func (s *GormSlot) Read(ctx context.Context) ([]byte, error) {
	var row models.StateSnapshot
	err := s.db.WithContext(ctx).Where(&models.StateSnapshot{Key: s.key}).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("read state record %q: %w", s.key, err)
	}
	return []byte(row.Payload), nil
}

func (s *GormSlot) Write(ctx context.Context, payload []byte) error {
	row := models.StateSnapshot{Key: s.key, Payload: string(payload)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("write state record %q: %w", s.key, err)
	}
	return nil
}

func (s *GormSlot) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).Where(&models.StateSnapshot{Key: s.key}).Delete(&models.StateSnapshot{}).Error
	if err != nil {
		return fmt.Errorf("clear state record %q: %w", s.key, err)
	}
	return nil
}

// FileSlot keeps the record in a JSON file. Writes go through a temporary
// file in the same directory followed by a rename.
type FileSlot struct {
	path string
}

// NewFileSlot creates a slot backed by the file at path.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

func (s *FileSlot) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	return data, nil
}

func (s *FileSlot) Write(_ context.Context, payload []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func (s *FileSlot) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove state file: %w", err)
	}
	return nil
}
