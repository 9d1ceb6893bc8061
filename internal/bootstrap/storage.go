package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"expensetracker/internal/config"
	"expensetracker/internal/database"
	"expensetracker/internal/persistence"
)

// Storage is the opened persistence backend: the slot holding the state
// record and the database holding the audit log.
type Storage struct {
	Slot    persistence.Slot
	DB      *gorm.DB
	manager *database.Manager
}

// OpenStorage connects to the configured database and applies migrations.
// With the file driver the state record lives in cfg.StateFile and the audit
// log in the sqlite database at cfg.SQLitePath.
func OpenStorage(cfg *config.Config) (*Storage, error) {
	dbConfig := database.NewConfig(cfg)
	if cfg.DBDriver == config.DriverFile {
		dbConfig.Driver = config.DriverSQLite
	}

	manager, err := database.NewManager(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := manager.RunMigrations(cfg.MigrationsDir); err != nil {
		manager.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	s := &Storage{DB: manager.DB(), manager: manager}
	if cfg.DBDriver == config.DriverFile {
		s.Slot = persistence.NewFileSlot(cfg.StateFile)
	} else {
		s.Slot = persistence.NewGormSlot(manager.DB(), cfg.StateKey)
	}
	return s, nil
}

// Close closes the database connection pool.
func (s *Storage) Close() error {
	return s.manager.Close()
}
