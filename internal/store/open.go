package store

import (
	"fmt"

	"equipment-tracker-backend/config"
	"equipment-tracker-backend/internal/db"
)

// Open builds the Store selected by cfg.Storage.Backend.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Storage.Backend {
	case BackendFile:
		return NewFileStore(cfg.Storage.DataFile)
	case BackendBadger:
		return NewBadgerStore(cfg.Storage.BadgerDir)
	case BackendSQLite, BackendPostgres:
		gormDB, err := db.Init(cfg.Storage.Backend, &cfg.Database)
		if err != nil {
			return nil, &StorageError{Op: "init", Err: err}
		}
		return NewGormStore(gormDB), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
