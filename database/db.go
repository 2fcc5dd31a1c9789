package database

import (
	"fmt"

	"msc-booking/config"
	"msc-booking/logger"
	"msc-booking/storage"
	"msc-booking/storage/mongodb"
	"msc-booking/storage/postgres"
)

// InitStorage opens the storage backend named by STORAGE_DRIVER. Both
// backends satisfy the same interface; nothing downstream knows which one
// is active.
func InitStorage(cfg config.Config) (storage.IStorage, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		logger.Info("Using PostgreSQL storage backend")
		return postgres.New(cfg)
	case config.DriverMongo:
		logger.Info("Using MongoDB storage backend")
		return mongodb.New(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
