package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"payermatch/internal/adapters/kvstore"
	"payermatch/internal/config"
	"payermatch/internal/core"
)

// KVStoreFactory creates KV stores based on configuration
type KVStoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewKVStoreFactory creates a new KV store factory
func NewKVStoreFactory(cfg *config.Config, logger *zap.Logger) *KVStoreFactory {
	return &KVStoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateKVStore creates a KV store based on the configuration
func (f *KVStoreFactory) CreateKVStore() (core.KVStore, error) {
	storeType := f.cfg.GetString("cache.type")

	switch storeType {
	case "memory":
		return kvstore.NewMemoryStore(f.logger), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("cache.sqlite_path")
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return kvstore.NewSQLiteStore(sqlitePath, f.logger)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", storeType)
	}
}
