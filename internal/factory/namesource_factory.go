package factory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"payermatch/internal/adapters/namesource"
	"payermatch/internal/config"
	"payermatch/internal/core"
	"payermatch/internal/names"
	"payermatch/internal/utils"
)

// NameSourceFactory creates first-name sources and oracles based on
// configuration
type NameSourceFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewNameSourceFactory creates a new name source factory
func NewNameSourceFactory(cfg *config.Config, logger *zap.Logger) *NameSourceFactory {
	return &NameSourceFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateFirstNameSource creates a first-name source based on the configuration
func (f *NameSourceFactory) CreateFirstNameSource() (core.FirstNameSource, error) {
	namesCfg := f.cfg.GetNames()

	switch namesCfg.Source {
	case "static":
		return namesource.NewStaticSource(namesCfg.StaticNames, f.logger), nil
	case "mysql":
		return namesource.NewMySQLSource(namesCfg.MySQLDSN, namesCfg.MySQLTable, f.logger)
	case "postgres":
		return namesource.NewPostgresSource(context.Background(), namesCfg.PostgresURL, namesCfg.PostgresTable, f.logger)
	default:
		return nil, fmt.Errorf("unsupported first-name source: %s", namesCfg.Source)
	}
}

// CreateOracle creates the first-name oracle over a source and KV store
func (f *NameSourceFactory) CreateOracle(
	source core.FirstNameSource,
	store core.KVStore,
	text *utils.TextProcessor,
) (*names.Oracle, error) {
	ttl, err := f.cfg.GetDuration("names.ttl")
	if err != nil {
		return nil, fmt.Errorf("invalid first-name TTL: %w", err)
	}

	return names.NewOracle(
		source,
		store,
		text,
		f.logger,
		ttl,
		f.cfg.GetBool("names.exclude_deleted"),
	), nil
}
