package factory

import (
	"fmt"

	"go.uber.org/zap"

	"payermatch/internal/adapters/directory"
	"payermatch/internal/config"
	"payermatch/internal/core"
)

// DirectoryFactory creates contact directories based on configuration
type DirectoryFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewDirectoryFactory creates a new directory factory
func NewDirectoryFactory(cfg *config.Config, logger *zap.Logger) *DirectoryFactory {
	return &DirectoryFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateContactDirectory creates a contact directory based on the configuration
func (f *DirectoryFactory) CreateContactDirectory() (core.ContactDirectory, error) {
	dirCfg := f.cfg.GetDirectory()

	switch dirCfg.Type {
	case "http":
		timeout, err := f.cfg.GetDuration("directory.timeout")
		if err != nil {
			return nil, fmt.Errorf("invalid directory timeout: %w", err)
		}
		return directory.NewHTTPDirectory(dirCfg.BaseURL, dirCfg.APIKey, timeout, f.logger), nil
	case "memory":
		return directory.NewMemoryDirectory(), nil
	default:
		return nil, fmt.Errorf("unsupported directory type: %s", dirCfg.Type)
	}
}
