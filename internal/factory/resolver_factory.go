package factory

import (
	"fmt"

	"go.uber.org/zap"

	"payermatch/internal/config"
	"payermatch/internal/core"
)

// ResolverFactory creates the contact resolver from configuration
type ResolverFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewResolverFactory creates a new resolver factory
func NewResolverFactory(cfg *config.Config, logger *zap.Logger) *ResolverFactory {
	return &ResolverFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateResolver creates a contact resolver over a directory and oracle
func (f *ResolverFactory) CreateResolver(
	directory core.ContactDirectory,
	oracle core.FirstNameChecker,
) (*core.ContactResolver, error) {
	rc := f.cfg.GetResolver()

	mode, err := core.ParseNameMode(rc.NameMode)
	if err != nil {
		return nil, fmt.Errorf("invalid resolver configuration: %w", err)
	}

	mappings, err := core.ParseFieldMappings(rc.FieldMapping)
	if err != nil {
		return nil, fmt.Errorf("invalid resolver configuration: %w", err)
	}

	return core.NewContactResolver(directory, oracle, f.logger, core.ResolverConfig{
		Profile:        rc.Profile,
		NameMode:       mode,
		ContactType:    rc.ContactType,
		OutputField:    rc.OutputField,
		RequiredFields: rc.RequiredFields,
		FieldMapping:   mappings,
		FailOpen:       rc.FailOpen,
	})
}
