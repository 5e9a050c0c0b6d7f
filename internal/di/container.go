package di

import (
	"go.uber.org/dig"

	"payermatch/internal/config"
	"payermatch/internal/core"
	"payermatch/internal/factory"
	"payermatch/internal/logging"
	"payermatch/internal/names"
	"payermatch/internal/ports"
	"payermatch/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewKVStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewNameSourceFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewDirectoryFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewResolverFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSinkFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewIntakeFactory); err != nil {
		return nil, err
	}

	// Register KV store
	if err := container.Provide(func(f *factory.KVStoreFactory) (core.KVStore, error) {
		return f.CreateKVStore()
	}); err != nil {
		return nil, err
	}

	// Register first-name source
	if err := container.Provide(func(f *factory.NameSourceFactory) (core.FirstNameSource, error) {
		return f.CreateFirstNameSource()
	}); err != nil {
		return nil, err
	}

	// Register first-name oracle
	if err := container.Provide(func(
		f *factory.NameSourceFactory,
		source core.FirstNameSource,
		store core.KVStore,
		text *utils.TextProcessor,
	) (*names.Oracle, error) {
		return f.CreateOracle(source, store, text)
	}); err != nil {
		return nil, err
	}

	// Register contact directory
	if err := container.Provide(func(f *factory.DirectoryFactory) (core.ContactDirectory, error) {
		return f.CreateContactDirectory()
	}); err != nil {
		return nil, err
	}

	// Register contact resolver
	if err := container.Provide(func(
		f *factory.ResolverFactory,
		directory core.ContactDirectory,
		oracle *names.Oracle,
	) (*core.ContactResolver, error) {
		return f.CreateResolver(directory, oracle)
	}); err != nil {
		return nil, err
	}

	// Register record sink
	if err := container.Provide(func(f *factory.SinkFactory) (core.RecordSink, error) {
		return f.CreateRecordSink()
	}); err != nil {
		return nil, err
	}

	// Register record intake
	if err := container.Provide(func(f *factory.IntakeFactory) (ports.RecordIntake, error) {
		return f.CreateRecordIntake()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
