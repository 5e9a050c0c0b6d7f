package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"payermatch/internal/core"
	"payermatch/internal/di"
	"payermatch/internal/ports"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	recordIntake ports.RecordIntake,
	nameSource core.FirstNameSource,
	store core.KVStore,
	recordSink core.RecordSink,
) error {
	defer logger.Sync()

	// Start the intake
	if err := recordIntake.Start(); err != nil {
		logger.Error("Failed to start intake", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	// Stop the intake
	if err := recordIntake.Stop(); err != nil {
		logger.Error("Failed to stop intake", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := nameSource.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close first-name source", zap.Error(err))
		}
	}
	if closer, ok := recordSink.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close record sink", zap.Error(err))
		}
	}
	if err := store.Close(); err != nil {
		logger.Error("Failed to close KV store", zap.Error(err))
	}

	logger.Info("Shutdown complete")
	return nil
}
