package ports

import (
	"context"

	"payermatch/internal/core"
)

// RecordIntake defines the interface for feeding statement records through
// resolution.
type RecordIntake interface {
	// ProcessRecord resolves a single record and persists the write-back
	// when one is produced
	ProcessRecord(ctx context.Context, record core.Record) (*core.Resolution, error)

	// Start starts the intake
	Start() error

	// Stop stops the intake
	Stop() error
}
