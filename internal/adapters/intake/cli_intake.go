package intake

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"payermatch/internal/core"
)

// CliIntake implements a command-line interface for resolving records
type CliIntake struct {
	resolver
	verbose bool
}

// NewCliIntake creates a new CLI intake
func NewCliIntake(service *core.ContactResolver, sink core.RecordSink, logger *zap.Logger, verbose bool) (*CliIntake, error) {
	return &CliIntake{
		resolver: resolver{service: service, sink: sink, logger: logger},
		verbose:  verbose,
	}, nil
}

// ProcessRecord resolves a record and displays the results
func (f *CliIntake) ProcessRecord(ctx context.Context, record core.Record) (*core.Resolution, error) {
	f.logger.Debug("Processing record", zap.String("name", record.Get(core.FieldName)))

	// Print record summary
	fmt.Printf("\n=== Record ===\n")
	fmt.Printf("Name: %s\n", record.Get(core.FieldName))
	fmt.Printf("Fields: %d\n", len(record))

	if f.verbose {
		for _, key := range sortedKeys(record) {
			fmt.Printf("  %s: %s\n", key, record[key])
		}
	}

	fmt.Printf("\n=== Resolution ===\n")
	startTime := time.Now()
	res, err := f.resolver.ProcessRecord(ctx, record)
	if err != nil {
		f.logger.Error("Failed to resolve record", zap.Error(err))
		fmt.Printf("Error: %v\n", err)
		return nil, err
	}
	duration := time.Since(startTime)

	// Print results
	fmt.Printf("Outcome: %s\n", res.Outcome)
	if res.Outcome == core.OutcomeResolved {
		fmt.Printf("Contact ID: %s\n", res.ContactID)
		fmt.Printf("Record updated: %t\n", res.Updated)
	}
	if f.verbose && len(res.Fields) > 0 {
		fmt.Printf("Directory fields:\n")
		for _, key := range sortedKeys(res.Fields) {
			fmt.Printf("  %s: %s\n", key, res.Fields[key])
		}
	}
	fmt.Printf("Processing time: %v\n", duration)

	return res, nil
}

// Start is a no-op for the CLI intake
func (f *CliIntake) Start() error {
	return nil
}

// Stop is a no-op for the CLI intake
func (f *CliIntake) Stop() error {
	return nil
}

func sortedKeys[M ~map[string]string](m M) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
