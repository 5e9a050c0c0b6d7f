// Package intake provides RecordIntake implementations over the channels
// statement exports arrive through.
package intake

import (
	"context"
	"time"

	"go.uber.org/zap"

	"payermatch/internal/core"
)

const recordTimeout = 30 * time.Second

// resolver bundles the core service with the sink write-back step shared by
// every intake.
type resolver struct {
	service *core.ContactResolver
	sink    core.RecordSink
	logger  *zap.Logger
}

// ProcessRecord resolves one record and persists the updated form when the
// contact identifier changed. Persistence failures are logged, not returned,
// so one bad write never stops a batch.
func (r *resolver) ProcessRecord(ctx context.Context, record core.Record) (*core.Resolution, error) {
	res, err := r.service.Resolve(ctx, record)
	if err != nil {
		return nil, err
	}

	if res.Updated && r.sink != nil {
		if err := r.sink.Persist(ctx, res.UpdatedRecord); err != nil {
			r.logger.Error("Failed to persist updated record",
				zap.Error(err),
				zap.String("processing_id", res.ProcessingID))
		}
	}

	return res, nil
}

// batchStats counts outcomes over one statement export.
type batchStats struct {
	Records  int
	Resolved int
	Skipped  int
	Failed   int
	Updated  int
}

func (s batchStats) fields(source string) []zap.Field {
	return []zap.Field{
		zap.String("source", source),
		zap.Int("records", s.Records),
		zap.Int("resolved", s.Resolved),
		zap.Int("skipped", s.Skipped),
		zap.Int("failed", s.Failed),
		zap.Int("updated", s.Updated),
	}
}

// processRecords runs a batch of records through resolution. Individual
// failures are counted and logged; the batch always runs to the end.
func (r *resolver) processRecords(ctx context.Context, records []core.Record, source string) batchStats {
	var stats batchStats
	for _, record := range records {
		stats.Records++

		recordCtx, cancel := context.WithTimeout(ctx, recordTimeout)
		res, err := r.ProcessRecord(recordCtx, record)
		cancel()

		if err != nil {
			stats.Failed++
			r.logger.Error("Record resolution aborted",
				zap.Error(err),
				zap.String("source", source),
				zap.String("name", record.Get(core.FieldName)))
			continue
		}

		switch res.Outcome {
		case core.OutcomeResolved:
			stats.Resolved++
			if res.Updated {
				stats.Updated++
			}
		case core.OutcomeSkipped:
			stats.Skipped++
		default:
			stats.Failed++
		}
	}
	return stats
}
