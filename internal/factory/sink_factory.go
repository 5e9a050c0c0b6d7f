package factory

import (
	"fmt"

	"go.uber.org/zap"

	"payermatch/internal/adapters/sink"
	"payermatch/internal/config"
	"payermatch/internal/core"
)

// SinkFactory creates record sinks based on configuration
type SinkFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSinkFactory creates a new sink factory
func NewSinkFactory(cfg *config.Config, logger *zap.Logger) *SinkFactory {
	return &SinkFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateRecordSink creates a record sink based on the configuration
func (f *SinkFactory) CreateRecordSink() (core.RecordSink, error) {
	sinkCfg := f.cfg.GetSink()

	switch sinkCfg.Type {
	case "jsonl":
		return sink.NewJSONLSink(sinkCfg.Path, f.logger)
	case "memory":
		return sink.NewMemorySink(), nil
	default:
		return nil, fmt.Errorf("unsupported sink type: %s", sinkCfg.Type)
	}
}
