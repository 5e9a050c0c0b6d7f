// Package sink provides RecordSink implementations for persisting resolved
// records.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"payermatch/internal/core"
)

// JSONLSink appends resolved records to a JSON-lines file, one record per
// line.
type JSONLSink struct {
	mu      sync.Mutex
	file    *os.File
	encoder *json.Encoder
	logger  *zap.Logger
	path    string
}

// NewJSONLSink creates a sink appending to the file at path, creating it and
// its directory when missing.
func NewJSONLSink(path string, logger *zap.Logger) (*JSONLSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sink directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open sink file: %w", err)
	}

	logger.Info("JSONL sink opened", zap.String("path", path))

	return &JSONLSink{
		file:    file,
		encoder: json.NewEncoder(file),
		logger:  logger,
		path:    path,
	}, nil
}

// Persist appends one record as a JSON line
func (s *JSONLSink) Persist(ctx context.Context, record core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	return nil
}

// Close closes the underlying file
func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
