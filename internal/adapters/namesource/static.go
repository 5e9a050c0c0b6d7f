// Package namesource provides FirstNameSource implementations over the
// contact stores first names are harvested from.
package namesource

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// StaticSource serves a fixed, configuration-provided list of first names.
// Useful for small installations and tests where no contact store is
// reachable.
type StaticSource struct {
	names  []string
	logger *zap.Logger
}

// NewStaticSource creates a source over the given names. Blank entries are
// dropped.
func NewStaticSource(names []string, logger *zap.Logger) *StaticSource {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cleaned = append(cleaned, name)
	}

	logger.Info("Initialized static first-name source", zap.Int("names", len(cleaned)))

	return &StaticSource{
		names:  cleaned,
		logger: logger,
	}
}

// ListDistinctFirstNames returns the configured names. The excludeDeleted
// flag has no effect since static lists carry no deletion state.
func (s *StaticSource) ListDistinctFirstNames(ctx context.Context, excludeDeleted bool) ([]string, error) {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out, nil
}
