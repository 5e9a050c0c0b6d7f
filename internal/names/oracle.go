// Package names maintains the cached set of known first names that db-mode
// name splitting classifies tokens against.
package names

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"payermatch/internal/core"
	"payermatch/internal/utils"
)

const (
	// DefaultTTL is how long a fetched first-name set stays fresh.
	DefaultTTL = 7 * 24 * time.Hour

	snapshotNamespace = "names"
	snapshotKey       = "first_name_snapshot"
)

// snapshot is the persisted form of a fetched first-name set.
type snapshot struct {
	Names     []string  `json:"names"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Oracle answers whether a token is a known first name. It holds a folded
// in-memory set fetched from a FirstNameSource, refreshes it wholesale once
// it is older than the TTL, and optionally persists snapshots to a KVStore
// so restarts within the TTL skip the fetch.
type Oracle struct {
	source         core.FirstNameSource
	store          core.KVStore
	text           *utils.TextProcessor
	logger         *zap.Logger
	ttl            time.Duration
	excludeDeleted bool

	// refreshMu serializes rebuilds so concurrent stale readers trigger a
	// single fetch; mu guards the installed set so readers of a fresh set
	// only take the read lock.
	refreshMu sync.Mutex
	mu        sync.RWMutex
	names     map[string]struct{}
	fetchedAt time.Time
	loaded    bool

	now func() time.Time
}

// NewOracle creates an Oracle backed by the given source. The store may be
// nil to disable snapshot persistence. A non-positive ttl falls back to
// DefaultTTL.
func NewOracle(
	source core.FirstNameSource,
	store core.KVStore,
	text *utils.TextProcessor,
	logger *zap.Logger,
	ttl time.Duration,
	excludeDeleted bool,
) *Oracle {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Oracle{
		source:         source,
		store:          store,
		text:           text,
		logger:         logger,
		ttl:            ttl,
		excludeDeleted: excludeDeleted,
		now:            time.Now,
	}
}

// IsFirstName reports whether the token is a known first name, comparing
// case-insensitively. The set is fetched on first use and refreshed once
// stale; a failed fetch is returned to the caller, which decides whether to
// degrade or abort.
func (o *Oracle) IsFirstName(ctx context.Context, token string) (bool, error) {
	if err := o.refreshIfStale(ctx); err != nil {
		return false, err
	}

	folded := o.text.FoldName(token)

	o.mu.RLock()
	_, known := o.names[folded]
	o.mu.RUnlock()

	return known, nil
}

// Refresh discards the current set and fetches a fresh one regardless of
// age.
func (o *Oracle) Refresh(ctx context.Context) error {
	o.refreshMu.Lock()
	defer o.refreshMu.Unlock()
	return o.rebuild(ctx)
}

// Len returns the number of distinct folded names currently held.
func (o *Oracle) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.names)
}

// FetchedAt returns when the current set was fetched, or the zero time when
// nothing has been loaded yet.
func (o *Oracle) FetchedAt() time.Time {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.fetchedAt
}

func (o *Oracle) fresh() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.loaded && o.now().Sub(o.fetchedAt) <= o.ttl
}

func (o *Oracle) refreshIfStale(ctx context.Context) error {
	if o.fresh() {
		return nil
	}

	o.refreshMu.Lock()
	defer o.refreshMu.Unlock()

	// Another caller may have rebuilt while we waited for the lock.
	if o.fresh() {
		return nil
	}

	// A persisted snapshot younger than the TTL replaces the initial fetch
	// after a restart.
	if !o.isLoaded() && o.loadSnapshot(ctx) {
		return nil
	}

	return o.rebuild(ctx)
}

func (o *Oracle) isLoaded() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.loaded
}

// rebuild fetches the full first-name set and swaps it in wholesale. On
// failure the previous set and its age are left untouched, so the next
// lookup retries.
func (o *Oracle) rebuild(ctx context.Context) error {
	rawNames, err := o.source.ListDistinctFirstNames(ctx, o.excludeDeleted)
	if err != nil {
		return fmt.Errorf("listing first names: %w", err)
	}

	fetchedAt := o.now()
	o.install(rawNames, fetchedAt)

	o.logger.Info("First-name set refreshed",
		zap.Int("names", len(rawNames)),
		zap.Bool("exclude_deleted", o.excludeDeleted))

	o.saveSnapshot(ctx, rawNames, fetchedAt)
	return nil
}

func (o *Oracle) install(rawNames []string, fetchedAt time.Time) {
	set := make(map[string]struct{}, len(rawNames))
	for _, name := range rawNames {
		folded := o.text.FoldName(name)
		if folded == "" {
			continue
		}
		set[folded] = struct{}{}
	}

	o.mu.Lock()
	o.names = set
	o.fetchedAt = fetchedAt
	o.loaded = true
	o.mu.Unlock()
}

// loadSnapshot tries to install a persisted snapshot and reports whether a
// fresh one was found. Store errors count as a miss.
func (o *Oracle) loadSnapshot(ctx context.Context) bool {
	if o.store == nil {
		return false
	}

	data, err := o.store.Get(ctx, snapshotNamespace, snapshotKey)
	if err != nil {
		return false
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		o.logger.Warn("Discarding unreadable first-name snapshot", zap.Error(err))
		return false
	}
	if o.now().Sub(snap.FetchedAt) > o.ttl {
		return false
	}

	o.install(snap.Names, snap.FetchedAt)
	o.logger.Info("First-name set restored from snapshot",
		zap.Int("names", len(snap.Names)),
		zap.Time("fetched_at", snap.FetchedAt))
	return true
}

func (o *Oracle) saveSnapshot(ctx context.Context, rawNames []string, fetchedAt time.Time) {
	if o.store == nil {
		return
	}

	data, err := json.Marshal(snapshot{Names: rawNames, FetchedAt: fetchedAt})
	if err != nil {
		o.logger.Error("Failed to encode first-name snapshot", zap.Error(err))
		return
	}
	if err := o.store.Set(ctx, snapshotNamespace, snapshotKey, data); err != nil {
		o.logger.Error("Failed to persist first-name snapshot", zap.Error(err))
	}
}
