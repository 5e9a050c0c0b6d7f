package names

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"payermatch/internal/adapters/kvstore"
	"payermatch/internal/core"
	"payermatch/internal/utils"
)

// countingSource serves a fixed name list and counts fetches.
type countingSource struct {
	names []string
	calls int
	err   error
}

func (s *countingSource) ListDistinctFirstNames(_ context.Context, _ bool) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.names, nil
}

// testClock is a manually advanced time source.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestOracle(source core.FirstNameSource, store core.KVStore, ttl time.Duration) (*Oracle, *testClock) {
	logger := zap.NewNop()
	oracle := NewOracle(source, store, utils.NewTextProcessor(logger), logger, ttl, true)
	clock := &testClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	oracle.now = clock.Now
	return oracle, clock
}

func TestIsFirstNameCaseInsensitive(t *testing.T) {
	source := &countingSource{names: []string{"Jane", "Müller", "Straße"}}
	oracle, _ := newTestOracle(source, nil, time.Hour)

	ctx := context.Background()
	for _, token := range []string{"jane", "JANE", "Jane", "müller", "MÜLLER", "strasse", "STRASSE"} {
		known, err := oracle.IsFirstName(ctx, token)
		require.NoError(t, err)
		assert.True(t, known, "token %q", token)
	}

	known, err := oracle.IsFirstName(ctx, "smith")
	require.NoError(t, err)
	assert.False(t, known)
}

func TestIsFirstNameFetchesOncePerTTL(t *testing.T) {
	source := &countingSource{names: []string{"jane"}}
	oracle, _ := newTestOracle(source, nil, time.Hour)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := oracle.IsFirstName(ctx, "jane")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, source.calls, "a fresh set must be reused")
	assert.Equal(t, 1, oracle.Len())
}

func TestIsFirstNameRefetchesAfterTTL(t *testing.T) {
	source := &countingSource{names: []string{"jane"}}
	oracle, clock := newTestOracle(source, nil, time.Hour)

	ctx := context.Background()
	_, err := oracle.IsFirstName(ctx, "jane")
	require.NoError(t, err)
	require.Equal(t, 1, source.calls)

	// Still fresh just inside the TTL.
	clock.Advance(59 * time.Minute)
	_, err = oracle.IsFirstName(ctx, "jane")
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)

	clock.Advance(2 * time.Minute)
	_, err = oracle.IsFirstName(ctx, "jane")
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

func TestRefreshReplacesSetWholesale(t *testing.T) {
	source := &countingSource{names: []string{"jane", "maria"}}
	oracle, clock := newTestOracle(source, nil, time.Hour)

	ctx := context.Background()
	known, err := oracle.IsFirstName(ctx, "jane")
	require.NoError(t, err)
	require.True(t, known)

	source.names = []string{"peter"}
	clock.Advance(2 * time.Hour)

	known, err = oracle.IsFirstName(ctx, "jane")
	require.NoError(t, err)
	assert.False(t, known, "names absent from the fresh fetch must disappear")

	known, err = oracle.IsFirstName(ctx, "peter")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, 1, oracle.Len())
}

func TestForcedRefresh(t *testing.T) {
	source := &countingSource{names: []string{"jane"}}
	oracle, _ := newTestOracle(source, nil, time.Hour)

	ctx := context.Background()
	_, err := oracle.IsFirstName(ctx, "jane")
	require.NoError(t, err)
	require.Equal(t, 1, source.calls)

	require.NoError(t, oracle.Refresh(ctx))
	assert.Equal(t, 2, source.calls, "Refresh must fetch regardless of age")
}

func TestSourceErrorsPropagate(t *testing.T) {
	sourceErr := errors.New("contact store unreachable")

	t.Run("initial fetch", func(t *testing.T) {
		source := &countingSource{err: sourceErr}
		oracle, _ := newTestOracle(source, nil, time.Hour)

		_, err := oracle.IsFirstName(context.Background(), "jane")
		require.ErrorIs(t, err, sourceErr)
	})

	t.Run("stale refresh", func(t *testing.T) {
		source := &countingSource{names: []string{"jane"}}
		oracle, clock := newTestOracle(source, nil, time.Hour)

		_, err := oracle.IsFirstName(context.Background(), "jane")
		require.NoError(t, err)

		source.err = sourceErr
		clock.Advance(2 * time.Hour)

		_, err = oracle.IsFirstName(context.Background(), "jane")
		require.ErrorIs(t, err, sourceErr, "a stale set is not served once the refresh fails")

		// The failed refresh leaves the set in place, so recovery works.
		source.err = nil
		known, err := oracle.IsFirstName(context.Background(), "jane")
		require.NoError(t, err)
		assert.True(t, known)
	})
}

func TestSnapshotRestoredAcrossRestarts(t *testing.T) {
	store := kvstore.NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	first := &countingSource{names: []string{"jane"}}
	oracle, clock := newTestOracle(first, store, time.Hour)
	_, err := oracle.IsFirstName(ctx, "jane")
	require.NoError(t, err)
	require.Equal(t, 1, first.calls)

	// A new oracle over the same store starts from the snapshot.
	second := &countingSource{names: []string{"jane"}}
	restarted, restartClock := newTestOracle(second, store, time.Hour)
	restartClock.now = clock.now.Add(30 * time.Minute)

	known, err := restarted.IsFirstName(ctx, "jane")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, 0, second.calls, "a fresh snapshot replaces the initial fetch")
}

func TestStaleSnapshotIgnored(t *testing.T) {
	store := kvstore.NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	first := &countingSource{names: []string{"jane"}}
	oracle, clock := newTestOracle(first, store, time.Hour)
	_, err := oracle.IsFirstName(ctx, "jane")
	require.NoError(t, err)

	second := &countingSource{names: []string{"peter"}}
	restarted, restartClock := newTestOracle(second, store, time.Hour)
	restartClock.now = clock.now.Add(2 * time.Hour)

	known, err := restarted.IsFirstName(ctx, "peter")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, 1, second.calls, "an expired snapshot forces a fetch")
}

func TestUnreadableSnapshotIgnored(t *testing.T) {
	store := kvstore.NewMemoryStore(zap.NewNop())
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "names", "first_name_snapshot", []byte("not json")))

	source := &countingSource{names: []string{"jane"}}
	oracle, _ := newTestOracle(source, store, time.Hour)

	known, err := oracle.IsFirstName(ctx, "jane")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, 1, source.calls)
}

func TestBlankNamesDropped(t *testing.T) {
	source := &countingSource{names: []string{"jane", "", "   "}}
	oracle, _ := newTestOracle(source, nil, time.Hour)

	_, err := oracle.IsFirstName(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, 1, oracle.Len())
}

func TestFetchedAt(t *testing.T) {
	source := &countingSource{names: []string{"jane"}}
	oracle, clock := newTestOracle(source, nil, time.Hour)

	assert.True(t, oracle.FetchedAt().IsZero())

	_, err := oracle.IsFirstName(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, clock.now, oracle.FetchedAt())
}
