package namesource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStaticSourceListDistinctFirstNames(t *testing.T) {
	source := NewStaticSource([]string{"Jane", "  John  ", "", "   "}, zap.NewNop())

	names, err := source.ListDistinctFirstNames(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane", "John"}, names)
}

func TestStaticSourceReturnsCopy(t *testing.T) {
	source := NewStaticSource([]string{"Jane"}, zap.NewNop())

	names, err := source.ListDistinctFirstNames(context.Background(), false)
	require.NoError(t, err)
	names[0] = "changed"

	again, err := source.ListDistinctFirstNames(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane"}, again)
}
