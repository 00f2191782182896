package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/homelab/stagerad/internal/testutil"
)

func TestStatementCache_ReusesStatements(t *testing.T) {
	ds := testutil.SetupTestDatastore(t)
	cache := newStatementCache(ds.DB)
	t.Cleanup(func() { cache.Close() })
	ctx := context.Background()

	first, err := cache.prepare(ctx, "SELECT 1")
	require.NoError(t, err)
	second, err := cache.prepare(ctx, "SELECT 1")
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := cache.prepare(ctx, "SELECT 2")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}

func TestStatementCache_Close(t *testing.T) {
	ds := testutil.SetupTestDatastore(t)
	cache := newStatementCache(ds.DB)
	ctx := context.Background()

	stmt, err := cache.prepare(ctx, "SELECT 1")
	require.NoError(t, err)

	require.NoError(t, cache.Close())
	require.NoError(t, cache.Close(), "closing twice is a no-op")

	var n int
	assert.Error(t, stmt.QueryRowContext(ctx).Scan(&n), "statement should be closed")

	_, err = cache.prepare(ctx, "SELECT 1")
	assert.ErrorIs(t, err, errStatementsClosed)
}
