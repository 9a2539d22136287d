package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbolaris/tankview/pkg/cache"
	"github.com/mbolaris/tankview/pkg/lineage"
	"github.com/mbolaris/tankview/pkg/tree"
)

func testRunner(t *testing.T) *Runner {
	t.Helper()
	return NewRunner(cache.NewMemoryCache(), nil, nil)
}

func sampleRecords() []lineage.Record {
	return []lineage.Record{
		{ID: "1", BirthOrder: 1, Algorithm: "NEAT", Color: "#1f77b4"},
		{ID: "2", BirthOrder: 2, ParentIDs: []string{"1"}},
		{ID: "3", BirthOrder: 3, ParentIDs: []string{"1"}},
	}
}

func TestExecute_BuildsTree(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	result, err := r.Execute(context.Background(), sampleRecords(), Options{})
	require.NoError(t, err)

	require.NotNil(t, result.Tree)
	assert.Equal(t, "1", result.Tree.ID)
	assert.Equal(t, 3, result.Stats.Records)
	assert.Equal(t, 1, result.Stats.Roots)
	assert.False(t, result.CacheInfo.TreeHit)
	assert.NotEmpty(t, result.SnapshotHash)
	assert.NoError(t, tree.Validate(result.Tree))
}

func TestExecute_CacheHitOnReorderedSnapshot(t *testing.T) {
	r := testRunner(t)
	defer r.Close()
	ctx := context.Background()

	first, err := r.Execute(ctx, sampleRecords(), Options{})
	require.NoError(t, err)
	require.False(t, first.CacheInfo.TreeHit)

	// Same snapshot, reversed arrival order: same hash, cache hit,
	// identical tree and structural diagnostics.
	reversed := sampleRecords()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	second, err := r.Execute(ctx, reversed, Options{})
	require.NoError(t, err)

	assert.Equal(t, first.SnapshotHash, second.SnapshotHash)
	assert.True(t, second.CacheInfo.TreeHit)
	assert.True(t, tree.Equal(first.Tree, second.Tree))
	assert.Equal(t, first.Stats.Roots, second.Stats.Roots)
	assert.Equal(t, first.Stats.CyclesSevered, second.Stats.CyclesSevered)
}

func TestExecute_RefreshBypassesCache(t *testing.T) {
	r := testRunner(t)
	defer r.Close()
	ctx := context.Background()

	_, err := r.Execute(ctx, sampleRecords(), Options{})
	require.NoError(t, err)

	result, err := r.Execute(ctx, sampleRecords(), Options{Refresh: true})
	require.NoError(t, err)
	assert.False(t, result.CacheInfo.TreeHit)
}

func TestExecute_DistinctSnapshotsDistinctHashes(t *testing.T) {
	r := testRunner(t)
	defer r.Close()
	ctx := context.Background()

	a, err := r.Execute(ctx, sampleRecords(), Options{})
	require.NoError(t, err)
	b, err := r.Execute(ctx, sampleRecords()[:2], Options{})
	require.NoError(t, err)

	assert.NotEqual(t, a.SnapshotHash, b.SnapshotHash)
	assert.False(t, b.CacheInfo.TreeHit)
}

func TestExecute_EmptySnapshot(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	result, err := r.Execute(context.Background(), nil, Options{})
	require.NoError(t, err)

	assert.Nil(t, result.Tree)
	assert.Equal(t, 0, result.Stats.Records)
}

func TestExecute_ReservedID(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	_, err := r.Execute(context.Background(), []lineage.Record{{ID: tree.SuperRootID}}, Options{})
	assert.ErrorIs(t, err, lineage.ErrReservedID)
}

func TestExecute_NilCacheDisablesCaching(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()
	ctx := context.Background()

	_, err := r.Execute(ctx, sampleRecords(), Options{})
	require.NoError(t, err)
	second, err := r.Execute(ctx, sampleRecords(), Options{})
	require.NoError(t, err)

	assert.False(t, second.CacheInfo.TreeHit)
}

func TestExecuteReader_CountsMalformed(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	input := `[{"id": 1}, "garbage", {"id": 2, "parentIds": [1]}]`
	result, err := r.ExecuteReader(context.Background(), strings.NewReader(input), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.Malformed)
	assert.Equal(t, 2, result.Stats.Records)
	require.NotNil(t, result.Tree)
	assert.Equal(t, "1", result.Tree.ID)
}

func TestExecuteReader_InvalidJSON(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	_, err := r.ExecuteReader(context.Background(), strings.NewReader("{oops"), Options{})
	assert.Error(t, err)
}

func TestResult_Unchanged(t *testing.T) {
	r := testRunner(t)
	defer r.Close()
	ctx := context.Background()

	first, err := r.Execute(ctx, sampleRecords(), Options{})
	require.NoError(t, err)
	second, err := r.Execute(ctx, sampleRecords(), Options{})
	require.NoError(t, err)

	assert.True(t, second.Unchanged(first.Tree))
	assert.False(t, second.Unchanged(nil))

	recolored := sampleRecords()
	recolored[0].Color = "#000000"
	third, err := r.Execute(ctx, recolored, Options{})
	require.NoError(t, err)
	assert.False(t, third.Unchanged(first.Tree))
}

func TestRunIDsAreUnique(t *testing.T) {
	r := testRunner(t)
	defer r.Close()
	ctx := context.Background()

	a, err := r.Execute(ctx, sampleRecords(), Options{})
	require.NoError(t, err)
	b, err := r.Execute(ctx, sampleRecords(), Options{})
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
}
