package telemetry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	r := Record{ID: "srv-000042", Identity: "eu-central-7-SRV-1234"}

	assert.True(t, Match(r, ""))
	assert.True(t, Match(r, "central"))
	assert.True(t, Match(r, "EU-CENTRAL"))
	assert.True(t, Match(r, "srv-0000"))
	assert.True(t, Match(r, "SRV-1234"))
	assert.False(t, Match(r, "us-west"))
	assert.False(t, Match(r, "srv-000043"))
}

// naiveMatches is the oracle the incremental filter is checked against. The
// accumulator starts non-nil so zero-match results compare equal to
// filterIndices' empty slice.
func naiveMatches(ds *Dataset, query string) []int {
	out := []int{}
	for i := 0; i < ds.Len(); i++ {
		r, _ := ds.At(i)
		if Match(r, query) {
			out = append(out, i)
		}
	}
	return out
}

func filterIndices(f *Filter) []int {
	out := make([]int, 0, f.Len())
	for pos := 0; pos < f.Len(); pos++ {
		i, ok := f.Index(pos)
		if !ok {
			break
		}
		out = append(out, i)
	}
	return out
}

func generated(t *testing.T, total, chunk int) *Generator {
	t.Helper()
	g := NewGenerator(total, chunk)
	for !g.Done() {
		g.Step()
	}
	return g
}

func TestFilterMatchesNaiveScan(t *testing.T) {
	ds := generated(t, 2000, 500).Dataset()
	f := NewFilter(ds)

	for _, q := range []string{"", "us", "us-east", "US-EAST-1", "srv-0001", "zz-nowhere"} {
		f.SetQuery(q)
		want := naiveMatches(ds, q)
		assert.Equal(t, len(want), f.Len(), "query %q", q)
		if q != "" {
			assert.Equal(t, want, filterIndices(f), "query %q", q)
		}
	}
}

func TestFilterRefinesNarrowingQuery(t *testing.T) {
	ds := generated(t, 3000, 1000).Dataset()
	f := NewFilter(ds)

	// Each query contains the previous one, exercising the refinement path.
	queries := []string{"e", "ea", "east", "us-east", "us-east-1"}
	for _, q := range queries {
		f.SetQuery(q)
		require.Equal(t, naiveMatches(ds, q), filterIndices(f), "query %q", q)
	}

	// Backspacing widens the query and forces the full-rescan path.
	f.SetQuery("east")
	require.Equal(t, naiveMatches(ds, "east"), filterIndices(f))
}

func TestFilterZeroMatchesIsNotNoQuery(t *testing.T) {
	ds := generated(t, 100, 100).Dataset()
	f := NewFilter(ds)

	f.SetQuery("no-such-region")
	assert.Equal(t, 0, f.Len())
	_, ok := f.Index(0)
	assert.False(t, ok)

	f.SetQuery("")
	assert.Equal(t, 100, f.Len())
}

func TestFilterSyncPicksUpAppendedChunks(t *testing.T) {
	g := NewGenerator(300, 100)
	f := NewFilter(g.Dataset())
	f.SetQuery("srv-0")

	g.Step()
	require.True(t, f.Sync())
	assert.Equal(t, naiveMatches(g.Dataset(), "srv-0"), filterIndices(f))

	g.Step()
	g.Step()
	require.True(t, f.Sync())
	assert.Equal(t, naiveMatches(g.Dataset(), "srv-0"), filterIndices(f))

	// Nothing new appended: Sync reports no change.
	assert.False(t, f.Sync())
}

func TestFilterQueryDuringGrowthThenRefine(t *testing.T) {
	g := NewGenerator(500, 125)
	f := NewFilter(g.Dataset())

	g.Step()
	f.SetQuery("us")
	g.Step()
	f.Sync()
	f.SetQuery("us-west") // refinement over a partially-grown dataset
	g.Step()
	g.Step()
	f.Sync()

	assert.Equal(t, naiveMatches(g.Dataset(), "us-west"), filterIndices(f))
}

func TestFilterRecord(t *testing.T) {
	ds := generated(t, 50, 10).Dataset()
	f := NewFilter(ds)

	r, ok := f.Record(7)
	require.True(t, ok)
	assert.Equal(t, "srv-000007", r.ID)

	f.SetQuery("srv-00004") // srv-000040..srv-000049
	require.Equal(t, 10, f.Len())
	r, ok = f.Record(0)
	require.True(t, ok)
	assert.Equal(t, "srv-000040", r.ID)

	_, ok = f.Record(10)
	assert.False(t, ok)
	_, ok = f.Record(-1)
	assert.False(t, ok)
}

func TestDatasetFindByID(t *testing.T) {
	ds := generated(t, 200, 64).Dataset()

	r, ok := ds.FindByID("srv-000123")
	require.True(t, ok)
	assert.Equal(t, "srv-000123", r.ID)

	_, ok = ds.FindByID("srv-000200")
	assert.False(t, ok)
	_, ok = ds.FindByID("bogus")
	assert.False(t, ok)
	_, ok = ds.FindByID(strings.Repeat("9", 30))
	assert.False(t, ok)
}
