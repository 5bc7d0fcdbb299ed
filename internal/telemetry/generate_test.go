package telemetry

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorChunkAndProgressSequence(t *testing.T) {
	g := NewGenerator(5, 2)

	wantChunks := []int{2, 2, 1}
	wantProgress := []int{40, 80, 100}

	for i, wantN := range wantChunks {
		n, done := g.Step()
		assert.Equal(t, wantN, n, "chunk %d", i)
		assert.Equal(t, wantProgress[i], g.Progress(), "after chunk %d", i)
		assert.Equal(t, i == len(wantChunks)-1, done, "after chunk %d", i)
	}
	assert.Equal(t, 5, g.Dataset().Len())
}

func TestGeneratorStepAfterDoneIsNoop(t *testing.T) {
	g := NewGenerator(3, 10)
	_, done := g.Step()
	require.True(t, done)

	n, done := g.Step()
	assert.True(t, done)
	assert.Zero(t, n)
	assert.Equal(t, 3, g.Dataset().Len())
	assert.Equal(t, 100, g.Progress())
}

func TestGeneratorCompleteDataset(t *testing.T) {
	const total = 1237
	g := NewGenerator(total, 100)
	steps := 0
	for !g.Done() {
		_, _ = g.Step()
		steps++
		require.LessOrEqual(t, steps, 13, "generator must terminate")
	}
	ds := g.Dataset()
	require.Equal(t, total, ds.Len())

	// Every index present exactly once, in generation order.
	for i := 0; i < total; i++ {
		r, ok := ds.At(i)
		require.True(t, ok)
		require.Equal(t, fmt.Sprintf("srv-%06d", i), r.ID)
	}
}

func TestGeneratorProgressMonotone(t *testing.T) {
	g := NewGenerator(997, 31)
	prev := 0
	for !g.Done() {
		_, done := g.Step()
		p := g.Progress()
		require.GreaterOrEqual(t, p, prev)
		require.LessOrEqual(t, p, 100)
		if p == 100 {
			require.True(t, done, "progress hits 100 only at completion")
		}
		prev = p
	}
	assert.Equal(t, 100, g.Progress())
}

func TestGeneratorZeroTotal(t *testing.T) {
	g := NewGenerator(0, 50)
	assert.True(t, g.Done())
	assert.Equal(t, 100, g.Progress())
	n, done := g.Step()
	assert.Zero(t, n)
	assert.True(t, done)
}

var identityRe = regexp.MustCompile(`^[a-z]+-[a-z]+-\d+-SRV-\d{4}$`)

func TestRecordShape(t *testing.T) {
	g := NewGenerator(400, 400)
	g.Step()
	ds := g.Dataset()

	for i := 0; i < ds.Len(); i++ {
		r, _ := ds.At(i)
		assert.Regexp(t, identityRe, r.Identity)
		assert.Len(t, r.Hash, 8)

		// Identity prefix is a deterministic function of the index.
		wantPrefix := fmt.Sprintf("%s-%d-SRV-", regions[i%len(regions)], i%50+1)
		assert.True(t, strings.HasPrefix(r.Identity, wantPrefix),
			"record %d: %q should start with %q", i, r.Identity, wantPrefix)
	}
}

func TestCriticalRecordsCarryElevatedVitals(t *testing.T) {
	g := NewGenerator(5000, 5000)
	g.Step()
	ds := g.Dataset()

	sawCritical := false
	for i := 0; i < ds.Len(); i++ {
		r, _ := ds.At(i)
		switch r.Status {
		case StatusCritical:
			sawCritical = true
			assert.GreaterOrEqual(t, r.Latency, 280)
			assert.GreaterOrEqual(t, r.Load, 80)
		case StatusActive, StatusIdle:
			assert.Less(t, r.Latency, 280)
			assert.Less(t, r.Load, 80)
		default:
			t.Fatalf("record %d: unknown status %q", i, r.Status)
		}
	}
	// 10% of 5000 draws; absence would be astronomically unlikely.
	assert.True(t, sawCritical)
}
