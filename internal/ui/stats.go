package ui

import (
	"fmt"
	"time"
)

// latencyRing keeps the most recent duration samples. The running sum is
// maintained on add (subtracting the evicted slot, which is zero until the
// ring fills), so averages are O(1); only max needs a scan.
type latencyRing struct {
	buf  []time.Duration
	idx  int
	n    int
	sum  time.Duration
	last time.Duration
}

func newLatencyRing(size int) *latencyRing {
	if size < 1 {
		size = 1
	}
	return &latencyRing{buf: make([]time.Duration, size)}
}

func (r *latencyRing) add(d time.Duration) {
	r.sum += d - r.buf[r.idx]
	r.buf[r.idx] = d
	r.last = d
	r.idx = (r.idx + 1) % len(r.buf)
	if r.n < len(r.buf) {
		r.n++
	}
}

type latencyStats struct {
	last time.Duration
	avg  time.Duration
	max  time.Duration
	n    int
}

func (r *latencyRing) stats() latencyStats {
	if r.n == 0 {
		return latencyStats{}
	}
	var maxD time.Duration
	for i := 0; i < r.n; i++ {
		if r.buf[i] > maxD {
			maxD = r.buf[i]
		}
	}
	return latencyStats{
		last: r.last,
		avg:  r.sum / time.Duration(r.n),
		max:  maxD,
		n:    r.n,
	}
}

// renderStats tracks generation throughput and window recompute latency.
// All observations happen on the program goroutine, so no synchronization.
type renderStats struct {
	rows        int
	chunks      int
	firstAppend time.Time
	lastAppend  time.Time

	recomputes int
	window     *latencyRing
}

func newRenderStats(window int) *renderStats {
	return &renderStats{window: newLatencyRing(window)}
}

func (s *renderStats) observeChunk(n int, now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	if s.firstAppend.IsZero() {
		s.firstAppend = now
	}
	s.lastAppend = now
	s.rows += n
	s.chunks++
}

func (s *renderStats) observeWindow(d time.Duration) {
	s.recomputes++
	s.window.add(d)
}

type statsSnapshot struct {
	rows       int
	chunks     int
	rowsPerSec int
	recomputes int
	window     latencyStats
}

func (s *renderStats) snapshot() statsSnapshot {
	snap := statsSnapshot{
		rows:       s.rows,
		chunks:     s.chunks,
		recomputes: s.recomputes,
		window:     s.window.stats(),
	}
	if active := s.lastAppend.Sub(s.firstAppend); active > 0 {
		snap.rowsPerSec = int(float64(s.rows)/active.Seconds() + 0.5)
	}
	return snap
}

func formatStatsDuration(d time.Duration) string {
	if d <= 0 {
		return "0.000ms"
	}
	return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
}
