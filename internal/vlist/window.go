// Package vlist computes which rows of a large ordered collection must be
// materialized for the current viewport. The caller positions each returned
// row at its Offset inside a virtual canvas of TotalHeight lines; everything
// outside the window is never rendered.
package vlist

// DefaultOverscan is the number of extra rows materialized above and below
// the strictly visible range. It masks pop-in during fast scrolling and is a
// tunable, not a correctness invariant.
const DefaultOverscan = 20

// Row is a single materialized list entry.
type Row struct {
	Index  int // position in the backing collection
	Offset int // Index * ItemHeight, in lines from the top of the virtual canvas
}

// Window is the contiguous slice of a collection that covers the viewport.
// Start and End are inclusive. An empty collection yields an empty window
// with Start == 0, End == -1.
type Window struct {
	Start       int
	End         int
	Rows        []Row
	TotalHeight int
}

// Empty reports whether the window contains no rows.
func (w Window) Empty() bool { return len(w.Rows) == 0 }

// Compute returns the minimal window covering the viewport
// [scrollOffset, scrollOffset+viewportHeight), widened by overscan rows on
// each side and clamped to [0, count-1].
//
// Bad geometry is clamped rather than rejected: negative counts, offsets and
// heights are treated as zero, and itemHeight < 1 as 1. Layout thrash feeds
// transient garbage through here and crashing on it helps nobody.
func Compute(count, itemHeight, scrollOffset, viewportHeight, overscan int) Window {
	if count < 0 {
		count = 0
	}
	if itemHeight < 1 {
		itemHeight = 1
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	if viewportHeight < 0 {
		viewportHeight = 0
	}
	if overscan < 0 {
		overscan = 0
	}

	w := Window{Start: 0, End: -1, TotalHeight: count * itemHeight}
	if count == 0 {
		return w
	}

	start := scrollOffset/itemHeight - overscan
	if start < 0 {
		start = 0
	}
	end := ceilDiv(scrollOffset+viewportHeight, itemHeight) + overscan
	if end > count-1 {
		end = count - 1
	}
	if start > end {
		// Offset points past the end of the collection; keep the tail row so
		// the caller always has something to anchor on.
		start = end
	}

	w.Start = start
	w.End = end
	w.Rows = make([]Row, 0, end-start+1)
	for i := start; i <= end; i++ {
		w.Rows = append(w.Rows, Row{Index: i, Offset: i * itemHeight})
	}
	return w
}

// MaxScroll returns the largest useful scroll offset for the given geometry:
// the offset at which the last row's bottom edge meets the viewport bottom.
func MaxScroll(count, itemHeight, viewportHeight int) int {
	if count < 0 {
		count = 0
	}
	if itemHeight < 1 {
		itemHeight = 1
	}
	m := count*itemHeight - viewportHeight
	if m < 0 {
		return 0
	}
	return m
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
