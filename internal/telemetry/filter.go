package telemetry

import "strings"

// Match reports whether the record matches the query: a case-insensitive
// substring test over the identity label and the ID. An empty query matches
// everything.
func Match(r Record, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Identity), q) ||
		strings.Contains(strings.ToLower(r.ID), q)
}

// Filter maintains the ordered set of dataset indices matching the current
// query. Two properties keep it cheap against a 100k-row store:
//
//   - When the new query contains the old one as a substring, every new
//     match is already in the cached match set, so the refiner rescans only
//     the cached indices instead of the whole dataset. Typing refines;
//     backspacing falls back to a full scan.
//   - The dataset grows while the user types. Sync scans only the appended
//     tail, so chunk appends never trigger a full rescan either.
//
// A nil match slice means "no query": every index matches and none are
// stored.
type Filter struct {
	ds      *Dataset
	query   string
	matches []int
	scanned int // dataset length the current matches cover
}

func NewFilter(ds *Dataset) *Filter {
	return &Filter{ds: ds}
}

// Query returns the active query string.
func (f *Filter) Query() string { return f.query }

// SetQuery replaces the active query and recomputes the match set,
// incrementally when possible.
func (f *Filter) SetQuery(query string) {
	prev := f.query
	f.query = query
	n := f.ds.Len()

	if query == "" {
		f.matches = nil
		f.scanned = n
		return
	}

	if prev != "" && f.matches != nil && strings.Contains(
		strings.ToLower(query), strings.ToLower(prev)) {
		refined := f.matches[:0]
		for _, i := range f.matches {
			if r, ok := f.ds.At(i); ok && Match(r, query) {
				refined = append(refined, i)
			}
		}
		f.matches = refined
		f.scanTail(n)
		return
	}

	// Keep matches non-nil: a query with zero matches is not "no query".
	if f.matches == nil {
		f.matches = make([]int, 0, 64)
	} else {
		f.matches = f.matches[:0]
	}
	f.scanned = 0
	f.scanTail(n)
}

// Sync folds records appended since the last scan into the match set.
// Returns true if anything changed.
func (f *Filter) Sync() bool {
	n := f.ds.Len()
	if n == f.scanned {
		return false
	}
	if f.matches == nil {
		f.scanned = n
		return true
	}
	f.scanTail(n)
	return true
}

func (f *Filter) scanTail(n int) {
	for i := f.scanned; i < n; i++ {
		if r, ok := f.ds.At(i); ok && Match(r, f.query) {
			f.matches = append(f.matches, i)
		}
	}
	f.scanned = n
}

// Len returns the number of records passing the current query.
func (f *Filter) Len() int {
	if f.matches == nil {
		return f.ds.Len()
	}
	return len(f.matches)
}

// Index maps a position in the filtered ordering to a dataset index.
func (f *Filter) Index(pos int) (int, bool) {
	if pos < 0 || pos >= f.Len() {
		return 0, false
	}
	if f.matches == nil {
		return pos, true
	}
	return f.matches[pos], true
}

// Record returns the record at a filtered position.
func (f *Filter) Record(pos int) (Record, bool) {
	i, ok := f.Index(pos)
	if !ok {
		return Record{}, false
	}
	return f.ds.At(i)
}
