package telemetry

import (
	"strconv"
	"strings"
	"sync"
)

// Dataset is the ordered, append-only record store. Appends happen in whole
// chunks from the generator; reads come from the render loop. The lock keeps
// a read from ever observing a partial append.
type Dataset struct {
	mu      sync.RWMutex
	records []Record
}

func NewDataset(capacity int) *Dataset {
	if capacity < 0 {
		capacity = 0
	}
	return &Dataset{records: make([]Record, 0, capacity)}
}

func (d *Dataset) append(chunk []Record) {
	d.mu.Lock()
	d.records = append(d.records, chunk...)
	d.mu.Unlock()
}

// Len returns the number of records appended so far.
func (d *Dataset) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.records)
}

// At returns the record at generation index i.
func (d *Dataset) At(i int) (Record, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i < 0 || i >= len(d.records) {
		return Record{}, false
	}
	return d.records[i], true
}

// FindByID resolves a record by its ID, as produced when the user selects a
// row. IDs encode the generation index, so this is a lookup, not a scan; a
// linear scan backstops IDs that don't parse.
func (d *Dataset) FindByID(id string) (Record, bool) {
	if n, err := strconv.Atoi(strings.TrimPrefix(id, "srv-")); err == nil {
		if r, ok := d.At(n); ok && r.ID == id {
			return r, true
		}
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, r := range d.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}
