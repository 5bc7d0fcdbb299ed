// Package telemetry owns the synthetic fleet dataset: record generation in
// chunks, the append-only store the UI reads from, and substring filtering
// over it.
package telemetry

import (
	"fmt"
	"math/rand/v2"
)

// Status classifies a server's current condition.
type Status string

const (
	StatusActive   Status = "active"
	StatusIdle     Status = "idle"
	StatusCritical Status = "critical"
)

// Record is one server's snapshot. Records are immutable once generated.
type Record struct {
	ID       string // stable, derived from the generation index
	Hash     string // 8 hex chars, random per record
	Identity string // "<region>-<n>-SRV-<4 digits>", region and n derived from the index
	Status   Status
	Latency  int // milliseconds
	Load     int // percent
}

var regions = []string{
	"us-east", "us-west", "eu-central", "eu-north",
	"ap-south", "ap-east", "sa-east", "af-south",
}

// newRecord generates the record for generation index i. Everything except
// the hash and the 4-digit identity suffix is a deterministic function of i.
func newRecord(i int) Record {
	status, latency, load := randomVitals()
	return Record{
		ID:       fmt.Sprintf("srv-%06d", i),
		Hash:     fmt.Sprintf("%08x", rand.Uint32()),
		Identity: fmt.Sprintf("%s-%d-SRV-%04d", regions[i%len(regions)], i%50+1, rand.IntN(10000)),
		Status:   status,
		Latency:  latency,
		Load:     load,
	}
}

// randomVitals draws status, latency and load together so that critical
// records always carry elevated latency and load. The correlation holds by
// construction; nothing revalidates it afterward.
func randomVitals() (Status, int, int) {
	switch p := rand.IntN(100); {
	case p < 10:
		return StatusCritical, 280 + rand.IntN(220), 80 + rand.IntN(21)
	case p < 35:
		return StatusIdle, 1 + rand.IntN(40), rand.IntN(26)
	default:
		return StatusActive, 5 + rand.IntN(115), 10 + rand.IntN(61)
	}
}
