package telemetry

// Generator produces the dataset in fixed-size chunks. It is deliberately
// step-driven: each Step appends exactly one whole chunk and returns, and the
// caller decides when the next chunk runs. Driving Step from a Bubble Tea
// command gives the cooperative yield the UI needs — chunk N+1 cannot start
// before the event loop has processed chunk N's message — and cancellation is
// simply not scheduling the next step. The generator holds no goroutines or
// timers of its own.
type Generator struct {
	total     int
	chunkSize int
	generated int
	ds        *Dataset
}

func NewGenerator(total, chunkSize int) *Generator {
	if total < 0 {
		total = 0
	}
	if chunkSize < 1 {
		chunkSize = 1
	}
	return &Generator{
		total:     total,
		chunkSize: chunkSize,
		ds:        NewDataset(total),
	}
}

// Dataset returns the store this generator appends to. Valid to read at any
// point during generation; it just won't be full yet.
func (g *Generator) Dataset() *Dataset { return g.ds }

// Step generates and appends the next chunk. It returns the number of
// records appended and whether generation is now complete. Once done it is
// an idempotent no-op.
func (g *Generator) Step() (appended int, done bool) {
	if g.generated >= g.total {
		return 0, true
	}
	n := g.chunkSize
	if remaining := g.total - g.generated; n > remaining {
		n = remaining
	}
	chunk := make([]Record, n)
	for i := range chunk {
		chunk[i] = newRecord(g.generated + i)
	}
	g.ds.append(chunk)
	g.generated += n
	return n, g.generated >= g.total
}

// Progress reports completion in percent. It reaches exactly 100 only when
// every record has been generated.
func (g *Generator) Progress() int {
	if g.total == 0 {
		return 100
	}
	p := 100 * g.generated / g.total
	if p > 100 {
		p = 100
	}
	return p
}

// Done reports whether the full dataset has been generated.
func (g *Generator) Done() bool { return g.generated >= g.total }
