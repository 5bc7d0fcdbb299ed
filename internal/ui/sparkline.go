package ui

import (
	"math/rand/v2"

	plot "github.com/chriskim06/drawille-go"
)

// sparkline is the decorative latency trace in the detail panel. It carries
// no real measurement: each tick pushes a jittered value around the shown
// record's latency so the panel reads as live.
type sparkline struct {
	canvas plot.Canvas
	series []float64
}

func newSparkline(width, height, points int) *sparkline {
	if points < 2 {
		points = 2
	}
	s := &sparkline{series: make([]float64, points)}
	s.resize(width, height)
	return s
}

func (s *sparkline) resize(width, height int) {
	width = max(1, width)
	height = max(1, height)
	c := plot.NewCanvas(width, height)
	c.NumDataPoints = len(s.series)
	c.ShowAxis = false
	c.LineColors = []plot.Color{plot.DimGray}
	s.canvas = c
}

// advance shifts the series left and appends a value jittered around base.
func (s *sparkline) advance(base float64) {
	copy(s.series, s.series[1:])
	jitter := 0.7 + 0.6*rand.Float64()
	s.series[len(s.series)-1] = base * jitter
}

func (s *sparkline) reset() {
	for i := range s.series {
		s.series[i] = 0
	}
}

func (s *sparkline) view() string {
	s.canvas.Fill([][]float64{s.series})
	return s.canvas.String()
}
