package grid

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Summary holds the counters of one expander run.
type Summary struct {
	PinsRead         int
	SegmentsRead     int
	SegmentsExpanded int
	// SegmentsSkipped counts non-positive counts and diagonal segments.
	SegmentsSkipped int
	CellsEmitted    int

	// Cells per expanded segment.
	LengthMean   float64
	LengthStdDev float64
}

// tally accumulates a Summary during a run.
type tally struct {
	Summary
	lengths []float64
}

func (t *tally) record(o Orientation, cells int) {
	switch o {
	case Horizontal, Vertical:
		t.SegmentsExpanded++
		t.lengths = append(t.lengths, float64(cells))
	default:
		t.SegmentsSkipped++
	}
}

// summary computes the length statistics. The stddev is the sample standard
// deviation and is zero for fewer than two segments.
func (t *tally) summary() Summary {
	s := t.Summary
	switch len(t.lengths) {
	case 0:
	case 1:
		s.LengthMean = t.lengths[0]
	default:
		s.LengthMean, s.LengthStdDev = stat.MeanStdDev(t.lengths, nil)
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("pins=%d segments=%d expanded=%d skipped=%d cells=%d length=%.2f±%.2f",
		s.PinsRead, s.SegmentsRead, s.SegmentsExpanded, s.SegmentsSkipped, s.CellsEmitted,
		s.LengthMean, s.LengthStdDev)
}
