// Package stack turns table rows into per-series bar segments.
package stack

import "github.com/matzehuels/stackbar/pkg/dataset"

// Mode controls how series segments relate to each other.
type Mode string

const (
	// Stacked places each series on top of the previous one.
	Stacked Mode = "stacked"
	// Overlay starts every series at zero so bars overlap.
	Overlay Mode = "overlay"
)

// Segment is one series' portion of one category's bar.
type Segment struct {
	Baseline float64 `json:"baseline"`
	Top      float64 `json:"top"`
	Value    float64 `json:"value"`
}

// Stacks holds segments indexed by [series][row], in stack order.
type Stacks [][]Segment

// Build computes segments for rows with series taken in order. In
// stacked mode the first series sits on zero and every later series
// starts where the previous one ends, so Top = Baseline + Value holds
// for every segment.
func Build(rows []dataset.Row, order []string, mode Mode) Stacks {
	out := make(Stacks, len(order))
	for s := range order {
		out[s] = make([]Segment, len(rows))
	}
	for r, row := range rows {
		base := 0.0
		for s, name := range order {
			v := row.Values[name]
			if mode == Overlay {
				base = 0
			}
			out[s][r] = Segment{Baseline: base, Top: base + v, Value: v}
			base += v
		}
	}
	return out
}

// Max returns the highest segment top, or 0 for empty stacks.
func (st Stacks) Max() float64 {
	max := 0.0
	for _, series := range st {
		for _, seg := range series {
			if seg.Top > max {
				max = seg.Top
			}
		}
	}
	return max
}

// Order returns the series names in stack order, reversed when flip is set.
func Order(series []string, flip bool) []string {
	out := append([]string(nil), series...)
	if flip {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
