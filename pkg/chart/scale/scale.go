// Package scale maps data values to pixel coordinates.
//
// Band positions categories along the x axis and Linear maps values onto
// the y axis. Both follow the conventions of the d3-scale library so a
// chart laid out here lines up with one drawn in a browser from the same
// inputs.
package scale

import "math"

// Band divides a continuous range into evenly spaced bands, one per
// category. Inner padding is the fraction of a step left empty between
// bands; outer padding is the fraction of a step left before the first
// and after the last band.
type Band struct {
	domain    []string
	index     map[string]int
	start     float64
	step      float64
	bandwidth float64
}

// NewBand lays out domain over [0, width] with the given padding (inner
// and outer are equal) and centered alignment. Padding is clamped to [0, 1].
func NewBand(domain []string, width, padding float64) Band {
	padding = math.Min(1, math.Max(0, padding))

	n := float64(len(domain))
	step := width / math.Max(1, n-padding+padding*2)
	start := (width - step*(n-padding)) * 0.5

	idx := make(map[string]int, len(domain))
	for i, d := range domain {
		if _, ok := idx[d]; !ok {
			idx[d] = i
		}
	}

	return Band{
		domain:    domain,
		index:     idx,
		start:     start,
		step:      step,
		bandwidth: step * (1 - padding),
	}
}

// Step returns the distance between the starts of adjacent bands.
func (b Band) Step() float64 { return b.step }

// Bandwidth returns the width of each band.
func (b Band) Bandwidth() float64 { return b.bandwidth }

// Len returns the number of categories.
func (b Band) Len() int { return len(b.domain) }

// XAt returns the start of the i-th band.
func (b Band) XAt(i int) float64 {
	return b.start + b.step*float64(i)
}

// X returns the start of the band for category and whether it exists.
func (b Band) X(category string) (float64, bool) {
	i, ok := b.index[category]
	if !ok {
		return 0, false
	}
	return b.XAt(i), true
}

// CenterAt returns the midpoint of the i-th band.
func (b Band) CenterAt(i int) float64 {
	return b.XAt(i) + b.bandwidth/2
}

// Linear maps a continuous domain onto a continuous range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear returns a scale mapping [d0, d1] onto [r0, r1]. For a y axis
// pass r0 = plot height and r1 = 0 so larger values sit higher.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the domain bounds.
func (l Linear) Domain() (float64, float64) { return l.d0, l.d1 }

// Range returns the range bounds.
func (l Linear) Range() (float64, float64) { return l.r0, l.r1 }

// Y maps v into the range. A degenerate domain maps every value to the
// middle of the range. Values outside the domain are extrapolated.
func (l Linear) Y(v float64) float64 {
	span := l.d1 - l.d0
	t := 0.5
	if span != 0 {
		t = (v - l.d0) / span
	}
	return l.r0 + t*(l.r1-l.r0)
}

// Invert maps a range coordinate back into the domain.
func (l Linear) Invert(y float64) float64 {
	span := l.r1 - l.r0
	t := 0.5
	if span != 0 {
		t = (y - l.r0) / span
	}
	return l.d0 + t*(l.d1-l.d0)
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Ticks returns roughly count round values spanning the domain, using
// steps of 1, 2 or 5 times a power of ten.
func (l Linear) Ticks(count int) []float64 {
	lo, hi := l.d0, l.d1
	if hi < lo {
		lo, hi = hi, lo
	}
	if lo == hi {
		return []float64{lo}
	}
	if count <= 0 || math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}

	step := (hi - lo) / float64(count)
	power := math.Floor(math.Log10(step))
	err := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case err >= e10:
		factor = 10
	case err >= e5:
		factor = 5
	case err >= e2:
		factor = 2
	}

	var ticks []float64
	if power >= 0 {
		inc := factor * math.Pow(10, power)
		for i := math.Ceil(lo / inc); i <= math.Floor(hi/inc); i++ {
			ticks = append(ticks, i*inc)
		}
		return ticks
	}
	inv := math.Pow(10, -power) / factor
	for i := math.Ceil(lo * inv); i <= math.Floor(hi*inv); i++ {
		ticks = append(ticks, i/inv)
	}
	return ticks
}
