package scale

import (
	"math"
	"reflect"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBand(t *testing.T) {
	// Two categories over 200px with 0.3 padding:
	// step = 200 / (2 - 0.3 + 0.6) = 86.9565..., bandwidth = 0.7 * step.
	b := NewBand([]string{"Jan", "Feb"}, 200, 0.3)

	step := 200 / 2.3
	if !approx(b.Step(), step) {
		t.Errorf("Step() = %v, want %v", b.Step(), step)
	}
	if !approx(b.Bandwidth(), step*0.7) {
		t.Errorf("Bandwidth() = %v, want %v", b.Bandwidth(), step*0.7)
	}

	x0, ok := b.X("Jan")
	if !ok || !approx(x0, step*0.3) {
		t.Errorf("X(Jan) = %v, %v; want %v", x0, ok, step*0.3)
	}
	x1, _ := b.X("Feb")
	if !approx(x1-x0, step) {
		t.Errorf("X(Feb)-X(Jan) = %v, want %v", x1-x0, step)
	}
	// Symmetric outer padding.
	if right := 200 - (x1 + b.Bandwidth()); !approx(right, x0) {
		t.Errorf("right gap = %v, want %v", right, x0)
	}
	if _, ok := b.X("Mar"); ok {
		t.Error("X(Mar) ok = true, want false")
	}
	if !approx(b.CenterAt(0), x0+b.Bandwidth()/2) {
		t.Errorf("CenterAt(0) = %v", b.CenterAt(0))
	}
}

func TestBandNoPadding(t *testing.T) {
	b := NewBand([]string{"a", "b", "c", "d"}, 100, 0)
	for i := 0; i < 4; i++ {
		if !approx(b.XAt(i), float64(i)*25) {
			t.Errorf("XAt(%d) = %v, want %v", i, b.XAt(i), float64(i)*25)
		}
	}
	if !approx(b.Bandwidth(), 25) {
		t.Errorf("Bandwidth() = %v, want 25", b.Bandwidth())
	}
}

func TestBandEmpty(t *testing.T) {
	b := NewBand(nil, 100, 0.3)
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
	if math.IsNaN(b.Bandwidth()) || math.IsInf(b.Bandwidth(), 0) {
		t.Errorf("Bandwidth() = %v, want finite", b.Bandwidth())
	}
}

func TestLinear(t *testing.T) {
	l := NewLinear(0, 40, 300, 0)

	tests := []struct {
		v, want float64
	}{
		{0, 300},
		{40, 0},
		{10, 225},
		{30, 75},
		{50, -75},
	}
	for _, tt := range tests {
		if got := l.Y(tt.v); !approx(got, tt.want) {
			t.Errorf("Y(%v) = %v, want %v", tt.v, got, tt.want)
		}
		if got := l.Invert(tt.want); !approx(got, tt.v) {
			t.Errorf("Invert(%v) = %v, want %v", tt.want, got, tt.v)
		}
	}

	if got := NewLinear(5, 5, 100, 0).Y(5); got != 50 {
		t.Errorf("degenerate Y = %v, want 50", got)
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		name   string
		d0, d1 float64
		count  int
		want   []float64
	}{
		{"tens", 0, 40, 3, []float64{0, 10, 20, 30, 40}},
		{"twenties", 0, 100, 5, []float64{0, 20, 40, 60, 80, 100}},
		{"fifties", 0, 200, 3, []float64{0, 50, 100, 150, 200}},
		{"thousands", 0, 2000, 3, []float64{0, 500, 1000, 1500, 2000}},
		{"fractions", 0, 1, 4, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{"reversed", 40, 0, 3, []float64{0, 10, 20, 30, 40}},
		{"degenerate", 7, 7, 3, []float64{7}},
		{"no count", 0, 40, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLinear(tt.d0, tt.d1, 100, 0).Ticks(tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("Ticks() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if !approx(got[i], tt.want[i]) {
					t.Fatalf("Ticks() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestTicksDeterministic(t *testing.T) {
	l := NewLinear(0, 65000, 300, 0)
	if a, b := l.Ticks(3), l.Ticks(3); !reflect.DeepEqual(a, b) {
		t.Errorf("Ticks not deterministic: %v vs %v", a, b)
	}
}
