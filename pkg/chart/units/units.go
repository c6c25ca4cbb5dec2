// Package units formats chart values with magnitude suffixes and rounds
// axis maxima to readable bounds.
//
// Values are divided by the selected unit (K, M, B, T, P, E), rounded to a
// fixed number of decimals, grouped with English digit separators and
// suffixed with the unit symbol:
//
//	units.Format(1234567, 1, units.Auto)   // "1.2M"
//	units.Format(1234567, 0, units.None)   // "1,234,567"
//	units.Format(0, 2, units.Auto)         // "0"
//
// TopRound picks the axis maximum used when no explicit maximum is
// configured.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matzehuels/stackbar/pkg/errors"
)

// Unit selects the magnitude a value is expressed in.
type Unit string

// Supported units. Auto picks the largest unit not exceeding the value.
const (
	Auto         Unit = "auto"
	None         Unit = "none"
	Thousands    Unit = "K"
	Millions     Unit = "M"
	Billions     Unit = "B"
	Trillions    Unit = "T"
	Quadrillions Unit = "P"
	Quintillions Unit = "E"
)

type step struct {
	unit  Unit
	name  string
	value float64
}

// ladder is ordered from smallest to largest.
var ladder = []step{
	{None, "none", 1},
	{Thousands, "thousands", 1e3},
	{Millions, "millions", 1e6},
	{Billions, "billions", 1e9},
	{Trillions, "trillions", 1e12},
	{Quadrillions, "quadrillions", 1e15},
	{Quintillions, "quintillions", 1e18},
}

var printer = message.NewPrinter(language.English)

// ParseUnit accepts a unit symbol ("K"), its long name ("thousands"),
// "auto" or "none". Matching is case-insensitive.
func ParseUnit(s string) (Unit, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(Auto)) {
		return Auto, nil
	}
	for _, st := range ladder {
		if strings.EqualFold(s, string(st.unit)) || strings.EqualFold(s, st.name) {
			return st.unit, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown display unit %q", s)
}

// Divisor returns the value a number is divided by when formatted in u.
// Auto and unknown units report 1.
func Divisor(u Unit) float64 {
	for _, st := range ladder {
		if st.unit == u {
			return st.value
		}
	}
	return 1
}

// Resolve returns the concrete unit Format would use for value.
func Resolve(value float64, u Unit) Unit {
	if u != Auto {
		return u
	}
	abs := math.Abs(value)
	chosen := None
	for _, st := range ladder {
		if abs >= st.value {
			chosen = st.unit
		}
	}
	return chosen
}

// Format renders value in unit u with the given number of decimals.
// Zero always renders as "0". Negative digits are treated as zero.
func Format(value float64, digits int, u Unit) string {
	if value == 0 || math.IsNaN(value) {
		return "0"
	}
	if digits < 0 {
		digits = 0
	}
	unit := Resolve(value, u)
	scaled := value / Divisor(unit)

	s := printer.Sprintf("%."+strconv.Itoa(digits)+"f", scaled)
	if unit == None {
		return s
	}
	return s + string(unit)
}

// Percent renders a percentage with one decimal, e.g. "-33.3%".
func Percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// TopRound rounds max up to a readable axis bound. The rounding step is
// 10^(d-1) where d is the number of integer digits of max, but never
// less than 10. The result is idempotent: TopRound(TopRound(x)) equals
// TopRound(x). Non-positive inputs return 0.
func TopRound(max float64) float64 {
	if max <= 0 || math.IsNaN(max) || math.IsInf(max, 0) {
		return 0
	}
	digits := len(strconv.FormatFloat(math.Floor(max), 'f', 0, 64))
	step := math.Max(math.Pow(10, float64(digits-1)), 10)
	return math.Ceil(max/step) * step
}
