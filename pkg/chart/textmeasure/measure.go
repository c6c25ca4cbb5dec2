// Package textmeasure reports the rendered width of label text.
//
// The layout engine decides label visibility and legend wrapping from
// text widths, so every measurer must be deterministic for a given
// (text, font) pair. Three implementations are provided:
//
//   - [FontMeasurer] rasterizes nothing but uses real glyph advances from
//     the Go fonts (golang.org/x/image/font/gofont).
//   - [Approx] multiplies a per-character factor by the font size. It is
//     dependency-free and used by tests that assert exact geometry.
//   - [Cached] memoizes any measurer behind an LRU cache.
package textmeasure

import (
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/stackbar/pkg/errors"
)

// Font identifies the face text is measured in.
type Font struct {
	Family string
	Size   float64
}

// Measurer returns the width in pixels of text set in f.
type Measurer interface {
	Measure(text string, f Font) (float64, error)
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(text string, f Font) (float64, error)

// Measure calls fn.
func (fn MeasurerFunc) Measure(text string, f Font) (float64, error) {
	return fn(text, f)
}

const (
	charWidthFactor = 0.55 // average advance of a proportional glyph, in em
	dpi             = 72   // one point per pixel
)

// Approx estimates width as runes × size × 0.55.
type Approx struct{}

// Measure implements Measurer.
func (Approx) Measure(text string, f Font) (float64, error) {
	if err := check(text, f); err != nil {
		return 0, err
	}
	return float64(utf8.RuneCountInString(text)) * f.Size * charWidthFactor, nil
}

func check(text string, f Font) error {
	if f.Size <= 0 {
		return errors.New(errors.ErrCodeMeasure, "invalid font size %v", f.Size)
	}
	if !utf8.ValidString(text) {
		return errors.New(errors.ErrCodeMeasure, "text is not valid UTF-8")
	}
	return nil
}

type faceKey struct {
	style string
	size  float64
}

// FontMeasurer measures text with the embedded Go font family. Font
// family names are mapped to the closest Go face: monospace families use
// Go Mono, names containing "bold" use Go Bold, everything else Go Regular.
type FontMeasurer struct {
	mu    sync.Mutex
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

// NewFontMeasurer parses the embedded fonts.
func NewFontMeasurer() (*FontMeasurer, error) {
	m := &FontMeasurer{
		fonts: make(map[string]*opentype.Font, 3),
		faces: make(map[faceKey]font.Face),
	}
	for style, data := range map[string][]byte{
		"regular": goregular.TTF,
		"bold":    gobold.TTF,
		"mono":    gomono.TTF,
	} {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse %s font", style)
		}
		m.fonts[style] = f
	}
	return m, nil
}

// Measure implements Measurer. It is safe for concurrent use.
func (m *FontMeasurer) Measure(text string, f Font) (float64, error) {
	if err := check(text, f); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(styleFor(f.Family), f.Size)
	if err != nil {
		return 0, err
	}
	return float64(font.MeasureString(face, text)) / 64, nil
}

func (m *FontMeasurer) face(style string, size float64) (font.Face, error) {
	key := faceKey{style, size}
	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(m.fonts[style], &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMeasure, err, "create %s face at %vpx", style, size)
	}
	m.faces[key] = face
	return face, nil
}

var monoFamilies = []string{"mono", "courier", "consolas", "menlo"}

func styleFor(family string) string {
	f := strings.ToLower(family)
	for _, m := range monoFamilies {
		if strings.Contains(f, m) {
			return "mono"
		}
	}
	if strings.Contains(f, "bold") {
		return "bold"
	}
	return "regular"
}
