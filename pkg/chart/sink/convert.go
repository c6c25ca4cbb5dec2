package sink

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/matzehuels/stackbar/pkg/errors"
)

// rsvgBinary is the converter used for PNG and PDF output.
var rsvgBinary = "rsvg-convert"

// toPDF converts SVG bytes to PDF using rsvg-convert.
func toPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// toPNG converts SVG bytes to PNG at the given scale factor.
func toPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath(rsvgBinary); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command(rsvgBinary, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}
