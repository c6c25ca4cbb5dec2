package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateCategory validates a category label read from input data.
// Labels are matched verbatim by selectors, so they must be printable
// and reasonably short.
func ValidateCategory(label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "category label cannot be empty")
	}

	if len(label) > 256 {
		return New(ErrCodeInvalidInput, "category label too long (max 256 characters)")
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "category label contains invalid control characters")
		}
	}

	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a color option value. Hex colors and plain
// CSS color keywords are accepted; anything that could break out of an
// SVG attribute is rejected.
func ValidateColor(field, color string) error {
	if color == "" {
		return New(ErrCodeInvalidConfig, "%s: color cannot be empty", field)
	}
	if strings.HasPrefix(color, "#") {
		if !hexColorRegex.MatchString(color) {
			return New(ErrCodeInvalidConfig, "%s: invalid hex color %q", field, color)
		}
		return nil
	}
	for _, r := range color {
		if !unicode.IsLetter(r) {
			return New(ErrCodeInvalidConfig, "%s: invalid color %q", field, color)
		}
	}
	return nil
}

// ValidateOneOf validates that value is one of the allowed enum values.
func ValidateOneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "%s: invalid value %q (must be one of: %s)",
		field, value, strings.Join(allowed, ", "))
}
