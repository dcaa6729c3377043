// Package props canonicalizes raw clip property values into stable string
// forms, used both as discovery keys and as rule match values. Normalization
// is total and deterministic: it never fails, and equal inputs always yield
// equal outputs.
package props

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Category is one of the matchable clip properties.
type Category string

const (
	Codec      Category = "codec"
	Resolution Category = "resolution"
	FrameRate  Category = "frame-rate"
	ColorTag   Category = "clip-color"
)

// Categories lists all categories in a stable display order.
func Categories() []Category {
	return []Category{Codec, Resolution, FrameRate, ColorTag}
}

// Label returns the human-readable name for a category.
func (c Category) Label() string {
	switch c {
	case Codec:
		return "Codec"
	case Resolution:
		return "Resolution"
	case FrameRate:
		return "Frame Rate"
	case ColorTag:
		return "Clip Color"
	}
	return string(c)
}

// ParseCategory parses a category name as authored in a rules file. A few
// spellings are accepted so rules files can use the on-screen labels.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "codec":
		return Codec, nil
	case "resolution":
		return Resolution, nil
	case "frame-rate", "frame rate", "framerate", "fps":
		return FrameRate, nil
	case "clip-color", "clip color", "clipcolor", "color":
		return ColorTag, nil
	}
	return "", errors.Newf("unknown rule category %q (use codec, resolution, frame-rate, or clip-color)", s)
}

// Normalize canonicalizes a raw property value for the given category.
// Frame rates get numeric canonicalization; everything else is trimmed.
func Normalize(c Category, raw string) string {
	if c == FrameRate {
		return NormalizeFrameRate(raw)
	}
	return strings.TrimSpace(raw)
}

// NormalizeFrameRate converts numeric frame rates to a 3-decimal form with
// trailing zeros and a dangling decimal point stripped, so 24.000 and "24"
// share one key ("24") while 23.976 stays "23.976". Non-numeric input passes
// through trimmed. The function is idempotent.
func NormalizeFrameRate(raw string) string {
	s := strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	out := strconv.FormatFloat(f, 'f', 3, 64)
	out = strings.TrimRight(out, "0")
	out = strings.TrimSuffix(out, ".")
	return out
}
