package rules

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/backmassage/lutrules/internal/lut"
	"github.com/backmassage/lutrules/internal/props"
)

// ErrConfiguration marks rule-authoring problems that must abort a run
// before any item is visited, as opposed to per-item failures which are
// recorded and tolerated.
var ErrConfiguration = errors.New("invalid rule configuration")

// Spec is one authored rule row, in the order the user wrote it. It is the
// config surface consumed by the engine; a form, a TOML file, or a test can
// produce it.
type Spec struct {
	Enabled  bool   `mapstructure:"enabled"`
	Category string `mapstructure:"category"`
	Value    string `mapstructure:"value"`
	// LUT is a display name from the catalog; lut.RemoveLabel selects
	// removal.
	LUT  string `mapstructure:"lut"`
	Node int    `mapstructure:"node"`
}

// FromSpecs builds the enabled rules from authored rows, preserving order.
// Display names are resolved through the registry up front so a stale or
// misspelled LUT name fails the whole run instead of every item. Zero
// enabled rules is a configuration error.
func FromSpecs(specs []Spec, reg *lut.Registry) ([]Rule, error) {
	var out []Rule
	for i, sp := range specs {
		if !sp.Enabled {
			continue
		}
		cat, err := props.ParseCategory(sp.Category)
		if err != nil {
			return nil, errors.Wrapf(ErrConfiguration, "rule %d: %v", i+1, err)
		}
		if strings.TrimSpace(sp.Value) == "" {
			return nil, errors.Wrapf(ErrConfiguration, "rule %d: empty match value", i+1)
		}
		path, err := reg.Resolve(sp.LUT)
		if err != nil {
			return nil, errors.Wrapf(ErrConfiguration, "rule %d: lut %q is not in the catalog", i+1, sp.LUT)
		}
		if sp.Node < 1 {
			return nil, errors.Wrapf(ErrConfiguration, "rule %d: node %d (must be >= 1)", i+1, sp.Node)
		}

		switch cat {
		case props.Codec:
			out = append(out, NewCodecRule(sp.Value, path, sp.Node))
		case props.Resolution:
			out = append(out, NewResolutionRule(sp.Value, path, sp.Node))
		case props.FrameRate:
			out = append(out, NewFrameRateRule(sp.Value, path, sp.Node))
		case props.ColorTag:
			out = append(out, NewColorTagRule(sp.Value, path, sp.Node))
		}
	}
	if len(out) == 0 {
		return nil, errors.Wrap(ErrConfiguration, "no enabled rules")
	}
	return out, nil
}
