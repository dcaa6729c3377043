// Package rules implements property-matching rules and their first-match
// evaluation against timeline items. The four variants form a closed set
// over a common Matches/PropertyValue capability, differing only in which
// property they read.
package rules

import (
	"strings"

	"github.com/backmassage/lutrules/internal/host"
	"github.com/backmassage/lutrules/internal/props"
)

// Rule matches one clip property against a target value and carries the LUT
// assignment to perform on a hit. An empty LUTPath means "clear the LUT at
// TargetNode" — distinct from applying an empty LUT, and never conflated
// with it.
type Rule interface {
	Category() props.Category
	MatchValue() string
	// LUTPath is the full path of the LUT to apply, or "" for removal.
	LUTPath() string
	// TargetNode is the 1-based node index the LUT is assigned to.
	TargetNode() int
	// Matches reports whether item's property equals the match value after
	// normalization. Unreadable properties never match and never panic.
	Matches(item host.Item) bool
	// PropertyValue returns the normalized property for reporting, "" when
	// unavailable.
	PropertyValue(item host.Item) string
}

// base carries the fields shared by all variants.
type base struct {
	value   string
	lutPath string
	node    int
}

func (b base) MatchValue() string { return b.value }
func (b base) LUTPath() string    { return b.lutPath }
func (b base) TargetNode() int    { return b.node }

// refProperty reads key from the item's media reference property bag,
// falling back to fallback when the primary key is absent. Returns "" when
// the item has no media reference or the bag cannot be read.
func refProperty(item host.Item, key, fallback string) string {
	ref := item.MediaReference()
	if ref == nil {
		return ""
	}
	bag, err := ref.Properties()
	if err != nil {
		return ""
	}
	v := bag[key]
	if v == "" && fallback != "" {
		v = bag[fallback]
	}
	return v
}

// CodecRule matches clips by video codec (exact match on the trimmed value).
type CodecRule struct{ base }

// NewCodecRule builds a codec rule. value is normalized on construction so
// authored and discovered values compare equal.
func NewCodecRule(value, lutPath string, node int) *CodecRule {
	return &CodecRule{base{props.Normalize(props.Codec, value), lutPath, node}}
}

func (r *CodecRule) Category() props.Category { return props.Codec }

func (r *CodecRule) PropertyValue(item host.Item) string {
	return props.Normalize(props.Codec, refProperty(item, host.KeyCodec, ""))
}

func (r *CodecRule) Matches(item host.Item) bool {
	v := r.PropertyValue(item)
	return v != "" && v == r.value
}

// ResolutionRule matches clips by resolution string (e.g. "1920x1080").
type ResolutionRule struct{ base }

func NewResolutionRule(value, lutPath string, node int) *ResolutionRule {
	return &ResolutionRule{base{props.Normalize(props.Resolution, value), lutPath, node}}
}

func (r *ResolutionRule) Category() props.Category { return props.Resolution }

func (r *ResolutionRule) PropertyValue(item host.Item) string {
	return props.Normalize(props.Resolution, refProperty(item, host.KeyResolution, ""))
}

func (r *ResolutionRule) Matches(item host.Item) bool {
	v := r.PropertyValue(item)
	return v != "" && v == r.value
}

// FrameRateRule matches clips by normalized frame rate, reading the primary
// key and falling back to the FPS key when absent.
type FrameRateRule struct{ base }

func NewFrameRateRule(value, lutPath string, node int) *FrameRateRule {
	return &FrameRateRule{base{props.NormalizeFrameRate(value), lutPath, node}}
}

func (r *FrameRateRule) Category() props.Category { return props.FrameRate }

func (r *FrameRateRule) PropertyValue(item host.Item) string {
	return props.NormalizeFrameRate(refProperty(item, host.KeyFrameRate, host.KeyFPS))
}

func (r *FrameRateRule) Matches(item host.Item) bool {
	v := r.PropertyValue(item)
	return v != "" && v == r.value
}

// ColorTagRule matches clips by their clip color marker. The tag lives on
// the placed item, not its media, but a matching item must still carry a
// media reference: tagged generators and titles are never mutated.
type ColorTagRule struct{ base }

func NewColorTagRule(value, lutPath string, node int) *ColorTagRule {
	return &ColorTagRule{base{props.Normalize(props.ColorTag, value), lutPath, node}}
}

func (r *ColorTagRule) Category() props.Category { return props.ColorTag }

func (r *ColorTagRule) PropertyValue(item host.Item) string {
	return strings.TrimSpace(item.ColorTag())
}

func (r *ColorTagRule) Matches(item host.Item) bool {
	if item.MediaReference() == nil {
		return false
	}
	v := r.PropertyValue(item)
	return v != "" && v == r.value
}
