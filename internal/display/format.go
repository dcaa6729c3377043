// Package display renders scan, catalog, preview, and summary output for
// the terminal. Color comes from the term package; everything here returns
// strings so formatting stays testable.
package display

import (
	"fmt"
	"strings"

	"github.com/backmassage/lutrules/internal/apply"
	"github.com/backmassage/lutrules/internal/props"
	"github.com/backmassage/lutrules/internal/scan"
	"github.com/backmassage/lutrules/internal/term"
)

// FormatDiscovered renders the property sets found by a scan, one section
// per category in canonical order. Categories with no values still get a
// header so an empty timeline reads as empty, not broken.
func FormatDiscovered(d scan.Discovered) string {
	var b strings.Builder
	for _, cat := range props.Categories() {
		fmt.Fprintf(&b, "%s%s%s (%d)\n", term.Cyan, cat.Label(), term.NC, len(d[cat]))
		for _, v := range d[cat] {
			fmt.Fprintf(&b, "  %s\n", v)
		}
	}
	fmt.Fprintf(&b, "%d distinct value(s)\n", d.Total())
	return b.String()
}

// FormatCatalog renders the LUT display names available for rule authoring.
func FormatCatalog(names []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%sLUT catalog%s (%d)\n", term.Cyan, term.NC, len(names))
	for _, n := range names {
		fmt.Fprintf(&b, "  %s\n", n)
	}
	return b.String()
}

// FormatMatches renders a preview run: every item a batch apply would
// attempt, grouped under its timeline.
func FormatMatches(matches []apply.Match) string {
	if len(matches) == 0 {
		return "No items match any enabled rule\n"
	}
	var b strings.Builder
	last := ""
	for _, m := range matches {
		if m.Container != last {
			fmt.Fprintf(&b, "%s%s%s\n", term.Cyan, m.Container, term.NC)
			last = m.Container
		}
		verb := "apply"
		if m.Removal {
			verb = "clear"
		}
		fmt.Fprintf(&b, "  %s (%s): %s %s on node %d\n",
			m.Item, m.PropertyValue, verb, m.LUTName, m.TargetNode)
	}
	fmt.Fprintf(&b, "%d item(s) would change\n", len(matches))
	return b.String()
}

// FormatSummary renders the end-of-run counters. When items failed, the
// first failure's detail is surfaced so the headline number is actionable
// without scrolling back through the log.
func FormatSummary(res *apply.BatchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s\n", res.RunID)
	fmt.Fprintf(&b, "  processed: %d\n", res.ItemsProcessed)
	fmt.Fprintf(&b, "  skipped:   %d\n", res.ItemsSkipped)
	fmt.Fprintf(&b, "  %sapplied:   %d%s\n", term.Green, res.TransformsApplied, term.NC)
	if res.Errors > 0 {
		fmt.Fprintf(&b, "  %serrors:    %d%s\n", term.Red, res.Errors, term.NC)
		if first := res.FirstError(); first != nil {
			fmt.Fprintf(&b, "  first error: %s/%s: %s\n",
				first.Container, first.Item, first.ErrorDetail)
		}
	} else {
		fmt.Fprintf(&b, "  errors:    0\n")
	}
	return b.String()
}
