package rules

import "github.com/backmassage/lutrules/internal/host"

// FirstMatch returns the first rule in authoring order that matches item,
// or nil when none do. Evaluation stops at the first hit: rule priority is
// the authoring order, a deliberate design choice, and no overlap analysis
// is performed between rules that would both match.
func FirstMatch(rs []Rule, item host.Item) Rule {
	for _, r := range rs {
		if r.Matches(item) {
			return r
		}
	}
	return nil
}
