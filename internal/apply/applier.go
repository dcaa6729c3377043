// Package apply iterates every item in every selected timeline, evaluates
// the rule set, and performs the LUT mutation for the winning rule. One
// item's failure is recorded and never aborts the batch; only configuration
// problems (zero rules) prevent a run from starting.
package apply

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/backmassage/lutrules/internal/host"
	"github.com/backmassage/lutrules/internal/lut"
	"github.com/backmassage/lutrules/internal/rules"
)

// graphLayer is the node-graph layer LUTs are assigned on, matching how the
// host exposes clip grades.
const graphLayer = 1

// Applier runs preview and apply passes over timelines with a fixed rule
// set. It holds no state between runs; each run produces a fresh, owned
// BatchResult.
type Applier struct {
	rules []rules.Rule
	log   *zap.SugaredLogger
}

// New builds an applier. An empty rule set is a configuration error,
// reported here rather than once per item.
func New(rs []rules.Rule, log *zap.SugaredLogger) (*Applier, error) {
	if len(rs) == 0 {
		return nil, errors.Wrap(rules.ErrConfiguration, "no enabled rules")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Applier{rules: rs, log: log}, nil
}

// Apply visits every item in container order, then track order, then
// placement order, and mutates each first-match item. The returned result
// is complete even when individual items failed.
func (a *Applier) Apply(containers []host.Container) *BatchResult {
	res := &BatchResult{RunID: uuid.NewString()}
	for _, c := range containers {
		a.log.Debugw("processing timeline", "timeline", c.Name())
		for _, tr := range c.Tracks(host.TrackVideo) {
			for _, item := range tr.Items() {
				res.ItemsProcessed++
				a.processItem(c.Name(), item, res)
			}
		}
	}
	return res
}

// Preview runs eligibility and rule evaluation only. The matches it returns
// are exactly the items Apply would attempt to mutate; validation failures
// that only apply-mode surfaces are not simulated.
func (a *Applier) Preview(containers []host.Container) []Match {
	var matches []Match
	for _, c := range containers {
		for _, tr := range c.Tracks(host.TrackVideo) {
			for _, item := range tr.Items() {
				if item.MediaReference() == nil {
					continue
				}
				r := rules.FirstMatch(a.rules, item)
				if r == nil {
					continue
				}
				matches = append(matches, Match{
					Container:     c.Name(),
					Item:          item.Name(),
					PropertyValue: r.PropertyValue(item),
					LUTName:       displayName(r),
					TargetNode:    r.TargetNode(),
					Removal:       r.LUTPath() == "",
				})
			}
		}
	}
	return matches
}

// processItem walks one item through the per-item state machine:
// eligibility, rule evaluation, node validation, LUT validation, mutation.
// Every terminal state increments exactly one counter and appends exactly
// one outcome.
func (a *Applier) processItem(container string, item host.Item, res *BatchResult) {
	name := item.Name()

	if item.MediaReference() == nil {
		res.ItemsSkipped++
		res.Outcomes = append(res.Outcomes, ItemOutcome{
			Container: container, Item: name, Status: StatusSkipped,
		})
		a.log.Debugw("skipped (generator/title)", "timeline", container, "clip", name)
		return
	}

	r := rules.FirstMatch(a.rules, item)
	if r == nil {
		res.ItemsSkipped++
		res.Outcomes = append(res.Outcomes, ItemOutcome{
			Container: container, Item: name, Status: StatusSkipped,
		})
		a.log.Debugw("skipped (no rule matched)", "timeline", container, "clip", name)
		return
	}

	out := ItemOutcome{
		Container:     container,
		Item:          name,
		PropertyValue: r.PropertyValue(item),
		LUTName:       displayName(r),
		TargetNode:    r.TargetNode(),
		Removal:       r.LUTPath() == "",
	}

	if err := a.mutate(item, r); err != nil {
		res.Errors++
		out.Status = StatusError
		out.ErrorDetail = err.Error()
		a.log.Warnw("lut assignment failed",
			"timeline", container, "clip", name, "lut", out.LUTName, "node", out.TargetNode, "error", err)
	} else {
		res.TransformsApplied++
		out.Success = true
		if out.Removal {
			out.Status = StatusRemoved
			a.log.Debugw("removed lut", "timeline", container, "clip", name, "node", out.TargetNode,
				"property", out.PropertyValue)
		} else {
			out.Status = StatusApplied
			a.log.Debugw("applied lut", "timeline", container, "clip", name, "lut", out.LUTName,
				"node", out.TargetNode, "property", out.PropertyValue)
		}
	}
	res.Outcomes = append(res.Outcomes, out)
}

// mutate validates the node graph and LUT file, then issues the host call.
// LUT validation is skipped entirely for removals: clearing a node needs no
// file on disk.
func (a *Applier) mutate(item host.Item, r rules.Rule) error {
	g := item.NodeGraph(graphLayer)
	if g == nil {
		return errors.Wrapf(ErrGraphUnavailable, "layer %d", graphLayer)
	}
	count, err := g.NodeCount()
	if err != nil {
		return errors.Wrap(ErrGraphUnavailable, "node count")
	}

	node := r.TargetNode()
	if node < 1 || node > count {
		return errors.Wrapf(ErrNodeOutOfRange, "node %d, clip has %d node(s)", node, count)
	}

	path := r.LUTPath()
	if path != "" && !lut.Validate(path) {
		return errors.Wrapf(ErrLUTInvalid, "%s", path)
	}

	if !g.SetLUT(node, path) {
		if path == "" {
			return errors.Wrapf(ErrHostRejected, "SetLUT returned false clearing node %d", node)
		}
		return errors.Wrapf(ErrHostRejected, "SetLUT returned false for %s", filepath.Base(path))
	}
	return nil
}

// displayName reports the catalog name for a rule's LUT, or the removal
// label for clearing rules.
func displayName(r rules.Rule) string {
	if r.LUTPath() == "" {
		return lut.RemoveLabel
	}
	return filepath.Base(r.LUTPath())
}
