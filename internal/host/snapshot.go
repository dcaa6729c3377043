package host

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Snapshot is a file-backed Host: a YAML description of timelines, tracks,
// and items. It lets the engine run scans, previews, and applies without a
// live grading application, and doubles as the test fake. Fault-injection
// fields (no_graph, reject, properties_error) simulate the partial or
// failing host behaviors the engine must tolerate.
type Snapshot struct {
	Timelines []*SnapshotContainer `yaml:"timelines"`
}

// SnapshotContainer is one timeline in a snapshot.
type SnapshotContainer struct {
	TimelineName string           `yaml:"name"`
	VideoTracks  []*SnapshotTrack `yaml:"tracks"`
}

// SnapshotTrack is one video track in a snapshot.
type SnapshotTrack struct {
	Clips []*SnapshotItem `yaml:"items"`
}

// SnapshotItem is one placed clip. A nil Props map means the item has no
// media reference (a generator or title).
type SnapshotItem struct {
	ClipName string            `yaml:"name"`
	Props    map[string]string `yaml:"properties"`
	Tag      string            `yaml:"color"`
	Nodes    int               `yaml:"nodes"`

	// Fault-injection knobs.
	NoGraph  bool `yaml:"no_graph"`         // NodeGraph returns nil
	Reject   bool `yaml:"reject"`           // SetLUT returns false
	PropsErr bool `yaml:"properties_error"` // Properties returns an error

	// Mutation record, populated by SetLUT.
	AppliedLUTs map[int]string `yaml:"-"`
	SetCalls    int            `yaml:"-"`
}

// LoadSnapshot reads a YAML project snapshot from path. Media-backed items
// that omit a node count are given a single node, matching the minimum a
// real clip carries.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read project snapshot %s", path)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrapf(err, "parse project snapshot %s", path)
	}
	for _, tl := range snap.Timelines {
		for _, tr := range tl.VideoTracks {
			for _, it := range tr.Clips {
				if it.Props != nil && it.Nodes == 0 {
					it.Nodes = 1
				}
			}
		}
	}
	return &snap, nil
}

// ListContainers implements [Host]. Filtering preserves project order;
// names that match nothing are simply absent from the result (the caller
// decides whether that is worth a warning).
func (s *Snapshot) ListContainers(names []string) ([]Container, error) {
	var want map[string]bool
	if len(names) > 0 {
		want = make(map[string]bool, len(names))
		for _, n := range names {
			want[n] = true
		}
	}
	var out []Container
	for _, tl := range s.Timelines {
		if want != nil && !want[tl.TimelineName] {
			continue
		}
		out = append(out, tl)
	}
	return out, nil
}

// MissingNames returns the requested timeline names not present in the
// snapshot, in request order.
func (s *Snapshot) MissingNames(names []string) []string {
	have := make(map[string]bool, len(s.Timelines))
	for _, tl := range s.Timelines {
		have[tl.TimelineName] = true
	}
	var missing []string
	for _, n := range names {
		if !have[n] {
			missing = append(missing, n)
		}
	}
	return missing
}

func (c *SnapshotContainer) Name() string { return c.TimelineName }

func (c *SnapshotContainer) Tracks(kind string) []Track {
	if kind != TrackVideo {
		return nil
	}
	out := make([]Track, len(c.VideoTracks))
	for i, tr := range c.VideoTracks {
		out[i] = tr
	}
	return out
}

func (t *SnapshotTrack) Items() []Item {
	out := make([]Item, len(t.Clips))
	for i, it := range t.Clips {
		out[i] = it
	}
	return out
}

func (i *SnapshotItem) Name() string { return i.ClipName }

func (i *SnapshotItem) MediaReference() Reference {
	if i.Props == nil {
		return nil
	}
	return snapshotReference{item: i}
}

func (i *SnapshotItem) ColorTag() string { return i.Tag }

func (i *SnapshotItem) NodeGraph(layer int) Graph {
	if i.NoGraph {
		return nil
	}
	return &snapshotGraph{item: i}
}

type snapshotReference struct {
	item *SnapshotItem
}

func (r snapshotReference) Properties() (map[string]string, error) {
	if r.item.PropsErr {
		return nil, errors.New("property bag unavailable")
	}
	return r.item.Props, nil
}

type snapshotGraph struct {
	item *SnapshotItem
}

func (g *snapshotGraph) NodeCount() (int, error) {
	if g.item.Nodes < 0 {
		return 0, errors.New("node count unavailable")
	}
	return g.item.Nodes, nil
}

func (g *snapshotGraph) SetLUT(node int, path string) bool {
	g.item.SetCalls++
	if g.item.Reject {
		return false
	}
	if g.item.AppliedLUTs == nil {
		g.item.AppliedLUTs = make(map[int]string)
	}
	g.item.AppliedLUTs[node] = path
	return true
}
