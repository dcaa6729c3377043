// Package scan discovers the distinct clip property values present in a set
// of timelines. The discovered sets feed rule authoring (value choices) and
// coverage reporting; they are deduplicated and sorted so output is stable
// across runs.
package scan

import (
	"sort"
	"sync"

	"github.com/backmassage/lutrules/internal/host"
	"github.com/backmassage/lutrules/internal/props"
)

// Discovered maps each property category to its sorted distinct values.
type Discovered map[props.Category][]string

// Total returns the number of discovered values across all categories.
func (d Discovered) Total() int {
	n := 0
	for _, vs := range d {
		n += len(vs)
	}
	return n
}

// Scanner discovers property values through the host boundary and caches
// the last result. Rescan replaces the cache atomically, so concurrent
// readers never observe a half-built scan.
type Scanner struct {
	mu    sync.RWMutex
	host  host.Host
	names []string
	last  Discovered
}

// New creates a scanner over the named timelines; empty names means all.
func New(h host.Host, timelineNames []string) *Scanner {
	return &Scanner{host: h, names: timelineNames}
}

// Rescan re-walks the timelines and replaces the cached result.
func (s *Scanner) Rescan() (Discovered, error) {
	containers, err := s.host.ListContainers(s.names)
	if err != nil {
		return nil, err
	}
	d := Scan(containers)
	s.mu.Lock()
	s.last = d
	s.mu.Unlock()
	return d, nil
}

// Last returns the most recent scan result, nil before the first Rescan.
func (s *Scanner) Last() Discovered {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Scan walks every item on every video track of the given containers and
// collects normalized property values. Items without a media reference are
// skipped, and a single item's read failure never aborts the walk.
func Scan(containers []host.Container) Discovered {
	sets := make(map[props.Category]map[string]struct{}, 4)
	for _, c := range props.Categories() {
		sets[c] = make(map[string]struct{})
	}

	for _, c := range containers {
		for _, tr := range c.Tracks(host.TrackVideo) {
			for _, item := range tr.Items() {
				collect(item, sets)
			}
		}
	}

	d := make(Discovered, len(sets))
	for cat, set := range sets {
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Strings(values)
		d[cat] = values
	}
	return d
}

// collect extracts one item's properties into the per-category sets. Codec,
// resolution, and frame rate come from the media reference's property bag;
// the clip color comes from the placed item itself.
func collect(item host.Item, sets map[props.Category]map[string]struct{}) {
	ref := item.MediaReference()
	if ref == nil {
		return
	}
	bag, err := ref.Properties()
	if err != nil {
		return
	}

	add(sets, props.Codec, bag[host.KeyCodec])
	add(sets, props.Resolution, bag[host.KeyResolution])

	fr := bag[host.KeyFrameRate]
	if fr == "" {
		fr = bag[host.KeyFPS]
	}
	add(sets, props.FrameRate, fr)

	add(sets, props.ColorTag, item.ColorTag())
}

func add(sets map[props.Category]map[string]struct{}, cat props.Category, raw string) {
	v := props.Normalize(cat, raw)
	if v == "" {
		return
	}
	sets[cat][v] = struct{}{}
}
