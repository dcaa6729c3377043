// Package host defines the boundary to the grading application that owns
// timelines, clips, and color node graphs. The engine only reads item state
// and issues mutation requests through these interfaces; it never caches
// item state across runs. The package also ships a YAML-backed snapshot
// implementation (see snapshot.go) used by the CLI and by tests.
package host

// Property bag keys exposed by [Reference.Properties].
const (
	KeyCodec      = "Video Codec"
	KeyResolution = "Resolution"
	KeyFrameRate  = "Frame Rate"
	KeyFPS        = "FPS" // fallback when KeyFrameRate is absent
)

// TrackVideo is the track kind carrying gradeable clips.
const TrackVideo = "video"

// Host lists the timelines available in the open project.
type Host interface {
	// ListContainers returns timelines in project order. A non-empty names
	// slice filters by exact timeline name; empty means all.
	ListContainers(names []string) ([]Container, error)
}

// Container is a timeline: an ordered collection of tracks.
type Container interface {
	Name() string
	Tracks(kind string) []Track
}

// Track is an ordered sequence of placed items.
type Track interface {
	Items() []Item
}

// Item is a clip placed on a track. Generators and titles carry no media
// reference and report MediaReference() == nil; such items are never
// matched or mutated.
type Item interface {
	Name() string
	MediaReference() Reference
	// ColorTag returns the clip color marker, "" when unset. It is a
	// placement-level attribute, read from the item rather than its media.
	ColorTag() string
	// NodeGraph returns the color-processing graph for the given layer,
	// or nil when the item exposes none.
	NodeGraph(layer int) Graph
}

// Reference is the media asset behind an item.
type Reference interface {
	// Properties returns the clip property bag. Values are raw host
	// strings; callers normalize before comparing.
	Properties() (map[string]string, error)
}

// Graph is an item's color node graph. Nodes are addressed 1-based.
type Graph interface {
	// NodeCount returns the number of nodes, or an error when the host
	// cannot report it.
	NodeCount() (int, error)
	// SetLUT assigns the LUT file at path to the given node. An empty path
	// clears the node's LUT. A false return means the host rejected the
	// request.
	SetLUT(node int, path string) bool
}
