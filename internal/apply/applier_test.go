package apply

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/lutrules/internal/host"
	"github.com/backmassage/lutrules/internal/lut"
	"github.com/backmassage/lutrules/internal/rules"
)

func writeLUT(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("# lut\n"), 0o644))
	return path
}

func mediaClip(name, codec string, nodes int) *host.SnapshotItem {
	return &host.SnapshotItem{
		ClipName: name,
		Nodes:    nodes,
		Props:    map[string]string{host.KeyCodec: codec},
	}
}

func timeline(name string, items ...*host.SnapshotItem) *host.SnapshotContainer {
	return &host.SnapshotContainer{
		TimelineName: name,
		VideoTracks:  []*host.SnapshotTrack{{Clips: items}},
	}
}

func newApplier(t *testing.T, rs ...rules.Rule) *Applier {
	t.Helper()
	a, err := New(rs, nil)
	require.NoError(t, err)
	return a
}

func TestNew_ZeroRulesIsConfigurationError(t *testing.T) {
	_, err := New(nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rules.ErrConfiguration))
}

func TestApply_EndToEnd(t *testing.T) {
	warm := writeLUT(t, "warm.cube")

	mkTimeline := func(name string) *host.SnapshotContainer {
		return timeline(name,
			mediaClip("A", "H.264", 2),
			mediaClip("B", "ProRes", 2),
			&host.SnapshotItem{ClipName: "C"}, // generator: no media reference
		)
	}
	tl1 := mkTimeline("Reel 1")
	tl2 := mkTimeline("Reel 2")

	a := newApplier(t, rules.NewCodecRule("H.264", warm, 1))
	res := a.Apply([]host.Container{tl1, tl2})

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 6, res.ItemsProcessed)
	assert.Equal(t, 4, res.ItemsSkipped)
	assert.Equal(t, 2, res.TransformsApplied)
	assert.Equal(t, 0, res.Errors)
	require.Len(t, res.Outcomes, 6)

	// Iteration order is container, then track, then placement.
	assert.Equal(t, "Reel 1", res.Outcomes[0].Container)
	assert.Equal(t, "A", res.Outcomes[0].Item)
	assert.Equal(t, StatusApplied, res.Outcomes[0].Status)
	assert.Equal(t, "warm.cube", res.Outcomes[0].LUTName)
	assert.Equal(t, "H.264", res.Outcomes[0].PropertyValue)
	assert.Equal(t, StatusSkipped, res.Outcomes[1].Status, "B: no rule matched")
	assert.Equal(t, StatusSkipped, res.Outcomes[2].Status, "C: ineligible")
	assert.Equal(t, "Reel 2", res.Outcomes[3].Container)

	// The host saw exactly one mutation per matching clip.
	assert.Equal(t, warm, tl1.VideoTracks[0].Clips[0].AppliedLUTs[1])
	assert.Equal(t, warm, tl2.VideoTracks[0].Clips[0].AppliedLUTs[1])
	assert.Equal(t, 0, tl1.VideoTracks[0].Clips[1].SetCalls)
	assert.Equal(t, 0, tl1.VideoTracks[0].Clips[2].SetCalls)
}

func TestApply_IneligibleItemsNeverAppliedOrErrored(t *testing.T) {
	warm := writeLUT(t, "warm.cube")
	generator := &host.SnapshotItem{ClipName: "title", Tag: "Blue"}
	tl := timeline("Reel 1", generator)

	a := newApplier(t, rules.NewColorTagRule("Blue", warm, 1))
	res := a.Apply([]host.Container{tl})

	require.Len(t, res.Outcomes, 1)
	assert.Equal(t, StatusSkipped, res.Outcomes[0].Status)
	assert.Equal(t, 1, res.ItemsSkipped)
	assert.Equal(t, 0, res.Errors)
	assert.Equal(t, 0, generator.SetCalls)
}

func TestApply_RemovalScenario(t *testing.T) {
	tagged := &host.SnapshotItem{
		ClipName: "graded",
		Tag:      "Blue",
		Nodes:    3,
		Props:    map[string]string{host.KeyCodec: "H.264"},
	}
	tl := timeline("Reel 1", tagged)

	a := newApplier(t, rules.NewColorTagRule("Blue", "", 2))
	res := a.Apply([]host.Container{tl})

	require.Len(t, res.Outcomes, 1)
	out := res.Outcomes[0]
	assert.Equal(t, StatusRemoved, out.Status)
	assert.True(t, out.Removal)
	assert.True(t, out.Success)
	assert.Equal(t, lut.RemoveLabel, out.LUTName)
	assert.Equal(t, 1, res.TransformsApplied)

	// SetLUT(2, "") was issued exactly once.
	assert.Equal(t, 1, tagged.SetCalls)
	cleared, ok := tagged.AppliedLUTs[2]
	require.True(t, ok)
	assert.Equal(t, "", cleared)
}

func TestApply_FirstMatchOnlyMutatesOnce(t *testing.T) {
	warm := writeLUT(t, "warm.cube")
	cool := writeLUT(t, "cool.cube")
	item := mediaClip("A", "H.264", 2)
	item.Tag = "Blue"
	tl := timeline("Reel 1", item)

	a := newApplier(t,
		rules.NewCodecRule("H.264", warm, 1),
		rules.NewColorTagRule("Blue", cool, 2),
	)
	res := a.Apply([]host.Container{tl})

	assert.Equal(t, 1, res.TransformsApplied)
	assert.Equal(t, 1, item.SetCalls, "second matching rule must not be attempted")
	assert.Equal(t, warm, item.AppliedLUTs[1])
}

func TestApply_NodeValidation(t *testing.T) {
	warm := writeLUT(t, "warm.cube")

	t.Run("node zero", func(t *testing.T) {
		item := mediaClip("A", "H.264", 2)
		a := newApplier(t, rules.NewCodecRule("H.264", warm, 0))
		res := a.Apply([]host.Container{timeline("Reel 1", item)})

		require.Equal(t, 1, res.Errors)
		out := res.FirstError()
		require.NotNil(t, out)
		assert.Contains(t, out.ErrorDetail, "out of range")
		assert.Equal(t, 0, item.SetCalls)
	})

	t.Run("node beyond count reports the bound", func(t *testing.T) {
		item := mediaClip("A", "H.264", 2)
		a := newApplier(t, rules.NewCodecRule("H.264", warm, 5))
		res := a.Apply([]host.Container{timeline("Reel 1", item)})

		require.Equal(t, 1, res.Errors)
		assert.Contains(t, res.FirstError().ErrorDetail, "clip has 2 node(s)")
		assert.Equal(t, 0, item.SetCalls)
	})
}

func TestApply_GraphUnavailable(t *testing.T) {
	warm := writeLUT(t, "warm.cube")

	t.Run("no graph", func(t *testing.T) {
		item := mediaClip("A", "H.264", 2)
		item.NoGraph = true
		a := newApplier(t, rules.NewCodecRule("H.264", warm, 1))
		res := a.Apply([]host.Container{timeline("Reel 1", item)})

		require.Equal(t, 1, res.Errors)
		assert.Contains(t, res.FirstError().ErrorDetail, "node graph unavailable")
	})

	t.Run("node count unreadable", func(t *testing.T) {
		item := mediaClip("A", "H.264", -1)
		a := newApplier(t, rules.NewCodecRule("H.264", warm, 1))
		res := a.Apply([]host.Container{timeline("Reel 1", item)})

		require.Equal(t, 1, res.Errors)
		assert.Contains(t, res.FirstError().ErrorDetail, "node graph unavailable")
	})
}

func TestApply_MissingLUTFile(t *testing.T) {
	item := mediaClip("A", "H.264", 2)
	a := newApplier(t, rules.NewCodecRule("H.264", "/nonexistent/warm.cube", 1))
	res := a.Apply([]host.Container{timeline("Reel 1", item)})

	require.Equal(t, 1, res.Errors)
	assert.Contains(t, res.FirstError().ErrorDetail, "missing or unreadable")
	assert.Equal(t, 0, item.SetCalls, "mutation must not be attempted with an invalid lut")
}

func TestApply_HostRejected(t *testing.T) {
	warm := writeLUT(t, "warm.cube")
	item := mediaClip("A", "H.264", 2)
	item.Reject = true
	a := newApplier(t, rules.NewCodecRule("H.264", warm, 1))
	res := a.Apply([]host.Container{timeline("Reel 1", item)})

	require.Equal(t, 1, res.Errors)
	assert.Contains(t, res.FirstError().ErrorDetail, "rejected by host")
}

func TestApply_OneFailureDoesNotAbortBatch(t *testing.T) {
	warm := writeLUT(t, "warm.cube")
	bad := mediaClip("bad", "H.264", 2)
	bad.Reject = true
	good := mediaClip("good", "H.264", 2)
	tl := timeline("Reel 1", bad, good)

	a := newApplier(t, rules.NewCodecRule("H.264", warm, 1))
	res := a.Apply([]host.Container{tl})

	assert.Equal(t, 2, res.ItemsProcessed)
	assert.Equal(t, 1, res.Errors)
	assert.Equal(t, 1, res.TransformsApplied)
	assert.Equal(t, warm, good.AppliedLUTs[1], "items after a failure are still processed")
}

func TestPreview_MatchesApplyAttempts(t *testing.T) {
	warm := writeLUT(t, "warm.cube")
	mk := func() []host.Container {
		return []host.Container{timeline("Reel 1",
			mediaClip("A", "H.264", 2),
			mediaClip("B", "ProRes", 2),
			&host.SnapshotItem{ClipName: "C"},
			mediaClip("D", "H.264", 2),
		)}
	}

	a := newApplier(t, rules.NewCodecRule("H.264", warm, 1))

	matches := a.Preview(mk())
	require.Len(t, matches, 2)
	assert.Equal(t, "A", matches[0].Item)
	assert.Equal(t, "D", matches[1].Item)
	assert.Equal(t, "warm.cube", matches[0].LUTName)
	assert.Equal(t, "H.264", matches[0].PropertyValue)
	assert.False(t, matches[0].Removal)

	// Apply on an identical set attempts exactly the previewed items.
	res := a.Apply(mk())
	var attempted []string
	for _, out := range res.Outcomes {
		if out.Status != StatusSkipped {
			attempted = append(attempted, out.Item)
		}
	}
	assert.Equal(t, []string{"A", "D"}, attempted)
}

func TestPreview_DoesNotMutate(t *testing.T) {
	warm := writeLUT(t, "warm.cube")
	item := mediaClip("A", "H.264", 2)
	a := newApplier(t, rules.NewCodecRule("H.264", warm, 1))

	a.Preview([]host.Container{timeline("Reel 1", item)})
	assert.Equal(t, 0, item.SetCalls)
	assert.Empty(t, item.AppliedLUTs)
}

func TestPreview_RemovalLabel(t *testing.T) {
	item := &host.SnapshotItem{
		ClipName: "graded",
		Tag:      "Blue",
		Nodes:    2,
		Props:    map[string]string{host.KeyCodec: "H.264"},
	}
	a := newApplier(t, rules.NewColorTagRule("Blue", "", 2))

	matches := a.Preview([]host.Container{timeline("Reel 1", item)})
	require.Len(t, matches, 1)
	assert.True(t, matches[0].Removal)
	assert.Equal(t, lut.RemoveLabel, matches[0].LUTName)
}
