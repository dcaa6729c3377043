package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFrameRate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"24.0", "24"},
		{"24.000", "24"},
		{"24", "24"},
		{"23.976", "23.976"},
		{"29.97", "29.97"},
		{"29.970", "29.97"},
		{"60", "60"},
		{"59.94", "59.94"},
		{"  25  ", "25"},
		{"Variable", "Variable"},
		{" 24p ", "24p"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeFrameRate(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeFrameRate_Idempotent(t *testing.T) {
	inputs := []string{"24.0", "23.976", "29.970", "60", "Variable", ""}
	for _, in := range inputs {
		once := NormalizeFrameRate(in)
		assert.Equal(t, once, NormalizeFrameRate(once), "input %q", in)
	}
}

func TestNormalize_TrimOnlyCategories(t *testing.T) {
	assert.Equal(t, "H.264", Normalize(Codec, "  H.264  "))
	assert.Equal(t, "1920x1080", Normalize(Resolution, "1920x1080"))
	assert.Equal(t, "Blue", Normalize(ColorTag, " Blue "))
	assert.Equal(t, "", Normalize(Codec, "   "))
}

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"codec":      Codec,
		"Codec":      Codec,
		"resolution": Resolution,
		"frame-rate": FrameRate,
		"Frame Rate": FrameRate,
		"fps":        FrameRate,
		"clip-color": ColorTag,
		"Clip Color": ColorTag,
	}
	for in, want := range cases {
		got, err := ParseCategory(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got)
	}

	_, err := ParseCategory("bitrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bitrate")
}
