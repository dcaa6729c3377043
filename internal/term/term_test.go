package term

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/lutrules/internal/config"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { Configure(config.ColorNever) })

	Configure(config.ColorAlways)
	assert.True(t, Enabled())
	assert.NotEmpty(t, Magenta)
	assert.NotEmpty(t, NC)

	Configure(config.ColorNever)
	assert.False(t, Enabled())
	assert.Empty(t, Magenta)
	assert.Empty(t, NC)
}

func TestIsTerminal_NilFile(t *testing.T) {
	assert.False(t, IsTerminal(nil))
}
