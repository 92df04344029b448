package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickerWrapsBothWays(t *testing.T) {
	p := NewPicker("POINT", "SUN", "SPOT")
	assert.Equal(t, "POINT", p.Choice())

	p.Prev()
	assert.Equal(t, "SPOT", p.Choice())

	p.Next()
	p.Next()
	assert.Equal(t, "SUN", p.Choice())
	assert.Equal(t, 1, p.Index())

	p.Reset()
	assert.Equal(t, 0, p.Index())
}

func TestPickerEmpty(t *testing.T) {
	p := NewPicker()
	p.Next()
	p.Prev()
	assert.Equal(t, "", p.Choice())
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.Render())
}

func TestPickerSelectIgnoresCase(t *testing.T) {
	p := NewPicker("POINT", "AREA")
	assert.True(t, p.Select("area"))
	assert.Equal(t, "AREA", p.Choice())
	assert.False(t, p.Select("laser"))
	assert.Equal(t, "AREA", p.Choice())
}

func TestPickerRenderMarksCursor(t *testing.T) {
	p := NewPicker("POINT", "SUN\x1b]0;x\x07")
	p.Next()
	lines := strings.Split(SanitizeText(p.Render()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "  POINT", lines[0])
	assert.Equal(t, "> SUN", lines[1])
}
