package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestHintIncludesKeyAndDesc(t *testing.T) {
	out := Hint("↑/↓", "Rows")
	assert.Contains(t, out, "Rows")
	assert.Contains(t, out, "↑/↓")
}

func TestStatusBarRendersModeAndHints(t *testing.T) {
	out := SanitizeText(StatusBar("edit", []string{Hint("esc", "Cancel")}, 0))
	assert.Contains(t, out, "EDIT")
	assert.Contains(t, out, "Cancel")
	assert.Less(t, strings.Index(out, "EDIT"), strings.Index(out, "Cancel"))
}

func TestStatusBarWithoutMode(t *testing.T) {
	out := SanitizeText(StatusBar("", []string{Hint("q", "Quit")}, 80))
	assert.Contains(t, out, "Quit")
	assert.NotContains(t, out, "TABLE")
}

func TestWrapSegmentsWrapsWhenNarrow(t *testing.T) {
	segments := []string{"123456", "abcdef", "ghijkl"}
	rows := wrapSegments(segments, 10)
	assert.Len(t, rows, 3)
	for _, row := range rows {
		assert.LessOrEqual(t, lipgloss.Width(row), 10)
	}
}
