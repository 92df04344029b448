package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	pickerCursorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7f57b4")).
				Bold(true)
	pickerItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d7d9da"))
)

// Picker is a single-choice menu whose cursor wraps at both ends.
type Picker struct {
	choices []string
	cursor  int
}

// NewPicker creates a picker over choices with the first one selected.
func NewPicker(choices ...string) *Picker {
	return &Picker{choices: choices}
}

// Len returns the number of choices.
func (p *Picker) Len() int { return len(p.choices) }

// Index returns the cursor position.
func (p *Picker) Index() int { return p.cursor }

// Choice returns the choice under the cursor, or "" when empty.
func (p *Picker) Choice() string {
	if len(p.choices) == 0 {
		return ""
	}
	return p.choices[p.cursor]
}

// Next moves the cursor down, wrapping to the top.
func (p *Picker) Next() {
	if len(p.choices) == 0 {
		return
	}
	p.cursor = (p.cursor + 1) % len(p.choices)
}

// Prev moves the cursor up, wrapping to the bottom.
func (p *Picker) Prev() {
	if len(p.choices) == 0 {
		return
	}
	p.cursor = (p.cursor - 1 + len(p.choices)) % len(p.choices)
}

// Reset puts the cursor back on the first choice.
func (p *Picker) Reset() { p.cursor = 0 }

// Select moves the cursor to choice, ignoring case.
func (p *Picker) Select(choice string) bool {
	for i, c := range p.choices {
		if strings.EqualFold(c, choice) {
			p.cursor = i
			return true
		}
	}
	return false
}

// Render draws one line per choice with a cursor marker.
func (p *Picker) Render() string {
	lines := make([]string, 0, len(p.choices))
	for i, c := range p.choices {
		c = SanitizeOneLine(c)
		if i == p.cursor {
			lines = append(lines, pickerCursorStyle.Render("> "+c))
			continue
		}
		lines = append(lines, pickerItemStyle.Render("  "+c))
	}
	return strings.Join(lines, "\n")
}
