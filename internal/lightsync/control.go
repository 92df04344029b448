package lightsync

import "github.com/gravitrone/lightman/internal/scene"

// ControlKind is the widget shape of a table cell.
type ControlKind int

const (
	ControlLabel ControlKind = iota
	ControlText
	ControlToggle
	ControlSwatch
	ControlPlaceholder
)

// Placeholder is the text shown for attributes that do not apply to a light.
const Placeholder = "N/A"

// Control is the UI-side widget a cell drives. Programmatic setters never emit
// user-edit signals except SetChecked, which emits toggled like a checkbox
// does; BlockSignals silences every emission.
type Control struct {
	kind    ControlKind
	text    string
	checked bool
	color   scene.Color
	blocked bool

	onCommit func(string)
	onToggle func(bool)
}

func newControl(kind ControlKind) *Control {
	return &Control{kind: kind}
}

func newLabel(text string) *Control {
	return &Control{kind: ControlLabel, text: text}
}

func newPlaceholder() *Control {
	return &Control{kind: ControlPlaceholder, text: Placeholder}
}

func (c *Control) Kind() ControlKind  { return c.kind }
func (c *Control) Text() string       { return c.text }
func (c *Control) Checked() bool      { return c.checked }
func (c *Control) Color() scene.Color { return c.color }

// Editable reports whether the user can commit text into the control.
func (c *Control) Editable() bool {
	return c.kind == ControlText || c.kind == ControlSwatch
}

// BlockSignals sets the blocked state and returns the previous one.
func (c *Control) BlockSignals(block bool) bool {
	prev := c.blocked
	c.blocked = block
	return prev
}

// SignalsBlocked reports whether emissions are silenced.
func (c *Control) SignalsBlocked() bool { return c.blocked }

// SetText replaces the displayed text.
func (c *Control) SetText(text string) { c.text = text }

// SetColor replaces the swatch color.
func (c *Control) SetColor(col scene.Color) { c.color = col }

// SetChecked changes the toggle state and emits toggled when it changed.
func (c *Control) SetChecked(v bool) {
	if c.checked == v {
		return
	}
	c.checked = v
	if !c.blocked && c.onToggle != nil {
		c.onToggle(v)
	}
}

// Click flips a toggle as the user would.
func (c *Control) Click() {
	if c.kind != ControlToggle {
		return
	}
	c.SetChecked(!c.checked)
}

// Commit finishes a user edit with text and emits the commit signal.
func (c *Control) Commit(text string) {
	if !c.Editable() {
		return
	}
	if c.kind == ControlText {
		c.text = text
	}
	if !c.blocked && c.onCommit != nil {
		c.onCommit(text)
	}
}
