package lightsync

import "github.com/gravitrone/lightman/internal/scene"

// ToggleState is the mute and solo state of one row. Mute checked means the
// light is audible, i.e. visible.
type ToggleState struct {
	Mute bool
	Solo bool
}

// EffectiveVisibility derives each row's visibility. The first soloed row is
// the only visible one; without a solo each row follows its own mute toggle.
func EffectiveVisibility(rows []ToggleState) []bool {
	soloed := -1
	for i, r := range rows {
		if r.Solo {
			soloed = i
			break
		}
	}
	out := make([]bool, len(rows))
	for i, r := range rows {
		if soloed >= 0 {
			out[i] = i == soloed
		} else {
			out[i] = r.Mute
		}
	}
	return out
}

func (c *Controller) addVisibilityToggles(row *Row, index int, obj *scene.Object) {
	audible := obj.Visible()
	if c.solo != "" {
		if remembered, ok := c.muted[obj.Name]; ok {
			audible = remembered
		}
	}
	mute := newControl(ControlToggle)
	mute.checked = audible
	mute.onToggle = func(bool) { c.RecomputeVisibility() }
	c.table.place(row, ColMute, mute)

	solo := newControl(ControlToggle)
	solo.checked = c.solo == obj.Name
	solo.onToggle = func(on bool) { c.OnExclusiveToggled(index, on) }
	c.table.place(row, ColSolo, solo)
}

// OnExclusiveToggled keeps at most one solo toggle set. Turning one on clears
// every other with its signals blocked, then visibility is recomputed.
func (c *Controller) OnExclusiveToggled(row int, on bool) {
	if on {
		for i := range c.table.rows {
			if i == row {
				continue
			}
			ctrl, ok := c.table.Control(i, ColSolo)
			if !ok || !ctrl.Checked() {
				continue
			}
			quietly(ctrl, func() { ctrl.SetChecked(false) })
		}
	}
	c.RecomputeVisibility()
}

// RecomputeVisibility applies the mute and solo toggles to both hide flags of
// every row's light. Rows whose light no longer exists are skipped.
func (c *Controller) RecomputeVisibility() {
	states := make([]ToggleState, len(c.table.rows))
	c.solo = ""
	for i, r := range c.table.rows {
		if ctrl, ok := c.table.Control(i, ColMute); ok {
			states[i].Mute = ctrl.Checked()
		}
		if ctrl, ok := c.table.Control(i, ColSolo); ok {
			states[i].Solo = ctrl.Checked()
		}
		if states[i].Solo && c.solo == "" {
			c.solo = r.Name
		}
		c.muted[r.Name] = states[i].Mute
	}

	for i, visible := range EffectiveVisibility(states) {
		name := c.table.rows[i].Name
		if _, ok := c.host.Object(name); !ok {
			continue
		}
		if err := c.host.SetHidden(name, !visible, !visible); err != nil {
			c.log.Debug("visibility skipped", "light", name, "error", err)
		}
	}
}
