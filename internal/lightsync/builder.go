package lightsync

import "github.com/gravitrone/lightman/internal/scene"

// Rebuild re-creates the whole table from the host's lights. It removes every
// subscription first, so repeated calls never accumulate callbacks.
func (c *Controller) Rebuild() {
	removed := c.registry.Clear()

	prevOffset := c.table.ScrollOffset()
	prevMax := c.table.ScrollMax()
	selectedName := ""
	if r, ok := c.table.Row(c.table.Selected()); ok {
		selectedName = r.Name
	}
	c.table.clear()

	for _, obj := range c.host.Objects() {
		if obj.Data == nil {
			continue
		}
		c.appendRow(obj)
	}
	if c.solo != "" && c.table.IndexOf(c.solo) < 0 {
		c.solo = ""
	}
	for name := range c.muted {
		if c.table.IndexOf(name) < 0 {
			delete(c.muted, name)
		}
	}
	c.table.filter(c.query)

	if prevMax-prevOffset <= 1 {
		c.table.ScrollTo(c.table.ScrollMax())
	} else {
		c.table.ScrollTo(prevOffset)
	}
	if i := c.table.IndexOf(selectedName); i >= 0 {
		c.table.selected = i
	}

	c.metrics.ObserveRebuild(c.registry.Len())
	c.log.Debug("table rebuilt",
		"rows", c.table.Len(),
		"subscriptions", c.registry.Len(),
		"removed", removed,
	)
	c.info("Light Manager refreshed successfully.")
}

func (c *Controller) appendRow(obj *scene.Object) {
	row := &Row{Name: obj.Name, Type: obj.Data.Type}
	index := len(c.table.rows)
	c.table.rows = append(c.table.rows, row)

	c.table.place(row, ColName, newLabel(obj.Name))
	c.table.place(row, ColType, newLabel(string(obj.Data.Type)))
	c.addVisibilityToggles(row, index, obj)
	c.addColorCell(row, obj)

	for _, attr := range Attributes() {
		if !attr.Applicable(obj.Data) {
			c.table.place(row, attr.Column(), newPlaceholder())
			continue
		}
		switch attr.Kind() {
		case KindFloat, KindInt:
			c.addNumericCell(row, obj, attr)
		case KindBool:
			c.addFlagCell(row, obj, attr)
		}
	}
}
