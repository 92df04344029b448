package lightsync

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gravitrone/lightman/internal/scene"
)

// NamePrefix namespaces lights created from the manager.
const NamePrefix = "LGT_"

// ErrNoSelection is returned when an operation needs a selected row.
var ErrNoSelection = errors.New("no light selected")

// CreateLight validates typ, composes the light name and creates it. An empty
// name falls back to the type tag. It returns the final object name.
func (c *Controller) CreateLight(name, typ string) (string, error) {
	lt, err := scene.ParseLightType(typ)
	if err != nil {
		c.info(fmt.Sprintf("Error: Light type '%s' is invalid.", typ))
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = string(lt)
	}

	obj, err := c.host.CreateLight(fmt.Sprintf("%s%s.%03d", NamePrefix, name, 0), lt)
	if err != nil {
		c.info(fmt.Sprintf("Error: could not create '%s'.", name))
		return "", err
	}
	c.Rebuild()
	c.log.Info("light created", "light", obj.Name, "type", lt)
	c.info(fmt.Sprintf("'%s' has been created successfully.", obj.Name))
	return obj.Name, nil
}

// RenameLight renames oldName with the zero-padded suffix convention and
// returns the final name.
func (c *Controller) RenameLight(oldName, newName string) (string, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		c.info("Error: New name cannot be empty.")
		return "", scene.ErrEmptyName
	}
	if _, ok := c.host.Object(oldName); !ok {
		c.info(fmt.Sprintf("Error: Could not find actor '%s' to rename.", oldName))
		return "", fmt.Errorf("%w: %s", scene.ErrNotFound, oldName)
	}

	final, err := c.host.Rename(oldName, fmt.Sprintf("%s.%03d", newName, 0))
	if err != nil {
		c.info(fmt.Sprintf("Error: Could not find actor '%s' to rename.", oldName))
		return "", err
	}
	if c.solo == oldName {
		c.solo = final
	}
	if v, ok := c.muted[oldName]; ok {
		delete(c.muted, oldName)
		c.muted[final] = v
	}
	c.Rebuild()
	c.log.Info("light renamed", "from", oldName, "to", final)
	c.info(fmt.Sprintf("Light: '%s' renamed to '%s'", oldName, final))
	return final, nil
}

// DeleteSelected removes the light of the selected row. Without a selection it
// does nothing.
func (c *Controller) DeleteSelected() error {
	r, ok := c.table.Row(c.table.Selected())
	if !ok {
		return ErrNoSelection
	}
	return c.DeleteLight(r.Name)
}

// DeleteLight removes the named light and rebuilds.
func (c *Controller) DeleteLight(name string) error {
	if _, ok := c.host.Object(name); !ok {
		c.info(fmt.Sprintf("Error: Could not find actor '%s' to delete.", name))
		return fmt.Errorf("%w: %s", scene.ErrNotFound, name)
	}
	if err := c.host.Remove(name); err != nil {
		c.info(fmt.Sprintf("Error: Could not find actor '%s' to delete.", name))
		return err
	}
	c.log.Info("light deleted", "light", name)
	c.Rebuild()
	c.info(fmt.Sprintf("Light '%s' deleted successfully.", name))
	return nil
}

// SelectRow selects row i in the table and mirrors it into the host: the
// host selection is cleared, then the light is made active and selected. A
// negative index only clears.
func (c *Controller) SelectRow(i int) {
	c.host.ClearSelection()
	r, ok := c.table.Row(i)
	if !ok || r.Filtered {
		c.table.setSelected(-1)
		return
	}
	c.table.setSelected(i)
	if err := c.host.SetActive(r.Name); err != nil {
		c.info(fmt.Sprintf("Error: '%s' no longer exists", r.Name))
		return
	}
	if err := c.host.Select(r.Name); err != nil {
		c.info(fmt.Sprintf("Error: '%s' no longer exists", r.Name))
	}
}

// SelectByName selects the row showing name.
func (c *Controller) SelectByName(name string) bool {
	i := c.table.IndexOf(name)
	if i < 0 {
		return false
	}
	c.SelectRow(i)
	return true
}

// Search hides rows whose name does not contain query and returns how many
// remain. The query survives rebuilds; an empty query shows every row.
func (c *Controller) Search(query string) int {
	c.query = strings.TrimSpace(query)
	return c.table.filter(c.query)
}

// Render switches the host to the render engine.
func (c *Controller) Render() {
	c.host.SetRenderEngine(c.engine)
	c.log.Info("render engine set", "engine", c.engine)
	c.info(fmt.Sprintf("Render engine set to %s.", c.engine))
}

// --- Cell input ---

// EditCell commits text into an editable cell as a finished user edit.
func (c *Controller) EditCell(row int, col Column, text string) bool {
	ctrl, ok := c.table.Control(row, col)
	if !ok || !ctrl.Editable() {
		return false
	}
	ctrl.Commit(text)
	return true
}

// ToggleCell clicks a toggle cell.
func (c *Controller) ToggleCell(row int, col Column) bool {
	ctrl, ok := c.table.Control(row, col)
	if !ok || ctrl.Kind() != ControlToggle {
		return false
	}
	ctrl.Click()
	return true
}

// SetAttribute writes a value to a light the way an outside actor would: it
// goes straight to the host and reaches the table through change batches.
// Flags also rebuild, since they decide which cells apply. attr may be any
// attribute name or "color" with a #rrggbb value.
func (c *Controller) SetAttribute(light, attr, value string) error {
	if strings.EqualFold(strings.TrimSpace(attr), "color") {
		col, err := ParseColorHex(value)
		if err != nil {
			return err
		}
		return c.host.UpdateLight(light, func(l *scene.Light) error {
			l.Color = col
			return nil
		})
	}

	a, err := ParseAttribute(attr)
	if err != nil {
		return err
	}
	obj, ok := c.host.Object(light)
	if !ok || obj.Data == nil {
		return fmt.Errorf("%w: %s", scene.ErrNotFound, light)
	}
	if !a.Applicable(obj.Data) {
		c.info(fmt.Sprintf("No parameter %s for this light", a))
		return fmt.Errorf("%w: %s does not apply to %s", scene.ErrInvalidValue, a, light)
	}

	if a.Kind() == KindBool {
		flag, err := ParseFlag(value)
		if err != nil {
			return fmt.Errorf("%w: %v", scene.ErrInvalidValue, err)
		}
		err = c.host.UpdateLight(light, func(l *scene.Light) error {
			a.SetFlag(l, flag)
			return nil
		})
		if err != nil {
			return err
		}
		c.Rebuild()
		return nil
	}

	num, err := a.ParseNumber(value)
	if err != nil {
		return fmt.Errorf("%w: %v", scene.ErrInvalidValue, err)
	}
	return c.host.UpdateLight(light, func(l *scene.Light) error {
		a.SetNumber(l, num)
		return nil
	})
}
