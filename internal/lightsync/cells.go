package lightsync

import (
	"errors"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gravitrone/lightman/internal/metrics"
	"github.com/gravitrone/lightman/internal/scene"
)

// cell is one bidirectional link between a light attribute and a control.
// It holds the entity by name and the control by weak binding, and checks
// both before every access.
type cell struct {
	ctl    *Controller
	entity string
	bind   Binding
}

// live resolves the control and the entity. Either may be gone.
func (c cell) live() (*Control, *scene.Object, bool) {
	ctrl, ok := c.bind.Control()
	if !ok {
		return nil, nil, false
	}
	obj, ok := c.ctl.host.Object(c.entity)
	if !ok || obj.Data == nil {
		return nil, nil, false
	}
	return ctrl, obj, true
}

// relevant resolves the cell for a change batch. It returns false when the cell
// is stale or the batch does not touch the entity's data block.
func (c cell) relevant(b scene.Batch) (*Control, *scene.Object, bool) {
	ctrl, obj, ok := c.live()
	if !ok {
		c.ctl.metrics.ObserveCallback(metrics.CallbackStale)
		return nil, nil, false
	}
	if !b.Touches(obj.Data.Name) {
		c.ctl.metrics.ObserveCallback(metrics.CallbackIrrelevant)
		return nil, nil, false
	}
	c.ctl.metrics.ObserveCallback(metrics.CallbackApplied)
	return ctrl, obj, true
}

// quietly runs fn with the control's signals blocked.
func quietly(ctrl *Control, fn func()) {
	prev := ctrl.BlockSignals(true)
	defer ctrl.BlockSignals(prev)
	fn()
}

// --- Numeric ---

type numericCell struct {
	cell
	attr     Attribute
	lastGood float64
}

func (c *Controller) addNumericCell(row *Row, obj *scene.Object, attr Attribute) {
	ctrl := newControl(ControlText)
	value := attr.Number(obj.Data)
	ctrl.SetText(attr.FormatNumber(value))

	nc := &numericCell{
		cell:     cell{ctl: c, entity: obj.Name, bind: c.table.place(row, attr.Column(), ctrl)},
		attr:     attr,
		lastGood: value,
	}
	ctrl.onCommit = nc.commit
	c.registry.Add(nc.sync)
}

// commit writes a finished edit to the light.
func (nc *numericCell) commit(text string) {
	value, err := nc.attr.ParseNumber(text)
	if err != nil {
		nc.ctl.metrics.ObserveWrite(nc.attr.String(), metrics.WriteInvalid)
		nc.ctl.info("Wrong input: please enter a number")
		if ctrl, ok := nc.bind.Control(); ok {
			quietly(ctrl, func() { ctrl.SetText(nc.attr.FormatNumber(nc.lastGood)) })
		}
		return
	}

	err = nc.ctl.host.UpdateLight(nc.entity, func(l *scene.Light) error {
		nc.attr.SetNumber(l, value)
		return nil
	})
	if err != nil {
		nc.ctl.metrics.ObserveWrite(nc.attr.String(), metrics.WriteFailed)
		nc.ctl.log.Debug("numeric write dropped", "light", nc.entity, "attr", nc.attr.String(), "error", err)
		nc.ctl.info(fmt.Sprintf("Error: could not update '%s', light deleted", nc.attr))
		return
	}
	nc.lastGood = value
	nc.ctl.metrics.ObserveWrite(nc.attr.String(), metrics.WriteOK)
}

// sync mirrors an external change into the control.
func (nc *numericCell) sync(b scene.Batch) {
	ctrl, obj, ok := nc.relevant(b)
	if !ok {
		return
	}
	value := nc.attr.Number(obj.Data)
	nc.lastGood = value
	quietly(ctrl, func() { ctrl.SetText(nc.attr.FormatNumber(value)) })
}

// --- Boolean ---

type flagCell struct {
	cell
	attr Attribute
}

func (c *Controller) addFlagCell(row *Row, obj *scene.Object, attr Attribute) {
	ctrl := newControl(ControlToggle)
	ctrl.checked = attr.Flag(obj.Data)

	fc := &flagCell{
		cell: cell{ctl: c, entity: obj.Name, bind: c.table.place(row, attr.Column(), ctrl)},
		attr: attr,
	}
	ctrl.onToggle = fc.toggled
	c.registry.Add(fc.sync)
}

// toggled writes the flag and rebuilds, since flags decide which other cells
// apply.
func (fc *flagCell) toggled(checked bool) {
	err := fc.ctl.host.UpdateLight(fc.entity, func(l *scene.Light) error {
		fc.attr.SetFlag(l, checked)
		return nil
	})
	if err != nil {
		fc.ctl.metrics.ObserveWrite(fc.attr.String(), metrics.WriteFailed)
		fc.ctl.log.Debug("flag write dropped", "light", fc.entity, "attr", fc.attr.String(), "error", err)
		fc.ctl.info(fmt.Sprintf("Error: could not update '%s' for light deleted", fc.attr))
		return
	}
	fc.ctl.metrics.ObserveWrite(fc.attr.String(), metrics.WriteOK)
	fc.ctl.Rebuild()
}

func (fc *flagCell) sync(b scene.Batch) {
	ctrl, obj, ok := fc.relevant(b)
	if !ok {
		return
	}
	value := fc.attr.Flag(obj.Data)
	quietly(ctrl, func() { ctrl.SetChecked(value) })
}

// --- Color ---

var errBadColor = errors.New("color must be #rrggbb")

type colorCell struct {
	cell
}

func (c *Controller) addColorCell(row *Row, obj *scene.Object) {
	ctrl := newControl(ControlSwatch)
	ctrl.SetColor(obj.Data.Color)
	ctrl.SetText(ColorHex(obj.Data.Color))

	cc := &colorCell{
		cell: cell{ctl: c, entity: obj.Name, bind: c.table.place(row, ColColor, ctrl)},
	}
	ctrl.onCommit = cc.commit
	c.registry.Add(cc.sync)
}

// commit writes a picked sRGB hex color as linear RGB.
func (cc *colorCell) commit(hex string) {
	col, err := ParseColorHex(hex)
	if err != nil {
		cc.ctl.metrics.ObserveWrite("color", metrics.WriteInvalid)
		cc.ctl.info(fmt.Sprintf("Wrong input: %v", err))
		return
	}
	err = cc.ctl.host.UpdateLight(cc.entity, func(l *scene.Light) error {
		l.Color = col
		return nil
	})
	if err != nil {
		cc.ctl.metrics.ObserveWrite("color", metrics.WriteFailed)
		cc.ctl.info("Cannot change color. The light may have been deleted.")
		return
	}
	cc.ctl.metrics.ObserveWrite("color", metrics.WriteOK)
}

func (cc *colorCell) sync(b scene.Batch) {
	ctrl, obj, ok := cc.relevant(b)
	if !ok {
		return
	}
	col := obj.Data.Color
	quietly(ctrl, func() {
		ctrl.SetColor(col)
		ctrl.SetText(ColorHex(col))
	})
}

// ColorHex renders a linear color as an sRGB hex string.
func ColorHex(c scene.Color) string {
	return colorful.LinearRgb(c[0], c[1], c[2]).Clamped().Hex()
}

// ParseColorHex parses an sRGB "#rrggbb" string into a linear color.
func ParseColorHex(hex string) (scene.Color, error) {
	col, err := colorful.Hex(hex)
	if err != nil {
		return scene.Color{}, fmt.Errorf("%w: %q", errBadColor, hex)
	}
	r, g, b := col.LinearRgb()
	return scene.Color{r, g, b}, nil
}
