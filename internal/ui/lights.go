package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gravitrone/lightman/internal/lightsync"
	"github.com/gravitrone/lightman/internal/ui/components"
)

var lightColumnWidths = [lightsync.ColumnCount]int{
	lightsync.ColName:           16,
	lightsync.ColMute:           4,
	lightsync.ColSolo:           4,
	lightsync.ColType:           5,
	lightsync.ColColor:          9,
	lightsync.ColExposure:       9,
	lightsync.ColUseTemperature: 8,
	lightsync.ColTemperature:    9,
	lightsync.ColSoftSize:       9,
	lightsync.ColShadow:         6,
	lightsync.ColBounces:        7,
}

// lightTableWidth is the grid width: columns, separators and the left inset.
func lightTableWidth() int {
	w := 0
	for _, cw := range lightColumnWidths {
		w += cw
	}
	return w + int(lightsync.ColumnCount-1) + 2
}

func lightColumns() []components.TableColumn {
	cols := make([]components.TableColumn, 0, lightsync.ColumnCount)
	for c := lightsync.Column(0); c < lightsync.ColumnCount; c++ {
		align := lipgloss.Left
		switch c {
		case lightsync.ColMute, lightsync.ColSolo, lightsync.ColUseTemperature, lightsync.ColShadow:
			align = lipgloss.Center
		case lightsync.ColExposure, lightsync.ColTemperature, lightsync.ColSoftSize, lightsync.ColBounces:
			align = lipgloss.Right
		}
		cols = append(cols, components.TableColumn{
			Header: c.String(),
			Width:  lightColumnWidths[c],
			Align:  align,
		})
	}
	return cols
}

// cellText renders a control as grid text.
func cellText(ctrl *lightsync.Control) string {
	if ctrl == nil {
		return ""
	}
	if ctrl.Kind() == lightsync.ControlToggle {
		if ctrl.Checked() {
			return "[x]"
		}
		return "[ ]"
	}
	return ctrl.Text()
}

// swatchStyle paints a cell with the light color and a readable foreground.
func swatchStyle(hex string) (lipgloss.Style, bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.Style{}, false
	}
	fg := lipgloss.Color("#ffffff")
	if l, _, _ := c.Lab(); l > 0.6 {
		fg = ColorBackground
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Foreground(fg), true
}

func (a App) renderTable() string {
	tbl := a.ctl.Table()
	page := tbl.Page()

	rows := make([][]string, 0, len(page))
	swatches := make(map[int]string, len(page))
	active := -1
	for i, idx := range page {
		cells := make([]string, lightsync.ColumnCount)
		for c := lightsync.Column(0); c < lightsync.ColumnCount; c++ {
			ctrl, ok := tbl.Control(idx, c)
			if !ok {
				continue
			}
			cells[c] = cellText(ctrl)
			if ctrl.Kind() == lightsync.ControlSwatch {
				swatches[i] = ctrl.Text()
			}
		}
		rows = append(rows, cells)
		if idx == tbl.Selected() {
			active = i
		}
	}

	width := lightTableWidth()
	var body string
	if len(rows) == 0 {
		msg := "No lights in the scene. Press n to create one."
		if a.ctl.Query() != "" {
			msg = fmt.Sprintf("No lights match '%s'.", components.SanitizeOneLine(a.ctl.Query()))
		}
		body = MutedStyle.Render(msg)
	} else {
		body = components.TableGridWith(lightColumns(), rows, width, components.GridOptions{
			ActiveRow: active,
			ActiveCol: int(a.col),
			CellStyle: func(row, col int) (lipgloss.Style, bool) {
				if col != int(lightsync.ColColor) {
					return lipgloss.Style{}, false
				}
				hex, ok := swatches[row]
				if !ok {
					return lipgloss.Style{}, false
				}
				return swatchStyle(hex)
			},
		})
	}

	out := a.renderSummary() + "\n\n" + body
	if detail := a.renderDetail(); detail != "" {
		out += "\n\n" + detail
	}
	return out
}

// renderDetail lists every cell of the selected light, one per line.
func (a App) renderDetail() string {
	tbl := a.ctl.Table()
	idx := tbl.Selected()
	r, ok := tbl.Row(idx)
	if !ok {
		return ""
	}
	rows := make([]components.TableRow, 0, lightsync.ColumnCount)
	for c := lightsync.ColMute; c < lightsync.ColumnCount; c++ {
		ctrl, ok := tbl.Control(idx, c)
		if !ok {
			continue
		}
		rows = append(rows, components.TableRow{Label: c.String(), Value: cellText(ctrl)})
	}
	return components.Table(r.Name, rows, a.width)
}

func (a App) renderSummary() string {
	tbl := a.ctl.Table()
	visible := len(tbl.VisibleIndexes())
	parts := []string{NormalStyle.Render(fmt.Sprintf("%d lights", tbl.Len()))}
	if q := a.ctl.Query(); q != "" {
		parts = append(parts, MutedStyle.Render(fmt.Sprintf("%d match '%s'", visible, components.SanitizeOneLine(q))))
	}
	if top := tbl.ScrollMax(); top > 0 {
		parts = append(parts, MutedStyle.Render(fmt.Sprintf("scroll %d/%d", tbl.ScrollOffset(), top)))
	}
	parts = append(parts, MutedStyle.Render("column: ")+SelectedStyle.Render(a.col.String()))
	return strings.Join(parts, MutedStyle.Render(" · "))
}
