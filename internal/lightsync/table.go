package lightsync

import (
	"strings"

	"github.com/gravitrone/lightman/internal/scene"
)

// Column indexes a table column.
type Column int

const (
	ColName Column = iota
	ColMute
	ColSolo
	ColType
	ColColor
	ColExposure
	ColUseTemperature
	ColTemperature
	ColSoftSize
	ColShadow
	ColBounces
	ColumnCount
)

var columnTitles = [ColumnCount]string{
	ColName:           "Name",
	ColMute:           "Mute",
	ColSolo:           "Solo",
	ColType:           "Type",
	ColColor:          "Color",
	ColExposure:       "Exposure",
	ColUseTemperature: "Use Temp",
	ColTemperature:    "Temp",
	ColSoftSize:       "Soft Size",
	ColShadow:         "Shadow",
	ColBounces:        "Bounces",
}

func (c Column) String() string {
	if c < 0 || c >= ColumnCount {
		return "?"
	}
	return columnTitles[c]
}

// Row projects one light object. Rows are identified by position; positions
// change on every rebuild.
type Row struct {
	Name     string
	Type     scene.LightType
	Filtered bool

	controls [ColumnCount]Handle
}

// Table is the projection: rows, the controls they own and the scroll state.
type Table struct {
	slots    Slots
	rows     []*Row
	offset   int
	pageSize int
	selected int
}

// NewTable returns an empty table showing pageSize rows at a time.
func NewTable(pageSize int) *Table {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Table{pageSize: pageSize, selected: -1}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the row at index i.
func (t *Table) Row(i int) (*Row, bool) {
	if i < 0 || i >= len(t.rows) {
		return nil, false
	}
	return t.rows[i], true
}

// Rows returns the rows in display order.
func (t *Table) Rows() []*Row {
	out := make([]*Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Control resolves the control in a cell.
func (t *Table) Control(row int, col Column) (*Control, bool) {
	r, ok := t.Row(row)
	if !ok || col < 0 || col >= ColumnCount {
		return nil, false
	}
	return t.slots.Resolve(r.controls[col])
}

// LiveControls returns the number of controls not yet destroyed.
func (t *Table) LiveControls() int { return t.slots.Len() }

// IndexOf returns the row index showing name, or -1.
func (t *Table) IndexOf(name string) int {
	for i, r := range t.rows {
		if r.Name == name {
			return i
		}
	}
	return -1
}

func (t *Table) place(r *Row, col Column, c *Control) Binding {
	h := t.slots.Insert(c)
	r.controls[col] = h
	return Binding{slots: &t.slots, handle: h}
}

func (t *Table) clear() {
	t.slots.Reset()
	t.rows = nil
	t.selected = -1
}

// --- Scrolling ---

// PageSize returns how many rows fit in the view.
func (t *Table) PageSize() int { return t.pageSize }

// SetPageSize resizes the view and clamps the offset.
func (t *Table) SetPageSize(n int) {
	if n < 1 {
		n = 1
	}
	t.pageSize = n
	t.ScrollTo(t.offset)
}

// ScrollOffset returns the first visible row position among unfiltered rows.
func (t *Table) ScrollOffset() int { return t.offset }

// ScrollMax returns the largest valid offset.
func (t *Table) ScrollMax() int {
	m := len(t.VisibleIndexes()) - t.pageSize
	if m < 0 {
		return 0
	}
	return m
}

// ScrollTo moves the view, clamped to [0, ScrollMax].
func (t *Table) ScrollTo(offset int) {
	if offset > t.ScrollMax() {
		offset = t.ScrollMax()
	}
	if offset < 0 {
		offset = 0
	}
	t.offset = offset
}

// VisibleIndexes returns the indexes of rows not hidden by the search filter.
func (t *Table) VisibleIndexes() []int {
	out := make([]int, 0, len(t.rows))
	for i, r := range t.rows {
		if !r.Filtered {
			out = append(out, i)
		}
	}
	return out
}

// Page returns the row indexes inside the current scroll window.
func (t *Table) Page() []int {
	visible := t.VisibleIndexes()
	if t.offset >= len(visible) {
		return nil
	}
	end := t.offset + t.pageSize
	if end > len(visible) {
		end = len(visible)
	}
	return visible[t.offset:end]
}

// --- Selection ---

// Selected returns the selected row index, or -1.
func (t *Table) Selected() int { return t.selected }

func (t *Table) setSelected(i int) {
	if i < 0 || i >= len(t.rows) {
		t.selected = -1
		return
	}
	t.selected = i
	t.ensureVisible(i)
}

func (t *Table) ensureVisible(i int) {
	pos := -1
	for p, idx := range t.VisibleIndexes() {
		if idx == i {
			pos = p
			break
		}
	}
	if pos < 0 {
		return
	}
	if pos < t.offset {
		t.ScrollTo(pos)
	} else if pos >= t.offset+t.pageSize {
		t.ScrollTo(pos - t.pageSize + 1)
	}
}

// filter hides rows whose name does not contain query, ignoring case. An empty
// query shows every row.
func (t *Table) filter(query string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	shown := 0
	for _, r := range t.rows {
		r.Filtered = q != "" && !strings.Contains(strings.ToLower(r.Name), q)
		if !r.Filtered {
			shown++
		}
	}
	if t.selected >= 0 && t.rows[t.selected].Filtered {
		t.selected = -1
	}
	t.ScrollTo(t.offset)
	return shown
}
