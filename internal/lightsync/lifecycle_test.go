package lightsync

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/lightman/internal/scene"
)

func rowNames(tbl *Table) []string {
	var out []string
	for _, r := range tbl.Rows() {
		out = append(out, r.Name)
	}
	return out
}

func TestCreateLightNaming(t *testing.T) {
	h := newHarness(t, scene.New(), 15)

	name, err := h.ctl.CreateLight("", "POINT")
	require.NoError(t, err)
	assert.Equal(t, "LGT_POINT.000", name)
	assert.Equal(t, "'LGT_POINT.000' has been created successfully.", h.ctl.Status().Text())

	name, err = h.ctl.CreateLight("", "point")
	require.NoError(t, err)
	assert.Equal(t, "LGT_POINT.001", name)

	name, err = h.ctl.CreateLight("Key", "AREA")
	require.NoError(t, err)
	assert.Equal(t, "LGT_Key.000", name)

	assert.Equal(t, []string{"LGT_POINT.000", "LGT_POINT.001", "LGT_Key.000"}, rowNames(h.ctl.Table()))
}

func TestCreateLightRejectsUnknownType(t *testing.T) {
	h := newHarness(t, scene.New(), 15)

	_, err := h.ctl.CreateLight("x", "LASER")

	assert.True(t, errors.Is(err, scene.ErrInvalidType))
	assert.Equal(t, "Error: Light type 'LASER' is invalid.", h.ctl.Status().Text())
	assert.Zero(t, h.scene.Len())
}

func TestRenameLight(t *testing.T) {
	h := newHarness(t, scene.New(), 15)
	_, err := h.ctl.CreateLight("", "POINT")
	require.NoError(t, err)

	final, err := h.ctl.RenameLight("LGT_POINT.000", "Key")
	require.NoError(t, err)

	assert.Equal(t, "Key.000", final)
	assert.Equal(t, []string{"Key.000"}, rowNames(h.ctl.Table()))
	assert.Equal(t, "Light: 'LGT_POINT.000' renamed to 'Key.000'", h.ctl.Status().Text())
}

func TestRenameLightFailures(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)

	_, err := h.ctl.RenameLight("Key.000", "   ")
	assert.True(t, errors.Is(err, scene.ErrEmptyName))
	assert.Equal(t, "Error: New name cannot be empty.", h.ctl.Status().Text())

	_, err = h.ctl.RenameLight("ghost", "Hero")
	assert.True(t, errors.Is(err, scene.ErrNotFound))
	assert.Equal(t, "Error: Could not find actor 'ghost' to rename.", h.ctl.Status().Text())

	assert.Equal(t, []string{"Key.000", "Fill.000", "Rim.000"}, rowNames(h.ctl.Table()))
}

func TestRenameKeepsSolo(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	h.ctl.ToggleCell(h.row(t, "Rim.000"), ColSolo)

	_, err := h.ctl.RenameLight("Rim.000", "Back")
	require.NoError(t, err)

	assert.True(t, h.control(t, "Back.000", ColSolo).Checked())
}

func TestDeleteSelected(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)

	assert.True(t, errors.Is(h.ctl.DeleteSelected(), ErrNoSelection))
	assert.Equal(t, 3, h.scene.Len())

	h.ctl.SelectRow(h.row(t, "Fill.000"))
	require.NoError(t, h.ctl.DeleteSelected())

	assert.Equal(t, []string{"Key.000", "Rim.000"}, rowNames(h.ctl.Table()))
	_, ok := h.scene.Object("Fill.000")
	assert.False(t, ok)
	assert.Equal(t, -1, h.ctl.Table().Selected())
	assert.Equal(t, "Light 'Fill.000' deleted successfully.", h.ctl.Status().Text())
	assert.Equal(t, 5+6, h.scene.HandlerCount())
}

func TestDeleteSelectedMissingLight(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	h.ctl.SelectRow(h.row(t, "Fill.000"))
	require.NoError(t, h.scene.Remove("Fill.000"))

	err := h.ctl.DeleteSelected()

	assert.True(t, errors.Is(err, scene.ErrNotFound))
	assert.Equal(t, "Error: Could not find actor 'Fill.000' to delete.", h.ctl.Status().Text())
	assert.Equal(t, 3, h.ctl.Table().Len())
}

func TestSelectRowMirrorsIntoScene(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)

	h.ctl.SelectRow(h.row(t, "Fill.000"))
	fill, _ := h.scene.Object("Fill.000")
	assert.True(t, fill.Selected())
	assert.Equal(t, "Fill.000", h.scene.Active())

	h.ctl.SelectRow(h.row(t, "Key.000"))
	key, _ := h.scene.Object("Key.000")
	assert.False(t, fill.Selected())
	assert.True(t, key.Selected())
	assert.Equal(t, "Key.000", h.scene.Active())

	h.ctl.SelectRow(-1)
	assert.False(t, key.Selected())
	assert.Equal(t, -1, h.ctl.Table().Selected())
}

func TestSelectRowMissingLight(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	h.ctl.SelectRow(h.row(t, "Key.000"))
	row := h.row(t, "Rim.000")
	require.NoError(t, h.scene.Remove("Rim.000"))

	require.NotPanics(t, func() { h.ctl.SelectRow(row) })

	assert.Equal(t, "Error: 'Rim.000' no longer exists", h.ctl.Status().Text())
	assert.Equal(t, "Key.000", h.scene.Active())
	key, _ := h.scene.Object("Key.000")
	assert.False(t, key.Selected())
}

func TestSelectionSurvivesRebuild(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	require.True(t, h.ctl.SelectByName("Rim.000"))

	h.ctl.Rebuild()

	assert.Equal(t, h.row(t, "Rim.000"), h.ctl.Table().Selected())
	assert.False(t, h.ctl.SelectByName("ghost"))
}

func TestSearchFiltersRows(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)

	assert.Equal(t, 1, h.ctl.Search("key"))
	assert.Len(t, h.ctl.Table().VisibleIndexes(), 1)
	assert.Equal(t, 3, h.ctl.Table().Len(), "rows are hidden, not removed")

	h.ctl.Rebuild()
	assert.Len(t, h.ctl.Table().VisibleIndexes(), 1, "filter survives rebuild")

	assert.Equal(t, 2, h.ctl.Search("I"))
	assert.Equal(t, 3, h.ctl.Search(""))
}

func TestSearchClearsFilteredSelection(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	h.ctl.SelectRow(h.row(t, "Rim.000"))

	h.ctl.Search("fill")

	assert.Equal(t, -1, h.ctl.Table().Selected())
}

func TestSelectRowIgnoresFilteredRows(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	h.ctl.Search("fill")

	h.ctl.SelectRow(h.row(t, "Key.000"))

	assert.Equal(t, -1, h.ctl.Table().Selected())
	assert.Empty(t, h.scene.Active())
}
