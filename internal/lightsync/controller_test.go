package lightsync

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/lightman/internal/metrics"
	"github.com/gravitrone/lightman/internal/scene"
)

// Sample holds Key (area), Fill (point, temperature on) and Rim (spot).
const sampleSubscriptions = 5 + 7 + 6

func TestRebuildIsIdempotent(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	before := snapshot(h.ctl.Table())

	h.ctl.Rebuild()

	assert.Equal(t, before, snapshot(h.ctl.Table()))
	assert.Equal(t, "Light Manager refreshed successfully.", h.ctl.Status().Text())
}

func TestRebuildNeverAccumulatesSubscriptions(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	for i := 0; i < 10; i++ {
		h.ctl.Rebuild()
	}

	assert.Equal(t, sampleSubscriptions, h.ctl.Subscriptions())
	assert.Equal(t, sampleSubscriptions, h.scene.HandlerCount())
	assert.Equal(t, 3*int(ColumnCount), h.ctl.Table().LiveControls())
}

func TestRebuildRendersPlaceholders(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)

	temp := h.control(t, "Key.000", ColTemperature)
	assert.Equal(t, ControlPlaceholder, temp.Kind())
	assert.Equal(t, Placeholder, temp.Text())

	soft := h.control(t, "Key.000", ColSoftSize)
	assert.Equal(t, ControlPlaceholder, soft.Kind())

	fillTemp := h.control(t, "Fill.000", ColTemperature)
	assert.Equal(t, ControlText, fillTemp.Kind())
	assert.Equal(t, "5200.000", fillTemp.Text())

	assert.Equal(t, "AREA", h.control(t, "Key.000", ColType).Text())
	assert.Equal(t, "8", h.control(t, "Rim.000", ColBounces).Text())
}

func TestNumericEditRoundTrip(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	row := h.row(t, "Key.000")

	require.True(t, h.ctl.EditCell(row, ColExposure, "2.5"))
	require.True(t, h.ctl.EditCell(row, ColBounces, "7"))

	key, _ := h.scene.Object("Key.000")
	assert.Equal(t, 2.5, key.Data.Exposure)
	assert.Equal(t, 7, key.Data.MaxBounces)
	assert.Equal(t, "2.500", h.control(t, "Key.000", ColExposure).Text())
	assert.Equal(t, "7", h.control(t, "Key.000", ColBounces).Text())
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Writes.WithLabelValues("exposure", metrics.WriteOK)))
}

func TestNumericEditRejectsBadInput(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	row := h.row(t, "Key.000")

	h.ctl.EditCell(row, ColExposure, "bright")
	assert.Equal(t, "1.500", h.control(t, "Key.000", ColExposure).Text())
	assert.Equal(t, "Wrong input: please enter a number", h.ctl.Status().Text())

	h.ctl.EditCell(row, ColBounces, "7.5")
	assert.Equal(t, "1024", h.control(t, "Key.000", ColBounces).Text())

	key, _ := h.scene.Object("Key.000")
	assert.Equal(t, 1.5, key.Data.Exposure)
	assert.Equal(t, 1024, key.Data.MaxBounces)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Writes.WithLabelValues("max_bounces", metrics.WriteInvalid)))
}

func TestNumericEditRejectsOutOfRangeInteger(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	row := h.row(t, "Key.000")

	h.ctl.EditCell(row, ColBounces, "1e20")
	assert.Equal(t, "1024", h.control(t, "Key.000", ColBounces).Text())
	assert.Equal(t, "Wrong input: please enter a number", h.ctl.Status().Text())

	err := h.ctl.SetAttribute("Key.000", "max_bounces", "-9.3e18")
	assert.True(t, errors.Is(err, scene.ErrInvalidValue))

	key, _ := h.scene.Object("Key.000")
	assert.Equal(t, 1024, key.Data.MaxBounces)
	assert.Equal(t, "1024", h.control(t, "Key.000", ColBounces).Text())
}

func TestNumericResetUsesLatestExternalValue(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	require.NoError(t, h.scene.UpdateLight("Key.000", func(l *scene.Light) error {
		l.Exposure = 4
		return nil
	}))

	h.ctl.EditCell(h.row(t, "Key.000"), ColExposure, "--")
	assert.Equal(t, "4.000", h.control(t, "Key.000", ColExposure).Text())
}

func TestExternalChangeUpdatesOnlyMatchingCells(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)

	require.NoError(t, h.scene.UpdateLight("Fill.000", func(l *scene.Light) error {
		l.Exposure = 3
		l.UseShadow = false
		return nil
	}))

	assert.Equal(t, "3.000", h.control(t, "Fill.000", ColExposure).Text())
	assert.False(t, h.control(t, "Fill.000", ColShadow).Checked())
	assert.Equal(t, "1.500", h.control(t, "Key.000", ColExposure).Text())
	assert.Equal(t, "0.000", h.control(t, "Rim.000", ColExposure).Text())
	assert.Equal(t, sampleSubscriptions, h.scene.HandlerCount(), "external sync must not rebuild")
}

func TestExternalSyncDoesNotEcho(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	shadow := h.control(t, "Rim.000", ColShadow)
	calls := 0
	shadow.onToggle = func(bool) { calls++ }

	require.NoError(t, h.scene.UpdateLight("Rim.000", func(l *scene.Light) error {
		l.UseShadow = false
		return nil
	}))

	assert.False(t, shadow.Checked())
	assert.Zero(t, calls)
	assert.False(t, shadow.SignalsBlocked())
}

func TestFlagToggleWritesAndRebuilds(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)

	require.True(t, h.ctl.ToggleCell(h.row(t, "Key.000"), ColUseTemperature))

	key, _ := h.scene.Object("Key.000")
	assert.True(t, key.Data.UseTemperature)
	temp := h.control(t, "Key.000", ColTemperature)
	assert.Equal(t, ControlText, temp.Kind())
	assert.Equal(t, "6500.000", temp.Text())
	assert.Equal(t, sampleSubscriptions+1, h.scene.HandlerCount())
}

func TestFlagToggleOnDeletedLightSkipsRebuild(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	row := h.row(t, "Key.000")
	require.NoError(t, h.scene.Remove("Key.000"))

	require.NotPanics(t, func() { h.ctl.ToggleCell(row, ColShadow) })

	assert.Equal(t, 3, h.ctl.Table().Len(), "table must not rebuild")
	assert.Equal(t, "Error: could not update 'use_shadow' for light deleted", h.ctl.Status().Text())
}

func TestDeletedLightIsSafeForCells(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	row := h.row(t, "Key.000")

	require.NotPanics(t, func() {
		require.NoError(t, h.scene.Remove("Key.000"))
		require.NoError(t, h.scene.UpdateLight("Fill.000", func(l *scene.Light) error {
			l.Exposure = 1
			return nil
		}))
	})
	assert.Greater(t, testutil.ToFloat64(h.metrics.Callbacks.WithLabelValues(metrics.CallbackStale)), 0.0)

	h.ctl.EditCell(row, ColExposure, "2")
	assert.Equal(t, "Error: could not update 'exposure', light deleted", h.ctl.Status().Text())
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Writes.WithLabelValues("exposure", metrics.WriteFailed)))
}

func TestDestroyedControlIsSafeForCallbacks(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	row, _ := h.ctl.Table().Row(h.row(t, "Key.000"))
	require.True(t, h.ctl.table.slots.Release(row.controls[ColExposure]))

	require.NotPanics(t, func() {
		require.NoError(t, h.scene.UpdateLight("Key.000", func(l *scene.Light) error {
			l.Exposure = 9
			return nil
		}))
	})

	_, ok := h.ctl.Table().Control(h.row(t, "Key.000"), ColExposure)
	assert.False(t, ok)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Callbacks.WithLabelValues(metrics.CallbackStale)))
}

func TestReplacedControlsStopReceivingUpdates(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	old := h.control(t, "Fill.000", ColExposure)

	h.ctl.Rebuild()
	require.NoError(t, h.scene.UpdateLight("Fill.000", func(l *scene.Light) error {
		l.Exposure = 9
		return nil
	}))

	assert.Equal(t, "-0.500", old.Text())
	assert.Equal(t, "9.000", h.control(t, "Fill.000", ColExposure).Text())
}

func TestColorPickWritesLinearColor(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)

	require.True(t, h.ctl.EditCell(h.row(t, "Rim.000"), ColColor, "#ff0000"))

	rim, _ := h.scene.Object("Rim.000")
	assert.InDelta(t, 1.0, rim.Data.Color[0], 1e-9)
	assert.InDelta(t, 0.0, rim.Data.Color[1], 1e-9)
	assert.InDelta(t, 0.0, rim.Data.Color[2], 1e-9)
	swatch := h.control(t, "Rim.000", ColColor)
	assert.Equal(t, "#ff0000", swatch.Text())

	h.ctl.EditCell(h.row(t, "Rim.000"), ColColor, "red-ish")
	assert.Contains(t, h.ctl.Status().Text(), "Wrong input")
	assert.Equal(t, "#ff0000", swatch.Text())
}

func TestColorHexRoundTrip(t *testing.T) {
	col, err := ParseColorHex("#808080")
	require.NoError(t, err)
	assert.Less(t, col[0], 0.5, "mid grey is darker in linear space")
	assert.Equal(t, "#808080", ColorHex(col))
}

func TestSetAttributeActsAsExternalWriter(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)

	require.NoError(t, h.ctl.SetAttribute("Rim.000", "exposure", "2"))
	assert.Equal(t, "2.000", h.control(t, "Rim.000", ColExposure).Text())

	err := h.ctl.SetAttribute("Key.000", "temperature", "4000")
	assert.True(t, errors.Is(err, scene.ErrInvalidValue))

	require.NoError(t, h.ctl.SetAttribute("Key.000", "use_temperature", "on"))
	assert.Equal(t, ControlText, h.control(t, "Key.000", ColTemperature).Kind())

	require.NoError(t, h.ctl.SetAttribute("Key.000", "color", "#00ff00"))
	assert.Equal(t, "#00ff00", h.control(t, "Key.000", ColColor).Text())

	err = h.ctl.SetAttribute("ghost", "exposure", "1")
	assert.True(t, errors.Is(err, scene.ErrNotFound))

	err = h.ctl.SetAttribute("Rim.000", "max_bounces", "two")
	assert.True(t, errors.Is(err, scene.ErrInvalidValue))
}

func TestDisposeRemovesEverything(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)

	h.ctl.Dispose()

	assert.Zero(t, h.scene.HandlerCount())
	assert.Zero(t, h.ctl.Subscriptions())
	assert.Zero(t, h.ctl.Table().LiveControls())
}

func TestRenderSelectsCycles(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)

	h.ctl.Render()

	assert.Equal(t, "CYCLES", h.scene.RenderEngine())
	assert.Equal(t, "Render engine set to CYCLES.", h.ctl.Status().Text())
}

func TestRenderEngineReportsConfiguredEngine(t *testing.T) {
	h := newHarness(t, scene.Sample(), 15)
	assert.Equal(t, DefaultRenderEngine, h.ctl.RenderEngine())

	ctl := New(h.scene, Options{Scheduler: &fakeScheduler{}, PageSize: 15, RenderEngine: "BLENDER_EEVEE"})
	assert.Equal(t, "BLENDER_EEVEE", ctl.RenderEngine())
}
