package lightsync

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/lightman/internal/metrics"
	"github.com/gravitrone/lightman/internal/scene"
)

type pendingTimer struct {
	after time.Duration
	fn    func()
}

type fakeScheduler struct {
	pending []pendingTimer
}

func (f *fakeScheduler) AfterFunc(d time.Duration, fn func()) {
	f.pending = append(f.pending, pendingTimer{after: d, fn: fn})
}

// fireNext runs the oldest pending timer.
func (f *fakeScheduler) fireNext() bool {
	if len(f.pending) == 0 {
		return false
	}
	next := f.pending[0]
	f.pending = f.pending[1:]
	next.fn()
	return true
}

type harness struct {
	scene   *scene.Scene
	ctl     *Controller
	sched   *fakeScheduler
	metrics *metrics.Collectors
}

func newHarness(t *testing.T, s *scene.Scene, pageSize int) *harness {
	t.Helper()
	sched := &fakeScheduler{}
	m := metrics.New(prometheus.NewRegistry())
	ctl := New(s, Options{Scheduler: sched, Metrics: m, PageSize: pageSize})
	ctl.Rebuild()
	return &harness{scene: s, ctl: ctl, sched: sched, metrics: m}
}

func (h *harness) control(t *testing.T, light string, col Column) *Control {
	t.Helper()
	row := h.ctl.Table().IndexOf(light)
	require.GreaterOrEqual(t, row, 0, "row for %s", light)
	ctrl, ok := h.ctl.Table().Control(row, col)
	require.True(t, ok, "control %s/%s", light, col)
	return ctrl
}

func (h *harness) row(t *testing.T, light string) int {
	t.Helper()
	row := h.ctl.Table().IndexOf(light)
	require.GreaterOrEqual(t, row, 0, "row for %s", light)
	return row
}

type cellSnapshot struct {
	Kind    ControlKind
	Text    string
	Checked bool
	Color   scene.Color
}

func snapshot(tbl *Table) [][ColumnCount]cellSnapshot {
	out := make([][ColumnCount]cellSnapshot, tbl.Len())
	for i := range out {
		for col := Column(0); col < ColumnCount; col++ {
			ctrl, ok := tbl.Control(i, col)
			if !ok {
				continue
			}
			out[i][col] = cellSnapshot{
				Kind:    ctrl.Kind(),
				Text:    ctrl.Text(),
				Checked: ctrl.Checked(),
				Color:   ctrl.Color(),
			}
		}
	}
	return out
}

func manyLights(t *testing.T, n int) *scene.Scene {
	t.Helper()
	s := scene.New()
	for i := 0; i < n; i++ {
		_, err := s.CreateLight("L.000", scene.Point)
		require.NoError(t, err)
	}
	return s
}
