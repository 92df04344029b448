package lightsync

import (
	"log/slog"
	"time"

	"github.com/gravitrone/lightman/internal/logging"
	"github.com/gravitrone/lightman/internal/metrics"
	"github.com/gravitrone/lightman/internal/scene"
)

// DefaultRenderEngine is the engine a render request switches to.
const DefaultRenderEngine = "CYCLES"

// Host is the narrow slice of the entity container the controller uses.
// *scene.Scene implements it.
type Host interface {
	Notifier
	Objects() []*scene.Object
	Object(name string) (*scene.Object, bool)
	CreateLight(name string, typ scene.LightType) (*scene.Object, error)
	Rename(oldName, newName string) (string, error)
	Remove(name string) error
	UpdateLight(name string, fn func(*scene.Light) error) error
	SetHidden(name string, viewport, render bool) error
	ClearSelection()
	Select(name string) error
	SetActive(name string) error
	SetRenderEngine(engine string)
}

// Options configures a Controller. Zero values pick defaults.
type Options struct {
	Logger         *slog.Logger
	Metrics        *metrics.Collectors
	Scheduler      Scheduler
	StatusDuration time.Duration
	RenderEngine   string
	PageSize       int
}

// Controller keeps the table projection and the host's lights consistent in
// both directions.
type Controller struct {
	host     Host
	table    *Table
	registry *Registry
	status   *Status
	log      *slog.Logger
	metrics  *metrics.Collectors
	engine   string

	query string
	solo  string
	muted map[string]bool
}

// New creates a controller over host. Call Rebuild to populate the table.
func New(host Host, opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}
	engine := opts.RenderEngine
	if engine == "" {
		engine = DefaultRenderEngine
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 15
	}
	return &Controller{
		host:     host,
		table:    NewTable(pageSize),
		registry: NewRegistry(host),
		status:   newStatus(opts.Scheduler, opts.StatusDuration),
		log:      log,
		metrics:  opts.Metrics,
		engine:   engine,
		muted:    make(map[string]bool),
	}
}

// Table returns the projection.
func (c *Controller) Table() *Table { return c.table }

// Status returns the message slot.
func (c *Controller) Status() *Status { return c.status }

// Subscriptions returns the number of live change subscriptions.
func (c *Controller) Subscriptions() int { return c.registry.Len() }

// RenderEngine returns the engine Render switches the host to.
func (c *Controller) RenderEngine() string { return c.engine }

// Query returns the active search filter.
func (c *Controller) Query() string { return c.query }

// Dispose removes every subscription and destroys the table's controls.
func (c *Controller) Dispose() {
	removed := c.registry.Clear()
	c.table.clear()
	c.metrics.ObserveSubscriptions(0)
	c.log.Debug("controller disposed", "subscriptions", removed)
}

func (c *Controller) info(text string) {
	c.status.Post(text)
	c.log.Debug("status", "text", text)
}
