// Package launcher owns the single light manager session of a process.
package launcher

import (
	"log/slog"

	"github.com/gravitrone/lightman/internal/lightsync"
	"github.com/gravitrone/lightman/internal/logging"
)

// State is the lifecycle state of the session.
type State int

const (
	Closed State = iota
	Open
	Hidden
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Hidden:
		return "hidden"
	default:
		return "closed"
	}
}

// Context replaces a process-wide manager instance. Entry points receive it
// explicitly and move it through closed, open and hidden.
type Context struct {
	host  lightsync.Host
	opts  lightsync.Options
	log   *slog.Logger
	ctl   *lightsync.Controller
	state State
}

// New returns a closed context over host.
func New(host lightsync.Host, opts lightsync.Options) *Context {
	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}
	return &Context{host: host, opts: opts, log: log}
}

// Launch opens the session. The first launch creates the controller and
// builds the table; a hidden session is shown again and rebuilt. When the
// session is already visible it is returned as is with reused set.
func (c *Context) Launch() (ctl *lightsync.Controller, reused bool) {
	switch c.state {
	case Open:
		c.ctl.Status().Post("Light Manager is already open.")
		c.log.Debug("launch reused open session")
		return c.ctl, true
	case Hidden:
		c.state = Open
		c.ctl.Rebuild()
		c.log.Debug("launch showed hidden session")
		return c.ctl, false
	}

	c.ctl = lightsync.New(c.host, c.opts)
	c.state = Open
	c.ctl.Rebuild()
	c.log.Info("light manager opened", "subscriptions", c.ctl.Subscriptions())
	return c.ctl, false
}

// Hide keeps the session and its subscriptions but marks it not visible.
func (c *Context) Hide() {
	if c.state == Open {
		c.state = Hidden
	}
}

// Close disposes the session.
func (c *Context) Close() {
	if c.ctl != nil {
		c.ctl.Dispose()
		c.ctl = nil
	}
	if c.state != Closed {
		c.log.Info("light manager closed")
	}
	c.state = Closed
}

// State returns the lifecycle state.
func (c *Context) State() State { return c.state }

// Controller returns the live controller, or nil when closed.
func (c *Context) Controller() *lightsync.Controller { return c.ctl }
