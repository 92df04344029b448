package cmd

import (
	"fmt"
	"io"

	"github.com/gravitrone/lightman/internal/config"
	"github.com/gravitrone/lightman/internal/lightsync"
	"github.com/gravitrone/lightman/internal/logging"
	"github.com/gravitrone/lightman/internal/scene"
)

// Paths locates the files headless commands work on. Empty fields fall back
// to the config file and its defaults.
type Paths struct {
	Scene  string
	Config string
}

// Resolve loads the config and picks the scene path.
func (p *Paths) Resolve() (*config.Config, string, error) {
	cfgPath := p.Config
	if cfgPath == "" {
		cfgPath = config.Path()
	}
	cfg, err := config.LoadFrom(cfgPath)
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}
	scenePath := p.Scene
	if scenePath == "" {
		scenePath = cfg.ScenePath
	}
	return cfg, scenePath, nil
}

// session is one headless run: a loaded scene and a controller over it.
type session struct {
	scene *scene.Scene
	ctl   *lightsync.Controller
	path  string
	out   io.Writer
	close func() error
}

func openSession(p *Paths, out io.Writer) (*session, error) {
	cfg, scenePath, err := p.Resolve()
	if err != nil {
		return nil, err
	}
	log, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	s, err := scene.Load(scenePath)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	ctl := lightsync.New(s, lightsync.Options{
		Logger:       log,
		RenderEngine: cfg.RenderEngine,
		PageSize:     cfg.PageSize,
	})
	ctl.Rebuild()
	ctl.Status().Drain()

	return &session{scene: s, ctl: ctl, path: scenePath, out: out, close: closeLog}, nil
}

// report prints the last status message posted since the previous report.
func (s *session) report() {
	msgs := s.ctl.Status().Drain()
	if len(msgs) == 0 {
		return
	}
	fmt.Fprintln(s.out, msgs[len(msgs)-1])
}

// finish disposes the controller and saves the scene when save is set.
func (s *session) finish(save bool) error {
	s.ctl.Dispose()
	defer func() { _ = s.close() }()
	if !save {
		return nil
	}
	if err := s.scene.Save(s.path); err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	return nil
}
