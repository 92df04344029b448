package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/gravitrone/lightman/internal/cmd"
	"github.com/gravitrone/lightman/internal/launcher"
	"github.com/gravitrone/lightman/internal/lightsync"
	"github.com/gravitrone/lightman/internal/logging"
	"github.com/gravitrone/lightman/internal/metrics"
	"github.com/gravitrone/lightman/internal/remote"
	"github.com/gravitrone/lightman/internal/scene"
	"github.com/gravitrone/lightman/internal/ui"
)

const metricsShutdownTimeout = 5 * time.Second

func main() {
	paths := &cmd.Paths{}
	root := &cobra.Command{
		Use:   "lightman",
		Short: "Lightman - scene light manager",
		Long:  "Lightman: edit every light of a scene from one table, or script it with the subcommands.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(paths)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&paths.Scene, "scene", "", "scene file (default from config)")
	root.PersistentFlags().StringVar(&paths.Config, "config", "", "config file (default ~/.lightman/config)")

	root.AddCommand(cmd.LightCmds(paths)...)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI(paths *cmd.Paths) error {
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return errors.New("the light table needs a terminal; use 'lightman list' and friends instead")
	}

	cfg, scenePath, err := paths.Resolve()
	if err != nil {
		return err
	}
	log, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closeLog() }()

	s, err := scene.Load(scenePath)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	stopMetrics := serveMetrics(cfg.MetricsAddr, reg, log)
	defer stopMetrics()

	sched := ui.NewScheduler()
	session := launcher.New(s, lightsync.Options{
		Logger:         log,
		Metrics:        m,
		Scheduler:      sched,
		StatusDuration: cfg.StatusDuration(),
		RenderEngine:   cfg.RenderEngine,
		PageSize:       cfg.PageSize,
	})
	defer session.Close()

	var bridge *remote.Bridge
	app := ui.NewApp(session, sched, ui.Options{
		VimKeys: cfg.VimKeys,
		Save:    func() error { return s.Save(scenePath) },
		Ack: func(c remote.Command, err error) {
			if bridge != nil {
				bridge.Ack(c, err)
			}
		},
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if cfg.MQTT.Broker != "" {
		bridge, err = remote.Connect(cfg.MQTT, func(c remote.Command) {
			p.Send(ui.RemoteMsg(c))
		}, log)
		if err != nil {
			log.Warn("remote bridge disabled", "err", err)
		}
	}
	defer bridge.Close()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	if err := s.Save(scenePath); err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	return nil
}

// serveMetrics exposes /metrics on addr until the returned stop func runs. An
// empty addr serves nothing.
func serveMetrics(addr string, g prometheus.Gatherer, log *slog.Logger) func() {
	if addr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(g))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", "err", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
