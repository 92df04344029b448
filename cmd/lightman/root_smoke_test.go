package main

import (
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/gravitrone/lightman/internal/cmd"
	"github.com/gravitrone/lightman/internal/logging"
)

func TestRunTUIWithoutTerminalReturnsError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()
	oldStdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = oldStdin }()

	assert.False(t, isInteractiveTerminal(r))
	err = runTUI(&cmd.Paths{})
	assert.Error(t, err)
}

func TestMainHelpFlagDoesNotExit(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"lightman", "--help"}
	defer func() { os.Args = oldArgs }()

	// main() should return normally for help (no os.Exit).
	main()
}

func TestServeMetricsEmptyAddrIsNoop(t *testing.T) {
	stop := serveMetrics("", prometheus.NewRegistry(), logging.NewNop())
	assert.NotPanics(t, stop)
}

func TestServeMetricsStops(t *testing.T) {
	stop := serveMetrics("127.0.0.1:0", prometheus.NewRegistry(), logging.NewNop())
	assert.NotPanics(t, stop)
}

func TestIsInteractiveTerminalNil(t *testing.T) {
	assert.False(t, isInteractiveTerminal(nil))
}
