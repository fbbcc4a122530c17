package sssd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyTable struct{}

func (emptyTable) Processes(context.Context) ([]ProcessHandle, error) { return nil, nil }

func TestRunHelpUsesExecutableName(t *testing.T) {
	d, err := NewDispatcher()
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), []string{"./whatever"}, nil, WithStdout(&out)))
	assert.Equal(t, "Help: ./"+d.Name()+" status | start | stop | daemon\n", out.String())
}

func TestRunStatusWithInjectedSource(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), []string{"x", "status"}, nil, WithStdout(&out), WithSource(emptyTable{}))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out.String(), " is stopped!\n"), out.String())
}

func TestRunStartPropagatesWorkloadError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(context.Background(), []string{"x", "start"}, func(context.Context) error { return boom })
	assert.ErrorIs(t, err, ErrWorkload)
	assert.ErrorIs(t, err, boom)
}

func TestDispatcherLogPath(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDispatcher(WithLogDir(dir))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, d.Name()+".log"), d.LogPath())
}

func TestSelectActionFacade(t *testing.T) {
	assert.Equal(t, ActionDaemon, SelectAction([]string{"./app", "daemon", "stop"}))
	assert.Equal(t, ActionHelp, SelectAction(nil))
}

func TestRegisterMetricsFacade(t *testing.T) {
	assert.NoError(t, RegisterMetrics(prometheus.NewRegistry()))
	assert.NotNil(t, MetricsHandler())
}

func TestLoadConfigAndLogger(t *testing.T) {
	t.Setenv("SSSD_LOG_LEVEL", "debug")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	l := NewLogger(cfg)
	assert.True(t, l.Enabled(context.Background(), -4))
}

func TestRegisterInstanceMetricsFacade(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterInstanceMetrics(reg, "facade"))
	_, err := reg.Gather()
	assert.NoError(t, err)
}
