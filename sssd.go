// Package sssd lets a program manage its own lifecycle from the command line:
//
//	./app start   run the workload in the foreground
//	./app daemon  relaunch "./app start" detached, output appended to logs/app.log
//	./app status  report whether another instance is running
//	./app stop    kill every other running instance
//
// Typical use:
//
//	func main() {
//		sssd.Create(func(ctx context.Context) error {
//			// ...
//			return nil
//		})
//	}
//
// Instances are found by exact process name, so on Linux the executable
// name should not exceed 15 bytes.
package sssd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/loykin/sssd/internal/config"
	"github.com/loykin/sssd/internal/lifecycle"
	"github.com/loykin/sssd/internal/logger"
	"github.com/loykin/sssd/internal/metrics"
	"github.com/loykin/sssd/internal/process"
	"github.com/prometheus/client_golang/prometheus"
)

// Re-export core types for external consumers.

type Workload = lifecycle.Workload

type Action = lifecycle.Action

type Report = lifecycle.Report

type Instance = process.Instance

type ProcessSource = process.Source

type ProcessHandle = process.Handle

type Config = config.Config

const (
	ActionStatus = lifecycle.ActionStatus
	ActionStart  = lifecycle.ActionStart
	ActionStop   = lifecycle.ActionStop
	ActionDaemon = lifecycle.ActionDaemon
	ActionHelp   = lifecycle.ActionHelp
)

var (
	ErrExecutableName = process.ErrExecutableName
	ErrProcessList    = lifecycle.ErrProcessList
	ErrWorkload       = lifecycle.ErrWorkload
	ErrLogFile        = process.ErrLogFile
	ErrSpawn          = process.ErrSpawn
)

// Option customizes a Dispatcher.
type Option func(*lifecycle.Options)

// WithStdout redirects the one-line status, stop and help messages.
func WithStdout(w io.Writer) Option { return func(o *lifecycle.Options) { o.Stdout = w } }

func WithLogger(l *slog.Logger) Option { return func(o *lifecycle.Options) { o.Logger = l } }

// WithLogDir sets the directory of the detached instance's log file.
func WithLogDir(dir string) Option { return func(o *lifecycle.Options) { o.LogDir = dir } }

func WithSource(src ProcessSource) Option { return func(o *lifecycle.Options) { o.Source = src } }

// WithExecutable overrides the binary relaunched by the daemon action.
func WithExecutable(path string) Option { return func(o *lifecycle.Options) { o.Executable = path } }

// Dispatcher is a thin facade over internal/lifecycle.Dispatcher bound to
// the running executable's name.
type Dispatcher struct{ inner *lifecycle.Dispatcher }

// NewDispatcher resolves the executable name and applies opts.
func NewDispatcher(opts ...Option) (*Dispatcher, error) {
	name, err := process.ExecutableName()
	if err != nil {
		return nil, err
	}
	var o lifecycle.Options
	for _, opt := range opts {
		opt(&o)
	}
	return &Dispatcher{inner: lifecycle.New(name, o)}, nil
}

func (d *Dispatcher) Name() string    { return d.inner.Name() }
func (d *Dispatcher) LogPath() string { return d.inner.LogPath() }
func (d *Dispatcher) Run(ctx context.Context, args []string, w Workload) error {
	return d.inner.Run(ctx, args, w)
}
func (d *Dispatcher) Status(ctx context.Context) (Report, error)  { return d.inner.Status(ctx) }
func (d *Dispatcher) Stop(ctx context.Context) (int, error)       { return d.inner.Stop(ctx) }
func (d *Dispatcher) Daemon(ctx context.Context) (int, error)     { return d.inner.Daemon(ctx) }
func (d *Dispatcher) Start(ctx context.Context, w Workload) error { return d.inner.Start(ctx, w) }
func (d *Dispatcher) Help()                                       { d.inner.Help() }

// SelectAction exposes the argument scan used by Run.
func SelectAction(args []string) Action { return lifecycle.SelectAction(args) }

// Run dispatches the action named in args for the running executable.
func Run(ctx context.Context, args []string, w Workload, opts ...Option) error {
	d, err := NewDispatcher(opts...)
	if err != nil {
		return err
	}
	return d.Run(ctx, args, w)
}

// Create dispatches os.Args with settings from SSSD_* environment
// variables. The workload context is cancelled on SIGINT or SIGTERM.
// Any error is printed to stderr and the process exits with status 1.
func Create(w Workload, opts ...Option) {
	cfg, err := config.Load()
	if err != nil {
		exitErr(err)
	}
	base := []Option{WithLogger(NewLogger(cfg)), WithLogDir(cfg.LogDir)}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = Run(ctx, os.Args, w, append(base, opts...)...)
	stop()
	if err != nil {
		exitErr(err)
	}
}

func exitErr(err error) {
	_, _ = fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// LoadConfig reads the SSSD_* environment variables.
func LoadConfig() (Config, error) { return config.Load() }

// NewLogger builds the diagnostic logger described by cfg.
func NewLogger(cfg Config) *slog.Logger { return logger.New(cfg.Logger()) }

// Metrics helpers (public facade)

func RegisterMetrics(r prometheus.Registerer) error { return metrics.Register(r) }

// MetricsHandler serves the default Prometheus registry.
func MetricsHandler() http.Handler { return metrics.Handler() }

// RegisterInstanceMetrics exports resource usage of the calling process under name.
func RegisterInstanceMetrics(r prometheus.Registerer, name string) error {
	return metrics.RegisterInstance(r, name, os.Getpid())
}
