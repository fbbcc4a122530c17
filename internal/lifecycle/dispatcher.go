package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/loykin/sssd/internal/logger"
	"github.com/loykin/sssd/internal/metrics"
	"github.com/loykin/sssd/internal/process"
)

var (
	// ErrWorkload wraps the error returned by the workload of a start action.
	ErrWorkload = errors.New("fail to start the app")
	// ErrProcessList is returned when the process table cannot be read.
	ErrProcessList = errors.New("cannot list processes")
)

// DefaultLogDir is where the detached instance writes its output.
const DefaultLogDir = "logs"

// Workload is the host application's foreground task, run by the start action.
type Workload func(ctx context.Context) error

// Options customizes a Dispatcher. Zero values select the defaults.
type Options struct {
	Stdout     io.Writer      // user-facing messages; default os.Stdout
	Logger     *slog.Logger   // diagnostics; default discards
	Source     process.Source // process table; default process.SystemSource
	LogDir     string         // default DefaultLogDir
	Executable string         // binary relaunched by daemon; default os.Executable()
	SelfPID    int            // excluded from matches; default os.Getpid()
}

// Report is the result of a liveness check.
type Report struct {
	Running  bool
	Message  string
	Instance process.Instance // zero when not running
}

// Dispatcher runs one lifecycle action for the executable called name.
type Dispatcher struct {
	name string
	opts Options
	log  *slog.Logger
}

func New(name string, opts Options) *Dispatcher {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Source == nil {
		opts.Source = process.SystemSource{}
	}
	if opts.LogDir == "" {
		opts.LogDir = DefaultLogDir
	}
	if opts.SelfPID == 0 {
		opts.SelfPID = os.Getpid()
	}
	return &Dispatcher{
		name: name,
		opts: opts,
		log:  opts.Logger.With("app", name),
	}
}

// Name returns the executable name the dispatcher matches against.
func (d *Dispatcher) Name() string { return d.name }

// LogPath returns the file that receives the detached instance's output.
func (d *Dispatcher) LogPath() string { return filepath.Join(d.opts.LogDir, d.name+".log") }

// Run selects the action from args and executes it.
func (d *Dispatcher) Run(ctx context.Context, args []string, w Workload) error {
	action := SelectAction(args)
	d.log.Debug("lifecycle action selected", "action", action.String())
	metrics.IncAction(action.String())
	if runtime.GOOS == "linux" && process.NameTruncated(d.name) {
		d.log.Warn("executable name exceeds the kernel process name limit; instance detection may miss it",
			"limit", process.CommNameLimit)
	}

	switch action {
	case ActionStatus:
		r, err := d.Status(ctx)
		if err != nil {
			return err
		}
		d.println(r.Message)
	case ActionStop:
		_, err := d.Stop(ctx)
		return err
	case ActionDaemon:
		_, err := d.Daemon(ctx)
		return err
	case ActionStart:
		return d.Start(ctx, w)
	default:
		d.Help()
	}
	return nil
}

// Status reports whether another process with the same name is running.
// Only the first match is reported.
func (d *Dispatcher) Status(ctx context.Context) (Report, error) {
	others, err := d.others(ctx)
	if err != nil {
		return Report{}, err
	}
	if len(others) == 0 {
		return Report{Message: fmt.Sprintf("%s is stopped!", d.name)}, nil
	}
	inst := process.Describe(others[0])
	return Report{
		Running:  true,
		Message:  fmt.Sprintf("<%d> %q is running.", inst.PID, inst.Name),
		Instance: inst,
	}, nil
}

// Stop requests termination of every other process with the same name and
// returns how many requests were issued. Termination failures are logged
// and otherwise ignored.
func (d *Dispatcher) Stop(ctx context.Context) (int, error) {
	others, err := d.others(ctx)
	if err != nil {
		return 0, err
	}
	for _, p := range others {
		d.println(fmt.Sprintf("<%d> %q is stopping...", p.PID(), p.Name()))
		err := p.Terminate()
		metrics.IncTermination(err == nil)
		if err != nil {
			d.log.Warn("terminate failed", "pid", p.PID(), "error", err)
		}
	}
	return len(others), nil
}

// Daemon relaunches the executable with the single argument "start",
// detached and with stdout and stderr appended to LogPath. When another
// instance is already running it prints the status message and returns 0.
func (d *Dispatcher) Daemon(ctx context.Context) (int, error) {
	r, err := d.Status(ctx)
	if err != nil {
		return 0, err
	}
	if r.Running {
		d.println(r.Message)
		return 0, nil
	}

	// an existing directory is fine; a real problem surfaces when the file is opened
	_ = os.MkdirAll(d.opts.LogDir, 0o755)

	exe := d.opts.Executable
	if exe == "" {
		if exe, err = os.Executable(); err != nil {
			metrics.IncDaemonSpawn(false)
			return 0, fmt.Errorf("%w: %w", process.ErrSpawn, err)
		}
	}
	pid, err := process.SpawnDetached(exe, []string{string(ActionStart)}, d.LogPath())
	metrics.IncDaemonSpawn(err == nil)
	if err != nil {
		return 0, err
	}
	d.log.Debug("detached instance launched", "pid", pid, "log", d.LogPath())
	return pid, nil
}

// Start runs w in the foreground and waits for it.
func (d *Dispatcher) Start(ctx context.Context, w Workload) error {
	if w == nil {
		return fmt.Errorf("%w: no workload", ErrWorkload)
	}
	if err := w(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrWorkload, err)
	}
	return nil
}

// Help prints the usage line.
func (d *Dispatcher) Help() {
	d.println(fmt.Sprintf("Help: ./%s status | start | stop | daemon", d.name))
}

func (d *Dispatcher) others(ctx context.Context) ([]process.Handle, error) {
	hs, err := process.FindByName(ctx, d.opts.Source, d.name, d.opts.SelfPID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcessList, err)
	}
	return hs, nil
}

func (d *Dispatcher) println(s string) { _, _ = fmt.Fprintln(d.opts.Stdout, s) }
