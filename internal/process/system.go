package process

import (
	"context"
	"fmt"

	gopsproc "github.com/shirou/gopsutil/v4/process"
)

// SystemSource reads the local host's process table.
type SystemSource struct{}

func (SystemSource) Processes(ctx context.Context) ([]Handle, error) {
	procs, err := gopsproc.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	out := make([]Handle, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// exited between listing and inspection, or not readable
			continue
		}
		out = append(out, systemHandle{pid: int(p.Pid), name: name})
	}
	return out, nil
}

type systemHandle struct {
	pid  int
	name string
}

func (h systemHandle) PID() int         { return h.pid }
func (h systemHandle) Name() string     { return h.name }
func (h systemHandle) Terminate() error { return killProcess(h.pid) }
