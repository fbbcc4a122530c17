package process

import (
	"context"
	"time"
)

// Handle is a single entry of a process table snapshot.
type Handle interface {
	PID() int
	Name() string
	// Terminate requests immediate termination. It does not wait for exit.
	Terminate() error
}

// Source enumerates processes visible to the caller.
// Every call must return a fresh snapshot.
type Source interface {
	Processes(ctx context.Context) ([]Handle, error)
}

// Instance describes a matched process for reporting.
type Instance struct {
	PID       int       `json:"pid"`
	Name      string    `json:"name"`
	StartedAt time.Time `json:"started_at"`
}

// Describe builds an Instance from h. StartedAt is zero when the start
// time cannot be read.
func Describe(h Handle) Instance {
	inst := Instance{PID: h.PID(), Name: h.Name()}
	if sec := getProcStartUnix(h.PID()); sec > 0 {
		inst.StartedAt = time.Unix(sec, 0)
	}
	return inst
}

// FindByName returns every process named exactly name, skipping the one
// whose PID equals self. Order follows the source's enumeration order.
func FindByName(ctx context.Context, src Source, name string, self int) ([]Handle, error) {
	procs, err := src.Processes(ctx)
	if err != nil {
		return nil, err
	}
	var out []Handle
	for _, p := range procs {
		if p.PID() == self || p.Name() != name {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
