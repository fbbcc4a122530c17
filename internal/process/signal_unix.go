//go:build !windows

package process

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// killProcess sends SIGKILL to pid. Non-positive PIDs are rejected since
// kill(2) would address a whole process group.
func killProcess(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("invalid pid %d", pid)
	}
	return unix.Kill(pid, unix.SIGKILL)
}
