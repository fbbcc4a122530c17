package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

var (
	// ErrLogFile is returned when the detached child's log file cannot be opened.
	ErrLogFile = errors.New("open log file")
	// ErrSpawn is returned when the detached child cannot be started.
	ErrSpawn = errors.New("spawn detached process")
)

// SpawnDetached starts executable with args in a new session and returns its PID
// without waiting for it. The child's stdout and stderr are two separate
// append-mode handles on logPath; the parent's copies are closed on return.
func SpawnDetached(executable string, args []string, logPath string) (int, error) {
	stdout, err := openAppend(logPath)
	if err != nil {
		return 0, fmt.Errorf("%w %s: %w", ErrLogFile, logPath, err)
	}
	defer func() { _ = stdout.Close() }()
	stderr, err := openAppend(logPath)
	if err != nil {
		return 0, fmt.Errorf("%w %s: %w", ErrLogFile, logPath, err)
	}
	defer func() { _ = stderr.Close() }()

	// #nosec G204
	cmd := exec.Command(executable, args...)
	cmd.Stdin = nil
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	configureDetached(cmd)

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("%w %s: %w", ErrSpawn, executable, err)
	}
	pid := cmd.Process.Pid
	// the child is not waited on; it outlives this process
	_ = cmd.Process.Release()
	return pid, nil
}

func openAppend(path string) (*os.File, error) {
	// #nosec G302 G304
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
