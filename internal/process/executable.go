package process

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// ErrExecutableName is returned when the running binary's file name cannot be determined.
var ErrExecutableName = errors.New("cannot resolve executable name")

// CommNameLimit is the longest process name the Linux kernel keeps in
// /proc/<pid>/stat (TASK_COMM_LEN minus the terminating NUL).
const CommNameLimit = 15

// ExecutableName returns the base file name of the currently running binary.
func ExecutableName() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecutableName, err)
	}
	return baseName(exe)
}

func baseName(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrExecutableName)
	}
	name := filepath.Base(path)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: %q has no file name", ErrExecutableName, path)
	}
	if !utf8.ValidString(name) {
		return "", fmt.Errorf("%w: %q is not valid text", ErrExecutableName, name)
	}
	return name, nil
}

// NameTruncated reports whether name is longer than what the kernel
// records as a process name on Linux.
func NameTruncated(name string) bool { return len(name) > CommNameLimit }
