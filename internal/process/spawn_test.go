package process

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnDetachedRedirectsBothStreams(t *testing.T) {
	requireUnix(t)
	logPath := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(logPath, []byte("previous\n"), 0o644))

	pid, err := SpawnDetached("/bin/sh", []string{"-c", "echo to-stdout; echo to-stderr 1>&2"}, logPath)
	require.NoError(t, err)
	assert.Greater(t, pid, 0)

	require.Eventually(t, func() bool {
		b, err := os.ReadFile(logPath)
		if err != nil {
			return false
		}
		s := string(b)
		return strings.Contains(s, "to-stdout") && strings.Contains(s, "to-stderr")
	}, 3*time.Second, 20*time.Millisecond)

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "previous\n"), "log must be appended, got %q", string(b))
}

func TestSpawnDetachedMissingLogDir(t *testing.T) {
	requireUnix(t)
	logPath := filepath.Join(t.TempDir(), "missing", "app.log")
	_, err := SpawnDetached("/bin/true", nil, logPath)
	assert.ErrorIs(t, err, ErrLogFile)
}

func TestSpawnDetachedMissingExecutable(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")
	_, err := SpawnDetached(filepath.Join(t.TempDir(), "__definitely_not_exists__"), []string{"start"}, logPath)
	assert.ErrorIs(t, err, ErrSpawn)
	// the log file is opened before the spawn attempt
	_, statErr := os.Stat(logPath)
	assert.NoError(t, statErr)
}
