package pidfile_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starfleet-go/internal/infrastructure/pidfile"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starfleet.pid")
	p := pidfile.New(path)

	require.NoError(t, p.Acquire(false))
	assert.Equal(t, os.Getpid(), p.ReadPID())

	require.NoError(t, p.Release())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAcquire_ReplacesMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starfleet.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid"), 0o644))
	p := pidfile.New(path)

	require.NoError(t, p.Acquire(false))
	assert.Equal(t, os.Getpid(), p.ReadPID())
}

func TestAcquire_LiveProcessNeedsForce(t *testing.T) {
	// PID 1 always exists on Unix
	path := filepath.Join(t.TempDir(), "starfleet.pid")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("%d\n", 1)), 0o644))
	p := pidfile.New(path)

	err := p.Acquire(false)
	var running *pidfile.AlreadyRunningError
	require.ErrorAs(t, err, &running)
	assert.Equal(t, 1, running.PID)

	require.NoError(t, p.Acquire(true))
	assert.Equal(t, os.Getpid(), p.ReadPID())
}

func TestRelease_LeavesForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starfleet.pid")
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o644))

	require.NoError(t, pidfile.New(path).Release())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
