// Package pidfile keeps a single `starfleet serve` process per PID file.
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// AlreadyRunningError reports a live process holding the PID file
type AlreadyRunningError struct {
	PID  int
	Path string
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("starfleet is already running (PID %d, %s); use --force to take over", e.PID, e.Path)
}

// PIDFile manages a process ID file
type PIDFile struct {
	path string
}

// New creates a new PIDFile manager
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path returns the file location
func (p *PIDFile) Path() string {
	return p.path
}

// ReadPID returns the PID recorded in the file, or 0 when the file is missing or malformed
func (p *PIDFile) ReadPID() int {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0
	}
	return pid
}

// Acquire writes the current PID. A stale or malformed file is replaced; a
// file naming a live process yields *AlreadyRunningError unless force is set.
func (p *PIDFile) Acquire(force bool) error {
	if pid := p.ReadPID(); pid != 0 && pid != os.Getpid() && !force && isProcessRunning(pid) {
		return &AlreadyRunningError{PID: pid, Path: p.path}
	}

	if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale PID file: %w", err)
	}

	pidData := fmt.Sprintf("%d\n", os.Getpid())
	if err := os.WriteFile(p.path, []byte(pidData), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	return nil
}

// Release removes the PID file if it still names this process
func (p *PIDFile) Release() error {
	if pid := p.ReadPID(); pid != 0 && pid != os.Getpid() {
		return nil
	}
	if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// isProcessRunning sends signal 0, which checks existence without delivering anything
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	switch {
	case err == nil:
		return true
	case errors.Is(err, syscall.EPERM):
		// exists, owned by someone else
		return true
	default:
		return false
	}
}
