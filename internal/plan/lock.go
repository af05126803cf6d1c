package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

const lockFileName = "run.lock"

// PlanLock serializes plan execution. `faro plan run` keeps a PID lock file
// inside the plan folder so two runs cannot update plan.json and the progress
// log concurrently.
type PlanLock struct {
	path string
}

// NewPlanLock creates a lock for the given plan directory.
func NewPlanLock(planDir string) *PlanLock {
	return &PlanLock{
		path: filepath.Join(planDir, lockFileName),
	}
}

// claim atomically creates the lock file holding this process's PID.
// When the file already exists the raw error is returned so callers can
// check it with os.IsExist.
func (l *PlanLock) claim() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return err
		}
		return fmt.Errorf("failed to create lock file: %w", err)
	}

	_, writeErr := fmt.Fprintf(f, "%d", os.Getpid())
	f.Close()
	if writeErr != nil {
		os.Remove(l.path)
		return fmt.Errorf("failed to write lock file: %w", writeErr)
	}
	return nil
}

// Acquire takes the run lock for this process. A lock held by a live process
// is an error; locks left behind by dead runs, or with garbage contents, are
// removed and the claim retried once.
func (l *PlanLock) Acquire() error {
	err := l.claim()
	if err == nil {
		return nil
	}
	if !os.IsExist(err) {
		return err
	}

	// Someone holds the lock file - find out whether they are still alive
	data, readErr := os.ReadFile(l.path)
	if readErr != nil {
		return fmt.Errorf("failed to read existing lock file: %w", readErr)
	}

	pid, parseErr := strconv.Atoi(strings.TrimSpace(string(data)))
	if parseErr == nil && processExists(pid) {
		return fmt.Errorf("plan is already running (PID %d)", pid)
	}

	if removeErr := os.Remove(l.path); removeErr != nil {
		return fmt.Errorf("failed to remove stale lock file: %w", removeErr)
	}

	// Retry once after clearing the stale lock to avoid looping forever
	if err := l.claim(); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("lock acquired by another process during retry")
		}
		return err
	}
	return nil
}

// Release removes the lock file.
// Returns nil if the lock file doesn't exist (idempotent).
func (l *PlanLock) Release() error {
	err := os.Remove(l.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// IsLocked reports whether a live process holds the run lock. Stale and
// garbage lock files are removed along the way.
func (l *PlanLock) IsLocked() (bool, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read existing lock file: %w", err)
	}

	pid, parseErr := strconv.Atoi(strings.TrimSpace(string(data)))
	if parseErr == nil && processExists(pid) {
		return true, nil
	}

	if removeErr := os.Remove(l.path); removeErr != nil && !os.IsNotExist(removeErr) {
		return false, fmt.Errorf("failed to remove stale lock file: %w", removeErr)
	}
	return false, nil
}

// processExists checks if a process with the given PID is running.
// Uses kill with signal 0, which checks for process existence without sending a signal.
func processExists(pid int) bool {
	if pid == os.Getpid() {
		return true
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Signal 0 doesn't send a signal, just checks if process exists
	err = process.Signal(syscall.Signal(0))
	return err == nil
}
