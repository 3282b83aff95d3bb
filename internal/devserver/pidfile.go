package devserver

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// PIDFileName is the process-tracking file the server writes in the
// project directory.
const PIDFileName = ".devstarter.pid"

// PIDPath returns the PID file path for a project directory.
func PIDPath(dir string) string {
	return filepath.Join(dir, PIDFileName)
}

// WritePID records pid at path.
func WritePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o644)
}

// ReadPID reads a PID file. The second return is false when the file is
// missing or does not hold a positive integer.
func ReadPID(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// RemovePID deletes a PID file, treating a missing file as success.
func RemovePID(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Alive reports whether a process with the given pid exists, using the
// signal-0 probe.
func Alive(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}

// State describes what a PID file probe found.
type State string

const (
	// StateRunning means the PID file names a live process.
	StateRunning State = "running"
	// StateStale means the PID file exists but the process is gone.
	StateStale State = "stale"
	// StateStopped means there is no PID file.
	StateStopped State = "stopped"
)

// Probe inspects the PID file at path and reports the server state along
// with the recorded pid (zero when stopped).
func Probe(path string) (State, int) {
	pid, ok := ReadPID(path)
	if !ok {
		return StateStopped, 0
	}
	if Alive(pid) {
		return StateRunning, pid
	}
	return StateStale, pid
}
