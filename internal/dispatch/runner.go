package dispatch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

// CommandRunner abstracts command execution so the dispatcher can be tested
// without a shell.
type CommandRunner interface {
	Run(ctx context.Context, dir string, command string) (stdout string, stderr string, exitCode int, err error)
}

// ExecRunner runs commands through `sh -c` in their own process group.
// Cancelling the context kills the whole group, so children spawned by the
// shell cannot outlive a timed-out check.
type ExecRunner struct{}

func (e *ExecRunner) Run(ctx context.Context, dir string, command string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if err == syscall.ESRCH {
			return os.ErrProcessDone
		}
		return err
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	switch err := cmd.Run().(type) {
	case nil:
		return stdout.String(), stderr.String(), 0, nil
	case *exec.ExitError:
		return stdout.String(), stderr.String(), err.ExitCode(), nil
	default:
		return stdout.String(), stderr.String(), -1, fmt.Errorf("exec: %w", err)
	}
}
