//go:build unix

package supervisor

import (
	"errors"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// configureProcess puts the worker in its own process group so the
// interpreter and anything it forks are terminated together.
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcess signals the whole process group. ESRCH means the group is
// already empty. The direct kill is only attempted while the leader has not
// been reaped, since its PID may be reused afterwards.
func killProcess(cmd *exec.Cmd, reaped bool) error {
	if cmd.Process == nil {
		return nil
	}
	err := unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	if err == nil || errors.Is(err, unix.ESRCH) {
		return nil
	}
	if reaped {
		return err
	}
	return cmd.Process.Kill()
}
