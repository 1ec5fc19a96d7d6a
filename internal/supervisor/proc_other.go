//go:build !unix

package supervisor

import "os/exec"

func configureProcess(cmd *exec.Cmd) {}

func killProcess(cmd *exec.Cmd, reaped bool) error {
	if cmd.Process == nil || reaped {
		return nil
	}
	return cmd.Process.Kill()
}
