package supervisor

import (
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ProChat/shell/internal/logging"
	"github.com/GriffinCanCode/ProChat/shell/internal/shared/id"
)

// Process is a spawned worker.
type Process struct {
	ID         id.LaunchID
	Executable string
	StartedAt  time.Time

	cmd      *exec.Cmd
	done     chan struct{}
	exitErr  error
	exitedAt time.Time
	killOnce sync.Once

	// logger carries launch_id and pid
	logger *logging.Logger
}

func newProcess(cmd *exec.Cmd, executable string, logger *logging.Logger) *Process {
	p := &Process{
		ID:         id.NewLaunchID(),
		Executable: executable,
		StartedAt:  time.Now(),
		cmd:        cmd,
		done:       make(chan struct{}),
	}
	p.logger = logger.With(
		zap.String("launch_id", p.ID.String()),
		zap.Int("pid", p.PID()))
	return p
}

// PID returns the OS process ID
func (p *Process) PID() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Done is closed once the worker has exited and been reaped.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// ExitErr returns the worker's exit error. Only meaningful after Done.
func (p *Process) ExitErr() error {
	<-p.done
	return p.exitErr
}

// Exited reports whether the worker has been reaped
func (p *Process) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// wait reaps the worker and publishes its exit status
func (p *Process) wait() {
	p.exitErr = p.cmd.Wait()
	p.exitedAt = time.Now()
	close(p.done)
}

// Uptime returns how long the worker ran, or has been running so far
func (p *Process) Uptime() time.Duration {
	if p.Exited() {
		return p.exitedAt.Sub(p.StartedAt)
	}
	return time.Since(p.StartedAt)
}

// kill sends the forceful termination signal at most once. The worker's
// process group is signalled even after the leader was reaped, since its
// children may still be running. Delivery errors are dropped.
func (p *Process) kill() {
	p.killOnce.Do(func() {
		_ = killProcess(p.cmd, p.Exited())
	})
}
