package supervisor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ProChat/shell/internal/environment"
	"github.com/GriffinCanCode/ProChat/shell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ProChat/shell/internal/launch"
	"github.com/GriffinCanCode/ProChat/shell/internal/logging"
)

// Supervisor owns at most one running worker.
type Supervisor struct {
	mu      sync.Mutex
	current *Process

	logger  *logging.Logger
	metrics *monitoring.Metrics
	environ func() []string
	stdout  io.Writer
	stderr  io.Writer

	// onSpawn observes every successfully spawned worker
	onSpawn func(*Process)
}

// Option configures a Supervisor
type Option func(*Supervisor)

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(s *Supervisor) {
		s.logger = logger
	}
}

// WithMetrics records spawn and stop metrics
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(s *Supervisor) {
		s.metrics = metrics
	}
}

// WithBaseEnv replaces os.Environ as the environment the worker inherits
// before the worker variables are layered on top
func WithBaseEnv(environ func() []string) Option {
	return func(s *Supervisor) {
		s.environ = environ
	}
}

// WithOutput redirects the worker's stdout and stderr. By default both are
// inherited from the shell.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *Supervisor) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// New creates an empty supervisor.
func New(opts ...Option) *Supervisor {
	s := &Supervisor{
		logger:  logging.Nop(),
		environ: os.Environ,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Component("supervisor")
	return s
}

// Start spawns the worker described by plan with env layered over the base
// environment. Stdin is the null device. If a worker is already stored it is
// terminated once the new one has spawned. On failure the slot is unchanged
// and a *SpawnError is returned.
func (s *Supervisor) Start(ctx context.Context, plan *launch.Plan, env environment.Environment) error {
	if plan == nil {
		return fmt.Errorf("launch plan cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("worker start cancelled: %w", err)
	}

	cmd := exec.Command(plan.Executable.Path, plan.Args()...)
	cmd.Dir = plan.WorkingDir
	cmd.Env = env.Merge(s.environ())
	cmd.Stdin = nil
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr
	configureProcess(cmd)

	if err := cmd.Start(); err != nil {
		s.recordSpawn(err)
		return &SpawnError{Executable: plan.Executable.Path, Args: plan.Args(), Err: err}
	}

	proc := newProcess(cmd, plan.Executable.Path, s.logger)
	go s.reap(proc)

	s.mu.Lock()
	previous := s.current
	s.current = proc
	if previous != nil {
		previous.kill()
	}
	s.mu.Unlock()

	s.recordSpawn(nil)
	if previous != nil {
		previous.logger.Warn("Replaced by a new worker",
			zap.String("next_launch_id", proc.ID.String()))
	}
	proc.logger.Info("Worker started",
		zap.String("executable", plan.Executable.Path),
		zap.Bool("bundled", plan.Executable.Bundled),
		zap.String("entry", plan.Entry),
		zap.String("working_dir", plan.WorkingDir))

	if s.onSpawn != nil {
		s.onSpawn(proc)
	}
	return nil
}

// Stop takes the stored worker, leaving the slot empty, and sends it a
// forceful termination signal. It is a no-op when nothing is stored and safe
// to call repeatedly and concurrently with Start.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	proc := s.current
	s.current = nil
	if proc != nil {
		proc.kill()
	}
	s.mu.Unlock()

	if proc == nil {
		return
	}

	if s.metrics != nil {
		s.metrics.RecordStop()
	}
	proc.logger.Info("Worker terminated")
}

// Running reports whether a worker is stored
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// PID returns the stored worker's process ID, or 0
func (s *Supervisor) PID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	return s.current.PID()
}

// Done returns the stored worker's exit channel, or nil when empty
func (s *Supervisor) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return s.current.Done()
}

// reap collects the worker's exit status. The slot is left alone: an exited
// worker stays stored until Stop takes it.
func (s *Supervisor) reap(proc *Process) {
	proc.wait()

	if s.metrics != nil {
		s.metrics.RecordExit(proc.exitErr)
	}
	proc.logger.Info("Worker exited",
		zap.Duration("uptime", proc.Uptime()),
		zap.NamedError("exit", proc.exitErr))
}

func (s *Supervisor) recordSpawn(err error) {
	if s.metrics != nil {
		s.metrics.RecordSpawn(err)
	}
}
