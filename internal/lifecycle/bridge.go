package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ProChat/shell/internal/environment"
	"github.com/GriffinCanCode/ProChat/shell/internal/host"
	"github.com/GriffinCanCode/ProChat/shell/internal/infrastructure/config"
	"github.com/GriffinCanCode/ProChat/shell/internal/launch"
	"github.com/GriffinCanCode/ProChat/shell/internal/logging"
	"github.com/GriffinCanCode/ProChat/shell/internal/shared/id"
	"github.com/GriffinCanCode/ProChat/shell/internal/shared/paths"
	"github.com/GriffinCanCode/ProChat/shell/internal/supervisor"
)

// StateKey is the managed-state key the supervisor is registered under.
const StateKey = "api-process"

// Bridge drives the supervisor from host events.
type Bridge struct {
	app           host.App
	mode          config.BuildMode
	planner       *launch.Planner
	newSupervisor func() *supervisor.Supervisor
	logger        *logging.Logger

	// closed is set by the first close-requested and checked before a
	// supervisor is registered
	mu     sync.Mutex
	closed bool
}

// Option configures a Bridge
type Option func(*Bridge)

// WithPlanner replaces the default launch planner
func WithPlanner(planner *launch.Planner) Option {
	return func(b *Bridge) {
		b.planner = planner
	}
}

// WithSupervisorFactory controls how supervisors are created
func WithSupervisorFactory(factory func() *supervisor.Supervisor) Option {
	return func(b *Bridge) {
		b.newSupervisor = factory
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *logging.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// New creates a bridge for app running in mode.
func New(app host.App, mode config.BuildMode, opts ...Option) *Bridge {
	b := &Bridge{
		app:     app,
		mode:    mode,
		planner: launch.NewPlanner(),
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.Component("lifecycle")
	if b.newSupervisor == nil {
		logger := b.logger
		b.newSupervisor = func() *supervisor.Supervisor {
			return supervisor.New(supervisor.WithLogger(logger))
		}
	}
	return b
}

// Register subscribes the bridge to events.
func (b *Bridge) Register(events host.EventSource) {
	events.OnReady(b.HandleReady)
	events.OnCloseRequested(b.HandleCloseRequested)
}

// HandleReady starts the worker in release builds. It never fails: errors
// are logged and the host keeps running without a backend.
func (b *Bridge) HandleReady(ctx context.Context) {
	if b.mode.IsDebug() {
		b.logger.Debug("Debug build, expecting the API server to be started separately")
		return
	}
	if b.isClosed() {
		b.logger.Info("Window already closing, not starting API server")
		return
	}

	sup, err := b.startWorker(ctx)
	if err != nil {
		b.logger.Error("Failed to start API server", append(errorFields(err), zap.Error(err))...)
		return
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sup.Stop()
		b.logger.Info("Window closed during startup, API server terminated")
		return
	}
	if !b.app.State().Manage(StateKey, sup) {
		b.mu.Unlock()
		sup.Stop()
		b.logger.Warn("API server already registered, terminating duplicate")
		return
	}
	b.mu.Unlock()
}

// HandleCloseRequested stops the registered worker, if any.
func (b *Bridge) HandleCloseRequested(ctx context.Context, window id.WindowID) {
	b.mu.Lock()
	b.closed = true
	value, ok := b.app.State().Lookup(StateKey)
	b.mu.Unlock()

	if !ok {
		return
	}
	sup, ok := value.(*supervisor.Supervisor)
	if !ok {
		b.logger.Warn("Unexpected value in managed state",
			zap.String("key", StateKey),
			zap.String("type", fmt.Sprintf("%T", value)))
		return
	}

	b.logger.Info("Stopping API server", zap.String("window", window.String()))
	sup.Stop()
}

// startWorker runs resolve -> plan -> environment -> start.
func (b *Bridge) startWorker(ctx context.Context) (*supervisor.Supervisor, error) {
	resolved, err := paths.Resolve(b.app)
	if err != nil {
		return nil, err
	}

	plan, err := b.planner.Plan(resolved)
	if err != nil {
		return nil, err
	}

	env := environment.Build(resolved)

	sup := b.newSupervisor()
	if err := sup.Start(ctx, plan, env); err != nil {
		return nil, err
	}
	return sup, nil
}

func (b *Bridge) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// errorFields extracts the failing path or command for the log line.
func errorFields(err error) []zap.Field {
	var (
		resErr   *paths.ResolutionError
		ioErr    *paths.IOError
		missing  *launch.EntryMissingError
		spawnErr *supervisor.SpawnError
	)
	switch {
	case errors.As(err, &missing):
		return []zap.Field{zap.String("kind", "entry_missing"), zap.String("entry", missing.Path)}
	case errors.As(err, &spawnErr):
		return []zap.Field{zap.String("kind", "spawn"), zap.String("executable", spawnErr.Executable), zap.Strings("args", spawnErr.Args)}
	case errors.As(err, &ioErr):
		return []zap.Field{zap.String("kind", "io"), zap.String("path", ioErr.Path)}
	case errors.As(err, &resErr):
		return []zap.Field{zap.String("kind", "resolution"), zap.String("dir", resErr.Dir)}
	default:
		return nil
	}
}
