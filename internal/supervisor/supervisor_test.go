package supervisor

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/ProChat/shell/internal/environment"
	"github.com/GriffinCanCode/ProChat/shell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ProChat/shell/internal/launch"
	"github.com/GriffinCanCode/ProChat/shell/internal/logging"
)

const sleeper = "exec sleep 30\n"

// scriptPlan runs script through sh in place of the node interpreter.
func scriptPlan(t *testing.T, script string) *launch.Plan {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	entry := filepath.Join(dir, "index.js")
	require.NoError(t, os.WriteFile(entry, []byte(script), 0o644))

	return &launch.Plan{
		Executable: launch.Executable{Path: sh},
		Entry:      entry,
		WorkingDir: dir,
	}
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("worker did not exit")
	}
}

func quiet() Option {
	return WithOutput(io.Discard, io.Discard)
}

func TestStopBeforeStart(t *testing.T) {
	s := New()

	assert.NotPanics(t, s.Stop)
	assert.NotPanics(t, s.Stop)
	assert.False(t, s.Running())
	assert.Zero(t, s.PID())
	assert.Nil(t, s.Done())
}

func TestStartThenStop(t *testing.T) {
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	s := New(quiet(), WithMetrics(metrics))

	require.NoError(t, s.Start(context.Background(), scriptPlan(t, sleeper), environment.Environment{}))
	assert.True(t, s.Running())
	assert.Positive(t, s.PID())

	done := s.Done()
	require.NotNil(t, done)

	s.Stop()
	assert.False(t, s.Running())
	waitDone(t, done)

	// Second stop observes the empty slot
	s.Stop()
	assert.False(t, s.Running())

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerSpawns.WithLabelValues(monitoring.ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerStops))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerRunning))
}

func TestStartSpawnContract(t *testing.T) {
	plan := scriptPlan(t, strings.Join([]string{
		`echo "NODE_PATH=$NODE_PATH"`,
		`echo "DATABASE_URL=$DATABASE_URL"`,
		`echo "STORAGE_PATH=$STORAGE_PATH"`,
		`echo "MEMORY_PATH=$MEMORY_PATH"`,
		`echo "INHERITED=$INHERITED"`,
		`echo "ARG=$0"`,
		`echo "CWD=$(pwd -P)"`,
		`if read line; then echo "STDIN=open"; else echo "STDIN=closed"; fi`,
	}, "\n")+"\n")

	var stdout bytes.Buffer
	s := New(
		WithOutput(&stdout, io.Discard),
		WithBaseEnv(func() []string {
			return []string{"PATH=" + os.Getenv("PATH"), "INHERITED=yes", "NODE_PATH=/should/be/replaced"}
		}),
	)

	env := environment.Environment{
		environment.NodePath:    "/res/node_modules",
		environment.DatabaseURL: environment.DatabaseFileURL("/a b/pro-chat.db"),
		environment.StoragePath: "/a b/storage",
		environment.MemoryPath:  "/a b/memory",
	}
	require.NoError(t, s.Start(context.Background(), plan, env))

	done := s.Done()
	waitDone(t, done)
	s.Stop()

	cwd, err := filepath.EvalSymlinks(plan.WorkingDir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Equal(t, []string{
		"NODE_PATH=/res/node_modules",
		"DATABASE_URL=file:///a%20b/pro-chat.db",
		"STORAGE_PATH=/a b/storage",
		"MEMORY_PATH=/a b/memory",
		"INHERITED=yes",
		"ARG=" + plan.Entry,
		"CWD=" + cwd,
		"STDIN=closed",
	}, lines)
}

func TestStartSpawnFailure(t *testing.T) {
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	s := New(quiet(), WithMetrics(metrics))

	tests := []struct {
		name       string
		executable string
	}{
		{"missing absolute interpreter", filepath.Join(t.TempDir(), "bin", "node")},
		{"bare name not on PATH", "prochat-missing-interpreter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &launch.Plan{
				Executable: launch.Executable{Path: tt.executable},
				Entry:      "/nonexistent/index.js",
				WorkingDir: t.TempDir(),
			}

			err := s.Start(context.Background(), plan, environment.Environment{})
			require.Error(t, err)

			var spawnErr *SpawnError
			require.ErrorAs(t, err, &spawnErr)
			assert.Equal(t, tt.executable, spawnErr.Executable)
			assert.Contains(t, err.Error(), tt.executable)
			assert.False(t, s.Running())
		})
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.WorkerSpawns.WithLabelValues(monitoring.ResultFailure)))
}

func TestSpawnFailureKeepsRunningWorker(t *testing.T) {
	s := New(quiet())
	defer s.Stop()

	require.NoError(t, s.Start(context.Background(), scriptPlan(t, sleeper), nil))
	pid := s.PID()

	bad := &launch.Plan{Executable: launch.Executable{Path: "prochat-missing-interpreter"}, Entry: "x", WorkingDir: t.TempDir()}
	require.Error(t, s.Start(context.Background(), bad, nil))

	assert.Equal(t, pid, s.PID())
}

func TestStartReplacesRunningWorker(t *testing.T) {
	s := New(quiet())
	defer s.Stop()

	require.NoError(t, s.Start(context.Background(), scriptPlan(t, sleeper), nil))
	first := s.Done()
	firstPID := s.PID()

	require.NoError(t, s.Start(context.Background(), scriptPlan(t, sleeper), nil))

	// The replaced worker is terminated, not leaked
	waitDone(t, first)
	assert.True(t, s.Running())
	assert.NotEqual(t, firstPID, s.PID())
}

func TestStartCancelledContext(t *testing.T) {
	s := New(quiet())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Start(ctx, scriptPlan(t, sleeper), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.Running())
}

func TestStartNilPlan(t *testing.T) {
	assert.Error(t, New().Start(context.Background(), nil, nil))
}

func TestExitedWorkerStaysTrackedUntilStop(t *testing.T) {
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	s := New(quiet(), WithMetrics(metrics))

	require.NoError(t, s.Start(context.Background(), scriptPlan(t, "exit 3\n"), nil))
	done := s.Done()
	waitDone(t, done)

	assert.True(t, s.Running())

	// Signalling an exited worker is silently ignored
	assert.NotPanics(t, s.Stop)
	assert.False(t, s.Running())

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.WorkerExits.WithLabelValues(monitoring.OutcomeError)) == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestProcessExitErr(t *testing.T) {
	s := New(quiet())

	var spawned *Process
	s.onSpawn = func(p *Process) { spawned = p }

	require.NoError(t, s.Start(context.Background(), scriptPlan(t, "exit 0\n"), nil))
	require.NotNil(t, spawned)

	assert.NoError(t, spawned.ExitErr())
	assert.True(t, spawned.Exited())
	assert.GreaterOrEqual(t, spawned.Uptime(), time.Duration(0))
	assert.Contains(t, spawned.ID.String(), "launch_")
	s.Stop()
}

func TestConcurrentStartStop(t *testing.T) {
	plan := scriptPlan(t, sleeper)
	s := New(quiet())

	var (
		mu      sync.Mutex
		spawned []*Process
	)
	s.onSpawn = func(p *Process) {
		mu.Lock()
		spawned = append(spawned, p)
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Start(context.Background(), plan, nil))
		}()
		go func() {
			defer wg.Done()
			s.Stop()
		}()
	}
	wg.Wait()

	s.Stop()
	assert.False(t, s.Running())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, spawned, 8)
	for _, p := range spawned {
		waitDone(t, p.Done())
	}
}

func TestWorkerLogsCarryLaunchID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := New(quiet(), WithLogger(&logging.Logger{Logger: zap.New(core)}))

	var spawned *Process
	s.onSpawn = func(p *Process) { spawned = p }

	require.NoError(t, s.Start(context.Background(), scriptPlan(t, sleeper), nil))
	require.NotNil(t, spawned)
	s.Stop()
	waitDone(t, spawned.Done())

	require.Eventually(t, func() bool {
		return logs.FilterMessage("Worker exited").Len() == 1
	}, 5*time.Second, 10*time.Millisecond)

	for _, msg := range []string{"Worker started", "Worker terminated", "Worker exited"} {
		entries := logs.FilterMessage(msg).All()
		require.Len(t, entries, 1, msg)
		fields := entries[0].ContextMap()
		assert.Equal(t, spawned.ID.String(), fields["launch_id"], msg)
		assert.Equal(t, int64(spawned.PID()), fields["pid"], msg)
		assert.Equal(t, "supervisor", entries[0].LoggerName, msg)
	}
}
