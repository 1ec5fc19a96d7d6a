package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ProChat/shell/internal/host"
	"github.com/GriffinCanCode/ProChat/shell/internal/infrastructure/config"
	"github.com/GriffinCanCode/ProChat/shell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ProChat/shell/internal/launch"
	"github.com/GriffinCanCode/ProChat/shell/internal/lifecycle"
	"github.com/GriffinCanCode/ProChat/shell/internal/logging"
	"github.com/GriffinCanCode/ProChat/shell/internal/supervisor"
)

func main() {
	configPath := pflag.String("config", "", "TOML or YAML config file")
	mode := pflag.String("mode", "", "Build mode override: release or debug")
	resources := pflag.String("resources", "", "Resource directory override")
	dataDir := pflag.String("data-dir", "", "Application data directory override")
	logLevel := pflag.String("log-level", "", "Log level override")
	dev := pflag.Bool("dev", false, "Development logging (colored console)")
	pflag.Parse()

	cfg, err := configure(*configPath, overrides{
		mode:      *mode,
		resources: *resources,
		dataDir:   *dataDir,
		logLevel:  *logLevel,
		dev:       *dev,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(loggerConfig(cfg.Logging))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	code := run(cfg, logger)
	_ = logger.Sync()
	os.Exit(code)
}

func run(cfg *config.Config, logger *logging.Logger) int {
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())

	app := host.NewDesktop(host.DesktopConfig{
		Identifier:  cfg.Shell.Identifier,
		ResourceDir: cfg.Shell.ResourceDir,
		AppDataDir:  cfg.Shell.AppDataDir,
	})

	planner := launch.NewPlanner(
		launch.WithEntry(cfg.Worker.Entry),
		launch.WithPolicy(launch.ExecutablePolicy{
			BundledPath: cfg.Worker.BundledInterpreter,
			Fallback:    cfg.Worker.FallbackInterpreter,
		}),
	)

	bridge := lifecycle.New(app, cfg.Shell.BuildMode,
		lifecycle.WithLogger(logger),
		lifecycle.WithPlanner(planner),
		lifecycle.WithSupervisorFactory(func() *supervisor.Supervisor {
			return supervisor.New(
				supervisor.WithLogger(logger),
				supervisor.WithMetrics(metrics),
			)
		}),
	)

	loop := host.NewLoop(host.WithLoopLogger(logger))
	bridge.Register(loop)

	logger.Info("ProChat shell starting",
		zap.String("mode", string(cfg.Shell.BuildMode)),
		zap.String("identifier", cfg.Shell.Identifier))

	if err := loop.Run(context.Background()); err != nil {
		logger.Error("Event loop failed", zap.Error(err))
		return 1
	}

	snap := metrics.Snapshot()
	logger.Info("ProChat shell stopped",
		zap.Int64("worker_spawns", snap.Spawns),
		zap.Int64("worker_spawn_failures", snap.SpawnFailures),
		zap.Int64("worker_stops", snap.Stops),
		zap.Duration("uptime", metrics.Uptime()))
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

// overrides holds command-line values; empty fields leave the config alone.
type overrides struct {
	mode      string
	resources string
	dataDir   string
	logLevel  string
	dev       bool
}

func (o overrides) apply(cfg *config.Config) {
	if o.mode != "" {
		cfg.Shell.BuildMode = config.BuildMode(o.mode)
	}
	if o.resources != "" {
		cfg.Shell.ResourceDir = o.resources
	}
	if o.dataDir != "" {
		cfg.Shell.AppDataDir = o.dataDir
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.dev {
		cfg.Logging.Development = true
	}
}

// configure layers flags over file and environment values and validates the
// result once, so a flag can correct a bad environment value.
func configure(path string, flags overrides) (*config.Config, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loggerConfig starts from the production or development preset and keeps an
// explicit level on top.
func loggerConfig(cfg config.LogConfig) logging.Config {
	lc := logging.DefaultConfig()
	if cfg.Development {
		lc = logging.DevelopmentConfig()
	}
	if cfg.Level != "" {
		lc.Level = cfg.Level
	}
	return lc
}
