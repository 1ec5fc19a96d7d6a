package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all shell configuration.
type Config struct {
	Shell   ShellConfig  `toml:"shell" yaml:"shell"`
	Worker  WorkerConfig `toml:"worker" yaml:"worker"`
	Logging LogConfig    `toml:"logging" yaml:"logging"`
}

// ShellConfig holds host-side settings.
type ShellConfig struct {
	BuildMode   BuildMode `envconfig:"SHELL_BUILD_MODE" toml:"build_mode" yaml:"build_mode"`
	Identifier  string    `envconfig:"SHELL_APP_IDENTIFIER" toml:"identifier" yaml:"identifier"`
	ResourceDir string    `envconfig:"SHELL_RESOURCE_DIR" toml:"resource_dir" yaml:"resource_dir"`
	AppDataDir  string    `envconfig:"SHELL_APP_DATA_DIR" toml:"app_data_dir" yaml:"app_data_dir"`
}

// WorkerConfig holds API worker launch settings.
type WorkerConfig struct {
	BundledInterpreter  string `envconfig:"SHELL_BUNDLED_INTERPRETER" toml:"bundled_interpreter" yaml:"bundled_interpreter"`
	FallbackInterpreter string `envconfig:"SHELL_FALLBACK_INTERPRETER" toml:"fallback_interpreter" yaml:"fallback_interpreter"`
	Entry               string `envconfig:"SHELL_WORKER_ENTRY" toml:"entry" yaml:"entry"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" toml:"level" yaml:"level"` // empty keeps the logging preset's level
	Development bool   `envconfig:"LOG_DEV" toml:"development" yaml:"development"`
}

// DefaultIdentifier names the per-user data directory
const DefaultIdentifier = "com.prochat.app"

// Load loads configuration from environment variables over the defaults.
// Values are not validated; callers apply their own overrides first and then
// call Validate.
func Load() (*Config, error) {
	cfg := Default()
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads a TOML or YAML file over the defaults, then applies
// environment variables on top. The format follows the file extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns default configuration. The struct tags carry no envconfig
// defaults so that unset variables leave file values alone.
func Default() *Config {
	return &Config{
		Shell: ShellConfig{
			BuildMode:  DefaultBuildMode(),
			Identifier: DefaultIdentifier,
		},
		Worker: WorkerConfig{
			BundledInterpreter:  "bin/node",
			FallbackInterpreter: "node",
			Entry:               "dist/index.js",
		},
		Logging: LogConfig{
			Development: false,
		},
	}
}

// Validate checks field values that envconfig and the decoders accept blindly.
func (c *Config) Validate() error {
	if err := c.Shell.BuildMode.Validate(); err != nil {
		return err
	}
	if c.Shell.Identifier == "" {
		return fmt.Errorf("app identifier cannot be empty")
	}
	if strings.ContainsAny(c.Shell.Identifier, `/\`) || c.Shell.Identifier == "." || c.Shell.Identifier == ".." {
		return fmt.Errorf("app identifier %q must be a single path element", c.Shell.Identifier)
	}
	if c.Worker.Entry == "" {
		return fmt.Errorf("worker entry cannot be empty")
	}
	if filepath.IsAbs(c.Worker.Entry) || filepath.IsAbs(c.Worker.BundledInterpreter) {
		return fmt.Errorf("worker entry and bundled interpreter must be relative to the resource directory")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}
