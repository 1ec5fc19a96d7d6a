package config

import "fmt"

// BuildMode selects whether the shell supervises the worker itself.
type BuildMode string

const (
	// BuildModeRelease spawns and supervises the bundled worker
	BuildModeRelease BuildMode = "release"

	// BuildModeDebug leaves the worker to the developer
	BuildModeDebug BuildMode = "debug"
)

// DefaultBuildMode reports the mode compiled into this binary. Build with
// -tags debug for a debug shell.
func DefaultBuildMode() BuildMode {
	return compiledBuildMode
}

// IsDebug reports whether the worker is started outside the shell
func (m BuildMode) IsDebug() bool {
	return m == BuildModeDebug
}

// Validate rejects unknown modes
func (m BuildMode) Validate() error {
	switch m {
	case BuildModeRelease, BuildModeDebug:
		return nil
	default:
		return fmt.Errorf("invalid build mode %q (want %q or %q)", m, BuildModeRelease, BuildModeDebug)
	}
}
