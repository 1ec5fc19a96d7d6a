package host

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ErrNoHomeDirectory is returned when no per-user data location exists.
var ErrNoHomeDirectory = errors.New("no home directory available")

// DesktopConfig configures a Desktop host.
type DesktopConfig struct {
	// Identifier names the per-user data directory
	Identifier string

	// ResourceDir overrides the bundle location
	ResourceDir string

	// AppDataDir overrides the per-user data directory
	AppDataDir string
}

// Desktop is a headless App backed by the local OS.
type Desktop struct {
	cfg   DesktopConfig
	store *Store

	// Injected for tests
	executable func() (string, error)
	getenv     func(string) string
	homeDir    func() (string, error)
	configDir  func() (string, error)
	goos       string
}

// NewDesktop creates a desktop host
func NewDesktop(cfg DesktopConfig) *Desktop {
	return &Desktop{
		cfg:        cfg,
		store:      NewStore(),
		executable: os.Executable,
		getenv:     os.Getenv,
		homeDir:    os.UserHomeDir,
		configDir:  os.UserConfigDir,
		goos:       runtime.GOOS,
	}
}

// State returns the managed-state store
func (d *Desktop) State() StateStore {
	return d.store
}

// ResourceDir returns the directory holding the bundled resources. Without an
// override this is the running executable's directory, or Contents/Resources
// inside a macOS app bundle.
func (d *Desktop) ResourceDir() (string, error) {
	if d.cfg.ResourceDir != "" {
		return filepath.Abs(d.cfg.ResourceDir)
	}

	exe, err := d.executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	dir := filepath.Dir(exe)
	if d.goos == "darwin" && filepath.Base(dir) == "MacOS" && filepath.Base(filepath.Dir(dir)) == "Contents" {
		return filepath.Join(filepath.Dir(dir), "Resources"), nil
	}
	return dir, nil
}

// AppDataDir returns the per-user writable directory for this application.
func (d *Desktop) AppDataDir() (string, error) {
	if d.cfg.AppDataDir != "" {
		return filepath.Abs(d.cfg.AppDataDir)
	}
	if d.cfg.Identifier == "" {
		return "", fmt.Errorf("app identifier cannot be empty")
	}

	base, err := d.dataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, d.cfg.Identifier), nil
}

// dataHome follows XDG on Linux and the platform config dir elsewhere
// (~/Library/Application Support, %AppData%).
func (d *Desktop) dataHome() (string, error) {
	switch d.goos {
	case "darwin", "windows":
		dir, err := d.configDir()
		if err != nil || dir == "" {
			return "", fmt.Errorf("%w: %v", ErrNoHomeDirectory, err)
		}
		return dir, nil
	default:
		if xdg := d.getenv("XDG_DATA_HOME"); xdg != "" && filepath.IsAbs(xdg) {
			return xdg, nil
		}
		home, err := d.homeDir()
		if err != nil || home == "" {
			return "", fmt.Errorf("%w: %v", ErrNoHomeDirectory, err)
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}
