package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// Application-data subdirectories and files
const (
	StorageDirName   = "storage"
	MemoryDirName    = "memory"
	DatabaseFileName = "pro-chat.db"
)

// Resource subdirectories
const (
	APIDirName         = "api"
	NodeModulesDirName = "node_modules"
)

// dirPerm is applied to every directory created under the app data dir.
const dirPerm = 0o755

// BaseDirs supplies the two host-owned base directories.
type BaseDirs interface {
	ResourceDir() (string, error)
	AppDataDir() (string, error)
}

// Resolved holds every location the worker needs. All paths are absolute.
type Resolved struct {
	ResourceDir  string
	AppDataDir   string
	StorageDir   string
	MemoryDir    string
	DatabaseFile string
}

// Derive computes the layout from the two base directories without touching
// the filesystem.
func Derive(resourceDir, appDataDir string) (*Resolved, error) {
	resourceAbs, err := filepath.Abs(resourceDir)
	if err != nil {
		return nil, &ResolutionError{Dir: "resource", Err: err}
	}
	dataAbs, err := filepath.Abs(appDataDir)
	if err != nil {
		return nil, &ResolutionError{Dir: "app data", Err: err}
	}

	return &Resolved{
		ResourceDir:  resourceAbs,
		AppDataDir:   dataAbs,
		StorageDir:   filepath.Join(dataAbs, StorageDirName),
		MemoryDir:    filepath.Join(dataAbs, MemoryDirName),
		DatabaseFile: filepath.Join(dataAbs, DatabaseFileName),
	}, nil
}

// Resolve asks the host for its base directories, derives the layout and
// makes sure the writable directories exist.
func Resolve(base BaseDirs) (*Resolved, error) {
	resourceDir, err := base.ResourceDir()
	if err != nil {
		return nil, &ResolutionError{Dir: "resource", Err: err}
	}
	appDataDir, err := base.AppDataDir()
	if err != nil {
		return nil, &ResolutionError{Dir: "app data", Err: err}
	}

	resolved, err := Derive(resourceDir, appDataDir)
	if err != nil {
		return nil, err
	}
	if err := resolved.EnsureDirectories(); err != nil {
		return nil, err
	}
	return resolved, nil
}

// APIDir returns the worker's working directory
func (r *Resolved) APIDir() string {
	return filepath.Join(r.ResourceDir, APIDirName)
}

// NodeModulesDir returns the module resolution root shipped with the bundle
func (r *Resolved) NodeModulesDir() string {
	return filepath.Join(r.ResourceDir, NodeModulesDirName)
}

// WritableDirectories returns all directories that must exist before launch,
// parents first.
func (r *Resolved) WritableDirectories() []string {
	return []string{
		r.AppDataDir,
		r.StorageDir,
		r.MemoryDir,
	}
}

// EnsureDirectories creates the writable directories if they are missing.
// Calling it again on an existing layout is a no-op.
func (r *Resolved) EnsureDirectories() error {
	for _, dir := range r.WritableDirectories() {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return &IOError{Path: dir, Err: err}
		}
	}
	return nil
}

// Validate checks that the layout is complete and absolute.
func (r *Resolved) Validate() error {
	fields := map[string]string{
		"resource dir":  r.ResourceDir,
		"app data dir":  r.AppDataDir,
		"storage dir":   r.StorageDir,
		"memory dir":    r.MemoryDir,
		"database file": r.DatabaseFile,
	}
	for name, p := range fields {
		if p == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
		if !filepath.IsAbs(p) {
			return fmt.Errorf("%s must be absolute: %s", name, p)
		}
	}
	return nil
}
