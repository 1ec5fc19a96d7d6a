// Package environment assembles the variables handed to the API worker.
package environment

import (
	"runtime"
	"sort"
	"strings"

	"github.com/GriffinCanCode/ProChat/shell/internal/shared/paths"
)

// Worker environment variables
const (
	NodePath    = "NODE_PATH"
	DatabaseURL = "DATABASE_URL"
	StoragePath = "STORAGE_PATH"
	MemoryPath  = "MEMORY_PATH"
)

// FileScheme prefixes the database connection URL
const FileScheme = "file://"

// Environment maps variable names to values.
type Environment map[string]string

// Build derives the worker environment from resolved paths. It has no side
// effects and cannot fail.
func Build(resolved *paths.Resolved) Environment {
	return Environment{
		NodePath:    resolved.NodeModulesDir(),
		DatabaseURL: DatabaseFileURL(resolved.DatabaseFile),
		StoragePath: resolved.StorageDir,
		MemoryPath:  resolved.MemoryDir,
	}
}

// DatabaseFileURL turns a database path into a file URL. Only spaces are
// escaped; '%', '#' and the rest pass through unchanged.
func DatabaseFileURL(dbPath string) string {
	return FileScheme + strings.ReplaceAll(dbPath, " ", "%20")
}

// Keys returns the variable names in sorted order
func (e Environment) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Pairs renders the environment as sorted KEY=value entries
func (e Environment) Pairs() []string {
	pairs := make([]string, 0, len(e))
	for _, k := range e.Keys() {
		pairs = append(pairs, k+"="+e[k])
	}
	return pairs
}

// Merge layers the environment over base (typically os.Environ()). Entries in
// base that share a name with e are dropped so e always wins. Names compare
// case-insensitively on Windows.
func (e Environment) Merge(base []string) []string {
	return e.merge(base, runtime.GOOS == "windows")
}

func (e Environment) merge(base []string, foldCase bool) []string {
	merged := make([]string, 0, len(base)+len(e))
	for _, kv := range base {
		name, _, _ := strings.Cut(kv, "=")
		if e.overrides(name, foldCase) {
			continue
		}
		merged = append(merged, kv)
	}
	return append(merged, e.Pairs()...)
}

func (e Environment) overrides(name string, foldCase bool) bool {
	if _, ok := e[name]; ok {
		return true
	}
	if !foldCase {
		return false
	}
	for k := range e {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}
