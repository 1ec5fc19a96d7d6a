package launch

import (
	"os"
	"path/filepath"
)

// Interpreter defaults
const (
	DefaultBundledInterpreter  = "bin/node"
	DefaultFallbackInterpreter = "node"
)

// ExecutablePolicy selects the worker interpreter.
type ExecutablePolicy struct {
	// BundledPath is slash-separated and relative to the resource directory
	BundledPath string

	// Fallback is a bare command name resolved through PATH at spawn time
	Fallback string
}

// Executable is the outcome of an ExecutablePolicy.
type Executable struct {
	Path    string
	Bundled bool
}

// DefaultExecutablePolicy prefers <resourceDir>/bin/node, then "node".
func DefaultExecutablePolicy() ExecutablePolicy {
	return ExecutablePolicy{
		BundledPath: DefaultBundledInterpreter,
		Fallback:    DefaultFallbackInterpreter,
	}
}

// Select evaluates the policy once against resourceDir. The fallback name is
// returned as-is whether or not it resolves on this machine.
func (p ExecutablePolicy) Select(resourceDir string) Executable {
	if p.BundledPath != "" {
		bundled := filepath.Join(resourceDir, filepath.FromSlash(p.BundledPath))
		if info, err := os.Stat(bundled); err == nil && !info.IsDir() {
			return Executable{Path: bundled, Bundled: true}
		}
	}

	fallback := p.Fallback
	if fallback == "" {
		fallback = DefaultFallbackInterpreter
	}
	return Executable{Path: fallback}
}
