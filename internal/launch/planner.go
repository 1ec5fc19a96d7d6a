package launch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/GriffinCanCode/ProChat/shell/internal/shared/paths"
)

// DefaultEntry is the compiled worker entry, relative to the api directory.
const DefaultEntry = "dist/index.js"

// Plan describes a single worker launch.
type Plan struct {
	Executable Executable
	Entry      string
	WorkingDir string
}

// Args returns the worker's command-line arguments.
func (p *Plan) Args() []string {
	return []string{p.Entry}
}

// Planner builds launch plans from resolved paths.
type Planner struct {
	policy ExecutablePolicy
	entry  string
}

// Option configures a Planner
type Option func(*Planner)

// WithPolicy overrides the interpreter selection policy
func WithPolicy(policy ExecutablePolicy) Option {
	return func(p *Planner) {
		p.policy = policy
	}
}

// WithEntry overrides the entry artifact, slash-separated and relative to
// the api directory
func WithEntry(entry string) Option {
	return func(p *Planner) {
		p.entry = entry
	}
}

// NewPlanner creates a planner with the default policy and entry.
func NewPlanner(opts ...Option) *Planner {
	p := &Planner{
		policy: DefaultExecutablePolicy(),
		entry:  DefaultEntry,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan checks that the entry artifact exists and selects the interpreter.
func (p *Planner) Plan(resolved *paths.Resolved) (*Plan, error) {
	if resolved == nil {
		return nil, fmt.Errorf("resolved paths cannot be nil")
	}
	if err := resolved.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resolved paths: %w", err)
	}

	apiDir := resolved.APIDir()
	entry := filepath.Join(apiDir, filepath.FromSlash(p.entry))
	if _, err := os.Stat(entry); err != nil {
		return nil, &EntryMissingError{Path: entry, Err: err}
	}

	return &Plan{
		Executable: p.policy.Select(resolved.ResourceDir),
		Entry:      entry,
		WorkingDir: apiDir,
	}, nil
}
