package supervisor

import "fmt"

// SpawnError reports that the OS refused to create the worker process.
type SpawnError struct {
	Executable string
	Args       []string
	Err        error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %s %v: %v", e.Executable, e.Args, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }
