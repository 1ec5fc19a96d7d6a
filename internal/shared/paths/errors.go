package paths

import "fmt"

// ResolutionError reports that the host could not supply a base directory.
type ResolutionError struct {
	Dir string
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve %s directory: %v", e.Dir, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// IOError reports a failure to create a writable directory.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to create directory %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
