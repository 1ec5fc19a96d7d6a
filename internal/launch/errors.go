package launch

import (
	"errors"
	"fmt"
)

// ErrEntryMissing matches any *EntryMissingError via errors.Is.
var ErrEntryMissing = errors.New("API entry not found")

// EntryMissingError reports that the worker entry artifact is absent.
type EntryMissingError struct {
	Path string
	Err  error
}

func (e *EntryMissingError) Error() string {
	return fmt.Sprintf("API entry not found at %s", e.Path)
}

func (e *EntryMissingError) Is(target error) bool {
	return target == ErrEntryMissing
}

func (e *EntryMissingError) Unwrap() error { return e.Err }
