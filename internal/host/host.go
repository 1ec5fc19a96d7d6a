package host

import (
	"context"

	"github.com/GriffinCanCode/ProChat/shell/internal/shared/id"
)

// Paths supplies the two base directories owned by the host.
type Paths interface {
	ResourceDir() (string, error)
	AppDataDir() (string, error)
}

// StateStore is the host's managed-state store.
type StateStore interface {
	// Manage stores value under key. It reports false, leaving the existing
	// value in place, if key is already managed.
	Manage(key string, value any) bool

	// Lookup returns the value stored under key.
	Lookup(key string) (any, bool)
}

// App is a running host application.
type App interface {
	Paths
	State() StateStore
}

// ReadyHandler runs once, early in application startup
type ReadyHandler func(ctx context.Context)

// CloseRequestedHandler runs when a window is about to close
type CloseRequestedHandler func(ctx context.Context, window id.WindowID)

// EventSource delivers host lifecycle events.
type EventSource interface {
	OnReady(h ReadyHandler)
	OnCloseRequested(h CloseRequestedHandler)
}
