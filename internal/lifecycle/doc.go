// Package lifecycle connects host lifecycle events to the worker supervisor.
//
// On ready (release builds only) the bridge resolves paths, plans the launch,
// builds the worker environment and starts a supervisor, then registers the
// supervisor in the host's managed state under StateKey. Any failure is
// logged and swallowed so the window still opens.
//
// On close-requested the bridge looks the supervisor up and stops it. A
// missing entry is normal (debug build, failed startup).
package lifecycle
