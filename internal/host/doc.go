// Package host models the capabilities the shell needs from its GUI host.
//
// The windowing framework is treated as a black box exposing three things:
//   - Paths: the bundle resource directory and the per-user data directory
//   - StateStore: a key-value "managed state" shared across callbacks
//   - EventSource: registration for the ready and close-requested events
//
// Desktop, Store and Loop are the concrete headless implementations used by
// cmd/shell. Loop delivers ready and close-requested on different goroutines,
// as GUI frameworks do from their own dispatch threads.
package host
