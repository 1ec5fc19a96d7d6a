// Package paths derives the filesystem layout the API worker runs against.
//
// Two base directories come from the host: a read-only resource directory
// (the installed bundle) and a per-user writable application-data directory.
// Everything else is derived from those two.
//
// # Directory Structure
//
//	<resourceDir>/
//	  ├── api/
//	  │   └── dist/index.js   (worker entry, see package launch)
//	  ├── bin/node            (optional bundled interpreter)
//	  └── node_modules/
//	<appDataDir>/
//	  ├── storage/
//	  ├── memory/
//	  └── pro-chat.db         (created by the worker, never by the shell)
//
// # Usage
//
//	resolved, err := paths.Resolve(host)
//	if err != nil {
//	    // *paths.ResolutionError or *paths.IOError
//	}
//	dbFile := resolved.DatabaseFile
//
// The resource directory is never created or written.
package paths
