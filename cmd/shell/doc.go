// Package main is the entry point for the ProChat desktop shell.
//
// The shell supervises the bundled API worker for the lifetime of its window:
//
//	window ready  → resolve paths → plan launch → build env → spawn worker
//	close request → terminate worker
//
// Configuration:
//   - Environment variables (12-factor, see internal/infrastructure/config)
//   - Optional TOML/YAML file via --config
//   - CLI flags (override both)
//
// Usage:
//
//	# Release behaviour, supervising <resources>/api/dist/index.js
//	./prochat-shell --resources /opt/prochat
//
//	# Debug behaviour: start the API yourself, the shell only hosts the window
//	./prochat-shell --mode debug --dev
//
// Signals:
//   - SIGINT, SIGTERM: close the window, terminating the worker
package main
