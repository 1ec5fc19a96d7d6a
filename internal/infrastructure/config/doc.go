// Package config loads shell configuration.
//
// Sources, lowest precedence first:
//   - Default()
//   - an optional TOML or YAML file (LoadFile)
//   - environment variables (12-factor)
//
// Environment variables:
//
//	SHELL_BUILD_MODE            release | debug (default from the debug build tag)
//	SHELL_APP_IDENTIFIER        per-user data directory name (com.prochat.app)
//	SHELL_RESOURCE_DIR          override the bundle resource directory
//	SHELL_APP_DATA_DIR          override the per-user data directory
//	SHELL_BUNDLED_INTERPRETER   interpreter path inside the bundle (bin/node)
//	SHELL_FALLBACK_INTERPRETER  interpreter looked up on PATH (node)
//	SHELL_WORKER_ENTRY          entry artifact under api/ (dist/index.js)
//	LOG_LEVEL, LOG_DEV          logging
package config
