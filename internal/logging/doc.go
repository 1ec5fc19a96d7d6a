// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// The shell logs to stderr by default; the worker inherits stdout and stderr
// directly, so shell lines and worker lines interleave on the terminal.
//
// Example Usage:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	logger.Info("Worker started", zap.Int("pid", pid))
//	logger.Error("Failed to start API server", zap.Error(err))
package logging
