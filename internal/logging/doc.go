// Package logging provides structured logging using uber/zap.
//
// The inspector writes rendered data to stdout, so every logger built here
// writes to stderr by default. Two modes are available:
//   - Production: JSON output, warn level, for scripted use
//   - Development: Colored console output with caller information
//
// Example Usage:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	logger.Debug("world opened", zap.String("path", path))
//	logger.Error("read failed", zap.Error(err))
package logging
