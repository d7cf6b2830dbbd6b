// Package config provides 12-factor configuration for the world file inspector.
//
// Configuration is loaded from environment variables with sensible defaults.
// Command-line flags override environment variables.
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//
// Environment Variables:
//   - BRDBFS_LOG_LEVEL, BRDBFS_LOG_DEV
//   - BRDBFS_VERIFY_HASHES
//   - BRDBFS_SCHEMA_FORMAT (text, json, yaml)
//   - BRDBFS_METRICS_FILE
package config
