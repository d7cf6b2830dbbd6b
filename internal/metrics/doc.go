// Package metrics collects Prometheus metrics for one inspector run.
//
// The process is short-lived, so nothing is served over HTTP. Instead the
// registry is flushed once, after the command, to a textfile that a node
// exporter textfile collector can pick up.
//
// Metrics:
//   - brdbfs_commands_total{command,outcome}
//   - brdbfs_navigation_errors_total{reason}
//   - brdbfs_blob_bytes_total{stage}
//   - brdbfs_blob_read_duration_seconds
package metrics
