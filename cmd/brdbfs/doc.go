// Command brdbfs inspects world files from the command line.
//
// Usage:
//
//	brdbfs [flags] <world file path> <ls|read|edit> <path>
//
// Flags must come before the positional arguments:
//
//	--log-level      zap level for stderr logs (default from BRDBFS_LOG_LEVEL)
//	--log-dev        console log encoding
//	--schema-format  text, json or yaml rendering of .schema files
//	--no-verify      skip BLAKE3 verification of blob contents
//	--metrics-file   write Prometheus metrics to this file after the command
//
// Examples:
//
//	brdbfs my.brdb ls /
//	brdbfs my.brdb read World/0/GlobalData.mps > global.mps
//	brdbfs --schema-format json my.brdb read World/0/Bricks.schema
package main
