// Package testutil builds world file fixtures for tests.
//
// It writes real SQLite databases with zstd-compressed, BLAKE3-hashed blobs,
// and MessagePack encoded schema and global data payloads, so storage, render
// and dispatcher tests exercise the same code paths as production files.
package testutil
