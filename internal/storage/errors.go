package storage

import "github.com/jmgilman/go/errors"

// Error codes specific to world files. Missing files and paths use
// errors.CodeNotFound, SQL failures use errors.CodeDatabase.
const (
	CodeCorruptBlob  errors.ErrorCode = "CORRUPT_BLOB"
	CodeHashMismatch errors.ErrorCode = "HASH_MISMATCH"
)
