package schema

import "github.com/jmgilman/go/errors"

// Error codes reported by this package.
const (
	CodeDecodeFailed     errors.ErrorCode = "SCHEMA_DECODE_FAILED"
	CodeGlobalDataFailed errors.ErrorCode = "GLOBAL_DATA_DECODE_FAILED"
)
