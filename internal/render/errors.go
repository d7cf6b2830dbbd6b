package render

import "github.com/jmgilman/go/errors"

// Error codes reported by Render. Every error carries a "path" context field.
const (
	CodeMissingSuffix         errors.ErrorCode = "MISSING_SUFFIX"
	CodeStorageReadFailed     errors.ErrorCode = "STORAGE_READ_FAILED"
	CodeGlobalDataUnavailable errors.ErrorCode = "GLOBAL_DATA_UNAVAILABLE"
	CodeSchemaDecodeFailed    errors.ErrorCode = "SCHEMA_DECODE_FAILED"
	CodeInvalidEncoding       errors.ErrorCode = "INVALID_ENCODING"
	CodeUnsupportedFileType   errors.ErrorCode = "UNSUPPORTED_FILE_TYPE"
)
