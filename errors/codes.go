package errors

// ErrorCode identifies a category of application error
type ErrorCode int

const (
	ErrorCode_INTERNAL ErrorCode = iota
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_UNAUTHENTICATED
	ErrorCode_SCHEMA_VALIDATION
	ErrorCode_INDEX_MISMATCH
	ErrorCode_CLASSIFICATION_FAILED
	ErrorCode_NOTIFICATION_FAILED
	ErrorCode_INGEST_FAILED
	ErrorCode_DB_QUERY_FAILED
	ErrorCode_STORAGE_FAILED
	ErrorCode_EXTERNAL_API_FAILED
)

// String returns the canonical name for the error code
func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_INTERNAL:
		return "INTERNAL"
	case ErrorCode_INVALID_ARGUMENT:
		return "INVALID_ARGUMENT"
	case ErrorCode_NOT_FOUND:
		return "NOT_FOUND"
	case ErrorCode_UNAUTHENTICATED:
		return "UNAUTHENTICATED"
	case ErrorCode_SCHEMA_VALIDATION:
		return "SCHEMA_VALIDATION"
	case ErrorCode_INDEX_MISMATCH:
		return "INDEX_MISMATCH"
	case ErrorCode_CLASSIFICATION_FAILED:
		return "CLASSIFICATION_FAILED"
	case ErrorCode_NOTIFICATION_FAILED:
		return "NOTIFICATION_FAILED"
	case ErrorCode_INGEST_FAILED:
		return "INGEST_FAILED"
	case ErrorCode_DB_QUERY_FAILED:
		return "DB_QUERY_FAILED"
	case ErrorCode_STORAGE_FAILED:
		return "STORAGE_FAILED"
	case ErrorCode_EXTERNAL_API_FAILED:
		return "EXTERNAL_API_FAILED"
	default:
		return "UNKNOWN"
	}
}
