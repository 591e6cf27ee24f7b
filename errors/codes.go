package errors

// ErrorCode is the stable numeric code rendered in every error envelope
type ErrorCode int32

const (
	ErrorCode_HTTP_OK          ErrorCode = 200
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1000
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1001
	ErrorCode_VALIDATION       ErrorCode = 1002
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1100
	ErrorCode_INVALID_TOKEN    ErrorCode = 1101
	ErrorCode_TOKEN_EXPIRED    ErrorCode = 1102
	ErrorCode_NOT_FOUND        ErrorCode = 1200
	ErrorCode_INTERNAL         ErrorCode = 1500

	// Meeting lifecycle
	ErrorCode_MEETING_NOT_FOUND     ErrorCode = 2000
	ErrorCode_PRECONDITION_FAILED   ErrorCode = 2001
	ErrorCode_INVALID_TRANSITION    ErrorCode = 2002
	ErrorCode_CAPTURE_CONFLICT      ErrorCode = 2003
	ErrorCode_CAPTURE_NOT_FOUND     ErrorCode = 2004
	ErrorCode_SCOPE_INVALID         ErrorCode = 2005
	ErrorCode_SCHEDULE_FAILED       ErrorCode = 2006
	ErrorCode_CAPTURE_COMMIT_FAILED ErrorCode = 2007

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = 3000
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 3001
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 3002

	// Database
	ErrorCode_DB_QUERY_FAILED       ErrorCode = 4000
	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = 4001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                         "HTTP_OK",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_VALIDATION:                      "VALIDATION",
	ErrorCode_UNAUTHENTICATED:                 "UNAUTHENTICATED",
	ErrorCode_INVALID_TOKEN:                   "INVALID_TOKEN",
	ErrorCode_TOKEN_EXPIRED:                   "TOKEN_EXPIRED",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_MEETING_NOT_FOUND:               "MEETING_NOT_FOUND",
	ErrorCode_PRECONDITION_FAILED:             "PRECONDITION_FAILED",
	ErrorCode_INVALID_TRANSITION:              "INVALID_TRANSITION",
	ErrorCode_CAPTURE_CONFLICT:                "CAPTURE_CONFLICT",
	ErrorCode_CAPTURE_NOT_FOUND:               "CAPTURE_NOT_FOUND",
	ErrorCode_SCOPE_INVALID:                   "SCOPE_INVALID",
	ErrorCode_SCHEDULE_FAILED:                 "SCHEDULE_FAILED",
	ErrorCode_CAPTURE_COMMIT_FAILED:           "CAPTURE_COMMIT_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:           "DB_TRANSACTION_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
