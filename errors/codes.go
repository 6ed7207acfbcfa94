package errors

// ErrorCode is the machine-readable code returned in API error bodies
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1004
	ErrorCode_VALIDATION_FAILED ErrorCode = 1005
	ErrorCode_SERVICE_DISABLED  ErrorCode = 1006

	// Meeting
	ErrorCode_MEETING_NOT_FOUND ErrorCode = 2000
	ErrorCode_MEETING_NO_AGENDA ErrorCode = 2001

	// AI
	ErrorCode_AI_ANALYSIS_FAILED      ErrorCode = 3000
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 3001
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = 3002
	ErrorCode_AI_EMPTY_RESPONSE       ErrorCode = 3003

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 4000
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 4001

	// Database
	ErrorCode_DB_QUERY_FAILED ErrorCode = 5000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_VALIDATION_FAILED:          "VALIDATION_FAILED",
	ErrorCode_SERVICE_DISABLED:           "SERVICE_DISABLED",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_MEETING_NO_AGENDA:          "MEETING_NO_AGENDA",
	ErrorCode_AI_ANALYSIS_FAILED:         "AI_ANALYSIS_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:    "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:     "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_EMPTY_RESPONSE:          "AI_EMPTY_RESPONSE",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
