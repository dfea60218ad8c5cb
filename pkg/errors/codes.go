package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
// Codes are "<MODULE>_<NNN>"; the module prefix is recoverable with ModuleForCode.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeCanceled           ErrorCode = "COMMON_017"
	ErrCodeConfig             ErrorCode = "COMMON_018"
)

// Aliases
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeRateLimit    = ErrCodeTooManyRequests
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
)

// Query Module Error Codes
const (
	ErrCodeUnknownFilterField  ErrorCode = "QRY_001"
	ErrCodeMalformedIdentifier ErrorCode = "QRY_002"
	ErrCodeMultipleRecords     ErrorCode = "QRY_003"
	ErrCodeRecordNotFound      ErrorCode = "QRY_004"
	ErrCodePartialResolution   ErrorCode = "QRY_005"
	ErrCodeIndexOutOfRange     ErrorCode = "QRY_006"
	ErrCodeUnknownOrderField   ErrorCode = "QRY_007"
)

// Data Source Module Error Codes
const (
	ErrCodeSourceUnavailable ErrorCode = "SRC_001"
	ErrCodeSourceRateLimited ErrorCode = "SRC_002"
	ErrCodeSourceRejected    ErrorCode = "SRC_003"
	ErrCodeSourceParseError  ErrorCode = "SRC_004"
	ErrCodeSourceTimeout     ErrorCode = "SRC_005"
	ErrCodePackageFailed     ErrorCode = "SRC_006"
)

// Term Module Error Codes
const (
	ErrCodeIncompleteRecord ErrorCode = "TRM_001"
)

// ErrorCodeHTTPStatus maps ErrorCode to HTTP status code.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeCanceled:           499,
	ErrCodeConfig:             http.StatusInternalServerError,

	ErrCodeUnknownFilterField:  http.StatusBadRequest,
	ErrCodeMalformedIdentifier: http.StatusBadRequest,
	ErrCodeMultipleRecords:     http.StatusConflict,
	ErrCodeRecordNotFound:      http.StatusNotFound,
	ErrCodePartialResolution:   http.StatusMultiStatus,
	ErrCodeIndexOutOfRange:     http.StatusBadRequest,
	ErrCodeUnknownOrderField:   http.StatusBadRequest,

	ErrCodeSourceUnavailable: http.StatusServiceUnavailable,
	ErrCodeSourceRateLimited: http.StatusTooManyRequests,
	ErrCodeSourceRejected:    http.StatusBadGateway,
	ErrCodeSourceParseError:  http.StatusBadGateway,
	ErrCodeSourceTimeout:     http.StatusGatewayTimeout,
	ErrCodePackageFailed:     http.StatusBadGateway,

	ErrCodeIncompleteRecord: http.StatusUnprocessableEntity,
}

// ErrorCodeMessage maps ErrorCode to default error message.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeCanceled:           "request canceled",
	ErrCodeConfig:             "invalid configuration",

	ErrCodeUnknownFilterField:  "unknown filter field",
	ErrCodeMalformedIdentifier: "malformed identifier",
	ErrCodeMultipleRecords:     "multiple records matched",
	ErrCodeRecordNotFound:      "no record matched",
	ErrCodePartialResolution:   "some identifiers could not be resolved",
	ErrCodeIndexOutOfRange:     "index out of range",
	ErrCodeUnknownOrderField:   "unknown ordering field",

	ErrCodeSourceUnavailable: "data source unavailable",
	ErrCodeSourceRateLimited: "data source rate limited",
	ErrCodeSourceRejected:    "data source rejected the request",
	ErrCodeSourceParseError:  "failed to parse data source response",
	ErrCodeSourceTimeout:     "data source timed out",
	ErrCodePackageFailed:     "bulk package preparation failed",

	ErrCodeIncompleteRecord: "record is missing data required for term computation",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 1 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
