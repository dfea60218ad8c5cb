package errors

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "COMMON_001", ErrCodeInternal.String())
}

func TestHTTPStatusForCode(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeInternal, 500},
		{ErrCodeBadRequest, 400},
		{ErrCodeValidation, 422},
		{ErrCodeUnknownFilterField, 400},
		{ErrCodeRecordNotFound, 404},
		{ErrCodeMultipleRecords, 409},
		{ErrCodePartialResolution, 207},
		{ErrCodeSourceUnavailable, 503},
		{ErrCodeIncompleteRecord, 422},
		{ErrorCode("UNKNOWN"), 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, HTTPStatusForCode(tt.code), tt.code)
	}
}

func TestDefaultMessageForCode(t *testing.T) {
	assert.Equal(t, "internal server error", DefaultMessageForCode(ErrCodeInternal))
	assert.Equal(t, "multiple records matched", DefaultMessageForCode(ErrCodeMultipleRecords))
	assert.Equal(t, "unknown error", DefaultMessageForCode(ErrorCode("UNKNOWN")))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(ErrCodeMalformedIdentifier))
	assert.False(t, IsClientError(ErrCodeSourceUnavailable))
	assert.True(t, IsServerError(ErrCodeSourceUnavailable))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "QRY", ModuleForCode(ErrCodePartialResolution))
	assert.Equal(t, "SRC", ModuleForCode(ErrCodeSourceParseError))
	assert.Equal(t, "TRM", ModuleForCode(ErrCodeIncompleteRecord))
	assert.Equal(t, "UNKNOWN", ModuleForCode(ErrorCode("")))
}

func TestAllCodesAreWellFormedAndMapped(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z]+_\d{3}$`)
	for code := range ErrorCodeHTTPStatus {
		assert.Regexp(t, pattern, string(code))
		_, ok := ErrorCodeMessage[code]
		assert.True(t, ok, "missing default message for %s", code)
	}
}

//Personal.AI order the ending
