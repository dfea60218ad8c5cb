// Package errors_test provides unit tests for the AppError type, factory
// functions, and error-chain helpers defined in pkg/errors/errors.go.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// TestNew
// ─────────────────────────────────────────────────────────────────────────────

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"not found", errors.ErrCodeRecordNotFound, "no application matched 14095073"},
		{"malformed identifier", errors.ErrCodeMalformedIdentifier, "patent number must be numeric"},
		{"source unavailable", errors.ErrCodeSourceUnavailable, "examination data offline"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
		})
	}
}

func TestNew_StackIsPopulated(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.CodeInternal, "test")
	require.NotNil(t, ae)
	assert.Contains(t, ae.Stack, "errors_test.go")
}

func TestNewf_FormatsMessage(t *testing.T) {
	t.Parallel()

	ae := errors.Newf(errors.ErrCodeMultipleRecords, "%d records matched", 3)
	assert.Equal(t, "3 records matched", ae.Message)
}

// ─────────────────────────────────────────────────────────────────────────────
// TestWrap
// ─────────────────────────────────────────────────────────────────────────────

func TestWrap_NilErrReturnsNil(t *testing.T) {
	t.Parallel()

	result := errors.Wrap(nil, errors.CodeInternal, "should not matter")
	assert.Nil(t, result)
}

func TestWrap_CauseChainIsPreserved(t *testing.T) {
	t.Parallel()

	root := stderrors.New("dial tcp: connection refused")
	wrapped := errors.Wrap(root, errors.ErrCodeSourceUnavailable, "search failed")

	require.NotNil(t, wrapped)
	assert.Equal(t, errors.ErrCodeSourceUnavailable, wrapped.Code)
	assert.Equal(t, root, stderrors.Unwrap(wrapped))
}

func TestWrap_PreservesOriginalCodeWhenCodeUnknown(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeRecordNotFound, "not found")
	outer := errors.Wrap(inner, errors.CodeUnknown, "adding context")

	require.NotNil(t, outer)
	assert.Equal(t, errors.ErrCodeRecordNotFound, outer.Code)
}

func TestWrap_UnknownCodeOnPlainErrorBecomesInternal(t *testing.T) {
	t.Parallel()

	outer := errors.Wrap(stderrors.New("boom"), errors.CodeUnknown, "context")
	assert.Equal(t, errors.ErrCodeInternal, outer.Code)
}

func TestWrap_OverridesCodeWhenExplicit(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeRecordNotFound, "not found")
	outer := errors.Wrap(inner, errors.CodeInternal, "unexpected state")

	assert.Equal(t, errors.CodeInternal, outer.Code)
	assert.True(t, errors.IsNotFound(outer), "inner code must stay visible through the chain")
}

// ─────────────────────────────────────────────────────────────────────────────
// TestError_Method
// ─────────────────────────────────────────────────────────────────────────────

func TestError_FormatWithoutDetail(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.ErrCodeRecordNotFound, "no record matched")
	assert.Equal(t, "[QRY_004] no record matched", ae.Error())
}

func TestError_FormatWithDetail(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.ErrCodeUnknownFilterField, "unknown filter field").
		WithDetail("field=colour")
	s := ae.Error()

	assert.True(t, strings.HasPrefix(s, "[QRY_001]"))
	assert.Contains(t, s, "field=colour")
}

// ─────────────────────────────────────────────────────────────────────────────
// TestWithDetail / TestWithCause
// ─────────────────────────────────────────────────────────────────────────────

func TestWithDetail_SetsDetailOnCopy(t *testing.T) {
	t.Parallel()

	original := errors.NotFound("resource missing")
	detailed := original.WithDetail("id=42")

	assert.Empty(t, original.Detail)
	assert.Equal(t, "id=42", detailed.Detail)
	assert.Equal(t, original.Code, detailed.Code)
}

func TestWithDetail_NilReceiverReturnsNil(t *testing.T) {
	t.Parallel()

	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("x"))
	assert.Nil(t, ae.WithCause(stderrors.New("x")))
}

func TestWithCause_AttachesCause(t *testing.T) {
	t.Parallel()

	root := stderrors.New("unexpected EOF")
	ae := errors.New(errors.ErrCodeSourceParseError, "bad payload").WithCause(root)

	assert.Equal(t, root, stderrors.Unwrap(ae))
	assert.True(t, stderrors.Is(ae, root))
}

// ─────────────────────────────────────────────────────────────────────────────
// Kind predicates
// ─────────────────────────────────────────────────────────────────────────────

func TestKindPredicates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"validation", errors.Validation("bad"), errors.IsValidation, true},
		{"unknown field is validation", errors.New(errors.ErrCodeUnknownFilterField, "x"), errors.IsValidation, true},
		{"malformed id is validation", errors.New(errors.ErrCodeMalformedIdentifier, "x"), errors.IsValidation, true},
		{"generic not found", errors.NotFound("x"), errors.IsNotFound, true},
		{"record not found", errors.New(errors.ErrCodeRecordNotFound, "x"), errors.IsNotFound, true},
		{"multiple", errors.New(errors.ErrCodeMultipleRecords, "x"), errors.IsMultipleRecords, true},
		{"source", errors.SourceUnavailable("x"), errors.IsSourceUnavailable, true},
		{"source timeout", errors.New(errors.ErrCodeSourceTimeout, "x"), errors.IsSourceUnavailable, true},
		{"partial", errors.New(errors.ErrCodePartialResolution, "x"), errors.IsPartialResolution, true},
		{"incomplete", errors.IncompleteRecord("x"), errors.IsIncompleteRecord, true},
		{"plain error", stderrors.New("x"), errors.IsNotFound, false},
		{"nil", nil, errors.IsValidation, false},
		{"wrapped by fmt", fmt.Errorf("ctx: %w", errors.NotFound("x")), errors.IsNotFound, true},
		{"mismatch", errors.Validation("x"), errors.IsNotFound, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.check(tc.err))
		})
	}
}

func TestGetCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrCodeIncompleteRecord,
		errors.GetCode(fmt.Errorf("outer: %w", errors.IncompleteRecord("no filing date"))))
}

//Personal.AI order the ending
