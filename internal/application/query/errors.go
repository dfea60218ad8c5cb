package query

import (
	"fmt"
	"strings"

	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// PartialResolutionError reports a multi-part resolution in which some
// sub-resolutions failed.  Records holds what did resolve, already
// deduplicated and ordered.
type PartialResolutionError struct {
	*errors.AppError

	// Failed lists the identifiers whose sub-resolution failed, as
	// "<field>=<value>".  A failed attribute-only search lists its criteria.
	Failed  []string
	Records []*patent.Application
}

func newPartialResolutionError(failed []string, records []*patent.Application, cause error) *PartialResolutionError {
	ae := errors.New(errors.ErrCodePartialResolution, "some identifiers could not be resolved").
		WithDetail(fmt.Sprintf("failed=%d resolved=%d", len(failed), len(records))).
		WithCause(cause)
	return &PartialResolutionError{AppError: ae, Failed: failed, Records: records}
}

// Unwrap exposes the AppError so code predicates see QRY_005.
func (e *PartialResolutionError) Unwrap() error { return e.AppError }

func (e *PartialResolutionError) Error() string {
	return e.AppError.Error() + " [" + strings.Join(e.Failed, ", ") + "]"
}

//Personal.AI order the ending
