package pipeline

import (
	"errors"
	"fmt"
)

// InternalError reports an unexpected failure inside scoring or
// recommendation. Scoring and recommendation are total over validated input,
// so an InternalError always indicates a defect.
type InternalError struct {
	Campaign string
	Cause    any
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("pipeline: internal error running campaign %q: %v", e.Campaign, e.Cause)
}

// IsInternalError reports whether err is or wraps an *InternalError.
func IsInternalError(err error) bool {
	var ie *InternalError
	return errors.As(err, &ie)
}
