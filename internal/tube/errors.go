package tube

import (
	"errors"
	"fmt"
)

// ErrDegenerateCurve matches any DegenerateCurveError.
var ErrDegenerateCurve = errors.New("degenerate curve")

// DegenerateCurveError reports a curve whose sampled length is zero, i.e. all of its
// points coincide.
type DegenerateCurveError struct {
	ID string
}

func (e *DegenerateCurveError) Error() string {
	return fmt.Sprintf("tube: curve %q has zero length", e.ID)
}

func (e *DegenerateCurveError) Is(target error) bool { return target == ErrDegenerateCurve }
