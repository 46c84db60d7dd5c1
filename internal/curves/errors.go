package curves

import (
	"errors"
	"fmt"
)

// ErrGeometry matches every GeometryError with errors.Is.
var ErrGeometry = errors.New("insufficient geometry")

// GeometryError reports a path that yields fewer than two usable points.
type GeometryError struct {
	ID     string
	Points int
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("curves: path %q has %d point(s), need at least 2", e.ID, e.Points)
}

func (e *GeometryError) Is(target error) bool { return target == ErrGeometry }
