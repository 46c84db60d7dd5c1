package svgpath

import (
	"errors"
	"fmt"
)

// ErrParse matches every ParseError with errors.Is.
var ErrParse = errors.New("svg parse error")

// ParseError reports a vector source that could not be read or understood.
// Element and ID locate the offending element when known.
type ParseError struct {
	Element string
	ID      string
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Element != "" && e.ID != "":
		return fmt.Sprintf("svg: <%s id=%q>: %v", e.Element, e.ID, e.Err)
	case e.Element != "":
		return fmt.Sprintf("svg: <%s>: %v", e.Element, e.Err)
	}
	return fmt.Sprintf("svg: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }
