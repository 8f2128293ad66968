package resolver

import (
	"errors"
	"fmt"

	"github.com/roach88/arcadejump/param"
)

// Error reports which input was null and therefore left an identity
// undefined.
type Error struct {
	Param param.Kind
}

// Errors returned by the resolver functions, one per parameter kind.
var (
	ErrHeight  = &Error{Param: param.Height}
	ErrTime    = &Error{Param: param.Time}
	ErrImpulse = &Error{Param: param.Impulse}
	ErrGravity = &Error{Param: param.Gravity}
)

func (e *Error) Error() string {
	switch e.Param {
	case param.Height:
		return "height of the peak cannot be null"
	case param.Time:
		return "time to reach the peak cannot be null"
	case param.Impulse:
		return "initial vertical impulse cannot be null"
	case param.Gravity:
		return "gravity cannot be null"
	}
	return fmt.Sprintf("%s cannot be null", e.Param)
}

// Is matches any *Error reporting the same parameter.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Param == e.Param
}

// HorizontalParam identifies an input of the horizontal helpers.
type HorizontalParam uint8

const (
	HorizontalTime HorizontalParam = iota
	HorizontalRange
	HorizontalSpeed
)

func (p HorizontalParam) String() string {
	switch p {
	case HorizontalTime:
		return "Time"
	case HorizontalRange:
		return "Range"
	case HorizontalSpeed:
		return "Speed"
	}
	return fmt.Sprintf("HorizontalParam(%d)", uint8(p))
}

// HorizontalError reports a null input of a horizontal helper.
type HorizontalError struct {
	Param HorizontalParam
}

// Errors returned by the horizontal helpers.
var (
	ErrHorizontalTime = &HorizontalError{Param: HorizontalTime}
	ErrRange          = &HorizontalError{Param: HorizontalRange}
	ErrSpeed          = &HorizontalError{Param: HorizontalSpeed}
)

func (e *HorizontalError) Error() string {
	switch e.Param {
	case HorizontalTime:
		return "time to reach the distance cannot be null"
	case HorizontalRange:
		return "distance cannot be null"
	case HorizontalSpeed:
		return "horizontal speed cannot be null"
	}
	return fmt.Sprintf("%s cannot be null", e.Param)
}

// Is matches any *HorizontalError reporting the same parameter.
func (e *HorizontalError) Is(target error) bool {
	t, ok := target.(*HorizontalError)
	return ok && t.Param == e.Param
}

// Widen turns a horizontal failure into ErrTime so it can flow through
// trajectory construction. Which horizontal input was null is lost. Other
// errors, including nil, are returned unchanged.
func Widen(err error) error {
	var h *HorizontalError
	if errors.As(err, &h) {
		return ErrTime
	}
	return err
}
