package errors

import (
	"fmt"
)

var ErrUnsupportedCriterion = fmt.Errorf("unsupported criterion")
var ErrTypeMismatch = fmt.Errorf("type mismatch")
var ErrAdaptation = fmt.Errorf("adaptation error")
var ErrInvalidArgument = fmt.Errorf("invalid argument")
var ErrInternal = fmt.Errorf("internal error")
var ErrRequest = fmt.Errorf("request error")
var ErrBadResponse = fmt.Errorf("bad response")
var ErrCommandFailed = fmt.Errorf("command failed")

type myError struct {
	msg    string
	target error
}

func (m myError) Error() string        { return m.msg }
func (m myError) Is(target error) bool { return target == m.target }

func NewUnsupportedCriterionError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrUnsupportedCriterion,
	}
}

func NewTypeMismatchError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrTypeMismatch,
	}
}

func NewAdaptationError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrAdaptation,
	}
}

func NewInvalidArgumentError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrInvalidArgument,
	}
}

// NewErrorFromErrorReport maps an error object from an Archicad JSON API
// response to a matchable command failure.
func NewErrorFromErrorReport(code int, message string) error {
	return &myError{
		msg:    fmt.Sprintf("[code: %d] %s", code, message),
		target: ErrCommandFailed,
	}
}
