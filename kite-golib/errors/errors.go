package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errorf is re-exported from fmt
var Errorf = fmt.Errorf

// New is an alias to Errorf
var New = Errorf

// ErrorfWithStack is Errorf re-exported from github.com/pkg/errors
var ErrorfWithStack = errors.Errorf

// WithStack is re-exported from github.com/pkg/errors
var WithStack = errors.WithStack

// Cause is re-exported from github.com/pkg/errors
var Cause = errors.Cause

// Is is re-exported from github.com/pkg/errors
var Is = errors.Is

// Kinds of failure the pipeline distinguishes. Callers match them with Is.
var (
	// ErrInvalidArgument marks a request that was rejected before any I/O, e.g. an unknown split.
	ErrInvalidArgument = New("invalid argument")
	// ErrNotFound marks an expected resource that does not exist.
	ErrNotFound = New("not found")
)

// WrapfOrNil is WithMessagef re-exported from github.com/pkg/errors
func WrapfOrNil(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.WithMessage(err, fmt.Sprintf(format, args...))
}

// Wrapf is WrapfOrNil if err != nil, and Errorf otherwise: it never returns nil
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return Errorf(format, args...)
	}
	return WrapfOrNil(err, format, args...)
}

// InvalidArgumentf returns an error of kind ErrInvalidArgument
func InvalidArgumentf(format string, args ...interface{}) error {
	return errors.WithMessage(ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFoundf returns an error of kind ErrNotFound
func NotFoundf(format string, args ...interface{}) error {
	return errors.WithMessage(ErrNotFound, fmt.Sprintf(format, args...))
}
