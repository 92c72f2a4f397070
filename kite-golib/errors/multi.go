package errors

import (
	"strings"
)

// Errors is a non-empty list of errors, e.g. from closing several artifacts.
type Errors []error

func (m Errors) Error() string {
	parts := make([]string, 0, len(m))
	for _, err := range m {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "\n")
}

// Append appends the given (possibly nil) error to errs, flattening nested lists.
// The result is nil only if both arguments are empty.
func Append(errs Errors, err error) Errors {
	switch err := err.(type) {
	case nil:
		return errs
	case Errors:
		return append(errs, err...)
	default:
		return append(errs, err)
	}
}

// Combine combines errors e & f into a single error
func Combine(e, f error) error {
	var errs Errors
	errs = Append(errs, e)
	errs = Append(errs, f)
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errs
	}
}

// Defer is a helper method for deferring error-returning functions
func Defer(err *error, f func() error) {
	*err = Combine(*err, f())
}
