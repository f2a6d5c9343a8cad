package resolver

import "strings"

// ErrorList collects resolution errors across scopes: the engine reports all
// errors it finds rather than stopping at the first.
type ErrorList []error

// Append adds an error to the list, flattening nested lists.  Appending nil
// is a no-op.
func (e *ErrorList) Append(err error) {
	if err == nil {
		return
	}
	if list, ok := err.(ErrorList); ok {
		*e = append(*e, list...)
		return
	}
	*e = append(*e, err)
}

// ErrorOrNil returns the list as an error, or nil if empty.
func (e ErrorList) ErrorOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e ErrorList) Unwrap() []error {
	return e
}

// Error implements the error interface.
func (e ErrorList) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
