package phases

import (
	"fmt"

	"github.com/cratelang/resolve/pkg/resolver"
)

// DependentFailureError is reported for a phase that was skipped because an
// earlier phase of the same scope failed.  It carries the original cause so
// no error is silently swallowed.
type DependentFailureError struct {
	// Scope is the qualified module name.
	Scope string
	// Phase is the phase that was skipped.
	Phase resolver.ScopeState
	// Cause is the earlier-phase error.
	Cause error
}

func (e *DependentFailureError) Error() string {
	return fmt.Sprintf("%v skipped for %q: dependent on earlier failure: %v", e.Phase, e.Scope, e.Cause)
}

// Unwrap supports errors.Is/errors.As against the cause.
func (e *DependentFailureError) Unwrap() error {
	return e.Cause
}
