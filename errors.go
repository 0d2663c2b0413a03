package wiresign

import (
	"fmt"

	"github.com/wiresign/wiresign/auth"
)

// URL and authorization failures reuse the auth package sentinels, so
// errors.Is works the same on both sides of the package boundary.
var (
	ErrBadURL           = auth.ErrBadURL
	ErrBadAuthorization = auth.ErrBadAuthorization
)

// BadParametersError reports a parameter set that cannot be serialized. The
// offending set is attached for diagnostics.
type BadParametersError struct {
	Params Params
	Err    error
}

func (e *BadParametersError) Error() string {
	return fmt.Sprintf("bad request parameters: %v", e.Err)
}

func (e *BadParametersError) Unwrap() error { return e.Err }
