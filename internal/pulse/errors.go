package pulse

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned when a caller-supplied scalar is outside
// the domain a pipeline stage is defined on (non-positive counts, zero
// signal cycles, non-finite values). Match with errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

func invalidParamf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
