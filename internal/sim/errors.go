package sim

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrInvalidState indicates a particle buffer with NaN or Inf values.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates the particle buffers do not match the
	// configured particle count.
	ErrDimensionMismatch = errors.New("sim: particle count does not match constants")
)

// TickError wraps an error with the tick it occurred on.
type TickError struct {
	Tick    int
	Time    float64
	Wrapped error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %v", e.Tick, e.Time, e.Wrapped)
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
