package reactor

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for reactor operations.
var (
	// ErrInvalidParameter indicates a parameter outside its valid range:
	// conversion or split ratio outside [0,1], or a negative input quantity.
	ErrInvalidParameter = errors.New("reactor: parameter out of valid range")

	// ErrIndexOutOfRange indicates an output index with no stored product,
	// either because the index exceeds the output count or because no
	// reaction has been run since construction or the last Reset.
	ErrIndexOutOfRange = errors.New("reactor: output index out of range")
)

// ParameterError reports a rejected parameter value with its valid bounds.
// It unwraps to ErrInvalidParameter.
type ParameterError struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
}

func (e *ParameterError) Error() string {
	if math.IsInf(e.Max, 1) {
		return fmt.Sprintf("reactor: %s must be non-negative, got %g", e.Name, e.Value)
	}
	return fmt.Sprintf("reactor: %s must be in [%g,%g], got %g", e.Name, e.Min, e.Max, e.Value)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// OutputIndexError reports an output lookup against a missing index.
// It unwraps to ErrIndexOutOfRange.
type OutputIndexError struct {
	Index int
	Len   int
}

func (e *OutputIndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("reactor: no outputs stored (index %d requested)", e.Index)
	}
	return fmt.Sprintf("reactor: output index %d out of range [0,%d)", e.Index, e.Len)
}

func (e *OutputIndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
