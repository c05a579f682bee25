package tensor

import (
	"errors"
	"fmt"
	"strings"
)

// Failure kinds. Every error returned by this package wraps exactly one of them,
// so callers can test with errors.Is.
var (
	ErrShapeMismatch     = errors.New("shape mismatch")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrInvalidAxis       = errors.New("invalid axis")
	ErrIndexOutOfBounds  = errors.New("index out of bounds")
)

// OpError describes a failed tensor operation with enough context
// (operand shapes, axis, index) to diagnose it without inspecting internals.
type OpError struct {
	Op      string  // Operation name (e.g., "add", "matmul")
	Kind    error   // One of the Err* sentinels
	Shapes  []Shape // Operand shapes involved
	Axis    int     // Offending axis, -1 if not applicable
	Index   []int   // Offending index, nil if not applicable
	Details string  // Additional details
}

// Error implements the error interface.
func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if len(e.Shapes) > 0 {
		parts := make([]string, len(e.Shapes))
		for i, s := range e.Shapes {
			parts[i] = s.String()
		}
		fmt.Fprintf(&b, " (shapes %s)", strings.Join(parts, ", "))
	}
	if e.Axis >= 0 {
		fmt.Fprintf(&b, " (axis %d)", e.Axis)
	}
	if e.Index != nil {
		fmt.Fprintf(&b, " (index %v)", e.Index)
	}
	if e.Details != "" {
		b.WriteString(": ")
		b.WriteString(e.Details)
	}
	return b.String()
}

// Unwrap returns the failure kind.
func (e *OpError) Unwrap() error {
	return e.Kind
}

func shapeError(op, details string, shapes ...Shape) error {
	return &OpError{Op: op, Kind: ErrShapeMismatch, Shapes: shapes, Axis: -1, Details: details}
}

func dimensionError(op, details string, shapes ...Shape) error {
	return &OpError{Op: op, Kind: ErrDimensionMismatch, Shapes: shapes, Axis: -1, Details: details}
}

func axisError(op string, axis int, shape Shape, details string) error {
	return &OpError{Op: op, Kind: ErrInvalidAxis, Shapes: []Shape{shape}, Axis: axis, Details: details}
}

func indexError(op string, index []int, shape Shape, details string) error {
	return &OpError{
		Op:      op,
		Kind:    ErrIndexOutOfBounds,
		Shapes:  []Shape{shape},
		Axis:    -1,
		Index:   append([]int(nil), index...),
		Details: details,
	}
}
