package autodiff

import (
	"fmt"
	"strconv"
)

// OpKind identifies a recorded operation.
//
// The set is closed: forward recording in variable.go and the adjoint table
// in backward.go both switch over every kind.
type OpKind int

// Recorded operations.
const (
	OpInput OpKind = iota // Leaf: parameter or data tensor, no inputs
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMatMul
	OpExp
	OpLn
	OpPow
	OpReLU
	OpSigmoid
	OpTanh
	OpSum
	OpMean
	OpTranspose
)

var opNames = [...]string{
	OpInput:     "Input",
	OpAdd:       "Add",
	OpSub:       "Sub",
	OpMul:       "Mul",
	OpDiv:       "Div",
	OpMatMul:    "MatMul",
	OpExp:       "Exp",
	OpLn:        "Ln",
	OpPow:       "Pow",
	OpReLU:      "ReLU",
	OpSigmoid:   "Sigmoid",
	OpTanh:      "Tanh",
	OpSum:       "Sum",
	OpMean:      "Mean",
	OpTranspose: "Transpose",
}

// String returns the operation name.
func (k OpKind) String() string {
	if k < 0 || int(k) >= len(opNames) {
		return "OpKind(" + strconv.Itoa(int(k)) + ")"
	}
	return opNames[k]
}

// Op is a recorded operation together with the attributes its adjoint needs.
//
//   - Exponent is set for OpPow.
//   - Axis and KeepDim are set for OpSum and OpMean; Axis is non-negative.
//   - Perm is set for OpTranspose and is a full, non-negative permutation.
type Op struct {
	Kind     OpKind
	Exponent float64
	Axis     int
	KeepDim  bool
	Perm     []int
}

// String formats the op with its attributes, e.g. "Sum(axis=1, keepDim=false)".
func (op Op) String() string {
	switch op.Kind {
	case OpPow:
		return fmt.Sprintf("Pow(%g)", op.Exponent)
	case OpSum, OpMean:
		return fmt.Sprintf("%s(axis=%d, keepDim=%t)", op.Kind, op.Axis, op.KeepDim)
	case OpTranspose:
		return fmt.Sprintf("Transpose(%v)", op.Perm)
	default:
		return op.Kind.String()
	}
}

// arity returns the number of inputs the op consumes.
func (op Op) arity() int {
	switch op.Kind {
	case OpInput:
		return 0
	case OpAdd, OpSub, OpMul, OpDiv, OpMatMul:
		return 2
	default:
		return 1
	}
}
