// Package tensor provides the N-dimensional array engine for tensorgrad.
package tensor

import "math"

// Float is a constraint for supported tensor element types.
// Every operation in this package is generic over 32- and 64-bit floats.
type Float interface {
	~float32 | ~float64
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T Float]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	default:
		return Float64
	}
}

// Numeric capability.
//
// Elementary functions are evaluated in float64 and rounded back to T,
// which is exact for float64 and correctly rounded for float32 inputs.

// Zero returns the additive identity of T.
func Zero[T Float]() T { return 0 }

// One returns the multiplicative identity of T.
func One[T Float]() T { return 1 }

// Epsilon returns the machine epsilon of T.
func Epsilon[T Float]() T {
	if inferDataType[T]() == Float32 {
		return T(1.1920929e-07)
	}
	return T(2.220446049250313e-16)
}

// Inf returns positive infinity if sign >= 0, negative infinity otherwise.
func Inf[T Float](sign int) T {
	return T(math.Inf(sign))
}

// Sqrt returns the square root of x.
func Sqrt[T Float](x T) T { return T(math.Sqrt(float64(x))) }

// Exp returns e**x.
func Exp[T Float](x T) T { return T(math.Exp(float64(x))) }

// Log returns the natural logarithm of x.
func Log[T Float](x T) T { return T(math.Log(float64(x))) }

// Pow returns x**p.
func Pow[T Float](x, p T) T { return T(math.Pow(float64(x), float64(p))) }

// Tanh returns the hyperbolic tangent of x.
func Tanh[T Float](x T) T { return T(math.Tanh(float64(x))) }

// Abs returns |x|.
func Abs[T Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Max returns the larger of a and b. NaN in either operand propagates.
func Max[T Float](a, b T) T {
	return T(math.Max(float64(a), float64(b)))
}

// Min returns the smaller of a and b. NaN in either operand propagates.
func Min[T Float](a, b T) T {
	return T(math.Min(float64(a), float64(b)))
}

// IsNaN reports whether x is a NaN.
func IsNaN[T Float](x T) bool { return x != x }

// IsInf reports whether x is an infinity with the given sign (see math.IsInf).
func IsInf[T Float](x T, sign int) bool { return math.IsInf(float64(x), sign) }

// Sigmoid returns 1 / (1 + exp(-x)).
func Sigmoid[T Float](x T) T {
	return T(1.0 / (1.0 + math.Exp(-float64(x))))
}

// Sin returns the sine of x.
func Sin[T Float](x T) T { return T(math.Sin(float64(x))) }

// Cos returns the cosine of x.
func Cos[T Float](x T) T { return T(math.Cos(float64(x))) }

// Floor returns the greatest integer value less than or equal to x.
func Floor[T Float](x T) T { return T(math.Floor(float64(x))) }

// Ceil returns the least integer value greater than or equal to x.
func Ceil[T Float](x T) T { return T(math.Ceil(float64(x))) }

// Round rounds x to the nearest integer, half away from zero.
func Round[T Float](x T) T { return T(math.Round(float64(x))) }

// Sign returns -1, 0 or 1 according to the sign of x. NaN stays NaN.
func Sign[T Float](x T) T {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x // 0, -0 or NaN
	}
}
