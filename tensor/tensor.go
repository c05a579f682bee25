// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensorgrad's N-dimensional arrays.
//
// The package defines:
//   - Tensor[T]: dense row-major array of float32 or float64 elements
//   - Shape: dimension sizes, with NumPy-style broadcasting
//   - OpError and the Err* sentinels describing failed operations
//
// Every operation returns a new tensor; inputs are never mutated except by
// the explicit in-place helpers (Set, CopyFrom, SubScaledInPlace).
//
// Example:
//
//	x, _ := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
//	y := tensor.Ones[float64](tensor.Shape{2})
//	z, _ := x.Add(y) // broadcasts y over the rows
package tensor

import (
	"math/rand"

	"github.com/born-ml/tensorgrad/internal/tensor"
)

// Float is the constraint for tensor element types.
type Float = tensor.Float

// DataType represents the element type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a dense N-dimensional array.
type Tensor[T Float] = tensor.Tensor[T]

// OpError describes a failed tensor operation.
type OpError = tensor.OpError

// Failure kinds wrapped by every error this package returns.
var (
	ErrShapeMismatch     = tensor.ErrShapeMismatch
	ErrDimensionMismatch = tensor.ErrDimensionMismatch
	ErrInvalidAxis       = tensor.ErrInvalidAxis
	ErrIndexOutOfBounds  = tensor.ErrIndexOutOfBounds
)

// BroadcastShapes returns the shape two operands broadcast to.
func BroadcastShapes(a, b Shape) (Shape, error) {
	return tensor.BroadcastShapes(a, b)
}

// Creation

// FromSlice creates a tensor from data laid out in row-major order.
func FromSlice[T Float](data []T, shape Shape) (*Tensor[T], error) {
	return tensor.FromSlice(data, shape)
}

// FromExport rebuilds a tensor from the output of Tensor.Export.
func FromExport[T Float](data []T, shape Shape) (*Tensor[T], error) {
	return tensor.FromExport(data, shape)
}

// FromRows creates a 2D tensor from equal-length rows.
func FromRows[T Float](rows [][]T) (*Tensor[T], error) {
	return tensor.FromRows(rows)
}

// Zeros creates a tensor filled with zeros.
func Zeros[T Float](shape Shape) *Tensor[T] { return tensor.Zeros[T](shape) }

// Ones creates a tensor filled with ones.
func Ones[T Float](shape Shape) *Tensor[T] { return tensor.Ones[T](shape) }

// Full creates a tensor filled with value.
func Full[T Float](shape Shape, value T) *Tensor[T] { return tensor.Full(shape, value) }

// Scalar creates a rank-0 tensor.
func Scalar[T Float](value T) *Tensor[T] { return tensor.Scalar(value) }

// Eye creates an n×n identity matrix.
func Eye[T Float](n int) *Tensor[T] { return tensor.Eye[T](n) }

// Arange creates a 1D tensor with values in [start, end) spaced by step.
func Arange[T Float](start, end, step T) *Tensor[T] { return tensor.Arange(start, end, step) }

// Linspace creates n evenly spaced values from start to end inclusive.
func Linspace[T Float](start, end T, n int) *Tensor[T] { return tensor.Linspace(start, end, n) }

// Rand creates a tensor with values uniform in [0, 1).
func Rand[T Float](shape Shape, rng *rand.Rand) *Tensor[T] { return tensor.Rand[T](shape, rng) }

// Randn creates a tensor with standard normal values.
func Randn[T Float](shape Shape, rng *rand.Rand) *Tensor[T] { return tensor.Randn[T](shape, rng) }

// Uniform creates a tensor with values uniform in [low, high).
func Uniform[T Float](shape Shape, low, high T, rng *rand.Rand) *Tensor[T] {
	return tensor.Uniform(shape, low, high, rng)
}

// Cat concatenates tensors along axis.
func Cat[T Float](tensors []*Tensor[T], axis int) (*Tensor[T], error) {
	return tensor.Cat(tensors, axis)
}

// Stack joins equally shaped tensors along a new axis.
func Stack[T Float](tensors []*Tensor[T], axis int) (*Tensor[T], error) {
	return tensor.Stack(tensors, axis)
}

// Where selects x where cond > 0 and y elsewhere, broadcasting all three.
func Where[T Float](cond, x, y *Tensor[T]) (*Tensor[T], error) { return tensor.Where(cond, x, y) }

// OneHot encodes 1D integer labels as rows of a [len, numClasses] matrix.
func OneHot[T Float](labels *Tensor[T], numClasses int) (*Tensor[T], error) {
	return tensor.OneHot(labels, numClasses)
}

// Convert copies t into a tensor of element type U.
func Convert[U, T Float](t *Tensor[T]) *Tensor[U] { return tensor.Convert[U](t) }
