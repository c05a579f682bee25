package tensor

import (
	"fmt"
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
// Panics if the shape has a negative dimension.
//
// Example:
//
//	t := tensor.Zeros[float32](tensor.Shape{3, 4})
func Zeros[T Float](shape Shape) *Tensor[T] {
	if err := shape.Validate(); err != nil {
		panic(err)
	}
	// Data is already zero-initialized by make()
	return newTensor(make([]T, shape.NumElements()), shape.Clone())
}

// Ones creates a tensor filled with ones.
//
// Example:
//
//	t := tensor.Ones[float64](tensor.Shape{2, 3})
func Ones[T Float](shape Shape) *Tensor[T] {
	return Full(shape, One[T]())
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](tensor.Shape{3, 3}, 3.14)
func Full[T Float](shape Shape, value T) *Tensor[T] {
	t := Zeros[T](shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Scalar creates a rank-0 tensor holding value.
func Scalar[T Float](value T) *Tensor[T] {
	return newTensor([]T{value}, Shape{})
}

// FromRows creates a rank-2 tensor from nested row data.
// All rows must have the same length.
//
// Example:
//
//	m, err := tensor.FromRows([][]float64{{1, 2}, {3, 4}}) // Shape: [2, 2]
func FromRows[T Float](rows [][]T) (*Tensor[T], error) {
	if len(rows) == 0 {
		return Zeros[T](Shape{0, 0}), nil
	}

	cols := len(rows[0])
	data := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, shapeError("from_rows",
				fmt.Sprintf("row %d has %d columns, expected %d", i, len(row), cols))
		}
		data = append(data, row...)
	}
	return newTensor(data, Shape{len(rows), cols}), nil
}

// Eye creates a 2D identity matrix.
//
// Example:
//
//	t := tensor.Eye[float32](3) // 3x3 identity matrix
func Eye[T Float](n int) *Tensor[T] {
	t := Zeros[T](Shape{n, n})
	for i := 0; i < n; i++ {
		t.data[i*n+i] = 1
	}
	return t
}

// OneHot encodes a 1D tensor of class labels as a [len(labels), numClasses]
// matrix. Labels are rounded to the nearest integer and must lie in
// [0, numClasses), otherwise ErrIndexOutOfBounds is returned.
//
// Example:
//
//	labels, _ := tensor.FromSlice([]float64{2, 0}, tensor.Shape{2})
//	m, _ := tensor.OneHot(labels, 3) // [[0, 0, 1], [1, 0, 0]]
func OneHot[T Float](labels *Tensor[T], numClasses int) (*Tensor[T], error) {
	if len(labels.shape) != 1 {
		return nil, dimensionError("one_hot", "labels must be 1D", labels.shape)
	}
	if numClasses < 0 {
		return nil, shapeError("one_hot", fmt.Sprintf("negative class count %d", numClasses), labels.shape)
	}
	n := len(labels.data)
	out := make([]T, n*numClasses)
	for i, v := range labels.data {
		cls := int(Round(v))
		if IsNaN(v) || cls < 0 || cls >= numClasses {
			return nil, indexError("one_hot", []int{i}, labels.shape,
				fmt.Sprintf("label %v outside [0, %d)", v, numClasses))
		}
		out[i*numClasses+cls] = 1
	}
	return newTensor(out, Shape{n, numClasses}), nil
}

// Arange creates a 1D tensor with values start, start+step, ... up to end (exclusive).
// A non-positive step or an empty range yields an empty tensor.
//
// Example:
//
//	t := tensor.Arange[float64](0, 5, 1) // [0, 1, 2, 3, 4]
func Arange[T Float](start, end, step T) *Tensor[T] {
	if step <= 0 || end <= start {
		return Zeros[T](Shape{0})
	}
	n := int(math.Ceil(float64(end-start) / float64(step)))
	data := make([]T, n)
	for i := range data {
		data[i] = start + T(i)*step
	}
	return newTensor(data, Shape{n})
}

// Linspace creates a 1D tensor with n evenly spaced values over [start, end].
func Linspace[T Float](start, end T, n int) *Tensor[T] {
	if n <= 0 {
		return Zeros[T](Shape{0})
	}
	data := make([]T, n)
	if n == 1 {
		data[0] = start
		return newTensor(data, Shape{1})
	}
	step := (end - start) / T(n-1)
	for i := range data {
		data[i] = start + T(i)*step
	}
	data[n-1] = end
	return newTensor(data, Shape{n})
}

// Rand creates a tensor with values uniformly distributed in [0, 1).
// Note: Uses math/rand (not crypto/rand) - appropriate for ML/statistical purposes.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	t := tensor.Rand[float32](tensor.Shape{10, 10}, rng)
func Rand[T Float](shape Shape, rng *rand.Rand) *Tensor[T] {
	t := Zeros[T](shape)
	for i := range t.data {
		t.data[i] = T(rng.Float64())
	}
	return t
}

// Randn creates a tensor with values from a standard normal distribution.
// Uses the Box-Muller transform.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	t := tensor.Randn[float64](tensor.Shape{100, 100}, rng)
func Randn[T Float](shape Shape, rng *rand.Rand) *Tensor[T] {
	t := Zeros[T](shape)
	data := t.data
	for i := 0; i < len(data); i += 2 {
		u1 := 1.0 - rng.Float64() // (0, 1] keeps Log finite
		u2 := rng.Float64()
		r := math.Sqrt(-2.0 * math.Log(u1))
		data[i] = T(r * math.Cos(2.0*math.Pi*u2))
		if i+1 < len(data) {
			data[i+1] = T(r * math.Sin(2.0*math.Pi*u2))
		}
	}
	return t
}

// Uniform creates a tensor with values uniformly distributed in [low, high).
func Uniform[T Float](shape Shape, low, high T, rng *rand.Rand) *Tensor[T] {
	t := Zeros[T](shape)
	span := float64(high - low)
	for i := range t.data {
		t.data[i] = low + T(rng.Float64()*span)
	}
	return t
}
