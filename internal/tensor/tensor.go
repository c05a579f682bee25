package tensor

import (
	"fmt"
	"strings"
)

// Tensor is a dense, row-major N-dimensional array of T.
//
// A Tensor owns its flat buffer: len(data) == shape.NumElements() always.
// Operations never mutate their receiver or arguments and always return a new
// Tensor; the only mutating methods are Set, CopyFrom and SubScaledInPlace,
// which say so in their documentation.
//
// Example:
//
//	a, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	b := tensor.Ones[float64](tensor.Shape{2, 2})
//	c, _ := a.Add(b) // [[2, 3], [4, 5]]
type Tensor[T Float] struct {
	data    []T
	shape   Shape
	strides []int
}

// newTensor wraps data without copying. The caller guarantees the length invariant.
func newTensor[T Float](data []T, shape Shape) *Tensor[T] {
	return &Tensor[T]{
		data:    data,
		shape:   shape,
		strides: shape.Strides(),
	}
}

// FromSlice creates a tensor from a Go slice and an explicit shape.
// The slice is copied into the tensor's memory.
func FromSlice[T Float](data []T, shape Shape) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, shapeError("from_slice",
			fmt.Sprintf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data)), shape)
	}

	buf := make([]T, len(data))
	copy(buf, data)
	return newTensor(buf, shape.Clone()), nil
}

// FromExport reconstructs a tensor from the pair produced by Export.
func FromExport[T Float](data []T, shape Shape) (*Tensor[T], error) {
	return FromSlice(data, shape)
}

// Export returns a copy of the flat buffer together with a copy of the shape.
// FromExport(t.Export()) reproduces t exactly.
func (t *Tensor[T]) Export() ([]T, Shape) {
	data := make([]T, len(t.data))
	copy(data, t.data)
	return data, t.shape.Clone()
}

// Shape returns the tensor's shape. The returned slice must not be modified.
func (t *Tensor[T]) Shape() Shape {
	return t.shape
}

// Strides returns the tensor's row-major strides. The returned slice must not be modified.
func (t *Tensor[T]) Strides() []int {
	return t.strides
}

// Rank returns the number of dimensions.
func (t *Tensor[T]) Rank() int {
	return len(t.shape)
}

// DType returns the tensor's data type.
func (t *Tensor[T]) DType() DataType {
	return inferDataType[T]()
}

// NumElements returns the total number of elements.
func (t *Tensor[T]) NumElements() int {
	return len(t.data)
}

// Data returns the flat row-major buffer.
//
// WARNING: The slice aliases the tensor's memory and must be treated as read-only.
func (t *Tensor[T]) Data() []T {
	return t.data
}

// Item returns the value of a single-element tensor of any rank.
func (t *Tensor[T]) Item() (T, error) {
	if len(t.data) != 1 {
		return 0, shapeError("item", "tensor must hold exactly one element", t.shape)
	}
	return t.data[0], nil
}

// offset bounds-checks indices and converts them to a flat offset.
func (t *Tensor[T]) offset(op string, indices []int) (int, error) {
	if len(indices) != len(t.shape) {
		return 0, indexError(op, indices, t.shape,
			fmt.Sprintf("expected %d indices, got %d", len(t.shape), len(indices)))
	}
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			return 0, indexError(op, indices, t.shape,
				fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, t.shape[i]))
		}
	}
	return Offset(t.strides, indices), nil
}

// At returns the element at the given indices.
//
// Example:
//
//	t := tensor.Zeros[float32](tensor.Shape{3, 4})
//	value, err := t.At(1, 2) // Row 1, column 2
func (t *Tensor[T]) At(indices ...int) (T, error) {
	off, err := t.offset("at", indices)
	if err != nil {
		return 0, err
	}
	return t.data[off], nil
}

// Set writes value at the given indices. Set mutates the tensor in place.
func (t *Tensor[T]) Set(value T, indices ...int) error {
	off, err := t.offset("set", indices)
	if err != nil {
		return err
	}
	t.data[off] = value
	return nil
}

// CopyFrom overwrites the tensor's values with src's. Shapes must be equal.
// CopyFrom mutates the tensor in place.
func (t *Tensor[T]) CopyFrom(src *Tensor[T]) error {
	if !t.shape.Equal(src.shape) {
		return shapeError("copy_from", "shapes must be equal", t.shape, src.shape)
	}
	copy(t.data, src.data)
	return nil
}

// SubScaledInPlace performs t -= alpha * g element-wise. Shapes must be equal.
// SubScaledInPlace mutates the tensor in place; it is the update primitive used by optimizers.
func (t *Tensor[T]) SubScaledInPlace(g *Tensor[T], alpha T) error {
	if !t.shape.Equal(g.shape) {
		return shapeError("sub_scaled_inplace", "shapes must be equal", t.shape, g.shape)
	}
	for i, v := range g.data {
		t.data[i] -= alpha * v
	}
	return nil
}

// Clone creates a deep copy of the tensor.
func (t *Tensor[T]) Clone() *Tensor[T] {
	data := make([]T, len(t.data))
	copy(data, t.data)
	return newTensor(data, t.shape.Clone())
}

// Equal reports whether both tensors have identical shapes and values.
func (t *Tensor[T]) Equal(other *Tensor[T]) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}
	for i, v := range t.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// AllClose reports whether shapes are identical and every pair of values
// differs by at most tol. NaN is never close to anything.
func (t *Tensor[T]) AllClose(other *Tensor[T], tol T) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}
	for i, v := range t.data {
		if !(Abs(v-other.data[i]) <= tol) {
			return false
		}
	}
	return true
}

// String returns a human-readable representation of the tensor.
// Small tensors include their values.
func (t *Tensor[T]) String() string {
	header := fmt.Sprintf("Tensor[%s]%v", t.DType(), t.shape)
	if len(t.data) > 16 {
		return header
	}
	vals := make([]string, len(t.data))
	for i, v := range t.data {
		vals[i] = fmt.Sprint(v)
	}
	return header + "[" + strings.Join(vals, " ") + "]"
}

// Convert returns a copy of t with every element converted to U.
// It is the only way values cross between float32 and float64 tensors.
func Convert[U, T Float](t *Tensor[T]) *Tensor[U] {
	data := make([]U, len(t.data))
	for i, v := range t.data {
		data[i] = U(v)
	}
	return newTensor(data, t.shape.Clone())
}
