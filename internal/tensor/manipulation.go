package tensor

import (
	"cmp"
	"fmt"
	"slices"
)

// Transpose permutes the tensor's dimensions.
//
// If axes is empty, reverses all dimensions (for 2D, this is standard transpose).
// Otherwise, axes specifies the permutation and must name every axis exactly once.
// The result is a new row-major tensor holding the permuted element order.
//
// Example:
//
//	t := tensor.Zeros[float32](tensor.Shape{2, 3, 4})
//	transposed, _ := t.Transpose(2, 0, 1) // Shape: [4, 2, 3]
func (t *Tensor[T]) Transpose(axes ...int) (*Tensor[T], error) {
	perm, err := t.permutation(axes)
	if err != nil {
		return nil, err
	}

	rank := len(t.shape)
	outShape := make(Shape, rank)
	srcStrides := make([]int, rank)
	for i, p := range perm {
		outShape[i] = t.shape[p]
		srcStrides[i] = t.strides[p]
	}

	n := len(t.data)
	out := make([]T, n)
	idx := make([]int, rank)
	off := 0
	for i := 0; i < n; i++ {
		out[i] = t.data[off]
		for d := rank - 1; d >= 0; d-- {
			idx[d]++
			off += srcStrides[d]
			if idx[d] < outShape[d] {
				break
			}
			off -= srcStrides[d] * outShape[d]
			idx[d] = 0
		}
	}
	return newTensor(out, outShape), nil
}

// permutation validates axes (or builds the reversal when empty).
func (t *Tensor[T]) permutation(axes []int) ([]int, error) {
	rank := len(t.shape)
	if len(axes) == 0 {
		perm := make([]int, rank)
		for i := range perm {
			perm[i] = rank - 1 - i
		}
		return perm, nil
	}
	if len(axes) != rank {
		return nil, axisError("transpose", -1, t.shape,
			fmt.Sprintf("permutation %v has %d axes, tensor has %d", axes, len(axes), rank))
	}

	perm := make([]int, rank)
	seen := make([]bool, rank)
	for i, a := range axes {
		p, err := t.shape.normalizeAxis("transpose", a)
		if err != nil {
			return nil, err
		}
		if seen[p] {
			return nil, axisError("transpose", a, t.shape, fmt.Sprintf("axis repeated in permutation %v", axes))
		}
		seen[p] = true
		perm[i] = p
	}
	return perm, nil
}

// InversePermutation returns the permutation that undoes perm.
func InversePermutation(perm []int) []int {
	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	return inv
}

// T is a shortcut for 2D transpose (swaps rows and columns).
func (t *Tensor[T]) T() (*Tensor[T], error) {
	if len(t.shape) != 2 {
		return nil, dimensionError("t", "T() only works for 2D tensors", t.shape)
	}
	return t.Transpose(1, 0)
}

// Reshape returns a tensor with the same data but different shape.
// The new shape must have the same number of elements.
//
// Example:
//
//	t := tensor.Arange[float64](0, 12, 1) // Shape: [12]
//	reshaped, _ := t.Reshape(3, 4)        // Shape: [3, 4]
func (t *Tensor[T]) Reshape(dims ...int) (*Tensor[T], error) {
	shape := Shape(dims).Clone()
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(t.data) {
		return nil, shapeError("reshape",
			fmt.Sprintf("cannot reshape %d elements into %v", len(t.data), shape), t.shape, shape)
	}
	data := make([]T, len(t.data))
	copy(data, t.data)
	return newTensor(data, shape), nil
}

// Flatten returns a 1D copy of the tensor.
func (t *Tensor[T]) Flatten() *Tensor[T] {
	data := make([]T, len(t.data))
	copy(data, t.data)
	return newTensor(data, Shape{len(data)})
}

// Slice returns elements [start, end) along axis.
//
// Example:
//
//	m := tensor.Zeros[float64](tensor.Shape{4, 3})
//	rows, _ := m.Slice(0, 1, 3) // Shape: [2, 3]
func (t *Tensor[T]) Slice(axis, start, end int) (*Tensor[T], error) {
	dim, err := t.shape.normalizeAxis("slice", axis)
	if err != nil {
		return nil, err
	}
	outer, size, inner := t.shape.splitAt(dim)
	if start < 0 || end > size || start > end {
		return nil, indexError("slice", []int{start, end}, t.shape,
			fmt.Sprintf("range [%d, %d) invalid for axis %d of size %d", start, end, dim, size))
	}

	width := end - start
	out := make([]T, 0, outer*width*inner)
	for o := 0; o < outer; o++ {
		base := o*size*inner + start*inner
		out = append(out, t.data[base:base+width*inner]...)
	}

	shape := t.shape.Clone()
	shape[dim] = width
	return newTensor(out, shape), nil
}

// Unsqueeze adds a dimension of size 1 at the specified position.
// Axis ranges over [-(rank+1), rank].
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.Shape{2, 3})
//	y, _ := x.Unsqueeze(1)  // Shape: [2, 1, 3]
//	z, _ := x.Unsqueeze(-1) // Shape: [2, 3, 1]
func (t *Tensor[T]) Unsqueeze(axis int) (*Tensor[T], error) {
	rank := len(t.shape)
	a := axis
	if a < 0 {
		a += rank + 1
	}
	if a < 0 || a > rank {
		return nil, axisError("unsqueeze", axis, t.shape, fmt.Sprintf("axis out of range for rank %d", rank))
	}
	shape := make(Shape, 0, rank+1)
	shape = append(shape, t.shape[:a]...)
	shape = append(shape, 1)
	shape = append(shape, t.shape[a:]...)
	return t.Reshape(shape...)
}

// Squeeze removes a dimension of size 1 at the specified position.
func (t *Tensor[T]) Squeeze(axis int) (*Tensor[T], error) {
	dim, err := t.shape.normalizeAxis("squeeze", axis)
	if err != nil {
		return nil, err
	}
	if t.shape[dim] != 1 {
		return nil, axisError("squeeze", axis, t.shape, fmt.Sprintf("dimension has size %d, not 1", t.shape[dim]))
	}
	return t.Reshape(reducedShape(t.shape, dim, false)...)
}

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same rank and the same shape except along axis.
//
// Example:
//
//	a := tensor.Zeros[float32](tensor.Shape{2, 3})
//	b := tensor.Ones[float32](tensor.Shape{2, 5})
//	c, _ := tensor.Cat([]*tensor.Tensor[float32]{a, b}, 1) // Shape: [2, 8]
func Cat[T Float](tensors []*Tensor[T], axis int) (*Tensor[T], error) {
	if len(tensors) == 0 {
		return nil, shapeError("cat", "at least one tensor required")
	}

	first := tensors[0].shape
	dim, err := first.normalizeAxis("cat", axis)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, t := range tensors {
		if len(t.shape) != len(first) {
			return nil, shapeError("cat", "ranks differ", first, t.shape)
		}
		for d := range first {
			if d != dim && t.shape[d] != first[d] {
				return nil, shapeError("cat", fmt.Sprintf("dimension %d differs", d), first, t.shape)
			}
		}
		total += t.shape[dim]
	}

	outShape := first.Clone()
	outShape[dim] = total
	outer, _, inner := first.splitAt(dim)

	out := make([]T, 0, outShape.NumElements())
	for o := 0; o < outer; o++ {
		for _, t := range tensors {
			chunk := t.shape[dim] * inner
			out = append(out, t.data[o*chunk:(o+1)*chunk]...)
		}
	}
	return newTensor(out, outShape), nil
}

// Stack joins tensors of identical shape along a new axis.
// Axis ranges over [-(rank+1), rank], as for Unsqueeze.
//
// Example:
//
//	a := tensor.Zeros[float32](tensor.Shape{2, 3})
//	b := tensor.Ones[float32](tensor.Shape{2, 3})
//	s, _ := tensor.Stack([]*tensor.Tensor[float32]{a, b}, 0) // Shape: [2, 2, 3]
func Stack[T Float](tensors []*Tensor[T], axis int) (*Tensor[T], error) {
	if len(tensors) == 0 {
		return nil, shapeError("stack", "at least one tensor required")
	}
	first := tensors[0].shape
	expanded := make([]*Tensor[T], len(tensors))
	for i, t := range tensors {
		if !t.shape.Equal(first) {
			return nil, shapeError("stack", fmt.Sprintf("tensor %d differs", i), first, t.shape)
		}
		u, err := t.Unsqueeze(axis)
		if err != nil {
			return nil, err
		}
		expanded[i] = u
	}
	a := axis
	if a < 0 {
		a += len(first) + 1
	}
	return Cat(expanded, a)
}

// Repeat concatenates n copies of the tensor along axis.
func (t *Tensor[T]) Repeat(axis, n int) (*Tensor[T], error) {
	if n < 0 {
		return nil, shapeError("repeat", fmt.Sprintf("negative repeat count %d", n), t.shape)
	}
	if n == 0 {
		return t.Slice(axis, 0, 0)
	}
	copies := make([]*Tensor[T], n)
	for i := range copies {
		copies[i] = t
	}
	return Cat(copies, axis)
}

// TopK returns the k largest values along the last axis, in descending order,
// and their indices (stored as T). Ties keep the lower index first; NaNs sort
// last. k is clamped to the axis length.
//
// Example:
//
//	x, _ := tensor.FromSlice([]float64{3, 1, 4, 1, 5}, tensor.Shape{5})
//	vals, idx, _ := x.TopK(2) // vals [5 4], idx [4 2]
func (t *Tensor[T]) TopK(k int) (values, indices *Tensor[T], err error) {
	if len(t.shape) == 0 {
		return nil, nil, dimensionError("topk", "requires at least one dimension", t.shape)
	}
	if k < 0 {
		return nil, nil, indexError("topk", []int{k}, t.shape, "k must be non-negative")
	}
	last := t.shape[len(t.shape)-1]
	k = min(k, last)
	rows := t.shape[:len(t.shape)-1].NumElements()

	vals := make([]T, 0, rows*k)
	idxs := make([]T, 0, rows*k)
	order := make([]int, last)
	for r := 0; r < rows; r++ {
		row := t.data[r*last : (r+1)*last]
		for i := range order {
			order[i] = i
		}
		slices.SortStableFunc(order, func(a, b int) int {
			return cmp.Compare(row[b], row[a])
		})
		for _, i := range order[:k] {
			vals = append(vals, row[i])
			idxs = append(idxs, T(i))
		}
	}

	shape := t.shape.Clone()
	shape[len(shape)-1] = k
	return newTensor(vals, shape), newTensor(idxs, shape.Clone()), nil
}
