package tensor

import (
	"fmt"
)

// reducer folds the elements src[base], src[base+inner], ..., src[base+(size-1)*inner].
type reducer[T Float] func(src []T, base, size, inner int) T

// reduceDim applies r along axis using the (outer, axis, inner) decomposition:
// the flat index of every element is o*size*inner + a*inner + i, and the
// reduction accumulates over a for each (o, i) pair.
func (t *Tensor[T]) reduceDim(op string, axis int, keepDim, nonEmpty bool, r reducer[T]) (*Tensor[T], error) {
	dim, err := t.shape.normalizeAxis(op, axis)
	if err != nil {
		return nil, err
	}
	outer, size, inner := t.shape.splitAt(dim)
	if nonEmpty && size == 0 {
		return nil, axisError(op, axis, t.shape, "cannot reduce over a zero-length axis")
	}

	out := make([]T, outer*inner)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			out[o*inner+i] = r(t.data, o*size*inner+i, size, inner)
		}
	}
	return newTensor(out, reducedShape(t.shape, dim, keepDim)), nil
}

// reducedShape removes dim from shape, or sets it to 1 when keepDim is true.
func reducedShape(shape Shape, dim int, keepDim bool) Shape {
	if keepDim {
		out := shape.Clone()
		out[dim] = 1
		return out
	}
	out := make(Shape, 0, len(shape)-1)
	out = append(out, shape[:dim]...)
	return append(out, shape[dim+1:]...)
}

func sumReducer[T Float](src []T, base, size, inner int) T {
	var acc T
	for a := 0; a < size; a++ {
		acc += src[base+a*inner]
	}
	return acc
}

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - axis: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
//
// Example:
//
//	x := tensor.Ones[float32](tensor.Shape{2, 3, 4})
//	y, _ := x.SumDim(-1, true)   // shape: [2, 3, 1]
//	z, _ := x.SumDim(-1, false)  // shape: [2, 3]
func (t *Tensor[T]) SumDim(axis int, keepDim bool) (*Tensor[T], error) {
	return t.reduceDim("sum", axis, keepDim, false, sumReducer[T])
}

// MeanDim computes the mean along the specified dimension.
// Fails with ErrInvalidAxis if the axis has length 0.
func (t *Tensor[T]) MeanDim(axis int, keepDim bool) (*Tensor[T], error) {
	return t.reduceDim("mean", axis, keepDim, true, func(src []T, base, size, inner int) T {
		return sumReducer(src, base, size, inner) / T(size)
	})
}

// VarianceDim computes the population variance along the specified dimension.
// Fails with ErrInvalidAxis if the axis has length 0.
func (t *Tensor[T]) VarianceDim(axis int, keepDim bool) (*Tensor[T], error) {
	return t.reduceDim("variance", axis, keepDim, true, func(src []T, base, size, inner int) T {
		mean := sumReducer(src, base, size, inner) / T(size)
		var acc T
		for a := 0; a < size; a++ {
			d := src[base+a*inner] - mean
			acc += d * d
		}
		return acc / T(size)
	})
}

// ArgmaxDim returns the index of the maximum value along the specified dimension.
// Ties resolve to the lowest index. Indices are stored as T.
func (t *Tensor[T]) ArgmaxDim(axis int, keepDim bool) (*Tensor[T], error) {
	return t.reduceDim("argmax", axis, keepDim, true, func(src []T, base, size, inner int) T {
		best, bestVal := 0, src[base]
		for a := 1; a < size; a++ {
			if v := src[base+a*inner]; v > bestVal {
				best, bestVal = a, v
			}
		}
		return T(best)
	})
}

// StdDim computes the population standard deviation along the specified
// dimension. Fails with ErrInvalidAxis if the axis has length 0.
func (t *Tensor[T]) StdDim(axis int, keepDim bool) (*Tensor[T], error) {
	v, err := t.VarianceDim(axis, keepDim)
	if err != nil {
		return nil, err
	}
	return v.Sqrt(), nil
}

// ArgminDim returns the index of the minimum value along the specified dimension.
// Ties resolve to the lowest index. Indices are stored as T.
func (t *Tensor[T]) ArgminDim(axis int, keepDim bool) (*Tensor[T], error) {
	return t.reduceDim("argmin", axis, keepDim, true, func(src []T, base, size, inner int) T {
		best, bestVal := 0, src[base]
		for a := 1; a < size; a++ {
			if v := src[base+a*inner]; v < bestVal {
				best, bestVal = a, v
			}
		}
		return T(best)
	})
}

// MaxDim returns the maximum value along the specified dimension.
func (t *Tensor[T]) MaxDim(axis int, keepDim bool) (*Tensor[T], error) {
	return t.reduceDim("max", axis, keepDim, true, func(src []T, base, size, inner int) T {
		acc := src[base]
		for a := 1; a < size; a++ {
			acc = Max(acc, src[base+a*inner])
		}
		return acc
	})
}

// MinDim returns the minimum value along the specified dimension.
func (t *Tensor[T]) MinDim(axis int, keepDim bool) (*Tensor[T], error) {
	return t.reduceDim("min", axis, keepDim, true, func(src []T, base, size, inner int) T {
		acc := src[base]
		for a := 1; a < size; a++ {
			acc = Min(acc, src[base+a*inner])
		}
		return acc
	})
}

// Whole-tensor reductions

// Sum returns the sum of all elements (0 for an empty tensor).
func (t *Tensor[T]) Sum() T {
	var acc T
	for _, v := range t.data {
		acc += v
	}
	return acc
}

// Mean returns the arithmetic mean of all elements (NaN for an empty tensor).
func (t *Tensor[T]) Mean() T {
	return t.Sum() / T(len(t.data))
}

func (t *Tensor[T]) requireNonEmpty(op string) error {
	if len(t.data) == 0 {
		return axisError(op, -1, t.shape, fmt.Sprintf("%s of an empty tensor", op))
	}
	return nil
}

// Max returns the largest element.
func (t *Tensor[T]) Max() (T, error) {
	if err := t.requireNonEmpty("max"); err != nil {
		return 0, err
	}
	acc := t.data[0]
	for _, v := range t.data[1:] {
		acc = Max(acc, v)
	}
	return acc, nil
}

// Min returns the smallest element.
func (t *Tensor[T]) Min() (T, error) {
	if err := t.requireNonEmpty("min"); err != nil {
		return 0, err
	}
	acc := t.data[0]
	for _, v := range t.data[1:] {
		acc = Min(acc, v)
	}
	return acc, nil
}

// Argmax returns the flat index of the largest element, lowest index on ties.
func (t *Tensor[T]) Argmax() (int, error) {
	if err := t.requireNonEmpty("argmax"); err != nil {
		return 0, err
	}
	best := 0
	for i, v := range t.data {
		if v > t.data[best] {
			best = i
		}
	}
	return best, nil
}

// Argmin returns the flat index of the smallest element, lowest index on ties.
func (t *Tensor[T]) Argmin() (int, error) {
	if err := t.requireNonEmpty("argmin"); err != nil {
		return 0, err
	}
	best := 0
	for i, v := range t.data {
		if v < t.data[best] {
			best = i
		}
	}
	return best, nil
}

// Prod returns the product of all elements (1 for an empty tensor).
func (t *Tensor[T]) Prod() T {
	acc := T(1)
	for _, v := range t.data {
		acc *= v
	}
	return acc
}

// Norm returns the L2 (Frobenius) norm of all elements.
func (t *Tensor[T]) Norm() T {
	var acc T
	for _, v := range t.data {
		acc += v * v
	}
	return Sqrt(acc)
}

// NormL1 returns the sum of absolute values.
func (t *Tensor[T]) NormL1() T {
	var acc T
	for _, v := range t.data {
		acc += Abs(v)
	}
	return acc
}
