package tensor

import (
	"fmt"
)

// MatMul performs matrix multiplication.
// For 2D tensors: (M, K) @ (K, N) -> (M, N), C[i,j] = sum_p A[i,p] * B[p,j].
//
// Batched inputs are not supported; callers loop over the batch themselves.
//
// Example:
//
//	a, _ := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
//	b, _ := tensor.FromRows([][]float64{{5, 6}, {7, 8}})
//	c, _ := a.MatMul(b) // [[19, 22], [43, 50]]
func (t *Tensor[T]) MatMul(other *Tensor[T]) (*Tensor[T], error) {
	aShape := t.shape
	bShape := other.shape

	if len(aShape) != 2 || len(bShape) != 2 {
		return nil, dimensionError("matmul",
			fmt.Sprintf("only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)), aShape, bShape)
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]

	if k != kAlt {
		return nil, dimensionError("matmul",
			fmt.Sprintf("inner dimensions must match, got [%d,%d] @ [%d,%d]", m, k, kAlt, n), aShape, bShape)
	}

	c := make([]T, m*n)
	matmul(c, t.data, other.data, m, k, n)
	return newTensor(c, Shape{m, n}), nil
}

// matmul computes C = A @ B using the i-p-j loop order so the inner loop
// walks both B and C contiguously.
func matmul[T Float](c, a, b []T, m, k, n int) {
	for i := 0; i < m; i++ {
		row := c[i*n : (i+1)*n]
		for p := 0; p < k; p++ {
			aip := a[i*k+p]
			bRow := b[p*n : (p+1)*n]
			for j := range row {
				row[j] += aip * bRow[j]
			}
		}
	}
}

// Dot computes the inner product of two 1D tensors of equal length.
func (t *Tensor[T]) Dot(other *Tensor[T]) (T, error) {
	if len(t.shape) != 1 || len(other.shape) != 1 {
		return 0, dimensionError("dot", "requires two 1D tensors", t.shape, other.shape)
	}
	if t.shape[0] != other.shape[0] {
		return 0, shapeError("dot", "vector lengths must match", t.shape, other.shape)
	}
	var sum T
	for i, v := range t.data {
		sum += v * other.data[i]
	}
	return sum, nil
}

// Outer computes the outer product of two 1D tensors: out[i, j] = t[i] * other[j].
func (t *Tensor[T]) Outer(other *Tensor[T]) (*Tensor[T], error) {
	if len(t.shape) != 1 || len(other.shape) != 1 {
		return nil, dimensionError("outer", "requires two 1D tensors", t.shape, other.shape)
	}
	m, n := t.shape[0], other.shape[0]
	out := make([]T, 0, m*n)
	for _, a := range t.data {
		for _, b := range other.data {
			out = append(out, a*b)
		}
	}
	return newTensor(out, Shape{m, n}), nil
}
