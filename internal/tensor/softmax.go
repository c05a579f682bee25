package tensor

// Softmax normalizes exp(x) along axis so every slice sums to 1.
//
// The maximum of each slice is subtracted first, so large inputs do not
// overflow.
//
// Example:
//
//	logits, _ := tensor.FromRows([][]float64{{1, 2, 3}, {1, 1, 1}})
//	probs, _ := logits.Softmax(-1) // each row sums to 1
func (t *Tensor[T]) Softmax(axis int) (*Tensor[T], error) {
	return t.alongAxis("softmax", axis, func(src, dst []T, base, size, inner int) {
		maxVal := sliceMax(src, base, size, inner)
		var sum T
		for a := 0; a < size; a++ {
			i := base + a*inner
			dst[i] = Exp(src[i] - maxVal)
			sum += dst[i]
		}
		for a := 0; a < size; a++ {
			dst[base+a*inner] /= sum
		}
	})
}

// LogSoftmax computes log(Softmax(axis)) as x - max - log(Σ exp(x - max)),
// which stays finite where Softmax underflows to 0.
func (t *Tensor[T]) LogSoftmax(axis int) (*Tensor[T], error) {
	return t.alongAxis("log_softmax", axis, func(src, dst []T, base, size, inner int) {
		maxVal := sliceMax(src, base, size, inner)
		var sum T
		for a := 0; a < size; a++ {
			sum += Exp(src[base+a*inner] - maxVal)
		}
		logSum := Log(sum)
		for a := 0; a < size; a++ {
			i := base + a*inner
			dst[i] = src[i] - maxVal - logSum
		}
	})
}

// CumSum returns the running sum along axis. The shape is preserved.
func (t *Tensor[T]) CumSum(axis int) (*Tensor[T], error) {
	return t.alongAxis("cumsum", axis, func(src, dst []T, base, size, inner int) {
		var acc T
		for a := 0; a < size; a++ {
			i := base + a*inner
			acc += src[i]
			dst[i] = acc
		}
	})
}

// alongAxis runs f once per (outer, inner) slice of axis, writing into a
// tensor of the same shape.
func (t *Tensor[T]) alongAxis(op string, axis int, f func(src, dst []T, base, size, inner int)) (*Tensor[T], error) {
	dim, err := t.shape.normalizeAxis(op, axis)
	if err != nil {
		return nil, err
	}
	outer, size, inner := t.shape.splitAt(dim)
	out := make([]T, len(t.data))
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			f(t.data, out, o*size*inner+i, size, inner)
		}
	}
	return newTensor(out, t.shape.Clone()), nil
}

func sliceMax[T Float](src []T, base, size, inner int) T {
	acc := Inf[T](-1)
	for a := 0; a < size; a++ {
		acc = Max(acc, src[base+a*inner])
	}
	return acc
}
