package tensor

// Apply returns a new tensor with f applied to every element. Shape is preserved.
//
// Example:
//
//	squared := t.Apply(func(x float64) float64 { return x * x })
func (t *Tensor[T]) Apply(f func(T) T) *Tensor[T] {
	out := make([]T, len(t.data))
	for i, v := range t.data {
		out[i] = f(v)
	}
	return newTensor(out, t.shape.Clone())
}

// Exp computes e**x element-wise.
func (t *Tensor[T]) Exp() *Tensor[T] { return t.Apply(Exp[T]) }

// Log computes the natural logarithm element-wise. Non-positive inputs yield -Inf or NaN.
func (t *Tensor[T]) Log() *Tensor[T] { return t.Apply(Log[T]) }

// Sqrt computes the square root element-wise.
func (t *Tensor[T]) Sqrt() *Tensor[T] { return t.Apply(Sqrt[T]) }

// Abs computes |x| element-wise.
func (t *Tensor[T]) Abs() *Tensor[T] { return t.Apply(Abs[T]) }

// Pow raises every element to the power p.
func (t *Tensor[T]) Pow(p T) *Tensor[T] {
	return t.Apply(func(x T) T { return Pow(x, p) })
}

// Clamp limits every element to [lo, hi].
func (t *Tensor[T]) Clamp(lo, hi T) *Tensor[T] {
	return t.Apply(func(x T) T { return Min(Max(x, lo), hi) })
}

// Activation functions

// ReLU computes max(0, x) element-wise.
func (t *Tensor[T]) ReLU() *Tensor[T] {
	return t.Apply(func(x T) T {
		if x > 0 {
			return x
		}
		return 0
	})
}

// Sigmoid computes 1 / (1 + exp(-x)) element-wise.
func (t *Tensor[T]) Sigmoid() *Tensor[T] { return t.Apply(Sigmoid[T]) }

// Tanh computes the hyperbolic tangent element-wise.
func (t *Tensor[T]) Tanh() *Tensor[T] { return t.Apply(Tanh[T]) }

// Sin computes the sine element-wise.
func (t *Tensor[T]) Sin() *Tensor[T] { return t.Apply(Sin[T]) }

// Cos computes the cosine element-wise.
func (t *Tensor[T]) Cos() *Tensor[T] { return t.Apply(Cos[T]) }

// Floor rounds every element down.
func (t *Tensor[T]) Floor() *Tensor[T] { return t.Apply(Floor[T]) }

// Ceil rounds every element up.
func (t *Tensor[T]) Ceil() *Tensor[T] { return t.Apply(Ceil[T]) }

// Round rounds every element to the nearest integer, half away from zero.
func (t *Tensor[T]) Round() *Tensor[T] { return t.Apply(Round[T]) }

// Recip computes 1/x element-wise. Zeros yield ±Inf.
func (t *Tensor[T]) Recip() *Tensor[T] {
	return t.Apply(func(x T) T { return 1 / x })
}

// Sign maps every element to -1, 0 or 1.
func (t *Tensor[T]) Sign() *Tensor[T] { return t.Apply(Sign[T]) }

// HasNaN reports whether any element is NaN.
func (t *Tensor[T]) HasNaN() bool {
	for _, v := range t.data {
		if IsNaN(v) {
			return true
		}
	}
	return false
}

// NanToNum replaces every NaN with replacement.
func (t *Tensor[T]) NanToNum(replacement T) *Tensor[T] {
	return t.Apply(func(x T) T {
		if IsNaN(x) {
			return replacement
		}
		return x
	})
}
