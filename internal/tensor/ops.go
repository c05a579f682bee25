package tensor

// Add performs element-wise addition with broadcasting.
//
// Example:
//
//	a := tensor.Ones[float32](tensor.Shape{3, 1})
//	b := tensor.Ones[float32](tensor.Shape{3, 5})
//	c, _ := a.Add(b) // Shape: [3, 5] (broadcasted)
func (t *Tensor[T]) Add(other *Tensor[T]) (*Tensor[T], error) {
	return broadcastBinary("add", t, other, func(x, y T) T { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor[T]) Sub(other *Tensor[T]) (*Tensor[T], error) {
	return broadcastBinary("sub", t, other, func(x, y T) T { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[T]) Mul(other *Tensor[T]) (*Tensor[T], error) {
	return broadcastBinary("mul", t, other, func(x, y T) T { return x * y })
}

// Div performs element-wise division with broadcasting.
// Division by zero follows IEEE 754 and yields ±Inf or NaN; it is not an error.
func (t *Tensor[T]) Div(other *Tensor[T]) (*Tensor[T], error) {
	return broadcastBinary("div", t, other, func(x, y T) T { return x / y })
}

// Maximum returns the element-wise maximum with broadcasting.
func (t *Tensor[T]) Maximum(other *Tensor[T]) (*Tensor[T], error) {
	return broadcastBinary("maximum", t, other, Max[T])
}

// Minimum returns the element-wise minimum with broadcasting.
func (t *Tensor[T]) Minimum(other *Tensor[T]) (*Tensor[T], error) {
	return broadcastBinary("minimum", t, other, Min[T])
}

// Comparison operations return 1 where the predicate holds and 0 elsewhere.

// Greater computes t > other element-wise.
func (t *Tensor[T]) Greater(other *Tensor[T]) (*Tensor[T], error) {
	return broadcastBinary("greater", t, other, func(x, y T) T { return indicator[T](x > y) })
}

// Less computes t < other element-wise.
func (t *Tensor[T]) Less(other *Tensor[T]) (*Tensor[T], error) {
	return broadcastBinary("less", t, other, func(x, y T) T { return indicator[T](x < y) })
}

// Eq computes |t - other| < Epsilon element-wise.
func (t *Tensor[T]) Eq(other *Tensor[T]) (*Tensor[T], error) {
	eps := Epsilon[T]()
	return broadcastBinary("eq", t, other, func(x, y T) T { return indicator[T](Abs(x-y) < eps) })
}

func indicator[T Float](ok bool) T {
	if ok {
		return 1
	}
	return 0
}

// Scalar operations (element-wise with scalar)

// AddScalar adds s to every element.
func (t *Tensor[T]) AddScalar(s T) *Tensor[T] {
	return t.Apply(func(x T) T { return x + s })
}

// SubScalar subtracts s from every element.
func (t *Tensor[T]) SubScalar(s T) *Tensor[T] {
	return t.Apply(func(x T) T { return x - s })
}

// MulScalar multiplies every element by s.
func (t *Tensor[T]) MulScalar(s T) *Tensor[T] {
	return t.Apply(func(x T) T { return x * s })
}

// DivScalar divides every element by s.
func (t *Tensor[T]) DivScalar(s T) *Tensor[T] {
	return t.Apply(func(x T) T { return x / s })
}

// Neg negates every element.
func (t *Tensor[T]) Neg() *Tensor[T] {
	return t.Apply(func(x T) T { return -x })
}
