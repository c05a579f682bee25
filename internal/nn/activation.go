package nn

import (
	"github.com/born-ml/tensorgrad/internal/autodiff"
	"github.com/born-ml/tensorgrad/internal/tensor"
)

// ReLU applies max(0, x) element-wise.
// It has no parameters.
type ReLU[T tensor.Float] struct{}

// NewReLU creates a ReLU activation.
func NewReLU[T tensor.Float]() *ReLU[T] {
	return &ReLU[T]{}
}

// Forward applies ReLU.
func (r *ReLU[T]) Forward(input autodiff.Variable[T]) (autodiff.Variable[T], error) {
	return input.ReLU()
}

// Parameters returns an empty slice.
func (r *ReLU[T]) Parameters() []autodiff.Variable[T] {
	return nil
}

// Sigmoid applies 1 / (1 + exp(-x)) element-wise.
type Sigmoid[T tensor.Float] struct{}

// NewSigmoid creates a Sigmoid activation.
func NewSigmoid[T tensor.Float]() *Sigmoid[T] {
	return &Sigmoid[T]{}
}

// Forward applies Sigmoid.
func (s *Sigmoid[T]) Forward(input autodiff.Variable[T]) (autodiff.Variable[T], error) {
	return input.Sigmoid()
}

// Parameters returns an empty slice.
func (s *Sigmoid[T]) Parameters() []autodiff.Variable[T] {
	return nil
}

// Tanh applies the hyperbolic tangent element-wise.
type Tanh[T tensor.Float] struct{}

// NewTanh creates a Tanh activation.
func NewTanh[T tensor.Float]() *Tanh[T] {
	return &Tanh[T]{}
}

// Forward applies Tanh.
func (t *Tanh[T]) Forward(input autodiff.Variable[T]) (autodiff.Variable[T], error) {
	return input.Tanh()
}

// Parameters returns an empty slice.
func (t *Tanh[T]) Parameters() []autodiff.Variable[T] {
	return nil
}

// LeakyReLU applies x for x > 0 and alpha*x otherwise.
//
// It is composed as relu(x) - alpha*relu(-x), so its gradient is 1 for
// positive inputs and alpha for negative ones.
type LeakyReLU[T tensor.Float] struct {
	alpha T
}

// NewLeakyReLU creates a LeakyReLU activation with the given negative slope.
// The conventional slope is 0.01.
func NewLeakyReLU[T tensor.Float](alpha T) *LeakyReLU[T] {
	return &LeakyReLU[T]{alpha: alpha}
}

// Alpha returns the negative slope.
func (l *LeakyReLU[T]) Alpha() T {
	return l.alpha
}

// Forward applies LeakyReLU.
func (l *LeakyReLU[T]) Forward(input autodiff.Variable[T]) (autodiff.Variable[T], error) {
	pos, err := input.ReLU()
	if err != nil {
		return pos, err
	}
	neg, err := input.Neg()
	if err != nil {
		return neg, err
	}
	if neg, err = neg.ReLU(); err != nil {
		return neg, err
	}
	if neg, err = neg.Scale(l.alpha); err != nil {
		return neg, err
	}
	return pos.Sub(neg)
}

// Parameters returns an empty slice.
func (l *LeakyReLU[T]) Parameters() []autodiff.Variable[T] {
	return nil
}
