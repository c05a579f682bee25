package autodiff

import "github.com/born-ml/tensorgrad/internal/tensor"

// Gradients maps node IDs to accumulated gradients. It is built fresh by
// every Backward call; a missing entry means a zero gradient.
type Gradients[T tensor.Float] map[NodeID]*tensor.Tensor[T]

// Of returns the gradient recorded for v.
func (gr Gradients[T]) Of(v Variable[T]) (*tensor.Tensor[T], bool) {
	id, ok := v.ID()
	if !ok {
		return nil, false
	}
	grad, ok := gr[id]
	return grad, ok
}

// OrZeros returns the gradient recorded for v, or zeros of v's shape.
func (gr Gradients[T]) OrZeros(v Variable[T]) *tensor.Tensor[T] {
	if grad, ok := gr.Of(v); ok {
		return grad
	}
	return tensor.Zeros[T](v.Shape())
}
