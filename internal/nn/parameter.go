package nn

import (
	"github.com/born-ml/tensorgrad/internal/autodiff"
	"github.com/born-ml/tensorgrad/internal/tensor"
)

// Parameter represents a trainable tensor in a neural network.
//
// A Parameter owns its tensor and records it on its graph as a trainable
// leaf. Optimizers update the tensor in place, so the new values are seen
// by the next forward pass.
//
// Example:
//
//	weight := nn.NewParameter(g, "weight", weightTensor)
//	w := weight.Var()        // tracked leaf on g
//	grad, _ := grads.Of(w)   // after Backward
type Parameter[T tensor.Float] struct {
	name   string            // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Tensor[T] // The parameter tensor
	graph  *autodiff.Graph[T]
	v      autodiff.Variable[T] // Current binding, re-recorded when stale
}

// NewParameter creates a new trainable parameter on g.
//
// Parameters:
//   - g: Graph the parameter is recorded on
//   - name: Descriptive name for this parameter (e.g., "linear1.weight")
//   - t: The initialized parameter tensor
//
// Returns a new Parameter.
func NewParameter[T tensor.Float](g *autodiff.Graph[T], name string, t *tensor.Tensor[T]) *Parameter[T] {
	return &Parameter[T]{
		name:   name,
		tensor: t,
		graph:  g,
	}
}

// Name returns the parameter name.
func (p *Parameter[T]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[T]) Tensor() *tensor.Tensor[T] {
	return p.tensor
}

// Var returns the parameter as a tracked Variable on its graph.
//
// The first call, and the first call after each Graph.Reset, records a new
// leaf. Other calls return the same Variable, so every use within one
// forward pass shares a node and gradients accumulate on it.
func (p *Parameter[T]) Var() autodiff.Variable[T] {
	if id, ok := p.v.ID(); ok {
		if _, err := p.graph.Node(id); err == nil {
			return p.v
		}
	}
	p.v = p.graph.Param(p.tensor)
	return p.v
}
