// Package nn implements neural network layers on top of autodiff.
//
// This package provides building blocks for constructing neural networks:
//   - Module interface: Base interface for all NN components
//   - Parameter: Trainable tensor bound to a graph
//   - Linear: Fully connected layer
//   - Activations: ReLU, Sigmoid, Tanh, LeakyReLU
//   - Loss functions: MSE
//   - Sequential: Container for stacking layers
//
// Layers record their operations on the graph they were built with.
// Parameters survive Graph.Reset: they are re-recorded as fresh leaves the
// next time they are used, keeping the same underlying tensor.
package nn

import (
	"github.com/born-ml/tensorgrad/internal/autodiff"
	"github.com/born-ml/tensorgrad/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all trainable parameters
//
// Modules can be composed to build complex architectures:
//
//	model := nn.NewSequential[float64](
//	    nn.NewLinear(g, 784, 128, rng),
//	    nn.NewReLU[float64](),
//	    nn.NewLinear(g, 128, 10, rng),
//	)
type Module[T tensor.Float] interface {
	// Forward computes the output of the module given an input Variable.
	//
	// The input should have the appropriate shape for this module.
	// For example, Linear expects [batch_size, in_features].
	Forward(input autodiff.Variable[T]) (autodiff.Variable[T], error)

	// Parameters returns all trainable parameters of this module, bound to
	// the module's graph, in a stable order.
	//
	// Returns an empty slice for modules without trainable parameters
	// (e.g., activation functions).
	Parameters() []autodiff.Variable[T]
}
