package nn

import (
	"github.com/born-ml/tensorgrad/internal/autodiff"
	"github.com/born-ml/tensorgrad/internal/tensor"
	"github.com/pkg/errors"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input, creating a
// sequential pipeline of transformations.
//
// Example:
//
//	model := nn.NewSequential[float64](
//	    nn.NewLinear(g, 784, 128, rng),
//	    nn.NewReLU[float64](),
//	    nn.NewLinear(g, 128, 10, rng),
//	)
//
//	output, err := model.Forward(input)
//
// This is equivalent to:
//
//	h1, _ := linear1.Forward(input)
//	h2, _ := relu.Forward(h1)
//	output, _ := linear2.Forward(h2)
type Sequential[T tensor.Float] struct {
	modules []Module[T]
}

// NewSequential creates a new Sequential container.
//
// Parameters:
//   - modules: List of modules to chain together
//
// Returns a new Sequential container.
func NewSequential[T tensor.Float](modules ...Module[T]) *Sequential[T] {
	return &Sequential[T]{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
//
// The output of each module becomes the input to the next module. The first
// failing module's error is returned with its position in the sequence.
func (s *Sequential[T]) Forward(input autodiff.Variable[T]) (autodiff.Variable[T], error) {
	output := input

	for i, module := range s.modules {
		var err error
		output, err = module.Forward(output)
		if err != nil {
			return autodiff.Variable[T]{}, errors.Wrapf(err, "sequential layer %d", i)
		}
	}

	return output, nil
}

// Parameters returns all trainable parameters from all modules, in order.
func (s *Sequential[T]) Parameters() []autodiff.Variable[T] {
	var params []autodiff.Variable[T]

	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}

	return params
}

// Len returns the number of modules in the sequence.
func (s *Sequential[T]) Len() int {
	return len(s.modules)
}

// Layers returns the modules in order. The slice must not be modified.
func (s *Sequential[T]) Layers() []Module[T] {
	return s.modules
}
