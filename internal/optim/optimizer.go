// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers update parameter tensors in place. Their state (velocities,
// moments) is keyed by the parameter tensor, so it survives Graph.Reset even
// though the parameters' node IDs change every step.
//
// Example usage:
//
//	optimizer := optim.NewSGD[float64](optim.SGDConfig{LR: 0.1})
//
//	for epoch := range epochs {
//	    g.Reset()
//	    output, _ := model.Forward(g.Leaf(batch, false))
//	    loss, _ := nn.MSELoss(output, target)
//	    grads, _ := g.Backward(loss)
//	    _ = optimizer.Step(model.Parameters(), grads)
//	}
package optim

import (
	"github.com/born-ml/tensorgrad/internal/autodiff"
	"github.com/born-ml/tensorgrad/internal/tensor"
	"github.com/pkg/errors"
)

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply updates from a gradient map
//   - Update: Apply updates from gradients already paired with their tensors
//   - GetLR / SetLR: Learning rate access for monitoring and scheduling
type Optimizer[T tensor.Float] interface {
	// Step looks up each parameter in grads and updates its tensor in place.
	// Parameters with no gradient (not in the graph of the loss) are skipped.
	Step(params []autodiff.Variable[T], grads autodiff.Gradients[T]) error

	// Update applies grads[i] to params[i]. nil gradients are skipped.
	// This is the entry point for gradients summed across parallel workers.
	Update(params, grads []*tensor.Tensor[T]) error

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR updates the learning rate.
	SetLR(lr float64)
}

// pairGradients resolves each parameter's gradient from a gradient map.
func pairGradients[T tensor.Float](params []autodiff.Variable[T], grads autodiff.Gradients[T]) (values, paired []*tensor.Tensor[T]) {
	values = make([]*tensor.Tensor[T], len(params))
	paired = make([]*tensor.Tensor[T], len(params))
	for i, p := range params {
		values[i] = p.Value()
		if g, ok := grads.Of(p); ok {
			paired[i] = g
		}
	}
	return values, paired
}

// checkPairs validates that every non-nil gradient matches its parameter.
func checkPairs[T tensor.Float](params, grads []*tensor.Tensor[T]) error {
	if len(params) != len(grads) {
		return errors.Errorf("optim: %d parameters but %d gradients", len(params), len(grads))
	}
	for i, g := range grads {
		if g == nil {
			continue
		}
		if !g.Shape().Equal(params[i].Shape()) {
			return errors.Wrapf(tensor.ErrShapeMismatch,
				"optim: gradient %d has shape %v, parameter has %v", i, g.Shape(), params[i].Shape())
		}
	}
	return nil
}
