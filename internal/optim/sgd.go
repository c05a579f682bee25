package optim

import (
	"github.com/born-ml/tensorgrad/internal/autodiff"
	"github.com/born-ml/tensorgrad/internal/tensor"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Momentum helps accelerate SGD in relevant directions and dampens oscillations.
//
// Example:
//
//	optimizer := optim.NewSGD[float32](optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
//
//	for epoch := range epochs {
//	    grads, _ := g.Backward(loss)
//	    _ = optimizer.Step(model.Parameters(), grads)
//	}
type SGD[T tensor.Float] struct {
	lr         float64
	momentum   float64
	velocities map[*tensor.Tensor[T]]*tensor.Tensor[T]
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
//
// Parameters:
//   - config: SGD configuration (LR, Momentum)
//
// Returns a new SGD optimizer.
func NewSGD[T tensor.Float](config SGDConfig) *SGD[T] {
	// Set defaults
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD[T]{
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*tensor.Tensor[T]]*tensor.Tensor[T]),
	}
}

// Step performs a single optimization step.
//
// Applies gradient descent update to all parameters:
//   - Without momentum: param -= lr * grad
//   - With momentum: velocity = momentum * velocity + grad, param -= lr * velocity
//
// Parameters with no gradient (not in computational graph) are skipped.
func (s *SGD[T]) Step(params []autodiff.Variable[T], grads autodiff.Gradients[T]) error {
	return s.Update(pairGradients(params, grads))
}

// Update applies grads[i] to params[i] in place.
func (s *SGD[T]) Update(params, grads []*tensor.Tensor[T]) error {
	if err := checkPairs(params, grads); err != nil {
		return err
	}
	for i, param := range params {
		grad := grads[i]
		if grad == nil {
			// Parameter didn't participate in forward pass, skip
			continue
		}
		if s.momentum == 0 {
			// Simple SGD: param -= lr * grad. Shapes were checked by checkPairs.
			_ = param.SubScaledInPlace(grad, T(s.lr))
			continue
		}
		s.updateWithMomentum(param, grad)
	}
	return nil
}

// updateWithMomentum performs SGD update with momentum.
func (s *SGD[T]) updateWithMomentum(param, grad *tensor.Tensor[T]) {
	// velocity = momentum * velocity + grad
	velocity, exists := s.velocities[param]
	if !exists {
		velocity = grad.Clone()
	} else {
		velocity, _ = velocity.MulScalar(T(s.momentum)).Add(grad)
	}
	s.velocities[param] = velocity

	// param -= lr * velocity; velocity has param's shape.
	_ = param.SubScaledInPlace(velocity, T(s.lr))
}

// GetLR returns the current learning rate.
func (s *SGD[T]) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD[T]) SetLR(lr float64) {
	s.lr = lr
}

// Velocity returns the momentum buffer for param, or nil before its first update.
func (s *SGD[T]) Velocity(param *tensor.Tensor[T]) *tensor.Tensor[T] {
	return s.velocities[param]
}
