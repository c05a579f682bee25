package optim

import (
	"math"

	"github.com/born-ml/tensorgrad/internal/autodiff"
	"github.com/born-ml/tensorgrad/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)  // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam[T tensor.Float] struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	t     int                                     // Timestep for bias correction
	m     map[*tensor.Tensor[T]]*tensor.Tensor[T] // First moment estimates
	v     map[*tensor.Tensor[T]]*tensor.Tensor[T] // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer. Zero fields take their defaults.
func NewAdam[T tensor.Float](config AdamConfig) *Adam[T] {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam[T]{
		lr:    config.LR,
		beta1: config.Betas[0],
		beta2: config.Betas[1],
		eps:   config.Eps,
		m:     make(map[*tensor.Tensor[T]]*tensor.Tensor[T]),
		v:     make(map[*tensor.Tensor[T]]*tensor.Tensor[T]),
	}
}

// Step performs a single optimization step using Adam algorithm.
// Parameters with no gradient are skipped.
func (a *Adam[T]) Step(params []autodiff.Variable[T], grads autodiff.Gradients[T]) error {
	return a.Update(pairGradients(params, grads))
}

// Update applies grads[i] to params[i] in place and advances the timestep.
func (a *Adam[T]) Update(params, grads []*tensor.Tensor[T]) error {
	if err := checkPairs(params, grads); err != nil {
		return err
	}
	a.t++

	biasCorrection1 := T(1.0 - math.Pow(a.beta1, float64(a.t)))
	biasCorrection2 := T(1.0 - math.Pow(a.beta2, float64(a.t)))

	for i, param := range params {
		grad := grads[i]
		if grad == nil {
			continue
		}

		m, ok := a.m[param]
		if !ok {
			m = tensor.Zeros[T](param.Shape())
		}
		v, ok := a.v[param]
		if !ok {
			v = tensor.Zeros[T](param.Shape())
		}

		// Shapes were checked above; the element-wise ops cannot fail.
		m, _ = m.MulScalar(T(a.beta1)).Add(grad.MulScalar(T(1 - a.beta1)))
		sq, _ := grad.Mul(grad)
		v, _ = v.MulScalar(T(a.beta2)).Add(sq.MulScalar(T(1 - a.beta2)))
		a.m[param], a.v[param] = m, v

		mHat := m.DivScalar(biasCorrection1)
		vHat := v.DivScalar(biasCorrection2)
		step, _ := mHat.Div(vHat.Sqrt().AddScalar(T(a.eps)))
		// step has param's shape; checkPairs validated grad.
		_ = param.SubScaledInPlace(step, T(a.lr))
	}
	return nil
}

// GetLR returns the current learning rate.
func (a *Adam[T]) GetLR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam[T]) SetLR(lr float64) {
	a.lr = lr
}
