// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimizers that update parameter tensors in place.
//
// Example:
//
//	sgd := optim.NewSGD[float64](optim.SGDConfig{LR: 0.1, Momentum: 0.9})
//	grads, _ := g.Backward(loss)
//	_ = sgd.Step(model.Parameters(), grads)
package optim

import (
	"github.com/born-ml/tensorgrad/internal/optim"
	"github.com/born-ml/tensorgrad/internal/tensor"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer[T tensor.Float] = optim.Optimizer[T]

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD[T tensor.Float] = optim.SGD[T]

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
func NewSGD[T tensor.Float](config SGDConfig) *SGD[T] {
	return optim.NewSGD[T](config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam[T tensor.Float] = optim.Adam[T]

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer.
//
// Example:
//
//	optimizer := optim.NewAdam[float32](optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float64{0.9, 0.999},
//	    Eps:   1e-8,
//	})
func NewAdam[T tensor.Float](config AdamConfig) *Adam[T] {
	return optim.NewAdam[T](config)
}
