// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Linear
//   - Activations: ReLU, LeakyReLU, Sigmoid, Tanh
//   - Loss functions: MSELoss
//   - Utilities: Sequential, Module interface, Parameter
//   - Initialization: Xavier
//
// Layers keep their parameters as tensors and bind them to a Graph on first
// use; after Graph.Reset the next Forward records them again.
//
// # Basic Usage
//
//	g := autodiff.NewGraph[float64]()
//	rng := rand.New(rand.NewSource(1))
//	model := nn.NewSequential[float64](
//	    nn.NewLinear(g, 4, 16, rng),
//	    nn.NewReLU[float64](),
//	    nn.NewLinear(g, 16, 1, rng),
//	)
//	out, err := model.Forward(autodiff.Constant(x))
package nn

import (
	"math/rand"

	"github.com/born-ml/tensorgrad/internal/autodiff"
	"github.com/born-ml/tensorgrad/internal/nn"
	"github.com/born-ml/tensorgrad/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[T tensor.Float] = nn.Module[T]

// Parameter represents a trainable parameter in a neural network.
type Parameter[T tensor.Float] = nn.Parameter[T]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[T tensor.Float](g *autodiff.Graph[T], name string, t *tensor.Tensor[T]) *Parameter[T] {
	return nn.NewParameter(g, name, t)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[T tensor.Float] = nn.Linear[T]

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	g := autodiff.NewGraph[float32]()
//	layer := nn.NewLinear(g, 784, 128, rand.New(rand.NewSource(42)))
func NewLinear[T tensor.Float](g *autodiff.Graph[T], inFeatures, outFeatures int, rng *rand.Rand) *Linear[T] {
	return nn.NewLinear(g, inFeatures, outFeatures, rng)
}

// NewLinearFrom creates a linear layer around existing weight [in, out] and
// bias [1, out] tensors. bias may be nil.
func NewLinearFrom[T tensor.Float](g *autodiff.Graph[T], weight, bias *tensor.Tensor[T]) (*Linear[T], error) {
	return nn.NewLinearFrom(g, weight, bias)
}

// Sequential chains modules.
type Sequential[T tensor.Float] = nn.Sequential[T]

// NewSequential creates a container that applies modules in order.
func NewSequential[T tensor.Float](modules ...Module[T]) *Sequential[T] {
	return nn.NewSequential(modules...)
}

// Activations

// ReLU applies max(0, x).
type ReLU[T tensor.Float] = nn.ReLU[T]

// NewReLU creates a ReLU activation.
func NewReLU[T tensor.Float]() *ReLU[T] { return nn.NewReLU[T]() }

// LeakyReLU applies x for x > 0 and alpha*x otherwise.
type LeakyReLU[T tensor.Float] = nn.LeakyReLU[T]

// NewLeakyReLU creates a LeakyReLU activation.
func NewLeakyReLU[T tensor.Float](alpha T) *LeakyReLU[T] { return nn.NewLeakyReLU(alpha) }

// Sigmoid applies 1 / (1 + exp(-x)).
type Sigmoid[T tensor.Float] = nn.Sigmoid[T]

// NewSigmoid creates a Sigmoid activation.
func NewSigmoid[T tensor.Float]() *Sigmoid[T] { return nn.NewSigmoid[T]() }

// Tanh applies the hyperbolic tangent.
type Tanh[T tensor.Float] = nn.Tanh[T]

// NewTanh creates a Tanh activation.
func NewTanh[T tensor.Float]() *Tanh[T] { return nn.NewTanh[T]() }

// Loss functions

// MSELoss computes mean((pred - target)^2).
func MSELoss[T tensor.Float](pred, target autodiff.Variable[T]) (autodiff.Variable[T], error) {
	return nn.MSELoss(pred, target)
}

// Xavier returns a tensor drawn from the Glorot uniform distribution.
func Xavier[T tensor.Float](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Tensor[T] {
	return nn.Xavier[T](fanIn, fanOut, shape, rng)
}
