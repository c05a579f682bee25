// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// Operations on Variables record nodes on a Graph; Backward walks the graph
// in reverse and returns the gradient of a scalar loss with respect to every
// node that requires one.
//
// Example:
//
//	import (
//	    "github.com/born-ml/tensorgrad/autodiff"
//	    "github.com/born-ml/tensorgrad/tensor"
//	)
//
//	func main() {
//	    g := autodiff.NewGraph[float64]()
//	    x := g.Param(tensor.Scalar(3.0))
//	    y, _ := x.Square()
//
//	    grads, _ := autodiff.Backward(y)
//	    dx, _ := grads.Of(x) // 6
//	}
package autodiff

import (
	"github.com/born-ml/tensorgrad/internal/autodiff"
	"github.com/born-ml/tensorgrad/internal/tensor"
)

// Graph records operations for automatic differentiation.
type Graph[T tensor.Float] = autodiff.Graph[T]

// NewGraph creates an empty graph.
func NewGraph[T tensor.Float]() *Graph[T] {
	return autodiff.NewGraph[T]()
}

// Variable is a forward value, optionally tracked by a Graph.
type Variable[T tensor.Float] = autodiff.Variable[T]

// Constant wraps t as an untracked Variable.
func Constant[T tensor.Float](t *tensor.Tensor[T]) Variable[T] {
	return autodiff.Constant(t)
}

// Node is one recorded operation.
type Node[T tensor.Float] = autodiff.Node[T]

// NodeID identifies a node within one generation of a Graph.
type NodeID = autodiff.NodeID

// Op describes a recorded operation and its attributes.
type Op = autodiff.Op

// OpKind enumerates the differentiable operations.
type OpKind = autodiff.OpKind

// Operation kinds.
const (
	OpInput     = autodiff.OpInput
	OpAdd       = autodiff.OpAdd
	OpSub       = autodiff.OpSub
	OpMul       = autodiff.OpMul
	OpDiv       = autodiff.OpDiv
	OpMatMul    = autodiff.OpMatMul
	OpExp       = autodiff.OpExp
	OpLn        = autodiff.OpLn
	OpPow       = autodiff.OpPow
	OpReLU      = autodiff.OpReLU
	OpSigmoid   = autodiff.OpSigmoid
	OpTanh      = autodiff.OpTanh
	OpSum       = autodiff.OpSum
	OpMean      = autodiff.OpMean
	OpTranspose = autodiff.OpTranspose
)

// Gradients maps node IDs to the gradient of the loss.
type Gradients[T tensor.Float] = autodiff.Gradients[T]

// Errors returned by graph operations.
var (
	ErrNotTracked    = autodiff.ErrNotTracked
	ErrStaleNode     = autodiff.ErrStaleNode
	ErrGraphMismatch = autodiff.ErrGraphMismatch
)

// Backward computes gradients of the scalar loss via backpropagation.
func Backward[T tensor.Float](loss Variable[T]) (Gradients[T], error) {
	return autodiff.Backward(loss)
}
