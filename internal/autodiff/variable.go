package autodiff

import (
	"github.com/born-ml/tensorgrad/internal/tensor"
	"github.com/pkg/errors"
)

// Variable wraps a forward value and, when tracked, the graph node that produced it.
//
// Variables are small values and are passed by value. A Variable without a
// graph is an untracked constant; operations on it never record nodes.
type Variable[T tensor.Float] struct {
	value        *tensor.Tensor[T]
	graph        *Graph[T]
	id           NodeID
	requiresGrad bool
}

// Constant wraps t as an untracked Variable.
func Constant[T tensor.Float](t *tensor.Tensor[T]) Variable[T] {
	return Variable[T]{value: t}
}

// Param records t as a trainable leaf.
func (g *Graph[T]) Param(t *tensor.Tensor[T]) Variable[T] {
	return g.Leaf(t, true)
}

// Leaf records t as an Input node. Leaves with requiresGrad false hold fixed
// data: they take part in the graph but never receive a gradient.
func (g *Graph[T]) Leaf(t *tensor.Tensor[T], requiresGrad bool) Variable[T] {
	id := g.AddNode(Op{Kind: OpInput}, nil, t, requiresGrad)
	return Variable[T]{value: t, graph: g, id: id, requiresGrad: requiresGrad}
}

// Value returns the forward tensor.
func (v Variable[T]) Value() *tensor.Tensor[T] { return v.value }

// Shape returns the forward tensor's shape.
func (v Variable[T]) Shape() tensor.Shape { return v.value.Shape() }

// Graph returns the graph v is recorded on, or nil for a constant.
func (v Variable[T]) Graph() *Graph[T] { return v.graph }

// ID returns v's node ID and whether v is recorded on a graph.
func (v Variable[T]) ID() (NodeID, bool) { return v.id, v.graph != nil }

// RequiresGrad reports whether gradients flow to v.
func (v Variable[T]) RequiresGrad() bool { return v.requiresGrad }

// Detach returns an untracked Variable sharing v's value.
func (v Variable[T]) Detach() Variable[T] { return Constant(v.value) }

// Binary operations

// Add computes v + other with broadcasting.
func (v Variable[T]) Add(other Variable[T]) (Variable[T], error) {
	return binary(Op{Kind: OpAdd}, v, other, (*tensor.Tensor[T]).Add)
}

// Sub computes v - other with broadcasting.
func (v Variable[T]) Sub(other Variable[T]) (Variable[T], error) {
	return binary(Op{Kind: OpSub}, v, other, (*tensor.Tensor[T]).Sub)
}

// Mul computes v * other element-wise with broadcasting.
func (v Variable[T]) Mul(other Variable[T]) (Variable[T], error) {
	return binary(Op{Kind: OpMul}, v, other, (*tensor.Tensor[T]).Mul)
}

// Div computes v / other element-wise with broadcasting.
func (v Variable[T]) Div(other Variable[T]) (Variable[T], error) {
	return binary(Op{Kind: OpDiv}, v, other, (*tensor.Tensor[T]).Div)
}

// MatMul computes the rank-2 matrix product v @ other.
func (v Variable[T]) MatMul(other Variable[T]) (Variable[T], error) {
	return binary(Op{Kind: OpMatMul}, v, other, (*tensor.Tensor[T]).MatMul)
}

// Unary operations

// Exp computes e**v element-wise.
func (v Variable[T]) Exp() (Variable[T], error) {
	return unary(Op{Kind: OpExp}, v, infallible((*tensor.Tensor[T]).Exp))
}

// Ln computes the natural logarithm element-wise.
func (v Variable[T]) Ln() (Variable[T], error) {
	return unary(Op{Kind: OpLn}, v, infallible((*tensor.Tensor[T]).Log))
}

// Pow raises v to the power p element-wise.
func (v Variable[T]) Pow(p T) (Variable[T], error) {
	return unary(Op{Kind: OpPow, Exponent: float64(p)}, v, func(t *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
		return t.Pow(p), nil
	})
}

// ReLU computes max(0, v) element-wise.
func (v Variable[T]) ReLU() (Variable[T], error) {
	return unary(Op{Kind: OpReLU}, v, infallible((*tensor.Tensor[T]).ReLU))
}

// Sigmoid computes 1 / (1 + exp(-v)) element-wise.
func (v Variable[T]) Sigmoid() (Variable[T], error) {
	return unary(Op{Kind: OpSigmoid}, v, infallible((*tensor.Tensor[T]).Sigmoid))
}

// Tanh computes tanh(v) element-wise.
func (v Variable[T]) Tanh() (Variable[T], error) {
	return unary(Op{Kind: OpTanh}, v, infallible((*tensor.Tensor[T]).Tanh))
}

// Sum reduces v along axis. Negative axes count from the end.
func (v Variable[T]) Sum(axis int, keepDim bool) (Variable[T], error) {
	return v.reduce(OpSum, axis, keepDim, (*tensor.Tensor[T]).SumDim)
}

// Mean averages v along axis. Fails with tensor.ErrInvalidAxis on a zero-length axis.
func (v Variable[T]) Mean(axis int, keepDim bool) (Variable[T], error) {
	return v.reduce(OpMean, axis, keepDim, (*tensor.Tensor[T]).MeanDim)
}

func (v Variable[T]) reduce(
	kind OpKind,
	axis int,
	keepDim bool,
	f func(*tensor.Tensor[T], int, bool) (*tensor.Tensor[T], error),
) (Variable[T], error) {
	if _, err := v.value.Shape().Dim(axis); err != nil {
		return Variable[T]{}, errors.Wrapf(err, "autodiff %s", kind)
	}
	if axis < 0 {
		axis += v.value.Rank()
	}
	op := Op{Kind: kind, Axis: axis, KeepDim: keepDim}
	return unary(op, v, func(t *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
		return f(t, axis, keepDim)
	})
}

// Transpose permutes v's axes. With no arguments the axes are reversed.
func (v Variable[T]) Transpose(axes ...int) (Variable[T], error) {
	rank := v.value.Rank()
	perm := make([]int, rank)
	if len(axes) == 0 {
		for i := range perm {
			perm[i] = rank - 1 - i
		}
	} else {
		if len(axes) != rank {
			return Variable[T]{}, badPermutation(v.value, axes)
		}
		for i, a := range axes {
			if a < -rank || a >= rank {
				return Variable[T]{}, badPermutation(v.value, axes)
			}
			if a < 0 {
				a += rank
			}
			perm[i] = a
		}
	}
	return unary(Op{Kind: OpTranspose, Perm: perm}, v, func(t *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
		return t.Transpose(perm...)
	})
}

// badPermutation lets the tensor engine report a malformed permutation.
func badPermutation[T tensor.Float](t *tensor.Tensor[T], axes []int) error {
	_, err := t.Transpose(axes...)
	return errors.Wrap(err, "autodiff Transpose")
}

// Composite helpers. Each records only ops from the closed set.

// Neg computes -v.
func (v Variable[T]) Neg() (Variable[T], error) {
	return v.Scale(-1)
}

// Scale computes s * v.
func (v Variable[T]) Scale(s T) (Variable[T], error) {
	return v.Mul(Constant(tensor.Scalar(s)))
}

// AddScalar computes v + s.
func (v Variable[T]) AddScalar(s T) (Variable[T], error) {
	return v.Add(Constant(tensor.Scalar(s)))
}

// Square computes v**2.
func (v Variable[T]) Square() (Variable[T], error) {
	return v.Pow(2)
}

// SumAll reduces every axis, producing a rank-0 Variable.
func (v Variable[T]) SumAll() (Variable[T], error) {
	var err error
	for v.value.Rank() > 0 && err == nil {
		v, err = v.Sum(0, false)
	}
	return v, err
}

// MeanAll averages over every axis, producing a rank-0 Variable.
func (v Variable[T]) MeanAll() (Variable[T], error) {
	var err error
	for v.value.Rank() > 0 && err == nil {
		v, err = v.Mean(0, false)
	}
	return v, err
}

// Recording

func infallible[T tensor.Float](f func(*tensor.Tensor[T]) *tensor.Tensor[T]) func(*tensor.Tensor[T]) (*tensor.Tensor[T], error) {
	return func(t *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
		return f(t), nil
	}
}

func unary[T tensor.Float](op Op, a Variable[T], f func(*tensor.Tensor[T]) (*tensor.Tensor[T], error)) (Variable[T], error) {
	g, err := sharedGraph(a)
	if err != nil {
		return Variable[T]{}, errors.Wrapf(err, "autodiff %s", op)
	}
	out, err := f(a.value)
	if err != nil {
		return Variable[T]{}, errors.Wrapf(err, "autodiff %s", op)
	}
	return g.record(op, out, a), nil
}

func binary[T tensor.Float](
	op Op,
	a, b Variable[T],
	f func(*tensor.Tensor[T], *tensor.Tensor[T]) (*tensor.Tensor[T], error),
) (Variable[T], error) {
	g, err := sharedGraph(a, b)
	if err != nil {
		return Variable[T]{}, errors.Wrapf(err, "autodiff %s", op)
	}
	out, err := f(a.value, b.value)
	if err != nil {
		return Variable[T]{}, errors.Wrapf(err, "autodiff %s", op)
	}
	return g.record(op, out, a, b), nil
}

// sharedGraph returns the single graph the operands are recorded on (nil if
// none). Operands from different graphs, or from an earlier generation of
// the same graph, are rejected.
func sharedGraph[T tensor.Float](operands ...Variable[T]) (*Graph[T], error) {
	var g *Graph[T]
	for _, v := range operands {
		if v.graph == nil {
			continue
		}
		if g != nil && g != v.graph {
			return nil, ErrGraphMismatch
		}
		if err := v.graph.check(v.id); err != nil {
			return nil, err
		}
		g = v.graph
	}
	return g, nil
}

// record appends a node for op if any operand requires a gradient and g is
// recording; otherwise the result is an untracked constant. Operands without
// a node are recorded as Input nodes that do not require gradients.
func (g *Graph[T]) record(op Op, value *tensor.Tensor[T], operands ...Variable[T]) Variable[T] {
	if g == nil || !g.IsRecording() || !anyRequiresGrad(operands) {
		return Constant(value)
	}
	inputs := make([]NodeID, len(operands))
	for i, v := range operands {
		if v.graph != nil {
			inputs[i] = v.id
			continue
		}
		inputs[i] = g.AddNode(Op{Kind: OpInput}, nil, v.value, false)
	}
	id := g.AddNode(op, inputs, value, true)
	return Variable[T]{value: value, graph: g, id: id, requiresGrad: true}
}

func anyRequiresGrad[T tensor.Float](vs []Variable[T]) bool {
	for _, v := range vs {
		if v.requiresGrad {
			return true
		}
	}
	return false
}
