package autodiff

import (
	"fmt"

	"github.com/born-ml/tensorgrad/internal/tensor"
	"github.com/pkg/errors"
)

// Backward computes the gradient of loss with respect to every node that
// requires one, using the graph loss is recorded on.
//
// Example:
//
//	x := g.Param(w)
//	y, _ := x.Square()
//	loss, _ := y.SumAll()
//	grads, err := autodiff.Backward(loss)
func Backward[T tensor.Float](loss Variable[T]) (Gradients[T], error) {
	if loss.graph == nil {
		return nil, errors.Wrap(ErrNotTracked, "backward")
	}
	return loss.graph.Backward(loss)
}

// Backward computes gradients by walking the graph in reverse.
//
// Algorithm:
//  1. Seed the loss node with ones of its shape
//  2. Visit nodes in strictly decreasing position, starting at the loss
//  3. For each node with a gradient, apply its op's adjoint
//  4. Reduce each input's contribution to the input's shape and add it
//     to that input's accumulated gradient
//
// The result holds an entry for every node that received a gradient and
// requires one. Input nodes recorded for constants never appear.
func (g *Graph[T]) Backward(loss Variable[T]) (Gradients[T], error) {
	if !loss.requiresGrad {
		return nil, errors.Wrap(ErrNotTracked, "backward")
	}
	if loss.graph != g {
		return nil, errors.Wrap(ErrGraphMismatch, "backward")
	}
	if err := g.check(loss.id); err != nil {
		return nil, errors.Wrap(err, "backward")
	}

	grads := make([]*tensor.Tensor[T], loss.id.index+1)
	grads[loss.id.index] = tensor.Ones[T](loss.value.Shape())

	for i := loss.id.index; i >= 0; i-- {
		grad := grads[i]
		if grad == nil {
			continue
		}
		node := &g.nodes[i]
		if node.Op.Kind == OpInput {
			continue
		}
		if !grad.Shape().Equal(node.Shape) {
			panic(fmt.Sprintf("autodiff: gradient shape %v does not match node %d %s shape %v",
				grad.Shape(), i, node.Op, node.Shape))
		}

		inputGrads := g.adjoint(node, grad)
		for j, in := range node.Inputs {
			target := &g.nodes[in.index]
			if !target.RequiresGrad {
				continue
			}
			contrib := reduceBroadcast(inputGrads[j], target.Shape)
			if existing := grads[in.index]; existing != nil {
				grads[in.index] = must(existing.Add(contrib))
			} else {
				grads[in.index] = contrib
			}
		}
	}

	out := make(Gradients[T])
	for i, grad := range grads {
		if grad != nil && g.nodes[i].RequiresGrad {
			out[NodeID{index: i, gen: g.gen}] = grad
		}
	}
	return out, nil
}

// adjoint applies the closed-form derivative of node's op to the incoming
// gradient, returning one raw contribution per input in the output's
// (possibly broadcast) shape.
func (g *Graph[T]) adjoint(node *Node[T], grad *tensor.Tensor[T]) []*tensor.Tensor[T] {
	if len(node.Inputs) != node.Op.arity() {
		panic(fmt.Sprintf("autodiff: %s node has %d inputs", node.Op, len(node.Inputs)))
	}
	input := func(j int) *tensor.Tensor[T] {
		return g.nodes[node.Inputs[j].index].Value
	}

	switch node.Op.Kind {
	case OpAdd:
		return []*tensor.Tensor[T]{grad, grad}

	case OpSub:
		return []*tensor.Tensor[T]{grad, grad.Neg()}

	case OpMul:
		a, b := input(0), input(1)
		return []*tensor.Tensor[T]{must(grad.Mul(b)), must(grad.Mul(a))}

	case OpDiv:
		// d(a/b)/da = 1/b, d(a/b)/db = -a/b²
		a, b := input(0), input(1)
		da := must(grad.Div(b))
		db := must(must(grad.Mul(a)).Div(must(b.Mul(b)))).Neg()
		return []*tensor.Tensor[T]{da, db}

	case OpMatMul:
		// d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad
		a, b := input(0), input(1)
		da := must(grad.MatMul(must(b.T())))
		db := must(must(a.T()).MatMul(grad))
		return []*tensor.Tensor[T]{da, db}

	case OpExp:
		// The output already holds exp(a).
		return []*tensor.Tensor[T]{must(grad.Mul(node.Value))}

	case OpLn:
		return []*tensor.Tensor[T]{must(grad.Div(input(0)))}

	case OpPow:
		p := T(node.Op.Exponent)
		return []*tensor.Tensor[T]{must(grad.Mul(input(0).Pow(p - 1).MulScalar(p)))}

	case OpReLU:
		mask := input(0).Apply(func(x T) T {
			if x > 0 {
				return 1
			}
			return 0
		})
		return []*tensor.Tensor[T]{must(grad.Mul(mask))}

	case OpSigmoid:
		// s * (1 - s) with s = sigmoid(a), the node's output
		s := node.Value
		return []*tensor.Tensor[T]{must(grad.Mul(must(s.Mul(s.Neg().AddScalar(1)))))}

	case OpTanh:
		// 1 - tanh(a)²
		y := node.Value
		return []*tensor.Tensor[T]{must(grad.Mul(must(y.Mul(y)).Neg().AddScalar(1)))}

	case OpSum:
		return []*tensor.Tensor[T]{expandReduced(grad, node.Op, input(0).Shape())}

	case OpMean:
		inShape := input(0).Shape()
		n := T(inShape[node.Op.Axis])
		return []*tensor.Tensor[T]{expandReduced(grad, node.Op, inShape).DivScalar(n)}

	case OpTranspose:
		return []*tensor.Tensor[T]{must(grad.Transpose(tensor.InversePermutation(node.Op.Perm)...))}

	default:
		panic(fmt.Sprintf("autodiff: no adjoint for %s", node.Op))
	}
}

// expandReduced broadcasts a reduction's gradient back along the reduced axis.
func expandReduced[T tensor.Float](grad *tensor.Tensor[T], op Op, inShape tensor.Shape) *tensor.Tensor[T] {
	if !op.KeepDim {
		grad = must(grad.Unsqueeze(op.Axis))
	}
	return must(grad.BroadcastTo(inShape))
}

// must unwraps a tensor result inside the backward pass, where every shape
// was already validated by the forward pass. A failure means the graph and
// the adjoint table disagree.
func must[T tensor.Float](t *tensor.Tensor[T], err error) *tensor.Tensor[T] {
	if err != nil {
		panic(fmt.Sprintf("autodiff: backward invariant violated: %v", err))
	}
	return t
}
