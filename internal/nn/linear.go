package nn

import (
	"math/rand"

	"github.com/born-ml/tensorgrad/internal/autodiff"
	"github.com/born-ml/tensorgrad/internal/tensor"
	"github.com/pkg/errors"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W + b
// where:
//   - x is the input with shape [batch_size, in_features]
//   - W is the weight matrix with shape [in_features, out_features]
//   - b is the bias row with shape [1, out_features], broadcast over the batch
//   - y is the output with shape [batch_size, out_features]
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
//
// Example:
//
//	g := autodiff.NewGraph[float64]()
//	layer := nn.NewLinear(g, 784, 128, rand.New(rand.NewSource(1)))
//
//	x := g.Leaf(batch, false)         // [32, 784]
//	output, err := layer.Forward(x)   // [32, 128]
type Linear[T tensor.Float] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[T] // [in_features, out_features]
	bias        *Parameter[T] // [1, out_features]
}

// NewLinear creates a new Linear layer on g.
//
// Parameters:
//   - g: Graph the layer records onto
//   - inFeatures: Number of input features
//   - outFeatures: Number of output features
//   - rng: Source of randomness for weight initialization
//
// Returns a new Linear layer.
func NewLinear[T tensor.Float](g *autodiff.Graph[T], inFeatures, outFeatures int, rng *rand.Rand) *Linear[T] {
	weight := Xavier[T](inFeatures, outFeatures, tensor.Shape{inFeatures, outFeatures}, rng)
	bias := tensor.Zeros[T](tensor.Shape{1, outFeatures})
	l, err := NewLinearFrom(g, weight, bias)
	if err != nil {
		panic(err) // shapes are constructed consistently above
	}
	return l
}

// NewLinearFrom creates a Linear layer on g around existing tensors.
//
// The tensors are shared, not copied: layers built from the same tensors on
// different graphs compute with the same weights. This is how data-parallel
// workers each get a graph-local copy of a model.
//
// Parameters:
//   - weight: Weight tensor with shape [in_features, out_features]
//   - bias: Bias tensor with shape [1, out_features], or nil for no bias
func NewLinearFrom[T tensor.Float](g *autodiff.Graph[T], weight, bias *tensor.Tensor[T]) (*Linear[T], error) {
	ws := weight.Shape()
	if ws.Rank() != 2 {
		return nil, errors.Wrapf(tensor.ErrDimensionMismatch, "linear: weight must be 2D, got %v", ws)
	}
	l := &Linear[T]{
		inFeatures:  ws[0],
		outFeatures: ws[1],
		weight:      NewParameter(g, "weight", weight),
	}
	if bias != nil {
		if !bias.Shape().Equal(tensor.Shape{1, ws[1]}) {
			return nil, errors.Wrapf(tensor.ErrShapeMismatch, "linear: bias shape %v, want (1, %d)", bias.Shape(), ws[1])
		}
		l.bias = NewParameter(g, "bias", bias)
	}
	return l, nil
}

// Forward computes the output of the linear layer.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
//
// A wrong input rank or feature count fails with tensor.ErrDimensionMismatch.
func (l *Linear[T]) Forward(input autodiff.Variable[T]) (autodiff.Variable[T], error) {
	output, err := input.MatMul(l.weight.Var())
	if err != nil {
		return autodiff.Variable[T]{}, errors.Wrap(err, "linear forward")
	}
	if l.bias == nil {
		return output, nil
	}
	output, err = output.Add(l.bias.Var())
	if err != nil {
		return autodiff.Variable[T]{}, errors.Wrap(err, "linear forward")
	}
	return output, nil
}

// Parameters returns the trainable parameters of this layer.
//
// Returns [weight, bias] if bias is present, otherwise [weight].
func (l *Linear[T]) Parameters() []autodiff.Variable[T] {
	if l.bias != nil {
		return []autodiff.Variable[T]{l.weight.Var(), l.bias.Var()}
	}
	return []autodiff.Variable[T]{l.weight.Var()}
}

// Weight returns the weight parameter.
func (l *Linear[T]) Weight() *Parameter[T] {
	return l.weight
}

// Bias returns the bias parameter, or nil.
func (l *Linear[T]) Bias() *Parameter[T] {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear[T]) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear[T]) OutFeatures() int {
	return l.outFeatures
}
