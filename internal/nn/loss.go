package nn

import (
	"github.com/born-ml/tensorgrad/internal/autodiff"
	"github.com/born-ml/tensorgrad/internal/tensor"
	"github.com/pkg/errors"
)

// MSELoss computes mean((pred - target)²) over every element.
//
// target is usually an untracked Variable. Shapes must broadcast; a mismatch
// fails with tensor.ErrShapeMismatch.
func MSELoss[T tensor.Float](pred, target autodiff.Variable[T]) (autodiff.Variable[T], error) {
	diff, err := pred.Sub(target)
	if err != nil {
		return autodiff.Variable[T]{}, errors.Wrap(err, "mse loss")
	}
	sq, err := diff.Square()
	if err != nil {
		return autodiff.Variable[T]{}, errors.Wrap(err, "mse loss")
	}
	return sq.MeanAll()
}
