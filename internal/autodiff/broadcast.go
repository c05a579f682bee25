package autodiff

import (
	"fmt"

	"github.com/born-ml/tensorgrad/internal/tensor"
)

// reduceBroadcast reduces a gradient tensor to match the target shape.
// This is necessary when broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
func reduceBroadcast[T tensor.Float](grad *tensor.Tensor[T], target tensor.Shape) *tensor.Tensor[T] {
	if grad.Shape().Equal(target) {
		return grad
	}

	// Broadcasting aligns from the right, so extra leading dims are summed away.
	for grad.Rank() > len(target) {
		grad = must(grad.SumDim(0, false))
	}

	// Then sum along dimensions that were stretched from 1.
	for i, dim := range target {
		if dim == 1 && grad.Shape()[i] != 1 {
			grad = must(grad.SumDim(i, true))
		}
	}

	if !grad.Shape().Equal(target) {
		panic(fmt.Sprintf("autodiff: cannot reduce gradient of shape %v to %v", grad.Shape(), target))
	}
	return grad
}
