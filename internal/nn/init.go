package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/tensorgrad/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// This initialization helps maintain variance of activations across layers.
//
// Parameters:
//   - fanIn: Number of input units
//   - fanOut: Number of output units
//   - shape: Shape of the weight tensor
//   - rng: Source of randomness; a seeded source gives reproducible weights
//
// Returns a tensor initialized with Xavier distribution.
func Xavier[T tensor.Float](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Tensor[T] {
	// Xavier/Glorot bound: sqrt(6 / (fan_in + fan_out))
	bound := T(math.Sqrt(6.0 / float64(fanIn+fanOut)))
	return tensor.Uniform(shape, -bound, bound, rng)
}
