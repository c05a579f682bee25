// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"testing"

	"github.com/born-ml/tensorgrad/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicTensorAPI(t *testing.T) {
	x, err := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	y, err := x.Add(tensor.Ones[float64](tensor.Shape{2}))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 4, 5}, y.Data())
	assert.Equal(t, tensor.Float64, y.DType())

	_, err = x.MatMul(tensor.Zeros[float64](tensor.Shape{3, 1}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, tensor.ErrDimensionMismatch))

	var opErr *tensor.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "matmul", opErr.Op)
}

func TestPublicBroadcastShapes(t *testing.T) {
	s, err := tensor.BroadcastShapes(tensor.Shape{3, 1}, tensor.Shape{1, 4})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 4}, s)

	_, err = tensor.BroadcastShapes(tensor.Shape{2}, tensor.Shape{3})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}
