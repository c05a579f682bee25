package tensor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  int
	}{
		{"scalar", Shape{}, 1},
		{"vector", Shape{5}, 5},
		{"matrix", Shape{3, 4}, 12},
		{"empty", Shape{2, 0, 3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shape.NumElements())
		})
	}
}

func TestShapeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.Strides())
	assert.Equal(t, []int{}, Shape{}.Strides())
	assert.Equal(t, 1*12+2*4+3, Offset(Shape{2, 3, 4}.Strides(), []int{1, 2, 3}))
}

func TestShapeDim(t *testing.T) {
	s := Shape{2, 3, 4}

	d, err := s.Dim(-1)
	require.NoError(t, err)
	assert.Equal(t, 4, d)

	d, err = s.Dim(0)
	require.NoError(t, err)
	assert.Equal(t, 2, d)

	_, err = s.Dim(3)
	assert.ErrorIs(t, err, ErrInvalidAxis)
	_, err = s.Dim(-4)
	assert.ErrorIs(t, err, ErrInvalidAxis)
}

func TestShapeValidate(t *testing.T) {
	assert.NoError(t, Shape{0, 2}.Validate())
	assert.ErrorIs(t, Shape{2, -1}.Validate(), ErrShapeMismatch)
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "(2, 3)", Shape{2, 3}.String())
	assert.Equal(t, "()", Shape{}.String())
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name string
		a, b Shape
		want Shape
	}{
		{"equal", Shape{2, 3}, Shape{2, 3}, Shape{2, 3}},
		{"column against matrix", Shape{3, 1}, Shape{3, 5}, Shape{3, 5}},
		{"leading pad", Shape{5, 3, 1}, Shape{4}, Shape{5, 3, 4}},
		{"outer product", Shape{3, 1}, Shape{1, 4}, Shape{3, 4}},
		{"scalar", Shape{}, Shape{2, 2}, Shape{2, 2}},
		{"zero length", Shape{0, 1}, Shape{1, 3}, Shape{0, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BroadcastShapes(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Broadcasting is symmetric.
			rev, err := BroadcastShapes(tt.b, tt.a)
			require.NoError(t, err)
			assert.Equal(t, got, rev)
		})
	}
}

func TestBroadcastShapesAssociative(t *testing.T) {
	a, b, c := Shape{4, 1, 1}, Shape{3, 1}, Shape{2}

	ab, err := BroadcastShapes(a, b)
	require.NoError(t, err)
	left, err := BroadcastShapes(ab, c)
	require.NoError(t, err)

	bc, err := BroadcastShapes(b, c)
	require.NoError(t, err)
	right, err := BroadcastShapes(a, bc)
	require.NoError(t, err)

	assert.Equal(t, Shape{4, 3, 2}, left)
	assert.Equal(t, left, right)
}

func TestBroadcastShapesIncompatible(t *testing.T) {
	_, err := BroadcastShapes(Shape{3, 4}, Shape{3, 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, []Shape{{3, 4}, {3, 5}}, opErr.Shapes)
}
