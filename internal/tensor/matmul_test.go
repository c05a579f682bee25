package tensor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMatMul2x2(t *testing.T) {
	a, err := FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	b, err := FromRows([][]float64{{5, 6}, {7, 8}})
	require.NoError(t, err)

	c, err := a.MatMul(b)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, c.Shape())
	assert.Equal(t, []float64{19, 22, 43, 50}, c.Data())
}

func TestMatMulRectangular(t *testing.T) {
	a := mustFromSlice(t, []float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	b := mustFromSlice(t, []float32{7, 8, 9, 10, 11, 12}, Shape{3, 2})

	c, err := a.MatMul(b)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, c.Shape())
	assert.Equal(t, []float32{58, 64, 139, 154}, c.Data())
}

func TestMatMulIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := Randn[float64](Shape{4, 4}, rng)

	c, err := a.MatMul(Eye[float64](4))
	require.NoError(t, err)
	assert.True(t, a.Equal(c))
}

func TestMatMulMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := Randn[float64](Shape{5, 7}, rng)
	b := Randn[float64](Shape{7, 3}, rng)

	got, err := a.MatMul(b)
	require.NoError(t, err)

	var want mat.Dense
	want.Mul(mat.NewDense(5, 7, a.Clone().Data()), mat.NewDense(7, 3, b.Clone().Data()))
	assert.InDeltaSlice(t, want.RawMatrix().Data, got.Data(), 1e-12)
}

func TestMatMulErrors(t *testing.T) {
	_, err := Ones[float64](Shape{2, 3}).MatMul(Ones[float64](Shape{2, 3}))
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Ones[float64](Shape{2, 3, 4}).MatMul(Ones[float64](Shape{4, 2}))
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Ones[float64](Shape{3}).MatMul(Ones[float64](Shape{3, 1}))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMatMulEmptyInner(t *testing.T) {
	c, err := Zeros[float64](Shape{2, 0}).MatMul(Zeros[float64](Shape{0, 3}))
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, c.Shape())
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, c.Data())
}

func TestDot(t *testing.T) {
	a := mustFromSlice(t, []float64{1, 2, 3}, Shape{3})
	b := mustFromSlice(t, []float64{4, 5, 6}, Shape{3})

	d, err := a.Dot(b)
	require.NoError(t, err)
	assert.Equal(t, 32.0, d)

	_, err = a.Dot(Ones[float64](Shape{2}))
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = a.Dot(Ones[float64](Shape{3, 1}))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestOuter(t *testing.T) {
	a := mustFromSlice(t, []float64{1, 2}, Shape{2})
	b := mustFromSlice(t, []float64{3, 4, 5}, Shape{3})
	got, err := a.Outer(b)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, got.Shape())
	assert.Equal(t, []float64{3, 4, 5, 6, 8, 10}, got.Data())

	// Outer of column and row vectors equals their matrix product.
	col, _ := a.Reshape(2, 1)
	row, _ := b.Reshape(1, 3)
	mm, err := col.MatMul(row)
	require.NoError(t, err)
	assert.True(t, mm.Equal(got))

	_, err = col.Outer(b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
