package tensor

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFromSlice[T Float](t *testing.T, data []T, shape Shape) *Tensor[T] {
	t.Helper()
	out, err := FromSlice(data, shape)
	require.NoError(t, err)
	return out
}

func TestFromSlice(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	x := mustFromSlice(t, data, Shape{2, 3})

	assert.Equal(t, Shape{2, 3}, x.Shape())
	assert.Equal(t, []int{3, 1}, x.Strides())
	assert.Equal(t, 2, x.Rank())
	assert.Equal(t, 6, x.NumElements())
	assert.Equal(t, Float64, x.DType())

	// The input slice is copied.
	data[0] = 100
	v, err := x.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestFromSliceLengthMismatch(t *testing.T) {
	_, err := FromSlice([]float32{1, 2, 3}, Shape{2, 2})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = FromSlice([]float32{}, Shape{-1})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestExportRoundTrip(t *testing.T) {
	x := mustFromSlice(t, []float32{1.5, -2, 0, 7}, Shape{2, 1, 2})

	data, shape := x.Export()
	y, err := FromExport(data, shape)
	require.NoError(t, err)
	assert.True(t, x.Equal(y))

	// Export hands out copies.
	data[0] = 42
	shape[0] = 9
	assert.Equal(t, float32(1.5), x.Data()[0])
	assert.Equal(t, Shape{2, 1, 2}, x.Shape())
}

func TestAtSet(t *testing.T) {
	x := Zeros[float64](Shape{3, 4})
	require.NoError(t, x.Set(5, 1, 2))

	v, err := x.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
	assert.Equal(t, 5.0, x.Data()[1*4+2])

	_, err = x.At(3, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = x.At(0, -1)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = x.At(0)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	assert.ErrorIs(t, x.Set(1, 0, 4), ErrIndexOutOfBounds)
}

func TestItem(t *testing.T) {
	v, err := Scalar(3.5).Item()
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)

	v, err = Full(Shape{1, 1}, 2.0).Item()
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	_, err = Ones[float64](Shape{2}).Item()
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestCloneIsIndependent(t *testing.T) {
	x := mustFromSlice(t, []float64{1, 2}, Shape{2})
	y := x.Clone()
	require.NoError(t, y.Set(9, 0))
	assert.Equal(t, []float64{1, 2}, x.Data())
}

func TestSubScaledInPlace(t *testing.T) {
	w := mustFromSlice(t, []float64{1, 2, 3}, Shape{3})
	g := mustFromSlice(t, []float64{10, 20, 30}, Shape{3})

	require.NoError(t, w.SubScaledInPlace(g, 0.1))
	assert.InDeltaSlice(t, []float64{0, 0, 0}, w.Data(), 1e-12)

	assert.ErrorIs(t, w.SubScaledInPlace(Ones[float64](Shape{2}), 1), ErrShapeMismatch)
	assert.ErrorIs(t, w.CopyFrom(Ones[float64](Shape{1, 3})), ErrShapeMismatch)
}

func TestAllClose(t *testing.T) {
	a := mustFromSlice(t, []float32{1, 2}, Shape{2})
	b := mustFromSlice(t, []float32{1.0005, 2}, Shape{2})
	assert.True(t, a.AllClose(b, 1e-3))
	assert.False(t, a.AllClose(b, 1e-5))
	assert.False(t, a.AllClose(Ones[float32](Shape{1, 2}), 1))

	nan := mustFromSlice(t, []float64{math.NaN(), 2}, Shape{2})
	ref := mustFromSlice(t, []float64{1, 2}, Shape{2})
	assert.False(t, nan.AllClose(ref, 10))
	assert.False(t, ref.AllClose(nan, 10))
	assert.False(t, nan.AllClose(nan, 10))
}

func TestConvert(t *testing.T) {
	x := mustFromSlice(t, []float64{0.5, -1.25}, Shape{2})
	y := Convert[float32](x)
	assert.Equal(t, Float32, y.DType())
	assert.Equal(t, []float32{0.5, -1.25}, y.Data())
}

func TestString(t *testing.T) {
	x := mustFromSlice(t, []float32{1, 2}, Shape{2})
	assert.Equal(t, "Tensor[float32](2)[1 2]", x.String())
	assert.Equal(t, "Tensor[float64](5, 5)", Zeros[float64](Shape{5, 5}).String())
}

func TestCreation(t *testing.T) {
	t.Run("ones and full", func(t *testing.T) {
		assert.Equal(t, []float64{1, 1, 1}, Ones[float64](Shape{3}).Data())
		assert.Equal(t, []float32{2.5, 2.5}, Full[float32](Shape{2}, 2.5).Data())
	})

	t.Run("zeros panics on negative dim", func(t *testing.T) {
		assert.Panics(t, func() { Zeros[float64](Shape{-2}) })
	})

	t.Run("scalar", func(t *testing.T) {
		s := Scalar[float32](4)
		assert.Equal(t, 0, s.Rank())
		assert.Equal(t, 1, s.NumElements())
	})

	t.Run("from rows", func(t *testing.T) {
		m, err := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
		require.NoError(t, err)
		assert.Equal(t, Shape{2, 3}, m.Shape())
		assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Data())

		_, err = FromRows([][]float64{{1, 2}, {3}})
		assert.ErrorIs(t, err, ErrShapeMismatch)

		empty, err := FromRows([][]float64{})
		require.NoError(t, err)
		assert.Equal(t, 0, empty.NumElements())
	})

	t.Run("eye", func(t *testing.T) {
		assert.Equal(t, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, Eye[float64](3).Data())
	})

	t.Run("arange", func(t *testing.T) {
		assert.Equal(t, []float64{0, 1, 2, 3, 4}, Arange[float64](0, 5, 1).Data())
		assert.Equal(t, []float64{1, 3}, Arange[float64](1, 4, 2).Data())
		assert.Equal(t, 0, Arange[float64](3, 1, 1).NumElements())
		assert.Equal(t, 0, Arange[float64](0, 3, 0).NumElements())
	})

	t.Run("linspace", func(t *testing.T) {
		assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 1}, Linspace[float64](0, 1, 5).Data(), 1e-12)
		assert.Equal(t, []float64{7}, Linspace[float64](7, 9, 1).Data())
	})

	t.Run("random ranges", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		u := Uniform[float64](Shape{1000}, -2, 3, rng)
		for _, v := range u.Data() {
			assert.GreaterOrEqual(t, v, -2.0)
			assert.Less(t, v, 3.0)
		}

		r := Rand[float32](Shape{100}, rng)
		for _, v := range r.Data() {
			assert.GreaterOrEqual(t, v, float32(0))
			assert.Less(t, v, float32(1))
		}

		n := Randn[float64](Shape{10001}, rng)
		assert.InDelta(t, 0.0, n.Mean(), 0.05)
		for _, v := range n.Data() {
			assert.False(t, IsNaN(v) || IsInf(v, 0))
		}
	})

	t.Run("seeded rand is reproducible", func(t *testing.T) {
		a := Randn[float64](Shape{8}, rand.New(rand.NewSource(7)))
		b := Randn[float64](Shape{8}, rand.New(rand.NewSource(7)))
		assert.True(t, a.Equal(b))
	})
}

func TestOneHot(t *testing.T) {
	labels := mustFromSlice(t, []float64{2, 0, 1.0000001}, Shape{3})
	got, err := OneHot(labels, 3)
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 3}, got.Shape())
	assert.Equal(t, []float64{0, 0, 1, 1, 0, 0, 0, 1, 0}, got.Data())

	_, err = OneHot(mustFromSlice(t, []float64{3}, Shape{1}), 3)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = OneHot(mustFromSlice(t, []float64{-1}, Shape{1}), 3)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = OneHot(Ones[float64](Shape{1, 1}), 3)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
