package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementwiseSameShape(t *testing.T) {
	a := mustFromSlice(t, []float64{1, 2, 3, 4}, Shape{2, 2})
	b := mustFromSlice(t, []float64{5, 6, 7, 8}, Shape{2, 2})

	tests := []struct {
		name string
		op   func(*Tensor[float64]) (*Tensor[float64], error)
		want []float64
	}{
		{"add", a.Add, []float64{6, 8, 10, 12}},
		{"sub", a.Sub, []float64{-4, -4, -4, -4}},
		{"mul", a.Mul, []float64{5, 12, 21, 32}},
		{"div", a.Div, []float64{0.2, 2.0 / 6, 3.0 / 7, 0.5}},
		{"maximum", a.Maximum, []float64{5, 6, 7, 8}},
		{"minimum", a.Minimum, []float64{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(b)
			require.NoError(t, err)
			assert.Equal(t, Shape{2, 2}, got.Shape())
			assert.InDeltaSlice(t, tt.want, got.Data(), 1e-12)
		})
	}
}

func TestAddBroadcastOuter(t *testing.T) {
	col := mustFromSlice(t, []float64{1, 2, 3}, Shape{3, 1})
	row := mustFromSlice(t, []float64{10, 20, 30, 40}, Shape{1, 4})

	got, err := col.Add(row)
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 4}, got.Shape())
	assert.Equal(t, []float64{
		11, 21, 31, 41,
		12, 22, 32, 42,
		13, 23, 33, 43,
	}, got.Data())

	// Operand order does not change the result for a commutative op.
	rev, err := row.Add(col)
	require.NoError(t, err)
	assert.True(t, got.Equal(rev))
}

func TestBroadcastRowAndScalar(t *testing.T) {
	m := mustFromSlice(t, []float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	bias := mustFromSlice(t, []float32{10, 20, 30}, Shape{3})

	got, err := m.Add(bias)
	require.NoError(t, err)
	assert.Equal(t, []float32{11, 22, 33, 14, 25, 36}, got.Data())

	scaled, err := m.Mul(Scalar[float32](2))
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 4, 6, 8, 10, 12}, scaled.Data())
	assert.Equal(t, m.MulScalar(2).Data(), scaled.Data())
}

func TestBroadcastIncompatible(t *testing.T) {
	a := Ones[float64](Shape{3, 4})
	b := Ones[float64](Shape{3, 5})

	_, err := a.Add(b)
	require.ErrorIs(t, err, ErrShapeMismatch)
	assert.Contains(t, err.Error(), "add")
	assert.Contains(t, err.Error(), "(3, 4)")
}

func TestBroadcastTo(t *testing.T) {
	v := mustFromSlice(t, []float64{1, 2, 3}, Shape{3})
	m, err := v.BroadcastTo(Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3}, m.Data())

	c := mustFromSlice(t, []float64{1, 2}, Shape{2, 1})
	m, err = c.BroadcastTo(Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 2, 2, 2}, m.Data())

	// The target must be the broadcast result, not merely compatible.
	_, err = Ones[float64](Shape{2, 3}).BroadcastTo(Shape{3})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestDivisionByZero(t *testing.T) {
	num := mustFromSlice(t, []float64{1, -1, 0}, Shape{3})
	got, err := num.Div(Zeros[float64](Shape{3}))
	require.NoError(t, err)

	d := got.Data()
	assert.True(t, math.IsInf(d[0], 1))
	assert.True(t, math.IsInf(d[1], -1))
	assert.True(t, math.IsNaN(d[2]))
}

func TestComparisons(t *testing.T) {
	a := mustFromSlice(t, []float64{1, 2, 3}, Shape{3})
	b := mustFromSlice(t, []float64{2, 2, 2}, Shape{3})

	gt, err := a.Greater(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1}, gt.Data())

	lt, err := a.Less(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0}, lt.Data())

	eq, err := a.Eq(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, eq.Data())
}

func TestScalarOps(t *testing.T) {
	x := mustFromSlice(t, []float64{1, 2}, Shape{2})
	assert.Equal(t, []float64{3, 4}, x.AddScalar(2).Data())
	assert.Equal(t, []float64{-1, 0}, x.SubScalar(2).Data())
	assert.Equal(t, []float64{0.5, 1}, x.DivScalar(2).Data())
	assert.Equal(t, []float64{-1, -2}, x.Neg().Data())

	// Inputs are never mutated.
	assert.Equal(t, []float64{1, 2}, x.Data())
}

func TestUnaryMath(t *testing.T) {
	x := mustFromSlice(t, []float64{-2, 0, 1, 4}, Shape{4})

	assert.Equal(t, []float64{0, 0, 1, 4}, x.ReLU().Data())
	assert.Equal(t, []float64{2, 0, 1, 4}, x.Abs().Data())
	assert.Equal(t, []float64{-1, 0, 1, 1}, x.Clamp(-1, 1).Data())
	assert.Equal(t, []float64{4, 0, 1, 16}, x.Pow(2).Data())
	assert.InDeltaSlice(t, []float64{math.Exp(-2), 1, math.E, math.Exp(4)}, x.Exp().Data(), 1e-12)
	assert.InDeltaSlice(t, []float64{math.Tanh(-2), 0, math.Tanh(1), math.Tanh(4)}, x.Tanh().Data(), 1e-12)

	sig := x.Sigmoid().Data()
	assert.InDelta(t, 0.5, sig[1], 1e-12)
	assert.InDelta(t, 1/(1+math.Exp(2)), sig[0], 1e-12)

	logs := x.Log().Data()
	assert.True(t, math.IsNaN(logs[0]))
	assert.True(t, math.IsInf(logs[1], -1))
	assert.Equal(t, 0.0, logs[2])

	assert.InDeltaSlice(t, []float64{1, 2}, mustFromSlice(t, []float64{1, 4}, Shape{2}).Sqrt().Data(), 1e-12)
}

func TestSigmoidSaturates(t *testing.T) {
	x := mustFromSlice(t, []float32{-100, 100}, Shape{2})
	s := x.Sigmoid().Data()
	assert.False(t, IsNaN(s[0]))
	assert.False(t, IsNaN(s[1]))
	assert.InDelta(t, 0, s[0], 1e-6)
	assert.InDelta(t, 1, s[1], 1e-6)
}

func TestRoundingAndSign(t *testing.T) {
	x := mustFromSlice(t, []float64{-1.5, -0.4, 0, 0.5, 2.7}, Shape{5})

	tests := []struct {
		name string
		got  *Tensor[float64]
		want []float64
	}{
		{"floor", x.Floor(), []float64{-2, -1, 0, 0, 2}},
		{"ceil", x.Ceil(), []float64{-1, 0, 0, 1, 3}},
		{"round", x.Round(), []float64{-2, 0, 0, 1, 3}},
		{"sign", x.Sign(), []float64{-1, -1, 0, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got.Data())
		})
	}

	assert.True(t, math.IsNaN(Sign(math.NaN())))
}

func TestTrigAndRecip(t *testing.T) {
	x := mustFromSlice(t, []float64{0, math.Pi / 2, math.Pi}, Shape{3})
	assert.InDeltaSlice(t, []float64{0, 1, 0}, x.Sin().Data(), 1e-12)
	assert.InDeltaSlice(t, []float64{1, 0, -1}, x.Cos().Data(), 1e-12)

	r := mustFromSlice(t, []float64{2, -4, 0}, Shape{3}).Recip().Data()
	assert.Equal(t, []float64{0.5, -0.25}, r[:2])
	assert.True(t, math.IsInf(r[2], 1))
}

func TestNaNHelpers(t *testing.T) {
	x := mustFromSlice(t, []float64{1, math.NaN(), 3}, Shape{3})
	assert.True(t, x.HasNaN())
	clean := x.NanToNum(0)
	assert.False(t, clean.HasNaN())
	assert.Equal(t, []float64{1, 0, 3}, clean.Data())
}

func TestWhere(t *testing.T) {
	x := mustFromSlice(t, []float64{-2, -1, 0, 1, 2, 3}, Shape{2, 3})
	mask, err := x.Greater(Scalar(0.0))
	require.NoError(t, err)

	relu, err := Where(mask, x, Scalar(0.0))
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, relu.Shape())
	assert.Equal(t, []float64{0, 0, 0, 1, 2, 3}, relu.Data())

	// A column mask broadcasts across rows.
	rowMask := mustFromSlice(t, []float64{1, 0}, Shape{2, 1})
	picked, err := Where(rowMask, x, x.Neg())
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, -1, 0, -1, -2, -3}, picked.Data())

	_, err = Where(Ones[float64](Shape{4}), x, x)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
