package tensor

import (
	"fmt"
)

// cursor walks an output shape in row-major order while tracking the flat
// offsets of up to two broadcast operands. Stretched axes have stride 0, so
// the operand offset stays put and the same element is read repeatedly.
type cursor struct {
	shape   Shape
	idx     []int
	strides [2][]int
	off     [2]int
}

func newCursor(out Shape, a, b Shape) *cursor {
	c := &cursor{
		shape: out,
		idx:   make([]int, len(out)),
	}
	c.strides[0] = broadcastStrides(a, out)
	c.strides[1] = broadcastStrides(b, out)
	return c
}

// next advances to the following output position.
func (c *cursor) next() {
	for d := len(c.shape) - 1; d >= 0; d-- {
		c.idx[d]++
		c.off[0] += c.strides[0][d]
		c.off[1] += c.strides[1][d]
		if c.idx[d] < c.shape[d] {
			return
		}
		c.off[0] -= c.strides[0][d] * c.shape[d]
		c.off[1] -= c.strides[1][d] * c.shape[d]
		c.idx[d] = 0
	}
}

// broadcastBinary applies f element-wise over the broadcast of a and b.
func broadcastBinary[T Float](op string, a, b *Tensor[T], f func(x, y T) T) (*Tensor[T], error) {
	// Fast path: same shape
	if a.shape.Equal(b.shape) {
		out := make([]T, len(a.data))
		for i := range out {
			out[i] = f(a.data[i], b.data[i])
		}
		return newTensor(out, a.shape.Clone()), nil
	}

	outShape, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, shapeError(op, fmt.Sprintf("cannot broadcast %v with %v", a.shape, b.shape), a.shape, b.shape)
	}

	n := outShape.NumElements()
	out := make([]T, n)
	c := newCursor(outShape, a.shape, b.shape)
	for i := 0; i < n; i++ {
		out[i] = f(a.data[c.off[0]], b.data[c.off[1]])
		c.next()
	}
	return newTensor(out, outShape), nil
}

// BroadcastTo materializes t stretched to shape, which must be a valid
// broadcast target of t's shape.
//
// Example:
//
//	b, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
//	m, _ := b.BroadcastTo(tensor.Shape{2, 3}) // [[1, 2, 3], [1, 2, 3]]
func (t *Tensor[T]) BroadcastTo(shape Shape) (*Tensor[T], error) {
	if t.shape.Equal(shape) {
		return t.Clone(), nil
	}
	got, err := BroadcastShapes(t.shape, shape)
	if err != nil || !got.Equal(shape) {
		return nil, shapeError("broadcast_to", fmt.Sprintf("cannot broadcast %v to %v", t.shape, shape), t.shape, shape)
	}

	n := shape.NumElements()
	out := make([]T, n)
	c := newCursor(shape, t.shape, t.shape)
	for i := 0; i < n; i++ {
		out[i] = t.data[c.off[0]]
		c.next()
	}
	return newTensor(out, shape.Clone()), nil
}

// Where selects x where cond is positive and y elsewhere. The three operands
// broadcast together.
//
// Example:
//
//	mask, _ := x.Greater(tensor.Scalar[float64](0))
//	clipped, _ := tensor.Where(mask, x, tensor.Scalar[float64](0)) // ReLU
func Where[T Float](cond, x, y *Tensor[T]) (*Tensor[T], error) {
	outShape, err := BroadcastShapes(cond.shape, x.shape)
	if err == nil {
		outShape, err = BroadcastShapes(outShape, y.shape)
	}
	if err != nil {
		return nil, shapeError("where", fmt.Sprintf("cannot broadcast %v, %v and %v", cond.shape, x.shape, y.shape),
			cond.shape, x.shape, y.shape)
	}

	operands := [3]*Tensor[T]{cond, x, y}
	for i, t := range operands {
		if operands[i], err = t.BroadcastTo(outShape); err != nil {
			return nil, err
		}
	}
	c, a, b := operands[0].data, operands[1].data, operands[2].data
	out := make([]T, len(c))
	for i := range out {
		if c[i] > 0 {
			out[i] = a[i]
		} else {
			out[i] = b[i]
		}
	}
	return newTensor(out, outShape), nil
}
