// Package autodiff implements reverse-mode automatic differentiation over
// tensor.Tensor values.
//
// A Graph is an append-only arena of nodes. Every tracked operation on a
// Variable computes its forward value eagerly and appends one node naming its
// inputs. Backward then visits nodes in decreasing position and accumulates
// gradients through the adjoint of each recorded op.
//
// Example:
//
//	g := autodiff.NewGraph[float64]()
//	x := g.Param(tensor.Scalar(3.0))
//	y, _ := x.Mul(x)
//	grads, _ := g.Backward(y)
//	dx, _ := grads.Of(x) // 6
//
// A Graph is not safe for concurrent use. Data-parallel training gives each
// worker its own Graph (see internal/parallel).
package autodiff

import (
	"fmt"

	"github.com/born-ml/tensorgrad/internal/tensor"
	"github.com/pkg/errors"
)

// NodeID identifies a node within one generation of a Graph.
// IDs are assigned in creation order, so every node's inputs have smaller IDs.
type NodeID struct {
	index int
	gen   uint64
}

// Index returns the node's position in the arena.
func (id NodeID) Index() int { return id.index }

// String formats the id as "#index@generation".
func (id NodeID) String() string {
	return fmt.Sprintf("#%d@%d", id.index, id.gen)
}

// Node is one recorded operation: its op, its input IDs and its forward value.
type Node[T tensor.Float] struct {
	Op           Op
	Inputs       []NodeID
	Value        *tensor.Tensor[T]
	Shape        tensor.Shape
	RequiresGrad bool
}

// Graph records operations for reverse-mode differentiation.
//
// The zero value is an empty graph that is recording.
type Graph[T tensor.Float] struct {
	nodes  []Node[T]
	gen    uint64
	paused int // NoGrad nesting depth
}

// NewGraph creates an empty recording graph.
func NewGraph[T tensor.Float]() *Graph[T] {
	return &Graph[T]{
		nodes: make([]Node[T], 0, 64), // Pre-allocate for common case
	}
}

// AddNode appends a node and returns its ID. It never fails: value has
// already been computed by a successful forward operation.
func (g *Graph[T]) AddNode(op Op, inputs []NodeID, value *tensor.Tensor[T], requiresGrad bool) NodeID {
	id := NodeID{index: len(g.nodes), gen: g.gen}
	g.nodes = append(g.nodes, Node[T]{
		Op:           op,
		Inputs:       append([]NodeID(nil), inputs...),
		Value:        value,
		Shape:        value.Shape().Clone(),
		RequiresGrad: requiresGrad,
	})
	return id
}

// Len returns the number of recorded nodes.
func (g *Graph[T]) Len() int {
	return len(g.nodes)
}

// Node returns the node with the given ID.
func (g *Graph[T]) Node(id NodeID) (Node[T], error) {
	if err := g.check(id); err != nil {
		return Node[T]{}, err
	}
	return g.nodes[id.index], nil
}

// Nodes returns the recorded nodes in creation order.
// The slice aliases the arena and must be treated as read-only.
func (g *Graph[T]) Nodes() []Node[T] {
	return g.nodes
}

// Reset discards every node. IDs issued before Reset become stale and any
// later use of them fails with ErrStaleNode.
func (g *Graph[T]) Reset() {
	g.nodes = make([]Node[T], 0, cap(g.nodes))
	g.gen++
}

// IsRecording returns true if tracked operations currently append nodes.
func (g *Graph[T]) IsRecording() bool {
	return g.paused == 0
}

// NoGrad runs fn with recording suspended. Operations inside fn return
// untracked Variables. Calls may nest.
func (g *Graph[T]) NoGrad(fn func() error) error {
	g.paused++
	defer func() { g.paused-- }()
	return fn()
}

// check validates that id belongs to the current generation.
func (g *Graph[T]) check(id NodeID) error {
	if id.gen != g.gen {
		return errors.Wrapf(ErrStaleNode, "node %s used after reset (graph generation %d)", id, g.gen)
	}
	if id.index < 0 || id.index >= len(g.nodes) {
		return errors.Wrapf(ErrStaleNode, "node %s out of range for %d nodes", id, len(g.nodes))
	}
	return nil
}
