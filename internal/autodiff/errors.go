package autodiff

import "github.com/pkg/errors"

// Graph-level failures. Tensor failures raised by forward operations are
// wrapped and still match the tensor package sentinels with errors.Is.
var (
	// ErrNotTracked is returned when Backward is called on a Variable that
	// was not recorded on a graph.
	ErrNotTracked = errors.New("variable is not tracked by a graph")

	// ErrStaleNode is returned when a Variable recorded before Graph.Reset is used afterwards.
	ErrStaleNode = errors.New("stale node id")

	// ErrGraphMismatch is returned when operands are recorded on different graphs.
	ErrGraphMismatch = errors.New("variables belong to different graphs")
)
