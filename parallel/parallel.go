// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package parallel computes gradients for independent data shards
// concurrently, one graph per worker.
package parallel

import (
	"context"

	"github.com/born-ml/tensorgrad/internal/parallel"
	"github.com/born-ml/tensorgrad/internal/tensor"
)

// Config controls parallel execution behavior.
type Config = parallel.Config

// DefaultConfig returns one worker per CPU and the default slog logger.
func DefaultConfig() Config { return parallel.DefaultConfig() }

// ShardFunc records the loss for one shard on a worker's graph.
type ShardFunc[T tensor.Float] = parallel.ShardFunc[T]

// Result holds gradients summed over every shard.
type Result[T tensor.Float] = parallel.Result[T]

// Gradients runs fn for every shard and sums the gradients per parameter.
func Gradients[T tensor.Float](ctx context.Context, cfg Config, numShards int, fn ShardFunc[T]) (Result[T], error) {
	return parallel.Gradients(ctx, cfg, numShards, fn)
}
