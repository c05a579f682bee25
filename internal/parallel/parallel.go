// Package parallel computes gradients for independent data shards on
// several goroutines.
//
// A Graph is never shared between goroutines. Each worker owns one Graph and
// resets it between shards; per-parameter gradients are summed once every
// worker has finished. Parameter tensors may be shared across workers since
// forward operations only read them.
package parallel

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/born-ml/tensorgrad/internal/autodiff"
	"github.com/born-ml/tensorgrad/internal/tensor"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	NumWorkers int          // Number of worker goroutines, each with its own graph.
	Logger     *slog.Logger // Receives worker lifecycle (Debug) and shard failures (Warn).
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	return Config{
		NumWorkers: runtime.NumCPU(),
		Logger:     slog.Default(),
	}
}

func (c Config) withDefaults() Config {
	if c.NumWorkers <= 0 {
		c.NumWorkers = runtime.NumCPU()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// ShardFunc records the loss for one shard on g and returns the parameters
// whose gradients are wanted. g has just been reset. Every shard must return
// the same number of parameters, in the same order, with the same shapes.
type ShardFunc[T tensor.Float] func(ctx context.Context, g *autodiff.Graph[T], shard int) (
	loss autodiff.Variable[T], params []autodiff.Variable[T], err error)

// Result holds gradients summed over every shard.
type Result[T tensor.Float] struct {
	Grads  []*tensor.Tensor[T] // Grads[i] is the sum of parameter i's gradients
	Loss   T                   // Sum of every shard's loss values
	Shards int
}

// Average returns the gradients divided by the number of shards.
func (r Result[T]) Average() []*tensor.Tensor[T] {
	out := make([]*tensor.Tensor[T], len(r.Grads))
	for i, g := range r.Grads {
		out[i] = g.DivScalar(T(r.Shards))
	}
	return out
}

// partial is one worker's running sum.
type partial[T tensor.Float] struct {
	grads  []*tensor.Tensor[T]
	loss   T
	shards int
}

// add accumulates one shard's gradients.
func (p *partial[T]) add(grads []*tensor.Tensor[T], loss T) error {
	if p.grads == nil {
		p.grads = make([]*tensor.Tensor[T], len(grads))
	}
	if len(grads) != len(p.grads) {
		return errors.Errorf("parallel: shard returned %d parameters, expected %d", len(grads), len(p.grads))
	}
	for i, g := range grads {
		if p.grads[i] == nil {
			p.grads[i] = g
			continue
		}
		if !p.grads[i].Shape().Equal(g.Shape()) {
			return errors.Wrapf(tensor.ErrShapeMismatch, "parallel: parameter %d has shape %v, expected %v",
				i, g.Shape(), p.grads[i].Shape())
		}
		sum, err := p.grads[i].Add(g)
		if err != nil {
			return errors.Wrapf(err, "parallel: parameter %d", i)
		}
		p.grads[i] = sum
	}
	p.loss += loss
	p.shards++
	return nil
}

// Gradients runs fn for shards [0, numShards) across cfg.NumWorkers workers
// and sums the resulting gradients per parameter.
//
// Shards are assigned to workers round-robin, so the summation order, and
// therefore the result, depends only on numShards and NumWorkers.
// Cancellation is checked between shards; the first failure cancels the
// context passed to the remaining shards.
//
// Example:
//
//	res, err := parallel.Gradients(ctx, parallel.DefaultConfig(), len(batches),
//	    func(ctx context.Context, g *autodiff.Graph[float64], i int) (autodiff.Variable[float64], []autodiff.Variable[float64], error) {
//	        model, _ := nn.NewLinearFrom(g, w, b)
//	        out, err := model.Forward(autodiff.Constant(batches[i]))
//	        ...
//	        return loss, model.Parameters(), nil
//	    })
//	_ = sgd.Update([]*tensor.Tensor[float64]{w, b}, res.Average())
func Gradients[T tensor.Float](ctx context.Context, cfg Config, numShards int, fn ShardFunc[T]) (Result[T], error) {
	if numShards <= 0 {
		return Result[T]{}, errors.Errorf("parallel: numShards must be positive, got %d", numShards)
	}
	cfg = cfg.withDefaults()
	workers := min(cfg.NumWorkers, numShards)
	log := cfg.Logger

	log.Debug("parallel: starting workers", "workers", workers, "shards", numShards)

	partials := make([]partial[T], workers)
	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			start := time.Now()
			graph := autodiff.NewGraph[T]()
			for shard := w; shard < numShards; shard += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := runShard(ctx, graph, shard, fn, &partials[w]); err != nil {
					log.Warn("parallel: shard failed", "worker", w, "shard", shard, "error", err)
					return err
				}
			}
			log.Debug("parallel: worker finished", "worker", w, "shards", partials[w].shards,
				"elapsed", time.Since(start))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Result[T]{}, err
	}

	var total partial[T]
	for _, p := range partials {
		if err := total.add(p.grads, p.loss); err != nil {
			return Result[T]{}, err
		}
	}
	return Result[T]{Grads: total.grads, Loss: total.loss, Shards: numShards}, nil
}

// runShard records one shard on graph, differentiates it and accumulates the
// gradients into acc.
func runShard[T tensor.Float](ctx context.Context, graph *autodiff.Graph[T], shard int, fn ShardFunc[T], acc *partial[T]) error {
	graph.Reset()
	loss, params, err := fn(ctx, graph, shard)
	if err != nil {
		return errors.Wrapf(err, "parallel: shard %d", shard)
	}
	grads, err := graph.Backward(loss)
	if err != nil {
		return errors.Wrapf(err, "parallel: shard %d backward", shard)
	}
	paired := make([]*tensor.Tensor[T], len(params))
	for i, p := range params {
		paired[i] = grads.OrZeros(p)
	}
	if err := acc.add(paired, loss.Value().Sum()); err != nil {
		return errors.Wrapf(err, "shard %d", shard)
	}
	return nil
}
