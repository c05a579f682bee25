// Package main provides the tensorgrad CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"

	"github.com/born-ml/tensorgrad/autodiff"
	"github.com/born-ml/tensorgrad/nn"
	"github.com/born-ml/tensorgrad/optim"
	"github.com/born-ml/tensorgrad/parallel"
	"github.com/born-ml/tensorgrad/tensor"
	"github.com/pkg/errors"
)

const version = "v0.1.0-dev"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "tensorgrad:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return nil
	}
	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "tensorgrad %s\n", version)
		return nil
	case "train":
		return train(ctx, args[1:], stdout, stderr)
	default:
		usage(stdout)
		return errors.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "tensorgrad - N-dimensional arrays and reverse-mode autodiff")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  train      Fit a linear model to synthetic data")
}

// trainConfig holds the train command's flags.
type trainConfig struct {
	Samples int
	Shards  int
	Workers int
	Epochs  int
	LR      float64
	Seed    int64
	Verbose bool
}

func parseTrainFlags(args []string, stderr io.Writer) (trainConfig, error) {
	var cfg trainConfig
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.Samples, "samples", 256, "number of synthetic samples")
	fs.IntVar(&cfg.Shards, "shards", 4, "number of data shards")
	fs.IntVar(&cfg.Workers, "workers", parallel.DefaultConfig().NumWorkers, "worker goroutines")
	fs.IntVar(&cfg.Epochs, "epochs", 100, "training epochs")
	fs.Float64Var(&cfg.LR, "lr", 0.1, "learning rate")
	fs.Int64Var(&cfg.Seed, "seed", 1, "random seed")
	fs.BoolVar(&cfg.Verbose, "v", false, "log worker activity")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.Samples <= 0 || cfg.Shards <= 0 || cfg.Samples%cfg.Shards != 0 {
		return cfg, errors.Errorf("samples (%d) must be a positive multiple of shards (%d)", cfg.Samples, cfg.Shards)
	}
	return cfg, nil
}

// dataset is y = 3*x0 - 2*x1 + 0.5 plus a little noise.
type dataset struct {
	x, y *tensor.Tensor[float64]
}

func synthesize(n int, rng *rand.Rand) (*dataset, error) {
	x := tensor.Uniform[float64](tensor.Shape{n, 2}, -1, 1, rng)
	coef, err := tensor.FromRows([][]float64{{3}, {-2}})
	if err != nil {
		return nil, err
	}
	y, err := x.MatMul(coef)
	if err != nil {
		return nil, err
	}
	noise := tensor.Randn[float64](tensor.Shape{n, 1}, rng).MulScalar(0.01)
	y, err = y.AddScalar(0.5).Add(noise)
	if err != nil {
		return nil, err
	}
	return &dataset{x: x, y: y}, nil
}

func train(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseTrainFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	rng := rand.New(rand.NewSource(cfg.Seed))
	data, err := synthesize(cfg.Samples, rng)
	if err != nil {
		return errors.Wrap(err, "synthesize data")
	}

	// Parameters live outside any graph; each worker binds them to its own.
	initial := nn.NewLinear(autodiff.NewGraph[float64](), 2, 1, rng)
	weight, bias := initial.Weight().Tensor(), initial.Bias().Tensor()

	perShard := cfg.Samples / cfg.Shards
	shard := func(_ context.Context, g *autodiff.Graph[float64], i int) (
		autodiff.Variable[float64], []autodiff.Variable[float64], error,
	) {
		model, err := nn.NewLinearFrom(g, weight, bias)
		if err != nil {
			return autodiff.Variable[float64]{}, nil, err
		}
		xs, err := data.x.Slice(0, i*perShard, (i+1)*perShard)
		if err != nil {
			return autodiff.Variable[float64]{}, nil, err
		}
		ys, err := data.y.Slice(0, i*perShard, (i+1)*perShard)
		if err != nil {
			return autodiff.Variable[float64]{}, nil, err
		}
		pred, err := model.Forward(autodiff.Constant(xs))
		if err != nil {
			return autodiff.Variable[float64]{}, nil, err
		}
		loss, err := nn.MSELoss(pred, autodiff.Constant(ys))
		return loss, model.Parameters(), err
	}

	pcfg := parallel.Config{NumWorkers: cfg.Workers, Logger: logger}
	sgd := optim.NewSGD[float64](optim.SGDConfig{LR: cfg.LR, Momentum: 0.9})
	params := []*tensor.Tensor[float64]{weight, bias}

	var last float64
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		res, err := parallel.Gradients(ctx, pcfg, cfg.Shards, shard)
		if err != nil {
			return errors.Wrapf(err, "epoch %d", epoch)
		}
		if err := sgd.Update(params, res.Average()); err != nil {
			return errors.Wrapf(err, "epoch %d update", epoch)
		}
		last = res.Loss / float64(res.Shards)
		if epoch == 1 || epoch%25 == 0 || epoch == cfg.Epochs {
			fmt.Fprintf(stdout, "epoch %4d  loss %.6f\n", epoch, last)
		}
	}

	w := weight.Data()
	b := bias.Data()
	fmt.Fprintf(stdout, "fit: y = %.4f*x0 + %.4f*x1 + %.4f (loss %.6f)\n", w[0], w[1], b[0], last)
	return nil
}
