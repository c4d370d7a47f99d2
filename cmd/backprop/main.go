// Package main provides the backprop demonstration CLI.
//
// It builds a network (the reference 2-2-2 network unless -config names a
// YAML topology), runs a forward pass, prints outputs, total error and
// gradients, performs learning steps and prints the total error afterwards.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/born-ml/backprop/internal/gradcheck"
	"github.com/born-ml/backprop/internal/network"
	"github.com/born-ml/backprop/internal/optim"
	"github.com/born-ml/backprop/internal/report"
	"github.com/born-ml/backprop/internal/topology"
)

const version = "v0.1.0-dev"

type options struct {
	config    string
	rate      float64
	steps     int
	optimizer string
	momentum  float64
	schedule  string
	check     bool
	units     bool
	verbose   bool
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("backprop %s\n", version)
		return
	}

	var opts options
	fs := flag.NewFlagSet("backprop", flag.ExitOnError)
	fs.StringVar(&opts.config, "config", "", "YAML topology file (default: built-in reference network)")
	fs.Float64Var(&opts.rate, "rate", 0, "learning rate (default: from topology, else 0.5)")
	fs.IntVar(&opts.steps, "steps", 1, "number of learning steps")
	fs.StringVar(&opts.optimizer, "optimizer", "sgd", "update rule: sgd or adam")
	fs.Float64Var(&opts.momentum, "momentum", 0, "SGD momentum")
	fs.StringVar(&opts.schedule, "schedule", "constant", "learning rate schedule: constant, step or exp")
	fs.BoolVar(&opts.check, "check", false, "verify gradients against finite differences")
	fs.BoolVar(&opts.units, "units", false, "print every unit after a pass, not only outputs")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	_ = fs.Parse(os.Args[1:])

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(opts, os.Stdout, logger); err != nil {
		logger.Error("backprop failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options, stdout io.Writer, logger *slog.Logger) error {
	spec := topology.Reference()
	if opts.config != "" {
		var err error
		if spec, err = topology.Load(opts.config); err != nil {
			return err
		}
	}
	if spec.Inputs == nil {
		return errors.New("topology has no input values")
	}

	rate := opts.rate
	if rate == 0 {
		rate = spec.LearningRate
	}
	if rate == 0 {
		rate = 0.5
	}
	if !(rate > 0) || math.IsInf(rate, 1) {
		return errors.Wrapf(network.ErrLearningRate, "%v", rate)
	}

	opt, err := newOptimizer(opts, rate)
	if err != nil {
		return err
	}
	schedule, err := optim.ParseSchedule(opts.schedule, rate)
	if err != nil {
		return err
	}

	console := report.NewConsole(stdout, opts.units)
	cfg := network.Config{Logger: logger}
	trace := opts.steps <= 1
	if trace {
		cfg.Observers = []network.Observer{console}
	}

	net, err := spec.Build(cfg)
	if err != nil {
		return err
	}
	logger.Info("network built",
		"inputs", len(net.Inputs()), "hidden", len(net.Hidden()), "outputs", len(net.Outputs()),
		"connections", len(net.Connections()), "rate", rate, "optimizer", opts.optimizer)

	initial, err := net.Evaluate(spec.Inputs)
	if err != nil {
		return err
	}
	if !trace {
		console.Outputs(net)
	}
	grads, err := net.Gradients()
	if err != nil {
		return err
	}
	console.Gradients(grads)

	if opts.check {
		if err := check(spec, logger, stdout); err != nil {
			return err
		}
	}

	loss := initial
	for step := 0; step < opts.steps; step++ {
		optim.Apply(opt, schedule, step)
		if _, err := net.LearnWith(opt); err != nil {
			return err
		}
		if loss, err = net.Evaluate(spec.Inputs); err != nil {
			return err
		}
		if !trace && (step+1)%max(opts.steps/10, 1) == 0 {
			logger.Info("learning", "step", step+1, "rate", opt.GetLR(), "total_error", loss)
		}
	}

	if !trace {
		console.Outputs(net)
	}
	fmt.Fprintf(stdout, "Total error: %.9f -> %.9f after %d step(s)\n", initial, loss, opts.steps)
	return nil
}

// check verifies gradients on a separate copy of the network so the
// perturbed passes never reach the console observer.
func check(spec *topology.Spec, logger *slog.Logger, stdout io.Writer) error {
	net, err := spec.Build(network.Config{Logger: logger})
	if err != nil {
		return err
	}
	results, err := gradcheck.Verify(net, spec.Inputs, gradcheck.Config{})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Gradient check passed: %d connections, max difference %.3g\n",
		len(results), gradcheck.MaxDiff(results))
	return nil
}

func newOptimizer(opts options, rate float64) (optim.Optimizer, error) {
	switch opts.optimizer {
	case "sgd":
		return optim.NewSGD(optim.SGDConfig{LR: rate, Momentum: opts.momentum}), nil
	case "adam":
		return optim.NewAdam(optim.AdamConfig{LR: rate}), nil
	}
	return nil, errors.Errorf("unknown optimizer %q", opts.optimizer)
}
