// Package network orchestrates a graph of units as a trainable network.
//
// A Network knows only three ordered lists of units (inputs, hidden and
// outputs); the wiring lives in the units themselves. It drives the four
// operations of a learning step:
//
//	net.ResetState()
//	net.Forward([]float64{0.05, 0.10})
//	loss := net.TotalError()
//	net.Learn(0.5)
package network

import (
	"io"
	"log/slog"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/backprop/internal/optim"
	"github.com/born-ml/backprop/internal/unit"
)

// passState tracks where the network is in the reset/forward/learn cycle.
type passState int

const (
	stateReset    passState = iota // cleared, no signals delivered
	stateComplete                  // every output fired
	stateBroken                    // a pass failed part way
	stateStale                     // weights changed since the last pass
)

// Observer receives notifications about completed passes and applied weight
// updates. Observers must not call back into the network.
type Observer interface {
	PassCompleted(n *Network)
	WeightUpdated(u optim.Update)
}

// Config holds optional collaborators of a Network.
type Config struct {
	Logger    *slog.Logger // Debug records for passes and updates (default: discarded)
	Observers []Observer
}

// Network runs forward passes and learning steps over a fixed set of units.
type Network struct {
	inputs  []*unit.Unit
	hidden  []*unit.Unit
	outputs []*unit.Unit

	log       *slog.Logger
	observers []Observer

	state passState
	busy  bool
}

// New validates the unit graph and wraps it in a Network.
//
// The graph must be acyclic, every connection must be registered on both of
// its endpoints, each list must hold units of the matching kind, and the
// units reachable from the inputs must be exactly the listed hidden and
// output units.
func New(inputs, hidden, outputs []*unit.Unit, cfg Config) (*Network, error) {
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, ErrEmptyNetwork
	}

	listed := make(map[*unit.Unit]bool)
	for _, group := range []struct {
		units []*unit.Unit
		kind  unit.Kind
	}{
		{inputs, unit.Input},
		{hidden, unit.Hidden},
		{outputs, unit.Output},
	} {
		for _, u := range group.units {
			if u == nil {
				return nil, errors.Wrapf(unit.ErrInvalidKind, "nil %s unit", group.kind)
			}
			if u.Kind() != group.kind {
				return nil, errors.Wrapf(unit.ErrInvalidKind, "unit %s is %s, listed as %s", u, u.Kind(), group.kind)
			}
			if listed[u] {
				return nil, errors.Wrapf(ErrDuplicateUnit, "unit %s", u)
			}
			listed[u] = true
		}
	}

	all := append(append(append([]*unit.Unit{}, inputs...), hidden...), outputs...)
	if err := validate(inputs, all, listed); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	n := &Network{
		inputs:    inputs,
		hidden:    hidden,
		outputs:   outputs,
		log:       logger,
		observers: cfg.Observers,
	}
	if err := n.ResetState(); err != nil {
		return nil, err
	}
	return n, nil
}

// validate checks reachability, link consistency and acyclicity.
func validate(inputs, all []*unit.Unit, listed map[*unit.Unit]bool) error {
	order, err := unit.TopologicalOrder(inputs)
	if err != nil {
		return err
	}

	reachable := make(map[*unit.Unit]bool, len(order))
	for _, u := range order {
		reachable[u] = true
	}

	for _, u := range order {
		if !listed[u] {
			return errors.Wrapf(ErrUnlistedUnit, "unit %s (%s)", u, u.Kind())
		}
		if err := unit.CheckLinks(u); err != nil {
			return err
		}
		for _, c := range u.Rear() {
			if !reachable[c.Source()] {
				return errors.Wrapf(ErrUnreachable, "unit %s feeds %s", c.Source(), u)
			}
		}
	}
	for _, u := range all {
		if !reachable[u] {
			return errors.Wrapf(ErrUnreachable, "unit %s", u)
		}
	}
	return nil
}

// Inputs returns the input units in order.
func (n *Network) Inputs() []*unit.Unit { return n.inputs }

// Hidden returns the hidden units in order.
func (n *Network) Hidden() []*unit.Unit { return n.hidden }

// Outputs returns the output units in order.
func (n *Network) Outputs() []*unit.Unit { return n.outputs }

// Units returns inputs, hidden and output units in that order.
func (n *Network) Units() []*unit.Unit {
	all := make([]*unit.Unit, 0, len(n.inputs)+len(n.hidden)+len(n.outputs))
	all = append(all, n.inputs...)
	all = append(all, n.hidden...)
	return append(all, n.outputs...)
}

// Unit looks up a unit by name.
func (n *Network) Unit(name string) (*unit.Unit, bool) {
	for _, u := range n.Units() {
		if u.Name() == name {
			return u, true
		}
	}
	return nil, false
}

// Connections returns every connection, grouped by destination in the order
// of Units.
func (n *Network) Connections() []*unit.Connection {
	var conns []*unit.Connection
	for _, u := range n.Units() {
		conns = append(conns, u.Rear()...)
	}
	return conns
}

// ResetState clears the per-pass state of every unit by resetting each
// input unit, which cascades forward.
func (n *Network) ResetState() error {
	if n.busy {
		return ErrPassInProgress
	}
	for _, in := range n.inputs {
		if err := in.Reset(); err != nil {
			return err
		}
	}
	n.state = stateReset
	n.log.Debug("network reset", "inputs", len(n.inputs))
	return nil
}

// Forward delivers values[i] to input unit i, in index order, and lets the
// signals cascade until every unit has fired.
//
// A second Forward without ResetState in between fails with
// unit.ErrSignalOverflow.
func (n *Network) Forward(values []float64) error {
	if len(values) != len(n.inputs) {
		return errors.Wrapf(ErrInputCount, "got %d values for %d inputs", len(values), len(n.inputs))
	}
	if n.busy {
		return ErrPassInProgress
	}
	n.busy = true
	defer func() { n.busy = false }()

	for i, v := range values {
		if err := n.inputs[i].ReceiveSignal(v); err != nil {
			n.state = stateBroken
			return errors.Wrapf(err, "input %d", i)
		}
	}
	for _, out := range n.outputs {
		if !out.Fired() {
			n.state = stateBroken
			return errors.Wrapf(ErrIncompletePass, "output %s", out)
		}
	}

	n.state = stateComplete
	n.log.Debug("forward pass complete", "total_error", n.TotalError())
	for _, o := range n.observers {
		o.PassCompleted(n)
	}
	return nil
}

// TotalError returns Σ 0.5 * (target - activation)² over the output units.
func (n *Network) TotalError() float64 {
	terms := make([]float64, len(n.outputs))
	for i, out := range n.outputs {
		terms[i] = out.Loss()
	}
	return floats.Sum(terms)
}

// Activations returns the current activation of every unit keyed by name.
func (n *Network) Activations() map[string]float64 {
	acts := make(map[string]float64)
	for _, u := range n.Units() {
		acts[u.Name()] = u.Activation()
	}
	return acts
}

// Gradients computes ∂E/∂w for every rear connection of every hidden and
// output unit from the activations of the last completed pass. Nothing is
// modified.
func (n *Network) Gradients() ([]unit.Gradient, error) {
	if n.state != stateComplete {
		return nil, ErrNoForwardPass
	}

	ev := unit.NewEvaluator()
	var grads []unit.Gradient
	for _, group := range [][]*unit.Unit{n.hidden, n.outputs} {
		for _, u := range group {
			g, err := ev.RearGradients(u)
			if err != nil {
				return nil, err
			}
			grads = append(grads, g...)
		}
	}
	n.log.Debug("gradients computed", "connections", len(grads))
	return grads, nil
}

// Learn performs one gradient descent step with the given learning rate:
// w -= lr * ∂E/∂w for every trainable connection.
func (n *Network) Learn(lr float64) ([]optim.Update, error) {
	if err := checkRate(lr); err != nil {
		return nil, err
	}
	return n.LearnWith(optim.NewSGD(optim.SGDConfig{LR: lr}))
}

// LearnWith performs one learning step using opt. The optimizer's current
// rate must be positive and finite.
//
// All gradients are computed before any weight changes. Afterwards the pass
// is stale: another learning step needs a new ResetState and Forward.
func (n *Network) LearnWith(opt optim.Optimizer) ([]optim.Update, error) {
	if n.busy {
		return nil, ErrPassInProgress
	}
	if err := checkRate(opt.GetLR()); err != nil {
		return nil, err
	}
	grads, err := n.Gradients()
	if err != nil {
		return nil, err
	}

	n.busy = true
	defer func() { n.busy = false }()

	updates := opt.Step(grads)
	n.state = stateStale

	for _, u := range updates {
		n.log.Debug("weight updated", "connection", u.Conn.String(), "old", u.Old, "new", u.New, "gradient", u.Gradient)
		for _, o := range n.observers {
			o.WeightUpdated(u)
		}
	}
	return updates, nil
}

func checkRate(lr float64) error {
	if !(lr > 0) || math.IsInf(lr, 1) {
		return errors.Wrapf(ErrLearningRate, "%v", lr)
	}
	return nil
}

// Step runs ResetState, Forward and Learn, returning the total error of the
// pass before the weights changed.
func (n *Network) Step(values []float64, lr float64) (float64, []optim.Update, error) {
	if err := n.ResetState(); err != nil {
		return 0, nil, err
	}
	if err := n.Forward(values); err != nil {
		return 0, nil, err
	}
	loss := n.TotalError()
	updates, err := n.Learn(lr)
	if err != nil {
		return 0, nil, err
	}
	return loss, updates, nil
}

// Evaluate runs ResetState and Forward and returns the total error.
func (n *Network) Evaluate(values []float64) (float64, error) {
	if err := n.ResetState(); err != nil {
		return 0, err
	}
	if err := n.Forward(values); err != nil {
		return 0, err
	}
	return n.TotalError(), nil
}
