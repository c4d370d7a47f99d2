// Package gradcheck verifies backpropagated gradients against central finite
// differences of the total error.
//
// For each trainable connection the weight is nudged to w+ε and w-ε, a full
// forward pass is run at each point, and
//
//	(E(w+ε) - E(w-ε)) / (2ε)
//
// is compared with the analytic ∂E/∂w from the network. Weights are restored
// afterwards and a final pass leaves activations matching the original
// weights.
package gradcheck

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/backprop/internal/network"
	"github.com/born-ml/backprop/internal/unit"
)

// ErrMismatch reports an analytic gradient outside the tolerance.
var ErrMismatch = errors.New("analytic and numerical gradients differ")

// Config controls the finite-difference check.
type Config struct {
	Step      float64 // Perturbation ε (default: 1e-6)
	Tolerance float64 // Maximum absolute difference (default: 1e-4)
}

func (c Config) withDefaults() Config {
	if c.Step == 0 {
		c.Step = 1e-6
	}
	if c.Tolerance == 0 {
		c.Tolerance = 1e-4
	}
	return c
}

// Result compares both gradients of one connection.
type Result struct {
	Conn     *unit.Connection
	Analytic float64
	Numeric  float64
}

// Diff returns |Analytic - Numeric|.
func (r Result) Diff() float64 {
	return math.Abs(r.Analytic - r.Numeric)
}

// Check computes analytic and numerical gradients for every trainable
// connection of n on the given input values.
func Check(n *network.Network, values []float64, cfg Config) ([]Result, error) {
	cfg = cfg.withDefaults()

	if _, err := n.Evaluate(values); err != nil {
		return nil, err
	}
	grads, err := n.Gradients()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(grads))
	for _, g := range grads {
		num, err := Numeric(n, values, g.Conn, cfg.Step)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{Conn: g.Conn, Analytic: g.Value, Numeric: num})
	}
	return results, nil
}

// Numeric returns the central-difference estimate of ∂E/∂w for conn. The
// weight is restored and the network evaluated at it again before returning.
func Numeric(n *network.Network, values []float64, conn *unit.Connection, step float64) (float64, error) {
	w0 := conn.Weight()

	var passErr error
	loss := func(w float64) float64 {
		conn.SetWeight(w)
		e, err := n.Evaluate(values)
		if err != nil && passErr == nil {
			passErr = err
		}
		return e
	}

	d := fd.Derivative(loss, w0, &fd.Settings{
		Formula: fd.Central,
		Step:    step,
	})
	conn.SetWeight(w0)
	if passErr != nil {
		return 0, errors.Wrapf(passErr, "perturbing %s", conn)
	}
	if _, err := n.Evaluate(values); err != nil {
		return 0, err
	}
	return d, nil
}

// MaxDiff returns the largest absolute difference among results.
func MaxDiff(results []Result) float64 {
	if len(results) == 0 {
		return 0
	}
	diffs := make([]float64, len(results))
	for i, r := range results {
		diffs[i] = r.Diff()
	}
	return floats.Max(diffs)
}

// Verify runs Check and returns ErrMismatch naming the first connection whose
// gradients differ by more than the tolerance.
func Verify(n *network.Network, values []float64, cfg Config) ([]Result, error) {
	cfg = cfg.withDefaults()
	results, err := Check(n, values, cfg)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if r.Diff() > cfg.Tolerance {
			return results, errors.Wrapf(ErrMismatch, "%s: analytic %g, numeric %g", r.Conn, r.Analytic, r.Numeric)
		}
	}
	return results, nil
}
