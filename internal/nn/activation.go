package nn

import "math"

// Activation is a scalar activation rule together with its derivative.
//
// Derivative is expressed in terms of the activation value rather than the
// pre-activation input, which is what the backward pass has at hand once a
// forward pass has completed.
type Activation interface {
	// Apply maps a net input to an activation value.
	Apply(net float64) float64
	// Derivative returns ∂activation/∂net evaluated at activation a.
	Derivative(a float64) float64
}

// Identity passes its input through unchanged. Used by input units.
type Identity struct{}

// Apply returns net.
func (Identity) Apply(net float64) float64 { return net }

// Derivative returns 1.
func (Identity) Derivative(float64) float64 { return 1 }

// Sigmoid is the logistic squashing function.
//
// Applies σ(x) = 1 / (1 + exp(-x)), mapping any input into (0, 1).
// The derivative in terms of the output is σ(x) * (1 - σ(x)).
//
// Example:
//
//	var act nn.Sigmoid
//	a := act.Apply(0.3775)      // 0.5932699...
//	d := act.Derivative(a)      // a * (1 - a)
type Sigmoid struct{}

// Apply computes σ(net).
func (Sigmoid) Apply(net float64) float64 {
	return 1 / (1 + math.Exp(-net))
}

// Derivative computes a * (1 - a).
func (Sigmoid) Derivative(a float64) float64 {
	return a * (1 - a)
}
