// Package optim implements gradient descent update rules for connection
// weights.
//
// This package provides:
//   - Optimizer interface: applies a batch of precomputed gradients
//   - SGD: plain gradient descent with optional momentum
//   - Adam: Adaptive Moment Estimation
//   - Schedule: learning rates that vary across learning steps
//
// Optimizers never compute gradients themselves. A learning step first
// evaluates ∂E/∂w for every trainable connection from one completed forward
// pass, then hands the whole batch to Step, so no weight changes while a
// gradient of the same step is still being computed.
//
// Example usage:
//
//	opt := optim.NewSGD(optim.SGDConfig{LR: 0.5})
//
//	grads, _ := net.Gradients()
//	for _, u := range opt.Step(grads) {
//	    fmt.Println(u.Conn, u.Old, "->", u.New)
//	}
package optim

import "github.com/born-ml/backprop/internal/unit"

// Optimizer is the base interface for all update rules.
type Optimizer interface {
	// Step applies one update per connection in grads and returns the
	// applied updates in the same order. A connection listed twice is
	// updated once, with its first gradient.
	Step(grads []unit.Gradient) []Update

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR replaces the learning rate, for scheduling.
	SetLR(lr float64)
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

// Update records one applied weight change.
type Update struct {
	Conn     *unit.Connection
	Gradient float64
	Old      float64
	New      float64
}

// each calls apply once per distinct connection in grads.
func each(grads []unit.Gradient, apply func(g unit.Gradient) Update) []Update {
	updates := make([]Update, 0, len(grads))
	seen := make(map[*unit.Connection]bool, len(grads))
	for _, g := range grads {
		if seen[g.Conn] {
			continue
		}
		seen[g.Conn] = true
		updates = append(updates, apply(g))
	}
	return updates
}
