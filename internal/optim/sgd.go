package optim

import "github.com/born-ml/backprop/internal/unit"

// SGD implements gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	w = w - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	w = w - lr * velocity
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.5})
//	sgd.Step(grads)
type SGD struct {
	lr         float64
	momentum   float64
	velocities map[*unit.Connection]float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*unit.Connection]float64),
	}
}

// Step performs a single optimization step over precomputed gradients.
func (s *SGD) Step(grads []unit.Gradient) []Update {
	return each(grads, func(g unit.Gradient) Update {
		step := g.Value
		if s.momentum != 0 {
			step = s.momentum*s.velocities[g.Conn] + g.Value
			s.velocities[g.Conn] = step
		}

		old := g.Conn.Weight()
		g.Conn.SetWeight(old - s.lr*step)
		return Update{Conn: g.Conn, Gradient: g.Value, Old: old, New: g.Conn.Weight()}
	})
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
