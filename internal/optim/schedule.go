package optim

import (
	"math"

	"github.com/pkg/errors"
)

// ErrUnknownSchedule is returned by ParseSchedule for unknown names.
var ErrUnknownSchedule = errors.New("unknown learning rate schedule")

// Schedule yields the learning rate for a given learning step (zero-based).
type Schedule interface {
	Rate(step int) float64
}

// Constant keeps the same rate for every step.
type Constant float64

// Rate returns the constant rate.
func (c Constant) Rate(int) float64 { return float64(c) }

// StepDecay multiplies the rate by Factor every Every steps.
type StepDecay struct {
	Initial float64
	Factor  float64
	Every   int
}

// Rate returns Initial * Factor^(step / Every).
func (s StepDecay) Rate(step int) float64 {
	if s.Every <= 0 {
		return s.Initial
	}
	return s.Initial * math.Pow(s.Factor, float64(step/s.Every))
}

// ExponentialDecay multiplies the rate by Gamma after every step.
type ExponentialDecay struct {
	Initial float64
	Gamma   float64
}

// Rate returns Initial * Gamma^step.
func (e ExponentialDecay) Rate(step int) float64 {
	return e.Initial * math.Pow(e.Gamma, float64(step))
}

// ParseSchedule builds a schedule by name around an initial rate:
// "constant", "step" (halves every 10 steps) or "exp" (gamma 0.95).
func ParseSchedule(name string, initial float64) (Schedule, error) {
	switch name {
	case "", "constant":
		return Constant(initial), nil
	case "step":
		return StepDecay{Initial: initial, Factor: 0.5, Every: 10}, nil
	case "exp":
		return ExponentialDecay{Initial: initial, Gamma: 0.95}, nil
	}
	return nil, errors.Wrapf(ErrUnknownSchedule, "%q", name)
}

// Apply sets the optimizer's learning rate for the given step.
func Apply(opt Optimizer, s Schedule, step int) {
	opt.SetLR(s.Rate(step))
}
