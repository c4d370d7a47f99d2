package unit

import (
	"github.com/pkg/errors"

	"github.com/born-ml/backprop/internal/nn"
)

// Gradient is ∂E/∂weight for one rear connection of a trainable unit.
type Gradient struct {
	Conn  *Connection
	Index int // position in Conn.Dest().Rear()
	Value float64
}

// Evaluator computes partial derivatives of the total error from the
// activations of the last completed pass.
//
// For a connection i into unit u:
//
//	∂E/∂w[i] = ∂E/∂a[u] * ∂a[u]/∂net[u] * ∂net[u]/∂w[i]
//
// where ∂net[u]/∂w[i] is the activation of the connection's source,
// ∂a[u]/∂net[u] = a[u] * (1 - a[u]), and ∂E/∂a[u] is -(target - a[u]) for an
// output unit plus, for any unit, Σ_j ∂E/∂net[down_j] * w[j] over its forward
// connections.
//
// An Evaluator caches ∂E/∂net per unit. It must be discarded once any weight
// or activation changes.
type Evaluator struct {
	deltas map[*Unit]float64
}

// NewEvaluator creates an evaluator with an empty cache.
func NewEvaluator() *Evaluator {
	return &Evaluator{deltas: make(map[*Unit]float64)}
}

// ErrorWrtActivation returns ∂E/∂a for u.
func (e *Evaluator) ErrorWrtActivation(u *Unit) (float64, error) {
	if err := checkSubject(u); err != nil {
		return 0, err
	}

	var grad float64
	if u.kind.rule().target {
		grad = nn.HalfSquaredErrorGrad(u.target, u.activation)
	}
	for _, c := range u.forward {
		d, err := e.Delta(c.dest)
		if err != nil {
			return 0, err
		}
		grad += d * c.weight
	}
	return grad, nil
}

// ActivationWrtNet returns ∂a/∂net for u evaluated at its current activation.
func (e *Evaluator) ActivationWrtNet(u *Unit) (float64, error) {
	if err := checkSubject(u); err != nil {
		return 0, err
	}
	return u.kind.rule().activation.Derivative(u.activation), nil
}

// Delta returns ∂E/∂net for u. It is also the gradient of the bias.
func (e *Evaluator) Delta(u *Unit) (float64, error) {
	if d, ok := e.deltas[u]; ok {
		return d, nil
	}

	errWrtAct, err := e.ErrorWrtActivation(u)
	if err != nil {
		return 0, err
	}
	actWrtNet, err := e.ActivationWrtNet(u)
	if err != nil {
		return 0, err
	}

	d := errWrtAct * actWrtNet
	e.deltas[u] = d
	return d, nil
}

// WeightGradient returns ∂E/∂w for the rear connection of u at index i.
func (e *Evaluator) WeightGradient(u *Unit, i int) (float64, error) {
	if err := checkSubject(u); err != nil {
		return 0, err
	}
	if i < 0 || i >= len(u.rear) {
		return 0, errors.Wrapf(ErrIndexRange, "unit %s: index %d, %d rear connections", u.name, i, len(u.rear))
	}

	d, err := e.Delta(u)
	if err != nil {
		return 0, err
	}
	return d * u.rear[i].source.activation, nil
}

// RearGradients returns the gradient of every rear connection of u, in rear
// order.
func (e *Evaluator) RearGradients(u *Unit) ([]Gradient, error) {
	grads := make([]Gradient, 0, len(u.rear))
	for i, c := range u.rear {
		g, err := e.WeightGradient(u, i)
		if err != nil {
			return nil, err
		}
		grads = append(grads, Gradient{Conn: c, Index: i, Value: g})
	}
	return grads, nil
}

// WeightGradient returns ∂E/∂w for rear connection i, computed from scratch.
func (u *Unit) WeightGradient(i int) (float64, error) {
	return NewEvaluator().WeightGradient(u, i)
}

// Delta returns ∂E/∂net for u, computed from scratch.
func (u *Unit) Delta() (float64, error) {
	return NewEvaluator().Delta(u)
}

// checkSubject rejects units whose derivatives are undefined: inputs are
// only suppliers of upstream activation, and a unit that has not fired has
// no activation to differentiate at.
func checkSubject(u *Unit) error {
	if !u.kind.Trainable() {
		return errors.Wrapf(ErrNotTrainable, "unit %s (%s)", u.name, u.kind)
	}
	if !u.fired {
		return errors.Wrapf(ErrNotEvaluated, "unit %s", u.name)
	}
	return nil
}
