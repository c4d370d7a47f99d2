package unit

import "github.com/pkg/errors"

// Reset clears the per-pass state of u and of every unit reachable from it:
// signal count, accumulated input and activation go back to zero.
//
// Reset is idempotent. It returns ErrCycle if the forward graph is cyclic,
// in which case units visited before the cycle was found are already cleared.
func (u *Unit) Reset() error {
	return Walk([]*Unit{u}, (*Unit).clear)
}

// delivery is a signal in flight towards a unit.
type delivery struct {
	to    *Unit
	value float64
}

// ReceiveSignal adds value to the accumulated input of u. When u has heard
// from every rear connection it computes its activation and fires forward,
// which may in turn complete the handshake of downstream units.
//
// The cascade runs to quiescence before ReceiveSignal returns. Signals are
// delivered depth-first in forward-connection order, the same order a
// recursive implementation would produce, but from an explicit stack.
//
// Receiving more signals than expected since the last Reset is a protocol
// error (ErrSignalOverflow); the offending unit is left unchanged.
func (u *Unit) ReceiveSignal(value float64) error {
	stack := []delivery{{to: u, value: value}}
	for len(stack) > 0 {
		d := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ready, err := d.to.accept(d.value)
		if err != nil {
			return err
		}
		if !ready {
			continue
		}

		d.to.activate()
		stack = d.to.fire(stack)
	}
	return nil
}

// accept records one incoming signal and reports whether the handshake is
// now complete.
func (u *Unit) accept(value float64) (bool, error) {
	expected := u.expectedSignals()
	if u.pending >= expected {
		return false, errors.Wrapf(ErrSignalOverflow, "unit %s: already received %d of %d", u.name, u.pending, expected)
	}
	u.pending++
	u.total += value
	return u.pending == expected, nil
}

// activate applies the kind's activation rule.
func (u *Unit) activate() {
	net := u.total
	if u.kind != Input {
		net += u.bias
	}
	u.activation = u.kind.rule().activation.Apply(net)
	u.fired = true
}

// fire pushes activation * weight for every forward connection onto stack.
// Connections are pushed in reverse so the first one is delivered first.
func (u *Unit) fire(stack []delivery) []delivery {
	for i := len(u.forward) - 1; i >= 0; i-- {
		c := u.forward[i]
		stack = append(stack, delivery{to: c.dest, value: u.activation * c.weight})
	}
	return stack
}
