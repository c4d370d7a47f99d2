package unit

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/born-ml/backprop/internal/nn"
)

// Unit is a single node of the network graph.
//
// A unit owns its per-pass state (accumulated input, activation and the
// number of signals received) and references the connections it shares with
// its neighbours. Units are created once, wired with Connect and then reused
// across passes; Reset returns them to the reset-time defaults.
type Unit struct {
	name   string
	kind   Kind
	bias   float64
	target float64

	total      float64 // accumulated weighted input
	activation float64
	pending    int  // signals received since the last reset
	fired      bool // activation computed in the current pass

	forward []*Connection
	rear    []*Connection
}

// NewInput creates an input unit. Input units have no bias.
func NewInput(name string) *Unit {
	return newUnit(Input, name, 0)
}

// NewHidden creates a hidden unit with the given bias.
func NewHidden(name string, bias float64) *Unit {
	return newUnit(Hidden, name, bias)
}

// NewOutput creates an output unit with the given bias and target value.
func NewOutput(name string, bias, target float64) *Unit {
	u := newUnit(Output, name, bias)
	u.target = target
	return u
}

// New creates a unit of an arbitrary kind. The target is ignored for kinds
// without an error term and the bias is ignored for input units.
func New(kind Kind, name string, bias, target float64) (*Unit, error) {
	switch kind {
	case Input:
		return NewInput(name), nil
	case Hidden:
		return NewHidden(name, bias), nil
	case Output:
		return NewOutput(name, bias, target), nil
	}
	return nil, errors.Wrapf(ErrInvalidKind, "kind %d", int(kind))
}

func newUnit(kind Kind, name string, bias float64) *Unit {
	if name == "" {
		// Anonymous units still need a stable label for logs and reports.
		name = fmt.Sprintf("%s-%s", kind, uuid.NewString()[:8])
	}
	return &Unit{name: name, kind: kind, bias: bias}
}

// Name returns the unit identifier.
func (u *Unit) Name() string { return u.name }

// Kind returns the unit kind.
func (u *Unit) Kind() Kind { return u.kind }

// Bias returns the unit bias.
func (u *Unit) Bias() float64 { return u.bias }

// SetBias replaces the bias. Input units ignore their bias.
func (u *Unit) SetBias(b float64) { u.bias = b }

// Target returns the target value of an output unit, zero otherwise.
func (u *Unit) Target() float64 { return u.target }

// SetTarget replaces the target value. Only output units carry a target.
func (u *Unit) SetTarget(t float64) error {
	if !u.kind.rule().target {
		return errors.Wrapf(ErrInvalidKind, "unit %s: %s units have no target", u.name, u.kind)
	}
	u.target = t
	return nil
}

// Total returns the input accumulated in the current pass.
func (u *Unit) Total() float64 { return u.total }

// Activation returns the output value computed in the current pass, or zero
// if the unit has not fired since the last reset.
func (u *Unit) Activation() float64 { return u.activation }

// Pending returns the number of signals received since the last reset.
func (u *Unit) Pending() int { return u.pending }

// Fired reports whether the unit computed its activation in the current pass.
func (u *Unit) Fired() bool { return u.fired }

// Forward returns the outgoing connections. The slice must not be modified.
func (u *Unit) Forward() []*Connection { return u.forward }

// Rear returns the incoming connections. The slice must not be modified.
func (u *Unit) Rear() []*Connection { return u.rear }

// Loss returns the error term 0.5 * (target - activation)² of an output
// unit, zero for other kinds.
func (u *Unit) Loss() float64 {
	if !u.kind.rule().target {
		return 0
	}
	return nn.HalfSquaredError(u.target, u.activation)
}

// String implements fmt.Stringer.
func (u *Unit) String() string {
	return u.name
}

// expectedSignals is the number of signals that completes the handshake.
// Units without rear connections are fed externally and fire on one signal.
func (u *Unit) expectedSignals() int {
	return max(len(u.rear), 1)
}

func (u *Unit) clear() {
	u.pending = 0
	u.total = 0
	u.activation = 0
	u.fired = false
}
