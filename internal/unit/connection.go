package unit

import (
	"fmt"

	"github.com/pkg/errors"
)

// Connection is a weighted directed edge between two units.
//
// A single Connection is shared by both endpoints: the source holds it in its
// forward list and the destination in its rear list, so a weight update is
// seen from both directions and applied once per edge.
type Connection struct {
	source *Unit
	dest   *Unit
	weight float64
}

// Connect wires source to dest with the given weight and registers the new
// connection on both units.
//
// Connecting into an input unit, connecting a unit to itself, registering the
// same edge twice or closing a cycle are configuration errors.
func Connect(source, dest *Unit, weight float64) (*Connection, error) {
	if source == nil || dest == nil {
		return nil, errors.Wrap(ErrInvalidConnection, "nil endpoint")
	}
	if dest.kind == Input {
		return nil, errors.Wrapf(ErrInvalidConnection, "%s -> %s: input units have no rear connections", source, dest)
	}
	if source == dest {
		return nil, errors.Wrapf(ErrCycle, "%s -> %s", source, dest)
	}
	for _, c := range source.forward {
		if c.dest == dest {
			return nil, errors.Wrapf(ErrDuplicateConnection, "%s -> %s", source, dest)
		}
	}
	if reaches(dest, source) {
		return nil, errors.Wrapf(ErrCycle, "%s -> %s closes a loop", source, dest)
	}

	c := &Connection{source: source, dest: dest, weight: weight}
	source.forward = append(source.forward, c)
	dest.rear = append(dest.rear, c)
	return c, nil
}

// Source returns the upstream unit.
func (c *Connection) Source() *Unit { return c.source }

// Dest returns the downstream unit.
func (c *Connection) Dest() *Unit { return c.dest }

// Weight returns the current weight.
func (c *Connection) Weight() float64 { return c.weight }

// SetWeight replaces the weight.
func (c *Connection) SetWeight(w float64) { c.weight = w }

// String returns "source->dest".
func (c *Connection) String() string {
	return fmt.Sprintf("%s->%s", c.source, c.dest)
}

// RearIndex returns the position of c in its destination's rear list.
func (c *Connection) RearIndex() int {
	for i, r := range c.dest.rear {
		if r == c {
			return i
		}
	}
	return -1
}
