package unit

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reference holds the canonical 2-2-2 network.
type reference struct {
	i1, i2, h1, h2, o1, o2 *Unit
	conns                  map[string]*Connection
}

func newReference(t *testing.T) *reference {
	t.Helper()

	r := &reference{
		i1:    NewInput("i1"),
		i2:    NewInput("i2"),
		h1:    NewHidden("h1", 0.35),
		h2:    NewHidden("h2", 0.35),
		o1:    NewOutput("o1", 0.60, 0.01),
		o2:    NewOutput("o2", 0.60, 0.99),
		conns: make(map[string]*Connection),
	}

	edges := []struct {
		name     string
		src, dst *Unit
		w        float64
	}{
		{"w1", r.i1, r.h1, 0.15},
		{"w2", r.i1, r.h2, 0.25},
		{"w3", r.i2, r.h1, 0.20},
		{"w4", r.i2, r.h2, 0.30},
		{"w5", r.h1, r.o1, 0.40},
		{"w6", r.h1, r.o2, 0.50},
		{"w7", r.h2, r.o1, 0.45},
		{"w8", r.h2, r.o2, 0.55},
	}
	for _, e := range edges {
		c, err := Connect(e.src, e.dst, e.w)
		require.NoError(t, err)
		r.conns[e.name] = c
	}
	return r
}

func (r *reference) pass(t *testing.T) {
	t.Helper()
	require.NoError(t, r.i1.Reset())
	require.NoError(t, r.i2.Reset())
	require.NoError(t, r.i1.ReceiveSignal(0.05))
	require.NoError(t, r.i2.ReceiveSignal(0.10))
}

func TestKind(t *testing.T) {
	for _, k := range []Kind{Input, Hidden, Output} {
		parsed, err := ParseKind(strings.ToUpper(k.String()))
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("bias")
	assert.ErrorIs(t, err, ErrInvalidKind)

	assert.False(t, Input.Trainable())
	assert.True(t, Hidden.Trainable())
	assert.True(t, Output.Trainable())
	assert.Equal(t, "unknown", Kind(7).String())
}

func TestNew(t *testing.T) {
	u, err := New(Output, "o", 0.6, 0.2)
	require.NoError(t, err)
	assert.Equal(t, Output, u.Kind())
	assert.Equal(t, 0.2, u.Target())

	_, err = New(Kind(-1), "x", 0, 0)
	assert.ErrorIs(t, err, ErrInvalidKind)

	anon := NewHidden("", 0)
	assert.True(t, strings.HasPrefix(anon.Name(), "hidden-"), anon.Name())
	assert.NotEqual(t, anon.Name(), NewHidden("", 0).Name())

	assert.ErrorIs(t, NewHidden("h", 0).SetTarget(1), ErrInvalidKind)
	o := NewOutput("o", 0, 0)
	require.NoError(t, o.SetTarget(0.5))
	assert.Equal(t, 0.5, o.Target())
}

func TestConnectSharesEdge(t *testing.T) {
	a := NewInput("a")
	b := NewHidden("b", 0)

	c, err := Connect(a, b, 0.5)
	require.NoError(t, err)
	require.Len(t, a.Forward(), 1)
	require.Len(t, b.Rear(), 1)

	// Both endpoints hold the same edge.
	assert.Same(t, a.Forward()[0], b.Rear()[0])

	c.SetWeight(-1.25)
	assert.Equal(t, -1.25, a.Forward()[0].Weight())
	assert.Equal(t, -1.25, b.Rear()[0].Weight())
	assert.Equal(t, "a->b", c.String())
	assert.Equal(t, 0, c.RearIndex())
}

func TestConnectErrors(t *testing.T) {
	in := NewInput("in")
	h1 := NewHidden("h1", 0)
	h2 := NewHidden("h2", 0)
	h3 := NewHidden("h3", 0)

	_, err := Connect(h1, in, 1)
	assert.ErrorIs(t, err, ErrInvalidConnection)

	_, err = Connect(nil, h1, 1)
	assert.ErrorIs(t, err, ErrInvalidConnection)

	_, err = Connect(h1, h1, 1)
	assert.ErrorIs(t, err, ErrCycle)

	_, err = Connect(h1, h2, 1)
	require.NoError(t, err)
	_, err = Connect(h1, h2, 2)
	assert.ErrorIs(t, err, ErrDuplicateConnection)

	_, err = Connect(h2, h3, 1)
	require.NoError(t, err)
	_, err = Connect(h3, h1, 1)
	assert.ErrorIs(t, err, ErrCycle)

	// Failed attempts leave no half-registered edges.
	assert.Len(t, h1.Rear(), 0)
	assert.Len(t, h3.Forward(), 0)
}

func TestInputIdentity(t *testing.T) {
	in := NewInput("in")
	in.SetBias(3) // ignored by input units

	require.NoError(t, in.Reset())
	require.NoError(t, in.ReceiveSignal(0.731))

	assert.True(t, in.Fired())
	assert.Equal(t, in.Total(), in.Activation())
	assert.Equal(t, 0.731, in.Activation())

	err := in.ReceiveSignal(0.1)
	assert.ErrorIs(t, err, ErrSignalOverflow)
	assert.Equal(t, 1, in.Pending())
	assert.Equal(t, 0.731, in.Total())
}

func TestForwardReference(t *testing.T) {
	r := newReference(t)

	// Before any signal, activations read as reset defaults.
	require.NoError(t, r.i1.Reset())
	assert.Zero(t, r.o1.Activation())
	assert.False(t, r.o1.Fired())

	r.pass(t)

	assert.InDelta(t, 0.5932699, r.h1.Activation(), 1e-7)
	assert.InDelta(t, 0.5968844, r.h2.Activation(), 1e-7)
	assert.InDelta(t, 0.7513650, r.o1.Activation(), 1e-7)
	assert.InDelta(t, 0.7729285, r.o2.Activation(), 1e-7)
	assert.InDelta(t, 0.2983711, r.o1.Loss()+r.o2.Loss(), 1e-7)
	assert.Zero(t, r.h1.Loss())

	for _, u := range []*Unit{r.h1, r.h2, r.o1, r.o2} {
		assert.Equal(t, len(u.Rear()), u.Pending(), u.Name())
	}
}

func TestPartialPassDoesNotFire(t *testing.T) {
	r := newReference(t)
	require.NoError(t, r.i1.Reset())
	require.NoError(t, r.i2.Reset())
	require.NoError(t, r.i1.ReceiveSignal(0.05))

	assert.Equal(t, 1, r.h1.Pending())
	assert.False(t, r.h1.Fired())
	assert.Zero(t, r.h1.Activation())
	assert.False(t, r.o1.Fired())
}

func TestResetIdempotent(t *testing.T) {
	r := newReference(t)
	r.pass(t)

	require.NoError(t, r.i1.Reset())
	require.NoError(t, r.i1.Reset())

	for _, u := range []*Unit{r.i1, r.h1, r.h2, r.o1, r.o2} {
		assert.Zero(t, u.Pending(), u.Name())
		assert.Zero(t, u.Total(), u.Name())
		assert.Zero(t, u.Activation(), u.Name())
		assert.False(t, u.Fired(), u.Name())
	}
	// i2 is not reachable from i1.
	assert.True(t, r.i2.Fired())
}

func TestDiamond(t *testing.T) {
	// in -> a -> out, in -> b -> out, and a shortcut in -> out.
	in := NewInput("in")
	a := NewHidden("a", 0.1)
	b := NewHidden("b", -0.2)
	out := NewOutput("out", 0.3, 1)

	for _, e := range []struct {
		src, dst *Unit
		w        float64
	}{
		{in, a, 0.5}, {in, b, -0.5}, {in, out, 0.25}, {a, out, 1.5}, {b, out, -1},
	} {
		_, err := Connect(e.src, e.dst, e.w)
		require.NoError(t, err)
	}

	require.NoError(t, in.Reset())
	require.NoError(t, in.ReceiveSignal(2))

	sig := func(x float64) float64 { return 1 / (1 + exp(-x)) }
	wantA := sig(2*0.5 + 0.1)
	wantB := sig(2*-0.5 - 0.2)
	wantOut := sig(2*0.25 + wantA*1.5 + wantB*-1 + 0.3)

	assert.InDelta(t, wantA, a.Activation(), 1e-12)
	assert.InDelta(t, wantB, b.Activation(), 1e-12)
	assert.InDelta(t, wantOut, out.Activation(), 1e-12)
	assert.Equal(t, 3, out.Pending())
}

func TestResetDetectsCycle(t *testing.T) {
	in := NewInput("in")
	a := NewHidden("a", 0)
	b := NewHidden("b", 0)
	_, err := Connect(in, a, 1)
	require.NoError(t, err)
	_, err = Connect(a, b, 1)
	require.NoError(t, err)

	// Connect refuses loops, so forge one directly.
	loop := &Connection{source: b, dest: a, weight: 1}
	b.forward = append(b.forward, loop)
	a.rear = append(a.rear, loop)

	err = in.Reset()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCycle))

	_, err = TopologicalOrder([]*Unit{in})
	assert.ErrorIs(t, err, ErrCycle)
}

func TestTopologicalOrder(t *testing.T) {
	r := newReference(t)
	order, err := TopologicalOrder([]*Unit{r.i1, r.i2})
	require.NoError(t, err)
	require.Len(t, order, 6)

	pos := make(map[*Unit]int)
	for i, u := range order {
		pos[u] = i
	}
	for _, u := range order {
		for _, c := range u.Forward() {
			assert.Less(t, pos[u], pos[c.Dest()], "%s before %s", u, c.Dest())
		}
	}

	var visited []string
	require.NoError(t, Walk([]*Unit{r.i1, r.i2}, func(u *Unit) { visited = append(visited, u.Name()) }))
	assert.Equal(t, []string{"i1", "h1", "o1", "o2", "h2", "i2"}, visited)
}

func TestCheckLinks(t *testing.T) {
	a := NewInput("a")
	b := NewHidden("b", 0)
	c, err := Connect(a, b, 1)
	require.NoError(t, err)
	require.NoError(t, CheckLinks(a))
	require.NoError(t, CheckLinks(b))

	// An edge registered only on one endpoint.
	stray := &Connection{source: a, dest: b, weight: 2}
	a.forward = append(a.forward, stray)
	assert.ErrorIs(t, CheckLinks(a), ErrConnectionMismatch)
	a.forward = a.forward[:1]

	// The same edge registered twice on one side.
	b.rear = append(b.rear, c)
	assert.ErrorIs(t, CheckLinks(b), ErrConnectionMismatch)
}
