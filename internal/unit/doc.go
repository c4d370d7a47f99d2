// Package unit implements the neuron graph of a feed-forward network.
//
// A network is built from individual units joined by weighted connections
// rather than from weight matrices. Each unit is one of three kinds:
//
//   - Input: passes its single external signal through unchanged
//   - Hidden: applies sigmoid(total + bias)
//   - Output: a hidden unit with a target value and an error term
//
// # Forward protocol
//
// A unit counts the signals arriving over its rear connections. Once every
// rear connection has reported, the unit computes its activation and sends
// activation * weight along each forward connection. This handshake schedules
// any acyclic graph (including diamonds) without an external layer order.
//
//	i1 := unit.NewInput("i1")
//	h1 := unit.NewHidden("h1", 0.35)
//	o1 := unit.NewOutput("o1", 0.60, 0.01)
//	unit.Connect(i1, h1, 0.15)
//	unit.Connect(h1, o1, 0.40)
//
//	i1.Reset()
//	i1.ReceiveSignal(0.05)
//	o1.Activation()
//
// # Gradients
//
// Partial derivatives of the total error are computed per unit on demand by
// the chain rule, pulling ∂E/∂net from downstream units. An Evaluator caches
// those values for the duration of one learning step.
package unit
