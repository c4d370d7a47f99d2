// Package report prints network state for humans: activations, total error,
// gradients and weight updates.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/backprop/internal/network"
	"github.com/born-ml/backprop/internal/optim"
	"github.com/born-ml/backprop/internal/unit"
)

// Console writes plain-text reports. It implements network.Observer.
type Console struct {
	w       io.Writer
	verbose bool // print every unit after a pass, not only outputs
}

// NewConsole creates a reporter writing to w.
func NewConsole(w io.Writer, verbose bool) *Console {
	return &Console{w: w, verbose: verbose}
}

// PassCompleted prints the output activations and the total error.
func (c *Console) PassCompleted(n *network.Network) {
	if c.verbose {
		c.Activations(n)
	} else {
		c.Outputs(n)
	}
	fmt.Fprintf(c.w, "Total error: %.9f\n", n.TotalError())
}

// WeightUpdated prints the old and new weight of one connection.
func (c *Console) WeightUpdated(u optim.Update) {
	fmt.Fprintf(c.w, "%s updating rear weight %d (%s) from %.9f to %.9f\n",
		u.Conn.Dest(), u.Conn.RearIndex(), u.Conn, u.Old, u.New)
}

// Outputs prints the activation of every output unit.
func (c *Console) Outputs(n *network.Network) {
	fmt.Fprintln(c.w, "Output:")
	for _, out := range n.Outputs() {
		fmt.Fprintf(c.w, "  %s: %.9f\n", out, out.Activation())
	}
}

// Activations prints a table of every unit's accumulated input and
// activation.
func (c *Console) Activations(n *network.Network) {
	tw := tabwriter.NewWriter(c.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "unit\tkind\ttotal\tactivation")
	for _, u := range n.Units() {
		fmt.Fprintf(tw, "%s\t%s\t%.9f\t%.9f\n", u, u.Kind(), u.Total(), u.Activation())
	}
	tw.Flush()
}

// Gradients prints ∂E/∂w for each connection followed by the L2 norm of all
// of them.
func (c *Console) Gradients(grads []unit.Gradient) {
	values := make([]float64, len(grads))
	tw := tabwriter.NewWriter(c.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "connection\tweight\t∂E/∂w")
	for i, g := range grads {
		values[i] = g.Value
		fmt.Fprintf(tw, "%s\t%.9f\t%.9f\n", g.Conn, g.Conn.Weight(), g.Value)
	}
	tw.Flush()
	fmt.Fprintf(c.w, "Gradient norm: %.9f\n", floats.Norm(values, 2))
}
