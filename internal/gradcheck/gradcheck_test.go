package gradcheck_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/backprop/internal/gradcheck"
	"github.com/born-ml/backprop/internal/network"
	"github.com/born-ml/backprop/internal/topology"
	"github.com/born-ml/backprop/internal/unit"
)

func TestReferenceGradients(t *testing.T) {
	spec := topology.Reference()
	n, err := spec.Build(network.Config{})
	require.NoError(t, err)

	results, err := gradcheck.Verify(n, spec.Inputs, gradcheck.Config{})
	require.NoError(t, err)
	require.Len(t, results, 8)
	assert.Less(t, gradcheck.MaxDiff(results), 1e-4)

	// Weights are restored and the network is evaluated at them.
	assert.InDelta(t, 0.2983711, n.TotalError(), 1e-7)
	w, ok := n.Unit("o1")
	require.True(t, ok)
	assert.Equal(t, 0.40, w.Rear()[0].Weight())
}

// TestRandomTopologies checks deeper and irregular graphs, including skip
// connections from inputs straight to outputs.
func TestRandomTopologies(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 10; trial++ {
		in := []*unit.Unit{unit.NewInput(""), unit.NewInput(""), unit.NewInput("")}
		h1 := []*unit.Unit{unit.NewHidden("", rng.NormFloat64()), unit.NewHidden("", rng.NormFloat64())}
		h2 := []*unit.Unit{unit.NewHidden("", rng.NormFloat64()), unit.NewHidden("", rng.NormFloat64())}
		out := []*unit.Unit{unit.NewOutput("", rng.NormFloat64(), rng.Float64()), unit.NewOutput("", rng.NormFloat64(), rng.Float64())}

		connectAll := func(src, dst []*unit.Unit) {
			for _, s := range src {
				for _, d := range dst {
					_, err := unit.Connect(s, d, rng.NormFloat64())
					require.NoError(t, err)
				}
			}
		}
		connectAll(in, h1)
		connectAll(h1, h2)
		connectAll(h2, out)
		connectAll(in[:1], out)

		n, err := network.New(in, append(h1, h2...), out, network.Config{})
		require.NoError(t, err)

		values := []float64{rng.Float64(), rng.Float64(), rng.Float64()}
		results, err := gradcheck.Verify(n, values, gradcheck.Config{Tolerance: 1e-6})
		require.NoError(t, err, "trial %d", trial)
		assert.Len(t, results, 6+4+4+2)
	}
}

func TestNumericDetectsWrongGradient(t *testing.T) {
	spec := topology.Reference()
	n, err := spec.Build(network.Config{})
	require.NoError(t, err)

	results, err := gradcheck.Check(n, spec.Inputs, gradcheck.Config{})
	require.NoError(t, err)

	// A gradient off by a sign is caught.
	r := results[0]
	r.Analytic = -r.Analytic
	assert.Greater(t, r.Diff(), 1e-4)
}

func TestNumericPassError(t *testing.T) {
	spec := topology.Reference()
	n, err := spec.Build(network.Config{})
	require.NoError(t, err)

	c := n.Connections()[0]
	_, err = gradcheck.Numeric(n, []float64{1}, c, 1e-6)
	assert.ErrorIs(t, err, network.ErrInputCount)
	assert.Equal(t, 0.15, c.Weight())
}

func TestNumericLeavesPassAtOriginalWeights(t *testing.T) {
	spec := topology.Reference()
	n, err := spec.Build(network.Config{})
	require.NoError(t, err)

	_, err = n.Evaluate(spec.Inputs)
	require.NoError(t, err)
	want, err := n.Gradients()
	require.NoError(t, err)

	c := n.Connections()[0]
	_, err = gradcheck.Numeric(n, spec.Inputs, c, 1e-3)
	require.NoError(t, err)

	assert.Equal(t, 0.15, c.Weight())
	assert.InDelta(t, 0.2983711, n.TotalError(), 1e-7)
	got, err := n.Gradients()
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].Value, got[i].Value, 1e-12, "%s", want[i].Conn)
	}
}

func TestMaxDiffEmpty(t *testing.T) {
	assert.Zero(t, gradcheck.MaxDiff(nil))
}
