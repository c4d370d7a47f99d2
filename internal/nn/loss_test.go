package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHalfSquaredError(t *testing.T) {
	assert.InDelta(t, 0.274811083, HalfSquaredError(0.01, 0.75136507), 1e-8)
	assert.InDelta(t, 0.023560026, HalfSquaredError(0.99, 0.772928465), 1e-8)
	assert.Equal(t, 0.0, HalfSquaredError(0.3, 0.3))

	// Symmetric in the sign of the residual.
	assert.Equal(t, HalfSquaredError(1, 0), HalfSquaredError(0, 1))
}

func TestHalfSquaredErrorGrad(t *testing.T) {
	assert.InDelta(t, 0.74136507, HalfSquaredErrorGrad(0.01, 0.75136507), 1e-12)
	assert.InDelta(t, -0.217071535, HalfSquaredErrorGrad(0.99, 0.772928465), 1e-12)
}
