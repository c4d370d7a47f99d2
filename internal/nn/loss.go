package nn

// HalfSquaredError is the per-output error term.
//
// Loss = 0.5 * (target - output)²
//
// The factor of one half cancels the exponent when differentiating, so the
// gradient with respect to the output is simply -(target - output).
//
// Example:
//
//	e := nn.HalfSquaredError(0.01, 0.75136507) // 0.27481108...
func HalfSquaredError(target, output float64) float64 {
	diff := target - output
	return 0.5 * diff * diff
}

// HalfSquaredErrorGrad returns ∂E/∂output for HalfSquaredError.
func HalfSquaredErrorGrad(target, output float64) float64 {
	return -(target - output)
}
