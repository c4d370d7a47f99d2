package optim

import (
	"math"

	"github.com/born-ml/backprop/internal/unit"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer over
// individual connection weights.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²
//	m_hat = m_t / (1 - beta1^t)
//	v_hat = v_t / (1 - beta2^t)
//	w = w - lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	t     int // Timestep for bias correction
	m     map[*unit.Connection]float64
	v     map[*unit.Connection]float64
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Running average coefficients (default: [0.9, 0.999])
	Eps   float64    // Denominator term (default: 1e-8)
}

// NewAdam creates a new Adam optimizer, filling unset hyperparameters with
// their defaults.
func NewAdam(config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas == [2]float64{} {
		config.Betas = [2]float64{0.9, 0.999}
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		lr:    config.LR,
		beta1: config.Betas[0],
		beta2: config.Betas[1],
		eps:   config.Eps,
		m:     make(map[*unit.Connection]float64),
		v:     make(map[*unit.Connection]float64),
	}
}

// Step performs a single optimization step over precomputed gradients.
func (a *Adam) Step(grads []unit.Gradient) []Update {
	a.t++
	bc1 := 1 - math.Pow(a.beta1, float64(a.t))
	bc2 := 1 - math.Pow(a.beta2, float64(a.t))

	return each(grads, func(g unit.Gradient) Update {
		m := a.beta1*a.m[g.Conn] + (1-a.beta1)*g.Value
		v := a.beta2*a.v[g.Conn] + (1-a.beta2)*g.Value*g.Value
		a.m[g.Conn] = m
		a.v[g.Conn] = v

		mHat := m / bc1
		vHat := v / bc2

		old := g.Conn.Weight()
		g.Conn.SetWeight(old - a.lr*mHat/(math.Sqrt(vHat)+a.eps))
		return Update{Conn: g.Conn, Gradient: g.Value, Old: old, New: g.Conn.Weight()}
	})
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}
