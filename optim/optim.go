// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/backprop/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Config represents the base configuration for optimizers.
type Config = optim.Config

// Update records one applied weight change.
type Update = optim.Update

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{
//	    LR:       0.5,
//	    Momentum: 0.9,
//	})
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
//
// Example:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{
//	    LR:    0.01,
//	    Betas: [2]float64{0.9, 0.999},
//	})
func NewAdam(config AdamConfig) *Adam {
	return optim.NewAdam(config)
}

// Schedules

// Schedule yields the learning rate for a learning step.
type Schedule = optim.Schedule

// Constant keeps the same rate for every step.
type Constant = optim.Constant

// StepDecay multiplies the rate by a factor at fixed intervals.
type StepDecay = optim.StepDecay

// ExponentialDecay multiplies the rate by a factor after every step.
type ExponentialDecay = optim.ExponentialDecay

// ErrUnknownSchedule is returned by ParseSchedule for unknown names.
var ErrUnknownSchedule = optim.ErrUnknownSchedule

// ParseSchedule builds a schedule by name ("constant", "step", "exp").
func ParseSchedule(name string, initial float64) (Schedule, error) {
	return optim.ParseSchedule(name, initial)
}

// Apply sets the optimizer's learning rate for the given step.
func Apply(opt Optimizer, s Schedule, step int) {
	optim.Apply(opt, s, step)
}
