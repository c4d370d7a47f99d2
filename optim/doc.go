// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides weight update rules for unit-level networks.
//
// # Overview
//
// This package contains:
//   - SGD: gradient descent with optional momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Schedules: Constant, StepDecay, ExponentialDecay
//   - Optimizer interface for custom update rules
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/backprop/network"
//	    "github.com/born-ml/backprop/optim"
//	)
//
//	func main() {
//	    net := buildNetwork()
//	    opt := optim.NewSGD(optim.SGDConfig{LR: 0.5, Momentum: 0.5})
//	    schedule := optim.StepDecay{Initial: 0.5, Factor: 0.5, Every: 100}
//
//	    for step := range 1000 {
//	        net.ResetState()
//	        net.Forward(inputs)
//
//	        optim.Apply(opt, schedule, step)
//	        net.LearnWith(opt)
//	    }
//	}
//
// # Ordering
//
// Gradients for a learning step are always computed from one completed
// forward pass before Step changes any weight.
package optim
