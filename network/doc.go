// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package network provides a feed-forward neural network built from
// individual units and connections, trained by backpropagation.
//
// # Overview
//
// This package contains:
//   - Units: Input (identity), Hidden (sigmoid), Output (sigmoid + target)
//   - Connect: wires two units with one shared, weighted connection
//   - Network: ResetState, Forward, TotalError, Gradients, Learn
//   - Topologies: YAML descriptions and the reference 2-2-2 network
//   - Gradient checking against central finite differences
//
// # Basic Usage
//
//	import "github.com/born-ml/backprop/network"
//
//	func main() {
//	    i1 := network.NewInput("i1")
//	    h1 := network.NewHidden("h1", 0.35)
//	    o1 := network.NewOutput("o1", 0.60, 0.01)
//	    network.Connect(i1, h1, 0.15)
//	    network.Connect(h1, o1, 0.40)
//
//	    net, err := network.New(
//	        []*network.Unit{i1},
//	        []*network.Unit{h1},
//	        []*network.Unit{o1},
//	        network.Config{},
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    net.ResetState()
//	    net.Forward([]float64{0.05})
//	    fmt.Println(net.TotalError())
//	    net.Learn(0.5)
//	}
//
// # Forward Pass
//
// Every unit counts the signals arriving over its rear connections and fires
// once all of them have reported. The cascade needs no layer ordering and
// works for any acyclic graph.
//
// # Learning
//
// Learn computes ∂E/∂w for every connection into a hidden or output unit from
// the activations of the last completed pass, then applies
// w -= learningRate * ∂E/∂w once per connection.
package network
