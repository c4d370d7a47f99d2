// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package network

import (
	"github.com/born-ml/backprop/internal/gradcheck"
	"github.com/born-ml/backprop/internal/network"
	"github.com/born-ml/backprop/internal/topology"
	"github.com/born-ml/backprop/internal/unit"
)

// Units

// Unit is a single node of the network graph.
type Unit = unit.Unit

// Connection is a weighted edge shared by both of its endpoints.
type Connection = unit.Connection

// Kind tags a unit as Input, Hidden or Output.
type Kind = unit.Kind

// Unit kinds.
const (
	Input  = unit.Input
	Hidden = unit.Hidden
	Output = unit.Output
)

// Gradient is ∂E/∂weight for one connection.
type Gradient = unit.Gradient

// NewInput creates an input unit.
func NewInput(name string) *Unit {
	return unit.NewInput(name)
}

// NewHidden creates a hidden unit with the given bias.
func NewHidden(name string, bias float64) *Unit {
	return unit.NewHidden(name, bias)
}

// NewOutput creates an output unit with the given bias and target.
func NewOutput(name string, bias, target float64) *Unit {
	return unit.NewOutput(name, bias, target)
}

// Connect wires source to dest with the given weight.
//
// Example:
//
//	i1 := network.NewInput("i1")
//	h1 := network.NewHidden("h1", 0.35)
//	conn, err := network.Connect(i1, h1, 0.15)
func Connect(source, dest *Unit, weight float64) (*Connection, error) {
	return unit.Connect(source, dest, weight)
}

// Network

// Network runs forward passes and learning steps over a fixed set of units.
type Network = network.Network

// Config holds optional collaborators of a Network.
type Config = network.Config

// Observer receives pass and weight update notifications.
type Observer = network.Observer

// New validates the unit graph and wraps it in a Network.
func New(inputs, hidden, outputs []*Unit, cfg Config) (*Network, error) {
	return network.New(inputs, hidden, outputs, cfg)
}

// Errors

// Configuration errors.
var (
	ErrCycle               = unit.ErrCycle
	ErrDuplicateConnection = unit.ErrDuplicateConnection
	ErrConnectionMismatch  = unit.ErrConnectionMismatch
	ErrInvalidConnection   = unit.ErrInvalidConnection
	ErrInvalidKind         = unit.ErrInvalidKind
	ErrEmptyNetwork        = network.ErrEmptyNetwork
	ErrDuplicateUnit       = network.ErrDuplicateUnit
	ErrUnreachable         = network.ErrUnreachable
	ErrUnlistedUnit        = network.ErrUnlistedUnit
	ErrInputCount          = network.ErrInputCount
	ErrLearningRate        = network.ErrLearningRate
)

// Protocol errors.
var (
	ErrSignalOverflow = unit.ErrSignalOverflow
	ErrNotEvaluated   = unit.ErrNotEvaluated
	ErrNotTrainable   = unit.ErrNotTrainable
	ErrNoForwardPass  = network.ErrNoForwardPass
	ErrIncompletePass = network.ErrIncompletePass
	ErrPassInProgress = network.ErrPassInProgress
)

// Topologies

// Topology is a YAML network description.
type Topology = topology.Spec

// LoadTopology reads a YAML network description.
func LoadTopology(path string) (*Topology, error) {
	return topology.Load(path)
}

// ParseTopology decodes a YAML network description.
func ParseTopology(data []byte) (*Topology, error) {
	return topology.Parse(data)
}

// Reference returns the two-input, two-hidden, two-output example network.
func Reference() *Topology {
	return topology.Reference()
}

// Gradient checking

// GradCheckConfig controls the finite-difference check.
type GradCheckConfig = gradcheck.Config

// GradCheckResult compares analytic and numerical gradients of one
// connection.
type GradCheckResult = gradcheck.Result

// CheckGradients verifies every analytic gradient of net against a central
// finite difference and fails if any differs by more than the tolerance.
func CheckGradients(net *Network, values []float64, cfg GradCheckConfig) ([]GradCheckResult, error) {
	return gradcheck.Verify(net, values, cfg)
}
