package network

import "errors"

// Configuration errors.
var (
	ErrEmptyNetwork  = errors.New("network needs at least one input and one output unit")
	ErrDuplicateUnit = errors.New("unit listed more than once")
	ErrUnreachable   = errors.New("unit cannot be reached from the input units")
	ErrUnlistedUnit  = errors.New("reachable unit is not listed in the network")
	ErrInputCount    = errors.New("number of values does not match number of input units")
	ErrLearningRate  = errors.New("learning rate must be a positive number")
)

// Protocol errors.
var (
	ErrNoForwardPass  = errors.New("no completed forward pass since the last reset or learning step")
	ErrIncompletePass = errors.New("forward pass ended before every output unit fired")
	ErrPassInProgress = errors.New("network is already running a pass")
)
