package unit

import "errors"

// Configuration errors.
var (
	ErrCycle               = errors.New("connection graph contains a cycle")
	ErrDuplicateConnection = errors.New("connection already exists")
	ErrConnectionMismatch  = errors.New("connection not registered on both endpoints")
	ErrInvalidConnection   = errors.New("invalid connection")
	ErrInvalidKind         = errors.New("invalid unit kind")
)

// Protocol errors.
var (
	ErrSignalOverflow = errors.New("unit received more signals than it has rear connections")
	ErrNotEvaluated   = errors.New("unit has not fired in the current pass")
	ErrNotTrainable   = errors.New("unit has no trainable rear connections")
	ErrIndexRange     = errors.New("rear connection index out of range")
)
