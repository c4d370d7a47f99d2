package unit

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/backprop/internal/nn"
)

// Kind tags a unit with its role in the network.
type Kind int

const (
	// Input units take one external value and pass it on unchanged.
	Input Kind = iota
	// Hidden units apply a sigmoid and have trainable rear connections.
	Hidden
	// Output units are hidden units with a target and an error term.
	Output
)

// rule is the capability table entry for a Kind.
type rule struct {
	activation nn.Activation
	trainable  bool // rear weights are updated by learning
	target     bool // contributes an error term
}

var rules = [...]rule{
	Input:  {activation: nn.Identity{}},
	Hidden: {activation: nn.Sigmoid{}, trainable: true},
	Output: {activation: nn.Sigmoid{}, trainable: true, target: true},
}

var kindNames = [...]string{
	Input:  "input",
	Hidden: "hidden",
	Output: "output",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if !k.valid() {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind converts a kind name (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidKind, "%q", s)
}

// Trainable reports whether units of this kind have learnable rear weights.
func (k Kind) Trainable() bool {
	return k.valid() && rules[k].trainable
}

func (k Kind) valid() bool {
	return k >= Input && k <= Output
}

func (k Kind) rule() rule {
	return rules[k]
}
