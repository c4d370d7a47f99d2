// Package topology describes networks in YAML and builds them.
//
// A description lists units and connections explicitly; connection order
// fixes the order of each unit's forward and rear lists.
//
//	learning_rate: 0.5
//	inputs: [0.05, 0.10]
//	units:
//	  - {name: i1, kind: input}
//	  - {name: h1, kind: hidden, bias: 0.35}
//	  - {name: o1, kind: output, bias: 0.60, target: 0.01}
//	connections:
//	  - {from: i1, to: h1, weight: 0.15}
//	  - {from: h1, to: o1, weight: 0.40}
package topology

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/backprop/internal/network"
	"github.com/born-ml/backprop/internal/unit"
)

//go:embed reference.yaml
var referenceYAML []byte

// Spec is a complete network description.
type Spec struct {
	LearningRate float64          `yaml:"learning_rate"`
	Inputs       []float64        `yaml:"inputs"`
	Units        []UnitSpec       `yaml:"units"`
	Connections  []ConnectionSpec `yaml:"connections"`
}

// UnitSpec describes one unit.
type UnitSpec struct {
	Name   string   `yaml:"name"`
	Kind   string   `yaml:"kind"`
	Bias   float64  `yaml:"bias"`
	Target *float64 `yaml:"target"`
}

// ConnectionSpec describes one weighted edge.
type ConnectionSpec struct {
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Weight float64 `yaml:"weight"`
}

// Reference returns the canonical two-input, two-hidden, two-output network
// with inputs [0.05, 0.10] and learning rate 0.5.
func Reference() *Spec {
	s, err := Parse(referenceYAML)
	if err != nil {
		panic("topology: embedded reference is invalid: " + err.Error())
	}
	return s
}

// Load reads and validates a description from a YAML file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read topology")
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return s, nil
}

// Parse decodes and validates a YAML description. Unknown fields are
// rejected.
func Parse(data []byte) (*Spec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Spec
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "decode topology")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks names, kinds, targets and connection endpoints. Graph
// properties (cycles, reachability) are checked when the network is built.
func (s *Spec) Validate() error {
	if len(s.Units) == 0 {
		return configErrorf("units", "no units")
	}

	names := make(map[string]bool, len(s.Units))
	inputs := 0
	for i, u := range s.Units {
		field := fmt.Sprintf("units[%d]", i)
		if u.Name == "" {
			return configErrorf(field+".name", "empty name")
		}
		if names[u.Name] {
			return configErrorf(field+".name", "duplicate unit %q", u.Name)
		}
		names[u.Name] = true

		kind, err := unit.ParseKind(u.Kind)
		if err != nil {
			return configErrorf(field+".kind", "%v", err)
		}
		switch {
		case kind == unit.Output && u.Target == nil:
			return configErrorf(field+".target", "output unit %q needs a target", u.Name)
		case kind != unit.Output && u.Target != nil:
			return configErrorf(field+".target", "%s unit %q cannot have a target", kind, u.Name)
		case kind == unit.Input && u.Bias != 0:
			return configErrorf(field+".bias", "input unit %q cannot have a bias", u.Name)
		}
		if kind == unit.Input {
			inputs++
		}
	}

	type edge struct{ from, to string }
	seen := make(map[edge]bool, len(s.Connections))
	for i, c := range s.Connections {
		field := fmt.Sprintf("connections[%d]", i)
		if !names[c.From] {
			return configErrorf(field+".from", "unknown unit %q", c.From)
		}
		if !names[c.To] {
			return configErrorf(field+".to", "unknown unit %q", c.To)
		}
		if seen[edge{c.From, c.To}] {
			return configErrorf(field, "duplicate connection %s -> %s", c.From, c.To)
		}
		seen[edge{c.From, c.To}] = true
	}

	if s.Inputs != nil && len(s.Inputs) != inputs {
		return configErrorf("inputs", "%d values for %d input units", len(s.Inputs), inputs)
	}
	if s.LearningRate < 0 {
		return configErrorf("learning_rate", "negative rate %v", s.LearningRate)
	}
	return nil
}

// Build creates the units, wires the connections in document order and
// wraps them in a validated network.
func (s *Spec) Build(cfg network.Config) (*network.Network, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	byName := make(map[string]*unit.Unit, len(s.Units))
	var inputs, hidden, outputs []*unit.Unit
	for _, us := range s.Units {
		kind, _ := unit.ParseKind(us.Kind)
		var target float64
		if us.Target != nil {
			target = *us.Target
		}
		u, err := unit.New(kind, us.Name, us.Bias, target)
		if err != nil {
			return nil, err
		}
		byName[us.Name] = u

		switch kind {
		case unit.Input:
			inputs = append(inputs, u)
		case unit.Hidden:
			hidden = append(hidden, u)
		case unit.Output:
			outputs = append(outputs, u)
		}
	}

	for i, cs := range s.Connections {
		if _, err := unit.Connect(byName[cs.From], byName[cs.To], cs.Weight); err != nil {
			return nil, errors.Wrapf(err, "connections[%d]", i)
		}
	}

	return network.New(inputs, hidden, outputs, cfg)
}
