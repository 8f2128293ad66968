package harness

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/arcadejump/internal/ir"
	"github.com/roach88/arcadejump/param"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Numeric is the float width of every case: f32 or f64.
	// Defaults to f64.
	Numeric string `yaml:"numeric,omitempty"`

	// Tolerance is the relative error accepted on expected values.
	// Defaults to 1e-6 for f32 and 1e-12 for f64.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Cases are run in order.
	Cases []Case `yaml:"cases"`
}

// Case derives one or two parameters from two tagged inputs.
type Case struct {
	Name string `yaml:"name"`

	// Inputs holds exactly two values keyed by kind.
	Inputs map[string]float64 `yaml:"inputs"`

	// Outputs lists the kinds to derive, at most two.
	Outputs []string `yaml:"outputs"`

	// Expect holds the expected value of some or all outputs.
	Expect map[string]float64 `yaml:"expect,omitempty"`

	// Error is the kind whose null value must make the derivation fail.
	Error string `yaml:"error,omitempty"`
}

// NumType returns the scenario width.
func (s *Scenario) NumType() ir.NumType {
	if nt, ok := ir.ParseNumType(s.Numeric); ok {
		return nt
	}
	return ir.Float64
}

func (s *Scenario) tolerance() float64 {
	switch {
	case s.Tolerance > 0:
		return s.Tolerance
	case s.NumType() == ir.Float32:
		return 1e-6
	}
	return 1e-12
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "output:" vs "outputs:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Numeric != "" {
		if _, ok := ir.ParseNumType(s.Numeric); !ok {
			return fmt.Errorf("numeric: unknown type %q", s.Numeric)
		}
	}
	if s.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	names := make(map[string]bool)
	for i := range s.Cases {
		c := &s.Cases[i]
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if names[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate name %q", i, c.Name)
		}
		names[c.Name] = true
		if err := c.validate(); err != nil {
			return fmt.Errorf("cases[%d] (%s): %w", i, c.Name, err)
		}
	}
	return nil
}

func (c *Case) validate() error {
	if len(c.Inputs) != 2 {
		return fmt.Errorf("inputs must hold exactly two kinds, got %d", len(c.Inputs))
	}
	in, err := c.inputs()
	if err != nil {
		return err
	}
	if in[0].kind == in[1].kind {
		return fmt.Errorf("inputs repeat kind %s", in[0].kind)
	}

	outs, err := c.outputs()
	if err != nil {
		return err
	}
	if len(outs) == 0 || len(outs) > 2 {
		return fmt.Errorf("outputs must list one or two kinds")
	}
	for i, k := range outs {
		if _, err := param.Select(in[0].kind, in[1].kind, k); err != nil {
			return err
		}
		if i > 0 && k == outs[0] {
			return fmt.Errorf("outputs repeat kind %s", k)
		}
	}

	switch {
	case c.Error != "" && len(c.Expect) > 0:
		return fmt.Errorf("expect and error are mutually exclusive")
	case c.Error != "":
		if _, ok := param.ParseKind(c.Error); !ok {
			return fmt.Errorf("error: unknown kind %q", c.Error)
		}
	case len(c.Expect) == 0:
		return fmt.Errorf("one of expect or error is required")
	}

	expect, err := c.expected()
	if err != nil {
		return err
	}
	for k := range expect {
		if !containsKind(outs, k) {
			return fmt.Errorf("expect: %s is not an output", k)
		}
	}
	return nil
}

type tagged struct {
	kind  param.Kind
	value float64
}

// inputs returns the inputs sorted by kind.
func (c *Case) inputs() ([]tagged, error) {
	in := make([]tagged, 0, len(c.Inputs))
	for name, v := range c.Inputs {
		k, ok := param.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("inputs: unknown kind %q", name)
		}
		in = append(in, tagged{k, v})
	}
	sort.Slice(in, func(i, j int) bool { return in[i].kind < in[j].kind })
	return in, nil
}

func (c *Case) outputs() ([]param.Kind, error) {
	outs := make([]param.Kind, 0, len(c.Outputs))
	for _, name := range c.Outputs {
		k, ok := param.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("outputs: unknown kind %q", name)
		}
		outs = append(outs, k)
	}
	return outs, nil
}

func (c *Case) expected() (map[param.Kind]float64, error) {
	expect := make(map[param.Kind]float64, len(c.Expect))
	for name, v := range c.Expect {
		k, ok := param.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("expect: unknown kind %q", name)
		}
		expect[k] = v
	}
	return expect, nil
}

func containsKind(kinds []param.Kind, k param.Kind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}
