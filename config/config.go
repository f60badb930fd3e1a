package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360/domainequations/errors"
)

// Output format constants
const (
	FormatRecords    = "records"    // JSON registry records, one per property
	FormatInterfaces = "interfaces" // Rendered interface declarations
	FormatProto      = "proto"      // proto2 message definitions, one file per module
)

// LeafConfig declares one named property of the model. Kind selects the
// constructor: plain, named, relation, or builtin. The metadata fields apply
// only to the kinds that accept them.
type LeafConfig struct {
	Name            string `yaml:"name"`
	Kind            string `yaml:"kind,omitempty"`
	Plural          string `yaml:"plural,omitempty"`
	Module          string `yaml:"module,omitempty"`
	Docstring       string `yaml:"docstring,omitempty"`
	ItemModule      string `yaml:"item_module,omitempty"`
	ContainerModule string `yaml:"container_module,omitempty"`
}

// EquationNode is one node of a declared equation tree. Exactly one field
// must be set: a leaf reference, one of the two constant markers, or an
// operand list.
type EquationNode struct {
	Leaf     string         `yaml:"leaf,omitempty"`
	Identity bool           `yaml:"identity,omitempty"`
	Terminal bool           `yaml:"terminal,omitempty"`
	Product  []EquationNode `yaml:"product,omitempty"`
	Sum      []EquationNode `yaml:"sum,omitempty"`
}

// OutputConfig selects what the tool renders and where.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
	Dir    string `yaml:"dir,omitempty"`
}

// ModelConfig is the complete declarative model: the leaves, the equations
// over them, and the requested output.
type ModelConfig struct {
	Version   string         `yaml:"version,omitempty"`
	Name      string         `yaml:"name,omitempty"`
	Leaves    []LeafConfig   `yaml:"leaves"`
	Equations []EquationNode `yaml:"equations"`
	Output    OutputConfig   `yaml:"output,omitempty"`
}

// Load reads and validates a model configuration file.
func Load(path string) (*ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapInvalid(err, "config", "Load",
			fmt.Sprintf("read config file %s", path))
	}
	return Parse(data)
}

// Parse decodes and validates a model configuration document.
func Parse(data []byte) (*ModelConfig, error) {
	var cfg ModelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapInvalid(err, "config", "Parse", "decode YAML")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config for structural problems: unknown kinds and
// formats, duplicate or missing leaf declarations, and malformed equation
// nodes. Name validity itself is enforced by the term constructors.
func (c *ModelConfig) Validate() error {
	if len(c.Leaves) == 0 {
		return errors.WrapInvalid(errors.ErrMissingConfig, "ModelConfig", "Validate",
			"at least one leaf must be declared")
	}
	if len(c.Equations) == 0 {
		return errors.WrapInvalid(errors.ErrMissingConfig, "ModelConfig", "Validate",
			"at least one equation must be declared")
	}

	declared := make(map[string]bool, len(c.Leaves))
	for _, leaf := range c.Leaves {
		if leaf.Name == "" {
			return errors.WrapInvalid(errors.ErrInvalidConfig, "ModelConfig", "Validate",
				"leaf name cannot be empty")
		}
		if declared[leaf.Name] {
			return errors.WrapInvalid(errors.ErrInvalidConfig, "ModelConfig", "Validate",
				fmt.Sprintf("leaf %q declared twice", leaf.Name))
		}
		declared[leaf.Name] = true

		switch leaf.Kind {
		case "", "plain", "named", "relation", "builtin":
		default:
			return errors.WrapInvalid(errors.ErrInvalidConfig, "ModelConfig", "Validate",
				fmt.Sprintf("leaf %q: unknown kind %q", leaf.Name, leaf.Kind))
		}
	}

	for i := range c.Equations {
		if err := c.Equations[i].validate(declared); err != nil {
			return errors.WrapInvalid(err, "ModelConfig", "Validate",
				fmt.Sprintf("equation %d", i))
		}
	}

	switch c.Output.Format {
	case "", FormatRecords, FormatInterfaces, FormatProto:
	default:
		return errors.WrapInvalid(errors.ErrInvalidConfig, "ModelConfig", "Validate",
			fmt.Sprintf("unknown output format %q", c.Output.Format))
	}

	return nil
}

// validate checks that exactly one node field is set and that leaf
// references resolve to declared leaves.
func (n *EquationNode) validate(declared map[string]bool) error {
	set := 0
	if n.Leaf != "" {
		set++
	}
	if n.Identity {
		set++
	}
	if n.Terminal {
		set++
	}
	if len(n.Product) > 0 {
		set++
	}
	if len(n.Sum) > 0 {
		set++
	}
	if set != 1 {
		return fmt.Errorf("%w: node must set exactly one of leaf, identity, terminal, product, sum",
			errors.ErrMalformedEquation)
	}

	if n.Leaf != "" && !declared[n.Leaf] {
		return fmt.Errorf("%w: undeclared leaf %q", errors.ErrInvalidConfig, n.Leaf)
	}

	operands := n.Product
	if len(n.Sum) > 0 {
		operands = n.Sum
	}
	for i := range operands {
		if err := operands[i].validate(declared); err != nil {
			return fmt.Errorf("operand %d: %w", i, err)
		}
	}
	return nil
}

// describe renders the node for error messages.
func (n *EquationNode) describe() string {
	switch {
	case n.Leaf != "":
		return n.Leaf
	case n.Identity:
		return "I"
	case n.Terminal:
		return "O"
	case len(n.Product) > 0:
		parts := make([]string, len(n.Product))
		for i := range n.Product {
			parts[i] = n.Product[i].describe()
		}
		return "(" + strings.Join(parts, " * ") + ")"
	case len(n.Sum) > 0:
		parts := make([]string, len(n.Sum))
		for i := range n.Sum {
			parts[i] = n.Sum[i].describe()
		}
		return "(" + strings.Join(parts, " + ") + ")"
	default:
		return "<empty>"
	}
}
