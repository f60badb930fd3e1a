package config

import (
	"fmt"

	"github.com/c360/domainequations/equation"
	"github.com/c360/domainequations/errors"
)

// BuildTerms constructs the declared equations as terms. Leaf declarations
// are materialized once and shared across equations, so a leaf referenced
// from several equations is the same value everywhere.
func BuildTerms(cfg *ModelConfig) ([]equation.Term, error) {
	leaves := make(map[string]equation.Term, len(cfg.Leaves))
	for _, lc := range cfg.Leaves {
		term, err := buildLeaf(lc)
		if err != nil {
			return nil, err
		}
		leaves[lc.Name] = term
	}

	terms := make([]equation.Term, 0, len(cfg.Equations))
	for i := range cfg.Equations {
		term, err := buildNode(&cfg.Equations[i], leaves)
		if err != nil {
			return nil, errors.WrapInvalid(err, "config", "BuildTerms",
				fmt.Sprintf("equation %d: %s", i, cfg.Equations[i].describe()))
		}
		terms = append(terms, term)
	}
	return terms, nil
}

// buildLeaf constructs one leaf term from its declaration.
func buildLeaf(lc LeafConfig) (equation.Term, error) {
	var opts []equation.LeafOption
	if lc.Plural != "" {
		opts = append(opts, equation.WithPlural(lc.Plural))
	}
	if lc.Module != "" {
		opts = append(opts, equation.WithModule(lc.Module))
	}
	if lc.Docstring != "" {
		opts = append(opts, equation.WithDocstring(lc.Docstring))
	}

	switch lc.Kind {
	case "", "plain":
		return equation.NewLeaf(lc.Name)
	case "named":
		return equation.NewNamedLeaf(lc.Name, opts...)
	case "relation":
		if lc.ItemModule != "" {
			opts = append(opts, equation.WithItemModule(lc.ItemModule))
		}
		if lc.ContainerModule != "" {
			opts = append(opts, equation.WithContainerModule(lc.ContainerModule))
		}
		return equation.NewRelationLeaf(lc.Name, opts...)
	case "builtin":
		return equation.NewBuiltinLeaf(lc.Name)
	default:
		return equation.Term{}, errors.WrapInvalid(errors.ErrInvalidConfig, "config", "buildLeaf",
			fmt.Sprintf("leaf %q: unknown kind %q", lc.Name, lc.Kind))
	}
}

// buildNode constructs one equation node, resolving leaf references against
// the materialized leaf set.
func buildNode(n *EquationNode, leaves map[string]equation.Term) (equation.Term, error) {
	switch {
	case n.Leaf != "":
		term, ok := leaves[n.Leaf]
		if !ok {
			return equation.Term{}, fmt.Errorf("%w: undeclared leaf %q",
				errors.ErrInvalidConfig, n.Leaf)
		}
		return term, nil
	case n.Identity:
		return equation.Identity(), nil
	case n.Terminal:
		return equation.Terminal(), nil
	case len(n.Product) > 0:
		operands, err := buildOperands(n.Product, leaves)
		if err != nil {
			return equation.Term{}, err
		}
		return equation.Product(operands...)
	case len(n.Sum) > 0:
		operands, err := buildOperands(n.Sum, leaves)
		if err != nil {
			return equation.Term{}, err
		}
		return equation.Sum(operands...)
	default:
		return equation.Term{}, fmt.Errorf("%w: empty equation node", errors.ErrMalformedEquation)
	}
}

func buildOperands(nodes []EquationNode, leaves map[string]equation.Term) ([]equation.Term, error) {
	operands := make([]equation.Term, 0, len(nodes))
	for i := range nodes {
		term, err := buildNode(&nodes[i], leaves)
		if err != nil {
			return nil, fmt.Errorf("operand %d: %w", i, err)
		}
		operands = append(operands, term)
	}
	return operands, nil
}
