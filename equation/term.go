package equation

import (
	"fmt"
	"strings"

	"github.com/c360/domainequations/errors"
	"github.com/c360/domainequations/naming"
)

// termKind discriminates the five node shapes of a term.
type termKind uint8

const (
	kindIdentity termKind = iota
	kindTerminal
	kindLeaf
	kindSum
	kindProduct
)

// LeafKind distinguishes how a leaf is registered and rendered.
type LeafKind uint8

const (
	// LeafPlain is a bare named property reference.
	LeafPlain LeafKind = iota
	// LeafNamed carries explicit naming metadata (plural, module, docstring).
	LeafNamed
	// LeafRelation marks a container: its type name gets a fixed "Container"
	// suffix and consumers treat the composed property as a collection.
	LeafRelation
	// LeafBuiltin marks a primitive type reference that never produces a
	// generated class.
	LeafBuiltin
)

// String returns the string representation of the leaf kind.
func (k LeafKind) String() string {
	switch k {
	case LeafPlain:
		return "plain"
	case LeafNamed:
		return "named"
	case LeafRelation:
		return "relation"
	case LeafBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

// Leaf is the named payload of a leaf term. Leaves are immutable; metadata
// set at construction travels with every term the leaf appears in and is
// checked for collisions at registration time, not at construction.
type Leaf struct {
	// Name is the value name ("monthly_income"). Relation leaves carry the
	// derived container value name ("knife_container").
	Name string
	Kind LeafKind

	// Optional naming overrides for named leaves.
	Plural    string
	Module    string
	Docstring string

	// Relation metadata: the contained item's value name and module.
	ItemName   string
	ItemModule string
}

// Term is one immutable node of a domain equation. The zero value is the
// multiplicative identity.
type Term struct {
	kind     termKind
	leaf     *Leaf
	operands []Term
}

// Identity returns the neutral element for composition.
func Identity() Term {
	return Term{kind: kindIdentity}
}

// Terminal returns the absorbing marker that closes a product chain.
func Terminal() Term {
	return Term{kind: kindTerminal}
}

// LeafOption sets optional metadata on a leaf at construction time.
type LeafOption func(*Leaf)

// WithPlural overrides the derived plural value name.
func WithPlural(plural string) LeafOption {
	return func(l *Leaf) {
		l.Plural = plural
	}
}

// WithModule places the leaf's generated type inside a named module.
func WithModule(module string) LeafOption {
	return func(l *Leaf) {
		l.Module = module
	}
}

// WithDocstring overrides the derived docstring.
func WithDocstring(doc string) LeafOption {
	return func(l *Leaf) {
		l.Docstring = doc
	}
}

// WithItemModule sets the module of a relation leaf's contained item.
func WithItemModule(module string) LeafOption {
	return func(l *Leaf) {
		l.ItemModule = module
	}
}

// WithContainerModule places the generated container type inside a module.
func WithContainerModule(module string) LeafOption {
	return func(l *Leaf) {
		l.Module = module
	}
}

// NewLeaf returns a plain named property reference.
func NewLeaf(name string) (Term, error) {
	if !naming.ValidName(name) {
		return Term{}, errors.WrapInvalid(errors.ErrInvalidLeafName, "equation", "NewLeaf",
			fmt.Sprintf("leaf name %q must match [a-z][a-z_]*", name))
	}
	return leafTerm(&Leaf{Name: name, Kind: LeafPlain}), nil
}

// NewNamedLeaf returns a property reference with explicit naming metadata.
func NewNamedLeaf(name string, opts ...LeafOption) (Term, error) {
	if !naming.ValidName(name) {
		return Term{}, errors.WrapInvalid(errors.ErrInvalidLeafName, "equation", "NewNamedLeaf",
			fmt.Sprintf("leaf name %q must match [a-z][a-z_]*", name))
	}
	l := &Leaf{Name: name, Kind: LeafNamed}
	for _, opt := range opts {
		opt(l)
	}
	return leafTerm(l), nil
}

// NewRelationLeaf returns a container leaf for the given item name. The
// container's value name is the item name with a "_container" suffix, so
// "knife" yields the generated type "KnifeContainer".
func NewRelationLeaf(itemName string, opts ...LeafOption) (Term, error) {
	if !naming.ValidName(itemName) {
		return Term{}, errors.WrapInvalid(errors.ErrInvalidLeafName, "equation", "NewRelationLeaf",
			fmt.Sprintf("item name %q must match [a-z][a-z_]*", itemName))
	}
	l := &Leaf{
		Name:     itemName + "_container",
		Kind:     LeafRelation,
		ItemName: itemName,
	}
	for _, opt := range opts {
		opt(l)
	}
	return leafTerm(l), nil
}

// NewBuiltinLeaf returns a primitive type reference ("float", "int32").
// Builtin names are kept verbatim as type names and never produce a
// generated class.
func NewBuiltinLeaf(name string) (Term, error) {
	if !naming.ValidBuiltinName(name) {
		return Term{}, errors.WrapInvalid(errors.ErrInvalidLeafName, "equation", "NewBuiltinLeaf",
			fmt.Sprintf("builtin name %q must match [a-z][a-z0-9_]*", name))
	}
	return leafTerm(&Leaf{Name: name, Kind: LeafBuiltin}), nil
}

func leafTerm(l *Leaf) Term {
	return Term{kind: kindLeaf, leaf: l}
}

// Product composes terms in sequence ("needs all of, in order"). Nested
// products are flattened; at least one operand is required.
func Product(terms ...Term) (Term, error) {
	if len(terms) == 0 {
		return Term{}, errors.WrapInvalid(errors.ErrEmptyOperands, "equation", "Product", "validate operands")
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	operands := make([]Term, 0, len(terms))
	for _, t := range terms {
		if t.kind == kindProduct {
			operands = append(operands, t.operands...)
			continue
		}
		operands = append(operands, t)
	}
	return Term{kind: kindProduct, operands: operands}, nil
}

// Sum composes terms as alternatives ("needs one of"). Nested sums are
// flattened; at least one operand is required.
func Sum(terms ...Term) (Term, error) {
	if len(terms) == 0 {
		return Term{}, errors.WrapInvalid(errors.ErrEmptyOperands, "equation", "Sum", "validate operands")
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	operands := make([]Term, 0, len(terms))
	for _, t := range terms {
		if t.kind == kindSum {
			operands = append(operands, t.operands...)
			continue
		}
		operands = append(operands, t)
	}
	return Term{kind: kindSum, operands: operands}, nil
}

// IsIdentity reports whether the term is the identity element.
func (t Term) IsIdentity() bool {
	return t.kind == kindIdentity
}

// IsTerminal reports whether the term is the terminal element.
func (t Term) IsTerminal() bool {
	return t.kind == kindTerminal
}

// AsLeaf returns the leaf payload when the term is a leaf.
func (t Term) AsLeaf() (Leaf, bool) {
	if t.kind != kindLeaf {
		return Leaf{}, false
	}
	return *t.leaf, true
}

// Equal reports structural equality. Leaves compare by value name only:
// metadata differences are a registration concern, not an algebraic one.
func (t Term) Equal(other Term) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case kindLeaf:
		return t.leaf.Name == other.leaf.Name
	case kindSum, kindProduct:
		if len(t.operands) != len(other.operands) {
			return false
		}
		for i := range t.operands {
			if !t.operands[i].Equal(other.operands[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String renders the term with infix operators, identity as "I" and the
// terminal as "O".
func (t Term) String() string {
	switch t.kind {
	case kindIdentity:
		return "I"
	case kindTerminal:
		return "O"
	case kindLeaf:
		return t.leaf.Name
	case kindSum:
		return t.renderOperands(" + ")
	case kindProduct:
		return t.renderOperands(" * ")
	default:
		return "?"
	}
}

func (t Term) renderOperands(sep string) string {
	parts := make([]string, len(t.operands))
	for i, op := range t.operands {
		parts[i] = op.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// nodeCount returns the total number of nodes in the term tree.
func (t Term) nodeCount() int {
	n := 1
	for _, op := range t.operands {
		n += op.nodeCount()
	}
	return n
}
