// Package naming derives the type, value, plural and docstring names used
// for generated domain properties. All derivations are pure functions of the
// value name; explicit overrides always win over the derived defaults.
package naming

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360/domainequations/errors"
)

// identifierPattern matches valid value names: lowercase words separated by
// underscores, starting with a letter.
var identifierPattern = regexp.MustCompile(`^[a-z][a-z_]*$`)

// builtinPattern additionally allows digits so that scalar type names like
// "int32" or "fixed64" can be referenced as builtin leaves.
var builtinPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidName reports whether name is a valid value name.
func ValidName(name string) bool {
	return identifierPattern.MatchString(name)
}

// ValidBuiltinName reports whether name is a valid builtin type name.
func ValidBuiltinName(name string) bool {
	return builtinPattern.MatchString(name)
}

// TypeName converts a value name to its generated type name:
// "monthly_income" becomes "MonthlyIncome".
func TypeName(valueName string) string {
	var b strings.Builder
	for _, part := range strings.Split(valueName, "_") {
		b.WriteString(capitalize(part))
	}
	return b.String()
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

// Pluralize derives the default plural form of a value name.
//
//	"speed"    -> "speeds"
//	"phalanx"  -> "phalanxes"
//	"dish"     -> "dishes"
//	"category" -> "categories"
//	"day"      -> "days"
//	"knife"    -> "knives"
func Pluralize(word string) string {
	if word == "" {
		return word
	}
	last := word[len(word)-1]
	if last == 'x' || last == 's' {
		return word + "es"
	}
	if last == 'f' {
		return word[:len(word)-1] + "ves"
	}
	if len(word) >= 2 {
		if last == 'y' {
			switch word[len(word)-2] {
			case 'a', 'e', 'i', 'o', 'u':
				return word + "s"
			default:
				return word[:len(word)-1] + "ies"
			}
		}
		if tail := word[len(word)-2:]; tail == "sh" || tail == "ch" {
			return word + "es"
		}
		if word[len(word)-2:] == "fe" {
			return word[:len(word)-2] + "ves"
		}
	}
	return word + "s"
}

// Docstring derives the default docstring name: underscores become spaces.
func Docstring(valueName string) string {
	return strings.ReplaceAll(valueName, "_", " ")
}

// TypeDescriptor is a reference to a type by name, optionally qualified by a
// module. Builtin scalar types are plain descriptors with no value naming.
type TypeDescriptor struct {
	ClassName  string
	ModuleName string
}

// QualifiedName returns the class name prefixed with its module, if any.
func (td TypeDescriptor) QualifiedName() string {
	if td.ModuleName != "" {
		return td.ModuleName + "." + td.ClassName
	}
	return td.ClassName
}

// String renders the descriptor in the registry record shape.
func (td TypeDescriptor) String() string {
	return fmt.Sprintf("{\"type\": %q}", td.QualifiedName())
}

// Naming carries the complete derived naming of one property.
type Naming struct {
	ValueName  string
	Plural     string
	Docstring  string
	ClassName  string
	ModuleName string
}

// Option overrides a derived naming default.
type Option func(*Naming)

// WithPlural sets an explicit plural value name.
func WithPlural(plural string) Option {
	return func(n *Naming) {
		n.Plural = plural
	}
}

// WithModule places the generated type inside a named module.
func WithModule(module string) Option {
	return func(n *Naming) {
		n.ModuleName = module
	}
}

// WithDocstring sets an explicit docstring.
func WithDocstring(doc string) Option {
	return func(n *Naming) {
		n.Docstring = doc
	}
}

// New derives a Naming from a value name, applying any overrides.
func New(valueName string, opts ...Option) (Naming, error) {
	if !ValidName(valueName) {
		return Naming{}, errors.WrapInvalid(errors.ErrInvalidLeafName, "naming", "New",
			fmt.Sprintf("value name %q must match [a-z][a-z_]*", valueName))
	}

	n := Naming{
		ValueName: valueName,
		Plural:    Pluralize(valueName),
		Docstring: Docstring(valueName),
		ClassName: TypeName(valueName),
	}
	for _, opt := range opts {
		opt(&n)
	}

	if !ValidName(n.Plural) {
		return Naming{}, errors.WrapInvalid(errors.ErrInvalidLeafName, "naming", "New",
			fmt.Sprintf("plural %q must match [a-z][a-z_]*", n.Plural))
	}

	return n, nil
}

// NewContainer derives the container naming for an item value name:
// "knife" becomes the type "KnifeContainer" with value name "knife_container".
func NewContainer(itemName string, opts ...Option) (Naming, error) {
	if !ValidName(itemName) {
		return Naming{}, errors.WrapInvalid(errors.ErrInvalidLeafName, "naming", "NewContainer",
			fmt.Sprintf("item name %q must match [a-z][a-z_]*", itemName))
	}
	return New(itemName+"_container", opts...)
}

// TypeName returns the fully qualified generated type name.
func (n Naming) TypeName() string {
	return n.Descriptor().QualifiedName()
}

// InterfaceName returns the generated abstract interface name ("ISpeed").
func (n Naming) InterfaceName() string {
	return "I" + n.ClassName
}

// Descriptor returns the type reference for this naming.
func (n Naming) Descriptor() TypeDescriptor {
	return TypeDescriptor{ClassName: n.ClassName, ModuleName: n.ModuleName}
}

// String renders the naming in the registry record shape.
func (n Naming) String() string {
	return fmt.Sprintf("{\"type\": %q, \"value\": %q, \"plural\": %q, \"docstring\": %q}",
		n.TypeName(), n.ValueName, n.Plural, n.Docstring)
}
