package generator

import (
	"fmt"
	"strings"

	"github.com/c360/domainequations/errors"
	"github.com/c360/domainequations/graph"
	"github.com/c360/domainequations/naming"
)

// InterfaceGenerator renders the abstract boundary of a property graph as Go
// interface declarations. Each registered type becomes one interface whose
// methods are the required members of a concrete implementation.
type InterfaceGenerator struct {
	graph *graph.PropertyGraph
}

// NewInterfaceGenerator creates an interface generator for the graph.
func NewInterfaceGenerator(g *graph.PropertyGraph) *InterfaceGenerator {
	return &InterfaceGenerator{graph: g}
}

// Render renders the interface declaration for one spec. Member methods are
// named after the member's type and return the member's own interface;
// container interfaces expose a single slice accessor for their items.
func (ig *InterfaceGenerator) Render(spec graph.InterfaceSpec) (string, error) {
	node, ok := ig.graph.Property(spec.TypeName)
	if !ok {
		return "", errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrUnknownType, spec.TypeName),
			"InterfaceGenerator", "Render", "resolve type")
	}

	var b strings.Builder
	name := interfaceName(spec.TypeName)
	fmt.Fprintf(&b, "// %s declares the required members of a %s implementation.\n",
		name, node.Naming.Docstring)
	fmt.Fprintf(&b, "type %s interface {\n", name)

	if node.Container && node.Item != nil {
		itemNode, ok := ig.graph.Property(node.Item.QualifiedName())
		itemDoc := naming.Docstring(node.Item.ClassName)
		plural := naming.Pluralize(strings.ToLower(node.Item.ClassName))
		if ok {
			itemDoc = itemNode.Naming.Docstring
			plural = itemNode.Naming.Plural
		}
		fmt.Fprintf(&b, "\t// %s returns all contained %s of the %s instance.\n",
			naming.TypeName(plural), itemDoc, node.Naming.Docstring)
		fmt.Fprintf(&b, "\t%s() []%s\n", naming.TypeName(plural), interfaceName(node.Item.ClassName))
	} else {
		for _, member := range spec.RequiredMembers {
			fmt.Fprintf(&b, "\t// %s returns the %s of the %s instance.\n",
				naming.TypeName(member), naming.Docstring(member), node.Naming.Docstring)
			fmt.Fprintf(&b, "\t%s() %s\n", naming.TypeName(member), interfaceName(naming.TypeName(member)))
		}
	}

	b.WriteString("}\n")
	return b.String(), nil
}

// RenderAll renders every interface of the graph in type name order.
func (ig *InterfaceGenerator) RenderAll() (string, error) {
	specs := ig.graph.AbstractClasses()
	rendered := make([]string, 0, len(specs))
	for _, spec := range specs {
		decl, err := ig.Render(spec)
		if err != nil {
			return "", err
		}
		rendered = append(rendered, decl)
	}
	return strings.Join(rendered, "\n"), nil
}

// CheckImplementation verifies that the provided member names satisfy the
// spec. The returned error names every missing member, not just the first.
func CheckImplementation(spec graph.InterfaceSpec, provided []string) error {
	have := make(map[string]bool, len(provided))
	for _, member := range provided {
		have[member] = true
	}

	var missing []string
	for _, member := range spec.RequiredMembers {
		if !have[member] {
			missing = append(missing, member)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return errors.WrapInvalid(
		fmt.Errorf("%w: type %s is missing members: %s",
			errors.ErrUnboundReference, spec.TypeName, strings.Join(missing, ", ")),
		"InterfaceGenerator", "CheckImplementation", "verify required members")
}

// interfaceName derives the interface identifier for a type name, using the
// bare class for qualified names.
func interfaceName(typeName string) string {
	if idx := strings.LastIndex(typeName, "."); idx >= 0 {
		typeName = typeName[idx+1:]
	}
	return "I" + typeName
}
