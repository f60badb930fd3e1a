package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360/domainequations/errors"
	"github.com/c360/domainequations/graph"
	"github.com/c360/domainequations/naming"
)

// Scalars lists every proto2 scalar type name. Builtin leaves using one of
// these names map directly onto the corresponding wire type.
var Scalars = []string{
	"bool", "bytes", "double",
	"fixed32", "fixed64", "float",
	"int32", "int64",
	"sfixed32", "sfixed64", "sint32", "sint64",
	"string", "uint32", "uint64",
}

// IsScalar reports whether name is a proto2 scalar type name.
func IsScalar(name string) bool {
	for _, s := range Scalars {
		if s == name {
			return true
		}
	}
	return false
}

// ProtobufGenerator renders the registered types of a property graph as
// proto2 message definitions, one file per module.
//
// Types whose only reference is a builtin scalar are value types: they never
// become messages of their own and are inlined as scalar fields wherever
// another type refers to them.
type ProtobufGenerator struct {
	graph *graph.PropertyGraph
}

// NewProtobufGenerator creates a protobuf generator for the graph.
func NewProtobufGenerator(g *graph.PropertyGraph) *ProtobufGenerator {
	return &ProtobufGenerator{graph: g}
}

// RenderModule renders the proto2 file content for one module grouping.
func (pg *ProtobufGenerator) RenderModule(m graph.Module) (string, error) {
	lines := []string{`syntax = "proto2";`}
	if m.Name != "" {
		lines = append(lines, fmt.Sprintf("package %s;", m.Name))
	}

	for _, sub := range pg.subModules(m) {
		lines = append(lines, fmt.Sprintf("import %q;", sub+".proto"))
	}

	for _, td := range m.Types {
		node, ok := pg.graph.Property(td.QualifiedName())
		if !ok {
			return "", errors.WrapInvalid(
				fmt.Errorf("%w: %s", errors.ErrUnknownType, td.QualifiedName()),
				"ProtobufGenerator", "RenderModule", "resolve module type")
		}
		if _, value := pg.scalarValue(node); value {
			continue
		}

		message, err := pg.renderMessage(m, td, node)
		if err != nil {
			return "", err
		}
		lines = append(lines, message...)
	}

	return strings.Join(lines, "\n"), nil
}

// RenderAll renders every module of the graph, keyed by proto file name. The
// implicit default module renders as "model.proto".
func (pg *ProtobufGenerator) RenderAll() (map[string]string, error) {
	files := make(map[string]string)
	for _, m := range pg.graph.Modules() {
		content, err := pg.RenderModule(m)
		if err != nil {
			return nil, err
		}
		name := m.Name
		if name == "" {
			name = "model"
		}
		files[name+".proto"] = content
	}
	return files, nil
}

// renderMessage renders one message declaration.
func (pg *ProtobufGenerator) renderMessage(
	m graph.Module, td naming.TypeDescriptor, node graph.PropertyNode) ([]string, error) {
	lines := []string{fmt.Sprintf("message %s {", td.ClassName)}

	if node.Container {
		if node.Item == nil {
			return nil, errors.WrapInvalid(
				fmt.Errorf("%w: container %s has no item type", errors.ErrUnboundReference, td.ClassName),
				"ProtobufGenerator", "renderMessage", "resolve container item")
		}
		itemNode, ok := pg.graph.Property(node.Item.QualifiedName())
		if !ok {
			return nil, errors.WrapInvalid(
				fmt.Errorf("%w: container item %s", errors.ErrUnboundReference, node.Item.QualifiedName()),
				"ProtobufGenerator", "renderMessage", "resolve container item")
		}
		fieldType := pg.fieldType(m, *node.Item, itemNode)
		lines = append(lines, fmt.Sprintf("    repeated %s %s = 1;", fieldType, itemNode.Naming.Plural))
		lines = append(lines, "}")
		return lines, nil
	}

	num := 0
	for _, sub := range node.Properties {
		// Direct builtin references carry no value naming and produce no field.
		if pg.graph.IsBuiltin(sub.QualifiedName()) {
			continue
		}
		subNode, ok := pg.graph.Property(sub.QualifiedName())
		if !ok {
			return nil, errors.WrapInvalid(
				fmt.Errorf("%w: %s referenced by %s", errors.ErrUnboundReference,
					sub.QualifiedName(), td.ClassName),
				"ProtobufGenerator", "renderMessage", "resolve field type")
		}
		num++
		lines = append(lines, fmt.Sprintf("    required %s %s = %d;",
			pg.fieldType(m, sub, subNode), subNode.Naming.ValueName, num))
	}

	lines = append(lines, "}")
	return lines, nil
}

// fieldType resolves the wire type of one field: value types inline their
// scalar, same-module references use the bare class name, and cross-module
// references stay qualified.
func (pg *ProtobufGenerator) fieldType(m graph.Module, td naming.TypeDescriptor, node graph.PropertyNode) string {
	if scalar, value := pg.scalarValue(node); value {
		return scalar
	}
	if td.ModuleName == "" || td.ModuleName == m.Name {
		return td.ClassName
	}
	return td.QualifiedName()
}

// scalarValue returns the scalar type of a value type, if the node is one.
func (pg *ProtobufGenerator) scalarValue(node graph.PropertyNode) (string, bool) {
	for _, td := range node.Properties {
		if pg.graph.IsBuiltin(td.QualifiedName()) {
			return td.ClassName, true
		}
	}
	return "", false
}

// subModules collects the foreign modules referenced by this module's
// message fields, sorted by name.
func (pg *ProtobufGenerator) subModules(m graph.Module) []string {
	seen := make(map[string]bool)
	for _, td := range m.Types {
		node, ok := pg.graph.Property(td.QualifiedName())
		if !ok {
			continue
		}
		for _, sub := range node.Properties {
			if sub.ModuleName != "" && sub.ModuleName != m.Name {
				seen[sub.ModuleName] = true
			}
		}
		if node.Container && node.Item != nil &&
			node.Item.ModuleName != "" && node.Item.ModuleName != m.Name {
			seen[node.Item.ModuleName] = true
		}
	}

	subs := make([]string, 0, len(seen))
	for name := range seen {
		subs = append(subs, name)
	}
	sort.Strings(subs)
	return subs
}
