package graph

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/c360/domainequations/naming"
)

// PropertyNode is one registry record: a named property and the ordered set
// of type names it references.
type PropertyNode struct {
	Naming     naming.Naming
	Properties []naming.TypeDescriptor

	// Container marks a relation property; Item is the contained type.
	Container bool
	Item      *naming.TypeDescriptor
}

// recordNaming is the serialized naming shape consumed by renderers.
type recordNaming struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Plural    string `json:"plural"`
	Docstring string `json:"docstring"`
}

// record is the serialized property shape; properties is omitted when empty.
type record struct {
	Naming     recordNaming `json:"naming"`
	Properties []string     `json:"properties,omitempty"`
}

// MarshalJSON serializes the node in the renderer record shape.
func (n PropertyNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(record{
		Naming: recordNaming{
			Type:      n.Naming.TypeName(),
			Value:     n.Naming.ValueName,
			Plural:    n.Naming.Plural,
			Docstring: n.Naming.Docstring,
		},
		Properties: n.propertyNames(),
	})
}

// String renders the node as its registry record.
func (n PropertyNode) String() string {
	if len(n.Properties) == 0 {
		return fmt.Sprintf("{\"naming\": %s}", n.Naming)
	}
	quoted := make([]string, len(n.Properties))
	for i, p := range n.Properties {
		quoted[i] = fmt.Sprintf("%q", p.QualifiedName())
	}
	return fmt.Sprintf("{\"naming\": %s, \"properties\": [%s]}", n.Naming, strings.Join(quoted, ", "))
}

func (n PropertyNode) propertyNames() []string {
	if len(n.Properties) == 0 {
		return nil
	}
	names := make([]string, len(n.Properties))
	for i, p := range n.Properties {
		names[i] = p.QualifiedName()
	}
	return names
}

// Module groups the generated types declared in one named module. The
// implicit default module has the empty name.
type Module struct {
	Name  string
	Types []naming.TypeDescriptor
}

// String renders the module grouping.
func (m Module) String() string {
	quoted := make([]string, len(m.Types))
	for i, td := range m.Types {
		quoted[i] = fmt.Sprintf("%q", td.QualifiedName())
	}
	return fmt.Sprintf("{\"module\": %q, \"types\": [%s]}", m.Name, strings.Join(quoted, ", "))
}

// InterfaceSpec describes one abstract type at the renderer boundary: the
// generated type name and the value names a concrete implementation must
// supply. Rendering it into an actual declaration is the renderer's concern.
type InterfaceSpec struct {
	TypeName        string
	RequiredMembers []string
}
