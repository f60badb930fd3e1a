package generator

import (
	"strings"

	"github.com/c360/domainequations/graph"
)

// RenderRecords renders the registry of a graph as newline-separated JSON
// records, one property per line, in type name order.
func RenderRecords(g *graph.PropertyGraph) string {
	nodes := g.Properties()
	lines := make([]string, len(nodes))
	for i, node := range nodes {
		lines[i] = node.String()
	}
	return strings.Join(lines, "\n")
}
