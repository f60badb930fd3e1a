// Package domainequations models a domain as algebraic equations over named
// properties and generates code-level artifacts from the result.
//
// # Philosophy: Describe the Domain, Derive the Code
//
// A domain model is written as equations built from a small term algebra:
//
//   - Leaf terms name the properties of the domain ("speed", "distance")
//   - Product expresses need: speed * (distance + duration) means a speed
//     is computed from a distance and a duration
//   - Sum collects independent requirements
//   - I is the neutral identity term, O the terminal closing marker
//
// Evaluating equations against a property graph turns the algebra into a
// registry of named types with their required members, from which renderers
// produce JSON records, Go interface declarations, or proto2 messages.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│          Equations                  │  Terms, normalization,
//	│  (equation: Sum, Product, I, O)     │  canonical comparison
//	└─────────────────────────────────────┘
//	           ↓ evaluated into
//	┌─────────────────────────────────────┐
//	│        Property Graph               │  Naming derivation,
//	│  (graph: registry, modules)         │  collision detection
//	└─────────────────────────────────────┘
//	           ↓ rendered by
//	┌─────────────────────────────────────┐
//	│         Generators                  │  records, interfaces,
//	│  (generator: records/Go/proto2)     │  proto files per module
//	└─────────────────────────────────────┘
//
// # Packages
//
// Core:
//   - equation: immutable terms, algebraic construction, normalization
//   - naming: value, type, plural and docstring name derivation
//   - graph: the property registry populated during evaluation
//   - generator: record, interface and protobuf renderers
//
// Infrastructure:
//   - config: declarative YAML model documents
//   - metric: Prometheus metrics
//   - errors: structured error handling
//
// # Usage
//
//	g := graph.New()
//	speed, _ := g.C("speed")
//	distance, _ := g.C("distance")
//	duration, _ := g.C("duration")
//
//	needs, _ := equation.Sum(distance, duration)
//	term, _ := equation.Product(speed, needs)
//	if err := g.Evaluate(term); err != nil {
//		// a naming collision leaves the graph unmodified
//	}
//
//	for _, node := range g.Properties() {
//		fmt.Println(node)
//	}
//
// Equivalent formulations of the same model always register the same
// properties: normalization reduces every term to a canonical sum of
// connection components, so parenthesization and ordering never matter.
//
// # Binary
//
// The domeq tool evaluates a YAML model document and writes the requested
// artifacts:
//
//	# Print registry records
//	domeq --config model.yaml
//
//	# Generate proto2 files into a directory
//	domeq --config model.yaml --format proto --out ./gen
package domainequations
