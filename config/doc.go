// Package config loads declarative YAML model documents: the leaves of a
// domain model, the equations composed over them, and the requested output
// format. BuildTerms turns a validated document into equation terms ready
// for graph evaluation.
package config
