// Package graph owns the property registry of one modeling session. A
// PropertyGraph hands out term constructors, registers the properties and
// module groupings discovered while evaluating equations, and serves the
// ordered query surface (Properties, Modules, BuiltinTypes, AbstractClasses)
// that renderers consume.
package graph
