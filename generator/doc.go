// Package generator renders the registered types of a property graph into
// concrete artifacts: JSON registry records, Go interface declarations, and
// proto2 message definitions grouped by module.
package generator
