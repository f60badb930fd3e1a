// Package metric defines the Prometheus instrumentation for equation
// evaluation and property registration.
package metric
