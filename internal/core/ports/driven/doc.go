// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). The core services depend on these
// abstractions, never on concrete adapters.
package driven
