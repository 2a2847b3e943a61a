// Package driving provides interfaces for the user-facing adapters
// (primary/inbound ports).
package driving
