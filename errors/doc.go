// Package errors provides the structured error type shared by every vidscribe
// component. Each failure carries a machine-readable code, a human-readable
// message, optional details and the underlying cause, so callers can classify
// a pipeline failure without parsing strings.
package errors
