// Package observability defines the logging abstraction shared by every
// component that talks to a provider API. An [Observer] travels through
// context.Context so transports, stores, and helpers can emit structured
// events without holding a logger of their own; when no observer is
// attached, emission is skipped entirely.
//
// Attribute names are centralised in semconv.go so the same key is used
// for the same concept everywhere. The slogobs subpackage provides the
// standard implementation backed by log/slog.
package observability
