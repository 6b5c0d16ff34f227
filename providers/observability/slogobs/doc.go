// Package slogobs implements observability.Observer on top of the standard
// library's log/slog. It maps observer levels onto slog levels, introducing
// a Trace level below slog.LevelDebug for high-frequency streaming events.
package slogobs
