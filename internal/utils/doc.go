// Package utils provides shared low-level helpers used throughout the
// yunchat internals. It covers HTTP request helpers for synchronous and
// streaming (SSE) communication with chat provider APIs, generic pointer and
// string utilities, JSON parsing with automatic repair, and a simple
// elapsed-time timer.
//
// Key entry points: [DoPostSync] and [DoGet] for synchronous JSON
// round-trips, [DoPostStream] together with [SSEScanner] for Server-Sent
// Events streaming, [ParseStringAs] for lenient JSON parsing, and [Ptr] for
// converting values to pointers.
package utils
