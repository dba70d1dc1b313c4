// Package logging provides structured logging for monoserve.
//
// It wraps Go's log/slog to produce JSON-formatted logs, either to stderr
// or to a file, with child-logger helpers that attach persistent context
// (component, pid) to every entry. Registry scans log soft failures here
// so that a corrupt descriptor is visible without aborting anything.
//
// Use [NopLogger] in tests to discard output.
package logging
