// Package launch coordinates starting a server process against the
// instance registry.
//
// A launch attempt first probes the registry for an instance with the
// same cache key and reuses it when found. Otherwise it spawns the server
// with its output redirected to temp files and waits, on a fixed poll
// interval, for one of three things: the child registers itself, the
// child exits, or the deadline passes. The four mutually exclusive
// outcomes are modeled as a tagged Result rather than nested error
// handling, because a fast-failing or silent child is an outcome for the
// caller to interpret, not a coordinator error.
package launch
