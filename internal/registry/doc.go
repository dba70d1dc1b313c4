// Package registry implements the shared, filesystem-backed registry of
// running server instances.
//
// Every instance that is ready to serve publishes a descriptor file named
// after its pid into a well-known directory under the system temp root.
// Other invocations scan that directory to discover instances they can
// reuse instead of launching their own. There is no locking: the registry
// is advisory, every read must tolerate concurrent writers, and a
// descriptor can outlive its process after an unclean shutdown.
//
// Consistency is best-effort and self-healing. A descriptor that fails to
// parse is logged and skipped; it never aborts a scan. Only the owning
// process writes or removes its own descriptor file.
package registry
