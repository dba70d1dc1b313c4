// Package version holds the software version stamped into published
// instance descriptors.
package version

// Version is the monoserve release version. Overridable at build time:
//
//	go build -ldflags "-X github.com/monoserve/monoserve/internal/version.Version=1.2.3"
var Version = "0.3.0"
