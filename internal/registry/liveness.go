package registry

import (
	"os"
	"syscall"
)

// IsProcessAlive reports whether a process with the given pid is still
// running. On Unix, signal 0 checks existence without affecting the
// process.
func IsProcessAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
