package launch

import (
	"os/exec"
	"syscall"
)

// exitStatus maps a reaped child's wait status to the exit-code
// convention callers branch on: the process's exit code, or the negated
// signal number when the child was terminated by a signal.
func exitStatus(cmd *exec.Cmd) int {
	ps := cmd.ProcessState
	if ps == nil {
		return -1
	}
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return -int(ws.Signal())
	}
	return ps.ExitCode()
}
