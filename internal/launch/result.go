package launch

import "github.com/monoserve/monoserve/internal/registry"

// Outcome identifies the terminal state of a launch attempt.
type Outcome int

const (
	// OutcomeReused means an existing instance matched the cache key and
	// no process was spawned.
	OutcomeReused Outcome = iota
	// OutcomeLaunched means a new instance was spawned and registered
	// itself within the deadline.
	OutcomeLaunched
	// OutcomeFailed means the spawned process exited before registering.
	OutcomeFailed
	// OutcomeTimedOut means the spawned process neither registered nor
	// exited before the deadline. The child may still be running; the
	// coordinator does not kill it.
	OutcomeTimedOut
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeReused:
		return "reused"
	case OutcomeLaunched:
		return "launched"
	case OutcomeFailed:
		return "failed"
	case OutcomeTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Result is the terminal state of a launch attempt. Exactly one outcome
// is set; which other fields are meaningful depends on it.
type Result struct {
	Outcome Outcome

	// Info is the descriptor of the reused or newly registered instance
	// (Reused, Launched).
	Info *registry.Descriptor

	// PID is the spawned child's process id (Launched, Failed, TimedOut).
	// For Reused it is the registered instance's pid.
	PID int

	// ExitCode is the child's exit status (Failed). A negative value
	// means the child was terminated by a signal.
	ExitCode int

	// Stdout and Stderr hold the child's captured output in full (Failed).
	Stdout string
	Stderr string

	// StdoutPath and StderrPath are the capture files, which are left on
	// disk for post-mortem inspection (all spawning outcomes).
	StdoutPath string
	StderrPath string
}
