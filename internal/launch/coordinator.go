package launch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/monoserve/monoserve/internal/logging"
	"github.com/monoserve/monoserve/internal/registry"
)

// DefaultPollInterval is how often the coordinator re-checks the child
// and the registry while waiting for a launch to resolve.
const DefaultPollInterval = 500 * time.Millisecond

// Coordinator runs launch attempts against a registry store.
type Coordinator struct {
	store        *registry.Store
	exe          string
	pollInterval time.Duration
	logger       *logging.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithPollInterval overrides the poll interval. Intervals below 1ms are
// ignored.
func WithPollInterval(d time.Duration) Option {
	return func(c *Coordinator) {
		if d >= time.Millisecond {
			c.pollInterval = d
		}
	}
}

// New creates a Coordinator that spawns exe when no instance can be
// reused. The logger may be nil.
func New(store *registry.Store, exe string, logger *logging.Logger, opts ...Option) *Coordinator {
	if logger == nil {
		logger = logging.NopLogger()
	}
	c := &Coordinator{
		store:        store,
		exe:          exe,
		pollInterval: DefaultPollInterval,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start resolves a launch request to exactly one terminal Result.
//
// It probes the registry for an instance whose cache key matches the
// current working directory and args, and reuses it without spawning
// anything. Otherwise it spawns the server with stdout/stderr redirected
// to fresh temp files and waits until the child registers itself
// (Launched), exits (Failed), or the deadline passes (TimedOut). The
// returned error covers only the coordinator's own hard failures (registry
// directory unusable, temp files, spawn, context cancellation); a failing
// or silent child is a Result, not an error.
//
// Start blocks the calling goroutine for at most timeout plus one poll
// interval. It never kills the child.
func (c *Coordinator) Start(ctx context.Context, args []string, timeout time.Duration) (*Result, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	key := registry.CacheKey(cwd, args)

	// Probe: an existing instance with the same cache key is
	// interchangeable with the one we would launch.
	infos, err := c.store.ReadAll()
	if err != nil {
		return nil, err
	}
	if match := registry.FindMatching(infos, key); match != nil {
		c.logger.Info("reusing instance",
			"pid", match.PID,
			"port", match.Port,
		)
		return &Result{Outcome: OutcomeReused, Info: match, PID: match.PID}, nil
	}

	return c.spawnAndAwait(ctx, args, timeout)
}

// spawnAndAwait starts the server process and polls until it registers,
// exits, or the deadline passes.
func (c *Coordinator) spawnAndAwait(ctx context.Context, args []string, timeout time.Duration) (*Result, error) {
	stdoutFile, err := os.CreateTemp("", "monoserve-stdout-*.log")
	if err != nil {
		return nil, fmt.Errorf("create stdout capture file: %w", err)
	}
	stderrFile, err := os.CreateTemp("", "monoserve-stderr-*.log")
	if err != nil {
		stdoutFile.Close()
		return nil, fmt.Errorf("create stderr capture file: %w", err)
	}
	stdoutPath := stdoutFile.Name()
	stderrPath := stderrFile.Name()

	startTime := time.Now()

	cmd := exec.Command(c.exe, args...)
	cmd.Stdout = stdoutFile
	cmd.Stderr = stderrFile
	if err := cmd.Start(); err != nil {
		stdoutFile.Close()
		stderrFile.Close()
		return nil, fmt.Errorf("start %s: %w", c.exe, err)
	}
	// The child holds its own handles to the capture files now.
	stdoutFile.Close()
	stderrFile.Close()

	pid := cmd.Process.Pid
	c.logger.Info("spawned server process",
		"exe", c.exe,
		"pid", pid,
	)

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	// A registry-directory watch wakes us as soon as the child writes
	// its descriptor; the ticker below remains the correctness backstop,
	// so a watch failure just degrades to pure polling.
	var events chan fsnotify.Event
	if dir, err := c.store.Dir(); err == nil {
		if watcher, werr := fsnotify.NewWatcher(); werr == nil {
			if werr := watcher.Add(dir); werr == nil {
				events = make(chan fsnotify.Event)
				go forwardWrites(watcher, events)
				defer watcher.Close()
			} else {
				watcher.Close()
				c.logger.Debug("registry watch unavailable", "error", werr.Error())
			}
		}
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case <-waitCh:
			return c.failedResult(cmd, stdoutPath, stderrPath), nil

		case <-ticker.C:
			if d := c.findRegistered(pid, startTime); d != nil {
				return &Result{
					Outcome:    OutcomeLaunched,
					Info:       d,
					PID:        pid,
					StdoutPath: stdoutPath,
					StderrPath: stderrPath,
				}, nil
			}

		case <-events:
			if d := c.findRegistered(pid, startTime); d != nil {
				return &Result{
					Outcome:    OutcomeLaunched,
					Info:       d,
					PID:        pid,
					StdoutPath: stdoutPath,
					StderrPath: stderrPath,
				}, nil
			}

		case <-deadline.C:
			c.logger.Warn("launch deadline passed",
				"pid", pid,
				"timeout", timeout.String(),
			)
			return &Result{
				Outcome:    OutcomeTimedOut,
				PID:        pid,
				StdoutPath: stdoutPath,
				StderrPath: stderrPath,
			}, nil

		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// findRegistered scans the registry for a descriptor written by the
// spawned child. The start-time guard rejects a stale leftover descriptor
// from a previous process that happened to have the same pid.
func (c *Coordinator) findRegistered(pid int, startTime time.Time) *registry.Descriptor {
	infos, err := c.store.ReadAll()
	if err != nil {
		c.logger.Warn("registry scan failed during launch", "error", err.Error())
		return nil
	}
	for _, d := range infos {
		if d.PID == pid && d.StartTime >= startTime.Unix() {
			return d
		}
	}
	return nil
}

// failedResult reads back the captured output of an exited child.
func (c *Coordinator) failedResult(cmd *exec.Cmd, stdoutPath, stderrPath string) *Result {
	code := exitStatus(cmd)
	stdout := readBack(stdoutPath)
	stderr := readBack(stderrPath)
	c.logger.Warn("server process exited before registering",
		"pid", cmd.Process.Pid,
		"exit_code", code,
	)
	return &Result{
		Outcome:    OutcomeFailed,
		PID:        cmd.Process.Pid,
		ExitCode:   code,
		Stdout:     stdout,
		Stderr:     stderr,
		StdoutPath: stdoutPath,
		StderrPath: stderrPath,
	}
}

// readBack returns the contents of a capture file, best effort.
func readBack(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// forwardWrites relays descriptor-affecting filesystem events until the
// watcher is closed. The receiver only treats an event as a hint to
// re-scan, so dropped or coalesced events are harmless.
func forwardWrites(watcher *fsnotify.Watcher, out chan<- fsnotify.Event) {
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			select {
			case out <- ev:
			default:
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
