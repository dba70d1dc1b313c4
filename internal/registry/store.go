package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/monoserve/monoserve/internal/logging"
)

// DirName is the registry directory created under the system temp root.
const DirName = ".monoserve-info"

// infoFilePattern names descriptor files by owning pid.
const infoFilePattern = "pid-%d.info"

// DefaultDir returns the registry directory shared by every process on
// the host.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), DirName)
}

// Store reads and writes descriptor files in a registry directory.
// Each process writes and removes only its own pid-keyed file, so
// cross-process write conflicts cannot occur; reads tolerate concurrent
// writers by skipping entries that fail to parse.
type Store struct {
	dir    string
	logger *logging.Logger
}

// NewStore returns a Store on the host-wide default registry directory.
func NewStore(logger *logging.Logger) *Store {
	return NewStoreAt(DefaultDir(), logger)
}

// NewStoreAt returns a Store rooted at dir. Used by tests and by
// deployments that override the registry location in config.
func NewStoreAt(dir string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the registry directory, creating it if absent. Creation is
// idempotent: a race with another process creating the same directory is
// not an error.
func (s *Store) Dir() (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create registry directory: %w", err)
	}
	return s.dir, nil
}

// infoFilePath returns the descriptor file path for the given pid.
func (s *Store) infoFilePath(pid int) string {
	return filepath.Join(s.dir, fmt.Sprintf(infoFilePattern, pid))
}

// Write publishes d to the registry, overwriting any prior file for
// d.PID. Called by the owning instance itself once it is ready to serve.
func (s *Store) Write(d *Descriptor) error {
	if _, err := s.Dir(); err != nil {
		return err
	}
	data, err := EncodeDescriptor(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.infoFilePath(d.PID), data, 0o644); err != nil {
		return fmt.Errorf("write descriptor file: %w", err)
	}
	s.logger.Debug("descriptor published",
		"pid", d.PID,
		"port", d.Port,
	)
	return nil
}

// Remove deletes the current process's descriptor file if present.
// A missing file is not an error: the user may have wiped the temp
// directory, which leaves the registry in exactly the state Remove wants.
// Any other filesystem error propagates.
func (s *Store) Remove() error {
	path := s.infoFilePath(os.Getpid())
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove descriptor file: %w", err)
	}
	s.logger.Debug("descriptor retracted", "pid", os.Getpid())
	return nil
}

// ReadAll parses every descriptor file in the registry. The result may be
// an imperfect snapshot: incomplete if the temp directory was cleaned
// while instances run, or containing stale entries for instances that
// exited uncleanly. A file that fails to parse is logged as a warning and
// skipped; it never aborts the scan.
func (s *Store) ReadAll() ([]*Descriptor, error) {
	dir, err := s.Dir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read registry directory: %w", err)
	}

	var results []*Descriptor
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("unreadable info file",
				"path", path,
				"error", err.Error(),
			)
			continue
		}
		d, err := DecodeDescriptor(data)
		if err != nil {
			s.logger.Warn("invalid info file",
				"path", path,
				"error", err.Error(),
			)
			continue
		}
		results = append(results, d)
	}
	return results, nil
}
