package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Descriptor describes one running server instance. It is written by the
// owning instance once it is ready to serve, and removed by the same
// instance on clean shutdown.
//
// Fields are declared in key order so the canonical encoding below emits
// keys sorted, matching the on-disk descriptor format.
type Descriptor struct {
	// CacheKey fingerprints the launch configuration. Two instances with
	// equal cache keys are interchangeable. See CacheKey.
	CacheKey string `json:"cache_key"`
	// DB is the database path the server was pointed at, if any.
	DB string `json:"db"`
	// LogDir is the log/data directory the server was pointed at, if any.
	LogDir string `json:"logdir"`
	// PathPrefix is the URL path prefix the server serves under, if any.
	PathPrefix string `json:"path_prefix"`
	// PID is the instance's process id. Descriptor files are keyed by it.
	PID int `json:"pid"`
	// Port is the TCP port the instance is serving on.
	Port int `json:"port"`
	// StartTime is seconds since epoch, UTC, at the moment the instance
	// became ready. Used only as a freshness tie-breaker during launch
	// detection, never for reuse selection.
	StartTime int64 `json:"start_time"`
	// Version is the software version of the instance.
	Version string `json:"version"`
}

// EncodeDescriptor renders d in the canonical descriptor file format:
// key-sorted JSON, four-space indent, trailing newline. The encoding is
// deterministic so identical descriptors are byte-identical on disk.
func EncodeDescriptor(d *Descriptor) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode descriptor: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeDescriptor parses the canonical descriptor format strictly.
// Unknown fields, malformed JSON, and missing required fields all fail
// with an error; a Descriptor is never partially populated.
func DecodeDescriptor(data []byte) (*Descriptor, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var d Descriptor
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode descriptor: %w", err)
	}
	if err := d.validate(); err != nil {
		return nil, fmt.Errorf("decode descriptor: %w", err)
	}
	return &d, nil
}

// validate checks the fields that must be present in every descriptor.
// PathPrefix, LogDir, and DB may legitimately be empty.
func (d *Descriptor) validate() error {
	switch {
	case d.Version == "":
		return fmt.Errorf("missing version")
	case d.StartTime <= 0:
		return fmt.Errorf("missing or invalid start_time: %d", d.StartTime)
	case d.PID <= 0:
		return fmt.Errorf("missing or invalid pid: %d", d.PID)
	case d.Port <= 0:
		return fmt.Errorf("missing or invalid port: %d", d.Port)
	case d.CacheKey == "":
		return fmt.Errorf("missing cache_key")
	}
	return nil
}
