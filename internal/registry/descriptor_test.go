package registry

import (
	"bytes"
	"strings"
	"testing"
)

func sampleDescriptor() *Descriptor {
	return &Descriptor{
		CacheKey:   "b3BhcXVl",
		DB:         "",
		LogDir:     "/data/runs",
		PathPrefix: "",
		PID:        12345,
		Port:       6006,
		StartTime:  1700000000,
		Version:    "0.3.0",
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := sampleDescriptor()

	data, err := EncodeDescriptor(original)
	if err != nil {
		t.Fatalf("EncodeDescriptor failed: %v", err)
	}

	decoded, err := DecodeDescriptor(data)
	if err != nil {
		t.Fatalf("DecodeDescriptor failed: %v", err)
	}
	if *decoded != *original {
		t.Errorf("round trip mismatch:\n got: %+v\nwant: %+v", decoded, original)
	}
}

func TestEncodeCanonicalForm(t *testing.T) {
	d := sampleDescriptor()

	first, err := EncodeDescriptor(d)
	if err != nil {
		t.Fatalf("EncodeDescriptor failed: %v", err)
	}
	second, err := EncodeDescriptor(d)
	if err != nil {
		t.Fatalf("EncodeDescriptor failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("encoding is not deterministic")
	}

	text := string(first)
	if !strings.HasSuffix(text, "\n") {
		t.Error("encoding must end with a trailing newline")
	}

	// Keys must appear in sorted order.
	keys := []string{"cache_key", "db", "logdir", "path_prefix", "pid", "port", "start_time", "version"}
	last := -1
	for _, key := range keys {
		idx := strings.Index(text, `"`+key+`"`)
		if idx < 0 {
			t.Fatalf("key %q missing from encoding:\n%s", key, text)
		}
		if idx < last {
			t.Errorf("key %q out of sorted order in encoding:\n%s", key, text)
		}
		last = idx
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	payload := `{
    "cache_key": "k",
    "db": "",
    "logdir": "",
    "path_prefix": "",
    "pid": 1,
    "port": 2,
    "start_time": 3,
    "version": "v",
    "surprise": true
}`
	if _, err := DecodeDescriptor([]byte(payload)); err == nil {
		t.Error("expected unknown-field payload to be rejected")
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not JSON", "not json at all"},
		{"wrong type for pid", `{"cache_key":"k","db":"","logdir":"","path_prefix":"","pid":"one","port":2,"start_time":3,"version":"v"}`},
		{"missing version", `{"cache_key":"k","db":"","logdir":"","path_prefix":"","pid":1,"port":2,"start_time":3}`},
		{"missing cache_key", `{"db":"","logdir":"","path_prefix":"","pid":1,"port":2,"start_time":3,"version":"v"}`},
		{"zero pid", `{"cache_key":"k","db":"","logdir":"","path_prefix":"","pid":0,"port":2,"start_time":3,"version":"v"}`},
		{"zero port", `{"cache_key":"k","db":"","logdir":"","path_prefix":"","pid":1,"port":0,"start_time":3,"version":"v"}`},
		{"zero start_time", `{"cache_key":"k","db":"","logdir":"","path_prefix":"","pid":1,"port":2,"start_time":0,"version":"v"}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeDescriptor([]byte(tt.payload)); err == nil {
				t.Errorf("expected decode error for %s", tt.name)
			}
		})
	}
}

func TestDecodeAllowsEmptyOptionalFields(t *testing.T) {
	payload := `{"cache_key":"k","db":"","logdir":"","path_prefix":"","pid":1,"port":2,"start_time":3,"version":"v"}`
	d, err := DecodeDescriptor([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeDescriptor failed: %v", err)
	}
	if d.PathPrefix != "" || d.LogDir != "" || d.DB != "" {
		t.Errorf("optional fields should be empty, got %+v", d)
	}
}
