package registry

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestCacheKeyDeterministic(t *testing.T) {
	args := []string{"--logdir", "/data/runs", "--port", "6006"}

	first := CacheKey("/home/me/project", args)
	second := CacheKey("/home/me/project", args)
	if first != second {
		t.Errorf("repeated calls disagree: %q vs %q", first, second)
	}
}

func TestCacheKeySensitivity(t *testing.T) {
	base := CacheKey("/home/me/project", []string{"--logdir", "/data/runs"})

	tests := []struct {
		name string
		cwd  string
		args []string
	}{
		{"different working directory", "/home/me/other", []string{"--logdir", "/data/runs"}},
		{"reordered arguments", "/home/me/project", []string{"/data/runs", "--logdir"}},
		{"different argument", "/home/me/project", []string{"--logdir", "/data/other"}},
		{"extra argument", "/home/me/project", []string{"--logdir", "/data/runs", "--debug"}},
		{"shifted argument boundary", "/home/me/project", []string{"--logdir /data/runs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CacheKey(tt.cwd, tt.args); got == base {
				t.Errorf("expected a different key for %s", tt.name)
			}
		})
	}
}

func TestCacheKeyIsTextSafe(t *testing.T) {
	key := CacheKey("/home/me/project", []string{"--logdir", "/data/runs"})

	payload, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		t.Fatalf("cache key is not valid base64: %v", err)
	}
	if !strings.Contains(string(payload), `"working_directory":"/home/me/project"`) {
		t.Errorf("decoded key does not carry the working directory: %s", payload)
	}
	if !strings.Contains(string(payload), `"arguments":["--logdir","/data/runs"]`) {
		t.Errorf("decoded key does not carry the arguments: %s", payload)
	}
}

func TestCacheKeyNilEqualsEmpty(t *testing.T) {
	if CacheKey("/d", nil) != CacheKey("/d", []string{}) {
		t.Error("nil and empty argument lists should produce the same key")
	}
}
