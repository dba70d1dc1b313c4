package registry

import (
	"encoding/base64"
	"encoding/json"
)

// cacheKeyDatum is the composite record the cache key is derived from.
// Fields are declared in key order so the compact JSON encoding is
// canonical: field order can never affect the resulting key.
type cacheKeyDatum struct {
	Arguments        []string `json:"arguments"`
	WorkingDirectory string   `json:"working_directory"`
}

// CacheKey computes the opaque fingerprint of a launch configuration.
//
// workingDir is the directory the server is launched from, relative to
// which paths in args are resolved. args is the server's argv tail as
// separate entries; it must never be produced by splitting a shell string,
// since argument order and boundaries are semantically significant.
//
// The key is the standard base64 encoding of the canonical compact JSON
// of the two inputs, so it is stable across calls, order-sensitive in the
// arguments, and safe to embed in any text format. Pure function, no I/O.
func CacheKey(workingDir string, args []string) string {
	if args == nil {
		args = []string{}
	}
	datum := cacheKeyDatum{
		Arguments:        args,
		WorkingDirectory: workingDir,
	}
	// Marshaling a struct of strings cannot fail.
	payload, _ := json.Marshal(datum)
	return base64.StdEncoding.EncodeToString(payload)
}
