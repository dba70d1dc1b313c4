package registry

// FindMatching returns the canonical reusable descriptor for the given
// cache key, or nil when no descriptor matches.
//
// When several instances share the cache key, the one with the lowest
// port wins. That tie-break is deterministic but arbitrary: it is not a
// liveness check, and the chosen descriptor may reference a process that
// has since died uncleanly. Callers that care can consult IsProcessAlive,
// but reuse selection itself is keyed on the cache key alone.
func FindMatching(infos []*Descriptor, cacheKey string) *Descriptor {
	var best *Descriptor
	for _, d := range infos {
		if d.CacheKey != cacheKey {
			continue
		}
		if best == nil || d.Port < best.Port {
			best = d
		}
	}
	return best
}
