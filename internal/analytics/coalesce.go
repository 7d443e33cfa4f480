// Package analytics is the interaction analytics aggregation engine: pure
// functions that transform interaction collections, plus optional
// pre-aggregated rows from the upstream store, into the derived metrics
// served by the API layer. Nothing in this package performs I/O or holds
// state between calls, so every function is safe to invoke concurrently
// over independent snapshots.
package analytics

import "math"

// coalesce returns the externally supplied value when present, falling
// back to the locally computed one. Summary fields merge with source
// precedence one field at a time, never wholesale.
func coalesce[T any](external *T, local T) T {
	if external != nil {
		return *external
	}
	return local
}

// ratePct returns 100*num/den bounded to [0, 100]. A zero denominator is
// defined as 0, never NaN or Inf.
func ratePct(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return clamp(100*float64(num)/float64(den), 0, 100)
}

// finite coerces NaN and infinities to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	v = finite(v)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
