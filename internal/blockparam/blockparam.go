// Package blockparam computes the adaptive Golomb parameter m from a
// block's residual statistics.
package blockparam

import "math"

// Compute returns the Golomb parameter m that minimizes expected code length
// for residuals distributed like these, per Golomb's 1966 result for
// geometric sources. The caller is responsible for any additional clamping
// required by a specific container's header width (see internal/audiocodec
// and internal/imagecodec).
func Compute(residuals []int32) uint32 {
	meanAbs := 1.0
	if len(residuals) > 0 {
		var sum float64
		for _, r := range residuals {
			if r < 0 {
				sum += float64(-r)
			} else {
				sum += float64(r)
			}
		}
		meanAbs = sum / float64(len(residuals))
	}
	alpha := meanAbs / (meanAbs + 1)
	if alpha <= 0 || alpha >= 1 {
		return 1
	}
	m := math.Ceil(-1 / math.Log2(alpha))
	if m < 1 {
		m = 1
	}
	return uint32(m)
}

// Clamp restricts m to [lo, hi], used where a container's header field can't
// represent the full range Compute may return.
func Clamp(m uint32, lo, hi uint32) uint32 {
	if m < lo {
		return lo
	}
	if m > hi {
		return hi
	}
	return m
}
