package systems

import "github.com/pthm-cable/evosim/genome"

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	return clampFloat(v, 0, 1)
}

func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// Uniform draws a value in [lo, hi) from rng.
func Uniform(rng genome.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
