package utils

import "math/rand"

// RandomInt32 rand int32 in [min, max) drawn from r
func RandomInt32(r *rand.Rand, min, max int32) int32 {
	if max <= min {
		return min
	}
	return min + r.Int31n(max-min)
}

// RandomPoint rand coordinates in [0, width) x [0, height)
func RandomPoint(r *rand.Rand, width, height int32) (x, y int32) {
	return RandomInt32(r, 0, width), RandomInt32(r, 0, height)
}
