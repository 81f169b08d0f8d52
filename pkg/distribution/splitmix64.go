package distribution

// splitMix64 is a fixed, non-cryptographic pseudorandom function seeded by
// the evaluation moment x, used only by the Random curve to turn a moment
// into a deterministic value in [min, max].
func splitMix64(seed uint64) uint64 {
	z := seed + 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return z
}
