package common

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func Sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// MoveToward steps v toward target by at most step.
func MoveToward(v, target, step int) int {
	if v < target {
		return min(v+step, target)
	}
	if v > target {
		return max(v-step, target)
	}
	return v
}
