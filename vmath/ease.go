package vmath

// Easing curves over fixed-point progress t in [0, Scale].
// Input is clamped; output stays in [0, Scale].

// EaseLinear is the identity curve
func EaseLinear(t int64) int64 {
	return Clamp01(t)
}

// EaseSmoothStep is the classic 3t^2 - 2t^3 hermite curve
func EaseSmoothStep(t int64) int64 {
	t = Clamp01(t)
	t2 := Mul(t, t)
	t3 := Mul(t2, t)
	return 3*t2 - 2*t3
}

// EaseOutCubic decelerates toward the end: 1 - (1-t)^3
func EaseOutCubic(t int64) int64 {
	t = Clamp01(t)
	inv := Scale - t
	return Scale - Mul(Mul(inv, inv), inv)
}

// EaseInCubic accelerates from rest: t^3
func EaseInCubic(t int64) int64 {
	t = Clamp01(t)
	return Mul(Mul(t, t), t)
}
