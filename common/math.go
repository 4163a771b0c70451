package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed update rate the game loop runs at.
	TPS = 60
)

// FrameDelta is the simulated seconds per update tick.
const FrameDelta = 1.0 / TPS

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
