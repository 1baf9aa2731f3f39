package color

import "math"

// gammaExponent is 1/2.4 truncated the way the border program spells it.
const gammaExponent = 0.416666666

// LinearToGamma applies the sRGB opto-electronic transfer function:
// x >= 0.0031308 ? 1.055*x^(1/2.4) - 0.055 : 12.92*x.
//
// Negative inputs take the linear branch, so out-of-gamut OkLab values
// produce small negative channels instead of NaN.
func LinearToGamma(x float64) float64 {
	if x >= 0.0031308 {
		return 1.055*math.Pow(x, gammaExponent) - 0.055
	}
	return 12.92 * x
}

// U8ToF32 converts ColorU8 to ColorF32.
// Each uint8 component [0,255] is mapped to float32 [0,1].
func U8ToF32(c ColorU8) ColorF32 {
	return ColorF32{
		R: float32(c.R) / 255.0,
		G: float32(c.G) / 255.0,
		B: float32(c.B) / 255.0,
		A: float32(c.A) / 255.0,
	}
}

// F32ToU8 converts ColorF32 to ColorU8, clamping to [0,1] and rounding.
func F32ToU8(c ColorF32) ColorU8 {
	return ColorU8{
		R: clampAndRound(c.R),
		G: clampAndRound(c.G),
		B: clampAndRound(c.B),
		A: clampAndRound(c.A),
	}
}

func clampAndRound(v float32) uint8 {
	if v <= 0 || v != v { // NaN stores as 0
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255.0 + 0.5)
}
