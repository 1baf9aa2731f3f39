package color

import "math"

// OkLabToLinear converts an OkLab triple to linear sRGB.
// The LMS cone responses are recovered by cubing three weighted sums of
// (L, a, b); a fixed 3x3 matrix then maps LMS to linear RGB.
func OkLabToLinear(l, a, b float64) (r, g, bl float64) {
	lc := math.Pow(l+a*0.3963377774+b*0.2158037573, 3)
	mc := math.Pow(l+a*(-0.1055613458)+b*(-0.0638541728), 3)
	sc := math.Pow(l+a*(-0.0894841775)+b*(-1.2914855480), 3)

	r = lc*4.0767416621 + mc*-3.3077115913 + sc*0.2309699292
	g = lc*(-1.2684380046) + mc*2.6097574011 + sc*(-0.3413193965)
	bl = lc*(-0.0041960863) + mc*(-0.7034186147) + sc*1.7076147010
	return r, g, bl
}

// OkLabToSRGB converts an OkLab triple to gamma-encoded sRGB.
// Channels are not clamped.
func OkLabToSRGB(l, a, b float64) (r, g, bl float64) {
	r, g, bl = OkLabToLinear(l, a, b)
	return LinearToGamma(r), LinearToGamma(g), LinearToGamma(bl)
}
