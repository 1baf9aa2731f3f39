package color

import "math"

// RGBToHSL converts an RGB triple to hue, saturation and lightness, all in
// [0,1] for in-gamut input.
//
// When several channels tie for the maximum, the hue sector is picked by
// requiring the next channel (r→g, g→b, b→r) to differ from the maximum.
// Exactly one sector qualifies whenever delta > 0.
func RGBToHSL(r, g, b float64) (h, s, l float64) {
	minc := math.Min(r, math.Min(g, b))
	maxc := math.Max(r, math.Max(g, b))
	delta := maxc - minc

	l = (minc + maxc) * 0.5

	if l > 0 && l < 1 {
		mul := l
		if l >= 0.5 {
			mul = 1 - l
		}
		s = delta / (mul * 2)
	}

	if delta > 0 {
		switch {
		case maxc == r && maxc != g:
			h = (g - b) / delta
		case maxc == g && maxc != b:
			h = 2 + (b-r)/delta
		case maxc == b && maxc != r:
			h = 4 + (r-g)/delta
		}
		h /= 6
		if h < 0 {
			h++
		}
	}

	return h, s, l
}

// HSLToRGB converts hue, saturation and lightness back to RGB.
// The hue is expanded piecewise into a clamped chroma triple, which is then
// scaled towards white or black depending on which half of the lightness
// range l falls in.
func HSLToRGB(h, s, l float64) (r, g, b float64) {
	const (
		oneThird = 1.0 / 3.0
		twoThird = 2.0 / 3.0
		rcpSixth = 6.0
	)

	var xr, xg, xb float64
	switch {
	case h < oneThird:
		xr = rcpSixth * (oneThird - h)
		xg = rcpSixth * h
	case h < twoThird:
		xg = rcpSixth * (twoThird - h)
		xb = rcpSixth * (h - oneThird)
	default:
		xr = rcpSixth * (h - twoThird)
		xb = rcpSixth * (1 - h)
	}

	xr = math.Min(xr, 1)
	xg = math.Min(xg, 1)
	xb = math.Min(xb, 1)

	sat2 := 2 * s
	satInv := 1 - s
	lumInv := 1 - l
	lum2m1 := 2*l - 1

	cr := sat2*xr + satInv
	cg := sat2*xg + satInv
	cb := sat2*xb + satInv

	if l >= 0.5 {
		return lumInv*cr + lum2m1, lumInv*cg + lum2m1, lumInv*cb + lum2m1
	}
	return l * cr, l * cg, l * cb
}
