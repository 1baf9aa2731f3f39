// Package fxmath provides the scalar helpers the effect kernels are written
// in terms of. Each function matches the GLSL builtin or helper of the same
// name bit-for-bit in float64, so kernels ported from shading code keep their
// exact ordering of operations.
package fxmath

import "math"

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// Smoothstep is the GLSL smoothstep: Hermite interpolation between edge0 and
// edge1, 0 below edge0 and 1 above edge1.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Mix linearly interpolates between a and b: a*(1-t) + b*t.
func Mix(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Fract returns x - floor(x).
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// Mod is the GLSL mod: x - y*floor(x/y). Unlike math.Mod the result takes
// the sign of y.
func Mod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

// Gain folds x around 0.5, raises the folded distance to k and unfolds it.
// k > 1 pushes values towards the extremes, k < 1 towards mid-grey.
func Gain(x, k float64) float64 {
	folded := x
	if x >= 0.5 {
		folded = 1 - x
	}
	a := 0.5 * math.Pow(2*folded, k)
	if x < 0.5 {
		return a
	}
	return 1 - a
}

// DoubleCircleSigmoid is the double-circle seat/sigmoid shaping function
// (Golan Levin's "shapers"). a is clamped to [0, 1].
func DoubleCircleSigmoid(x, a float64) float64 {
	a = Clamp(a, 0, 1)
	if x <= a {
		return a - math.Sqrt(a*a-x*x)
	}
	return a + math.Sqrt(math.Pow(1-a, 2)-math.Pow(x-1, 2))
}

// Hash is the classic fract(sin(dot(p, k)) * 43758.5453) screen-space hash.
// The result is in [0, 1).
func Hash(x, y float64) float64 {
	return Fract(math.Sin(x*12.9898+y*78.233) * 43758.5453)
}
