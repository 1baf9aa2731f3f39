// Package color implements the colour-space arithmetic used by the effect
// kernels: the sRGB transfer curves, OkLab to display conversion for
// gradients, and the HSL round trip used by the blur vibrancy boost.
//
// Everything here operates on float64 components so the kernels can be
// checked against reference values without float32 rounding noise. The
// float32/uint8 types exist for pixel storage.
package color

// ColorF32 represents a color with float32 components, nominally in [0,1].
// Intermediate effect images may carry values slightly outside that range.
type ColorF32 struct {
	R, G, B, A float32
}

// ColorU8 represents a color with uint8 components in [0,255].
type ColorU8 struct {
	R, G, B, A uint8
}
