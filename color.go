package fx

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/fx/internal/fxmath"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Components are nominally in [0, 1]. Whether RGB is premultiplied depends
// on where the value came from: renderer outputs are premultiplied, textures
// and uniform inputs are whatever the caller stored.
type RGBA struct {
	R, G, B, A float64
}

// FromColor converts a standard color.Color to straight-alpha RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return RGBA{
		R: float64(n.R) / 65535,
		G: float64(n.G) / 65535,
		B: float64(n.B) / 65535,
		A: float64(n.A) / 65535,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// RGBA2 creates a color from RGBA components.
func RGBA2(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// ParseHex parses "#rgb" or "#rrggbb", optionally followed by a two-digit
// alpha ("#rrggbbaa").
func ParseHex(s string) (RGBA, error) {
	alpha := 1.0
	if len(s) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return RGBA{}, fmt.Errorf("fx: parse alpha of %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGBA{}, fmt.Errorf("fx: parse color %q: %w", s, err)
	}
	return RGBA{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// Premultiply returns the color with RGB scaled by alpha.
func (c RGBA) Premultiply() RGBA {
	return RGBA{
		R: c.R * c.A,
		G: c.G * c.A,
		B: c.B * c.A,
		A: c.A,
	}
}

// Scale multiplies all four components by s.
func (c RGBA) Scale(s float64) RGBA {
	return RGBA{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A * s}
}

// Add returns the component-wise sum.
func (c RGBA) Add(o RGBA) RGBA {
	return RGBA{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B, A: c.A + o.A}
}

// Mix performs linear interpolation between two colors:
// c*(1-t) + other*t.
func (c RGBA) Mix(other RGBA, t float64) RGBA {
	return RGBA{
		R: fxmath.Mix(c.R, other.R, t),
		G: fxmath.Mix(c.G, other.G, t),
		B: fxmath.Mix(c.B, other.B, t),
		A: fxmath.Mix(c.A, other.A, t),
	}
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA2(0, 0, 0, 0)
)
