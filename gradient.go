package fx

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	fxcolor "github.com/gogpu/fx/internal/color"
	"github.com/gogpu/fx/internal/fxmath"
)

// MaxGradientStops is the number of stops a gradient can carry. Stops past
// this index are ignored.
const MaxGradientStops = 10

// OkLabA is a color in the OkLab perceptual space with straight alpha.
type OkLabA struct {
	L, A, B, Alpha float64
}

// OkLabFromRGBA converts a straight-alpha sRGB color to OkLabA.
func OkLabFromRGBA(c RGBA) OkLabA {
	l, a, b := colorful.Color{R: c.R, G: c.G, B: c.B}.OkLab()
	return OkLabA{L: l, A: a, B: b, Alpha: c.A}
}

// Add returns the component-wise sum.
func (c OkLabA) Add(o OkLabA) OkLabA {
	return OkLabA{L: c.L + o.L, A: c.A + o.A, B: c.B + o.B, Alpha: c.Alpha + o.Alpha}
}

// Scale multiplies every component, alpha included, by s.
func (c OkLabA) Scale(s float64) OkLabA {
	return OkLabA{L: c.L * s, A: c.A * s, B: c.B * s, Alpha: c.Alpha * s}
}

// Mix interpolates linearly in OkLab: c*(1-t) + o*t.
func (c OkLabA) Mix(o OkLabA, t float64) OkLabA {
	return OkLabA{
		L:     fxmath.Mix(c.L, o.L, t),
		A:     fxmath.Mix(c.A, o.A, t),
		B:     fxmath.Mix(c.B, o.B, t),
		Alpha: fxmath.Mix(c.Alpha, o.Alpha, t),
	}
}

// SRGB converts to gamma-encoded sRGB, keeping alpha. Out-of-gamut
// channels are not clamped.
func (c OkLabA) SRGB() RGBA {
	r, g, b := fxcolor.OkLabToSRGB(c.L, c.A, c.B)
	return RGBA{R: r, G: g, B: b, A: c.Alpha}
}

// Gradient is a set of evenly spaced OkLabA stops swept across a quad at
// Angle radians.
type Gradient struct {
	Stops []OkLabA
	Angle float64
}

// Len returns the number of stops that take part in evaluation.
func (g Gradient) Len() int {
	return min(len(g.Stops), MaxGradientStops)
}

// stop returns stop i, or the zero color outside the honored range.
func (g Gradient) stop(i int) OkLabA {
	if i < 0 || i >= g.Len() {
		return OkLabA{}
	}
	return g.Stops[i]
}

// At evaluates the gradient at a quad-normalized coordinate (0..1 on both
// axes). Gradients with fewer than two stops are flat.
func (g Gradient) At(coord Point) OkLabA {
	return g.at(coord, g.Angle)
}

// at evaluates the gradient choosing the quadrant from g.Angle but taking
// the remapped angle of the lower-left and lower-right quadrants from
// coupled. For a primary gradient coupled is g.Angle.
func (g Gradient) at(coord Point, coupled float64) OkLabA {
	n := g.Len()
	if n < 2 {
		return g.stop(0)
	}

	var angle float64
	switch {
	case g.Angle > 4.71: // 270 deg
		coord.Y = 1 - coord.Y
		angle = 6.28 - coupled
	case g.Angle > 3.14: // 180 deg
		coord.X = 1 - coord.X
		coord.Y = 1 - coord.Y
		angle = coupled - 3.14
	case g.Angle > 1.57: // 90 deg
		coord.X = 1 - coord.X
		angle = 3.14 - g.Angle
	default:
		angle = g.Angle
	}

	sine := math.Sin(angle)
	progress := (coord.Y*sine + coord.X*(1-sine)) * float64(n-1)
	bottom := int(math.Floor(progress))
	top := bottom + 1

	return g.stop(top).Scale(progress - float64(bottom)).
		Add(g.stop(bottom).Scale(float64(top) - progress))
}

// GradientConfig pairs a primary gradient with an optional secondary one
// and the blend factor between them.
type GradientConfig struct {
	Primary   Gradient
	Secondary Gradient
	// Lerp is the weight of Secondary, 0..1.
	Lerp float64
}

// SingleGradient returns a config that uses g alone.
func SingleGradient(g Gradient) GradientConfig {
	return GradientConfig{Primary: g}
}

// At returns the straight-alpha sRGB color at a quad-normalized
// coordinate. With an empty secondary the primary is used alone; otherwise
// the two are blended in OkLab before conversion.
//
// The secondary gradient picks its quadrant from its own angle but, in the
// two quadrants past 180 degrees, remaps the primary's angle.
func (gc GradientConfig) At(coord Point) RGBA {
	r1 := gc.Primary.At(coord)
	if len(gc.Secondary.Stops) <= 0 {
		return r1.SRGB()
	}
	r2 := gc.Secondary.at(coord, gc.Primary.Angle)
	return r1.Mix(r2, gc.Lerp).SRGB()
}
