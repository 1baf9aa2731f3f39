package blur

import (
	"math"

	"github.com/gogpu/fx"
	fxcolor "github.com/gogpu/fx/internal/color"
	"github.com/gogpu/fx/internal/fxmath"
)

// Perceived-brightness weights (HSP color model).
const (
	weightR = 0.299
	weightG = 0.587
	weightB = 0.114
)

// Vibrancy boost shape. boostAngle weighs brightness against saturation,
// boostOffset moves the boost threshold and boostSmoothness widens the
// transition from unboosted to boosted colors.
const (
	boostAngle      = 0.93
	boostOffset     = 0.11
	boostSmoothness = 0.66
)

// Pass holds the parameters of one downsample or upsample pass.
type Pass struct {
	// HalfPixel is half a texel of the pass's target in texture
	// coordinates of its source.
	HalfPixel fx.Point
	// Radius scales the tap offsets.
	Radius float64
	// Passes is the total number of down passes; it divides the vibrancy
	// boost so the total boost does not depend on the pass count.
	Passes int

	Vibrancy         float64
	VibrancyDarkness float64
}

// Prepare conditions a source pixel before blurring. When contrast is not
// 1 each color channel goes through the gain curve with exponent contrast;
// when brightness is above 1 the color channels are scaled by it.
// Alpha is untouched.
func Prepare(c fx.RGBA, contrast, brightness float64) fx.RGBA {
	if contrast != 1 {
		c.R = fxmath.Gain(c.R, contrast)
		c.G = fxmath.Gain(c.G, contrast)
		c.B = fxmath.Gain(c.B, contrast)
	}
	if brightness > 1 {
		c.R *= brightness
		c.G *= brightness
		c.B *= brightness
	}
	return c
}

// Downsample is one dual-Kawase down pass. uv is the fragment's texture
// coordinate in its framebuffer, which is twice the size of the region the
// pass renders into: src is sampled at 2*uv, weighted four times, plus four
// diagonal taps HalfPixel*Radius away, and the sum is divided by 8.
// The result then goes through Vibrancy.
func Downsample(src fx.Sampler, uv fx.Point, p Pass) fx.RGBA {
	uv = uv.Mul(2)
	d := p.HalfPixel.Mul(p.Radius)
	dx := fx.Pt(p.HalfPixel.X, -p.HalfPixel.Y).Mul(p.Radius)

	sum := sample(src, uv).Scale(4)
	sum = sum.Add(sample(src, uv.Sub(d)))
	sum = sum.Add(sample(src, uv.Add(d)))
	sum = sum.Add(sample(src, uv.Add(dx)))
	sum = sum.Add(sample(src, uv.Sub(dx)))

	return Vibrancy(sum.Scale(1.0/8), p)
}

// Upsample is one dual-Kawase up pass. src is sampled around uv/2 at four
// axis taps 2*HalfPixel*Radius away with weight 1 and four diagonal taps
// HalfPixel*Radius away with weight 2, and the sum is divided by 12.
func Upsample(src fx.Sampler, uv fx.Point, p Pass) fx.RGBA {
	uv = uv.Mul(0.5)
	hx := p.HalfPixel.X * p.Radius
	hy := p.HalfPixel.Y * p.Radius

	sum := sample(src, uv.Add(fx.Pt(-2*hx, 0)))
	sum = sum.Add(sample(src, uv.Add(fx.Pt(-hx, hy))).Scale(2))
	sum = sum.Add(sample(src, uv.Add(fx.Pt(0, 2*hy))))
	sum = sum.Add(sample(src, uv.Add(fx.Pt(hx, hy))).Scale(2))
	sum = sum.Add(sample(src, uv.Add(fx.Pt(2*hx, 0))))
	sum = sum.Add(sample(src, uv.Add(fx.Pt(hx, -hy))).Scale(2))
	sum = sum.Add(sample(src, uv.Add(fx.Pt(0, -2*hy))))
	sum = sum.Add(sample(src, uv.Add(fx.Pt(-hx, -hy))).Scale(2))

	return sum.Scale(1.0 / 12)
}

func sample(s fx.Sampler, uv fx.Point) fx.RGBA {
	return s.Sample(uv.X, uv.Y)
}

// Vibrancy boosts the saturation of c. Colors that are already saturated
// and bright gain the most; dark colors are held back in proportion to
// VibrancyDarkness. A Vibrancy of exactly 0 returns c unchanged. Alpha is
// always preserved.
func Vibrancy(c fx.RGBA, p Pass) fx.RGBA {
	if p.Vibrancy == 0 {
		return c
	}

	darkness := 1 - p.VibrancyDarkness
	h, s, l := fxcolor.RGBToHSL(c.R, c.G, c.B)

	perceived := fxmath.DoubleCircleSigmoid(
		math.Sqrt(c.R*c.R*weightR+c.G*c.G*weightG+c.B*c.B*weightB),
		0.8*darkness,
	)

	var boost float64
	if s > 0 {
		b1 := boostOffset * darkness
		x := 1 - (math.Pow(1-s*math.Cos(boostAngle), 2) + math.Pow(1-perceived*math.Sin(boostAngle), 2))
		boost = fxmath.Smoothstep(b1-boostSmoothness*0.5, b1+boostSmoothness*0.5, x)
	}

	s = fxmath.Clamp(s+boost*p.Vibrancy/float64(max(p.Passes, 1)), 0, 1)
	r, g, b := fxcolor.HSLToRGB(h, s, l)
	return fx.RGBA{R: r, G: g, B: b, A: c.A}
}

// FinishParams holds the parameters of the final blur pass.
type FinishParams struct {
	// Noise is the amplitude of the per-pixel grain added to RGB.
	Noise float64
	// Brightness dims RGB when below 1; values >= 1 are applied by Prepare.
	Brightness float64
	// BoostAlpha multiplies alpha.
	BoostAlpha float64
	// Colorize, when set, replaces RGB with its RGB times alpha. Its alpha
	// is ignored.
	Colorize *fx.RGBA
}

// Finish applies grain, dimming, alpha boost and colorize to a blurred
// pixel. uv seeds the grain hash, so the pattern is fixed in texture space.
func Finish(c fx.RGBA, uv fx.Point, p FinishParams) fx.RGBA {
	amount := fxmath.Mod(fxmath.Hash(uv.X, uv.Y), 1) - 0.5
	c.R += amount * p.Noise
	c.G += amount * p.Noise
	c.B += amount * p.Noise

	if p.Brightness < 1 {
		c.R *= p.Brightness
		c.G *= p.Brightness
		c.B *= p.Brightness
	}

	c.A *= p.BoostAlpha

	if p.Colorize != nil {
		t := p.Colorize
		return fx.RGBA{R: t.R * c.A, G: t.G * c.A, B: t.B * c.A, A: c.A}
	}
	return c
}
