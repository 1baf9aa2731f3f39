package fx

import "github.com/gogpu/fx/internal/fxmath"

// TextureBlit samples one texture, or a smoothstep blend of two, and
// applies the compositor's per-surface adjustments.
//
// Processing order for each fragment:
//  1. base color: Tex(uv), or mix(Tex(uv), Tex2(uv), smoothstep(0,1,MixFactor))
//     when Tex2 is set
//  2. DiscardOpaque: discard when base alpha times Alpha is exactly 1
//  3. DiscardAlpha: discard when base alpha <= DiscardAlphaValue
//  4. ApplyTint: multiply RGB by Tint
//  5. rounded mask when Rect.Radius > 0
//  6. multiply all four channels by Alpha
//
// Tex is required; a blit without it discards every fragment.
type TextureBlit struct {
	Tex  Sampler
	Tex2 Sampler

	MixFactor float64
	Alpha     float64

	DiscardOpaque     bool
	DiscardAlpha      bool
	DiscardAlphaValue float64

	ApplyTint bool
	Tint      [3]float64

	Rect Rect
}

// Shade implements FragmentShader.
func (b TextureBlit) Shade(in FragmentInput) Fragment {
	if b.Tex == nil {
		return discarded
	}
	c := b.Tex.Sample(in.TexCoord.X, in.TexCoord.Y)
	if b.Tex2 != nil {
		c2 := b.Tex2.Sample(in.TexCoord.X, in.TexCoord.Y)
		c = c.Mix(c2, fxmath.Smoothstep(0, 1, b.MixFactor))
	}

	if b.DiscardOpaque && c.A*b.Alpha == 1.0 {
		return discarded
	}
	if b.DiscardAlpha && c.A <= b.DiscardAlphaValue {
		return discarded
	}

	if b.ApplyTint {
		c.R *= b.Tint[0]
		c.G *= b.Tint[1]
		c.B *= b.Tint[2]
	}

	c, ok := applyRounding(c, in.Coord, b.Rect)
	if !ok {
		return discarded
	}
	return Fragment{Color: c.Scale(b.Alpha)}
}
