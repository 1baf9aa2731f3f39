package fx

import "github.com/gogpu/fx/internal/fxmath"

// BorderStencil draws a gradient ring of Thickness pixels around a rounded
// rectangle.
//
// Rect is the ring's bounding box, the surrounded window grown by
// Thickness on every side. Its Radius is the corner radius the inner edge
// is measured from: the inner edge fades in Thickness inside it.
// RadiusOuter is the corner radius of the outer edge; it usually equals
// Rect.Radius. FullSizeUntransformed is the quad size before any monitor
// transform and drives the straight-edge test.
type BorderStencil struct {
	Rect                  Rect
	FullSizeUntransformed Point
	RadiusOuter           float64
	Thickness             float64
	Gradients             GradientConfig
	Alpha                 float64
}

// Coverage returns how much of the ring covers the fragment, and whether
// the fragment is outside the ring altogether.
//
// Inside a rounded corner the inner edge fades in and the outer edge fades
// out over the smoothing band. Elsewhere, fragments farther than Thickness
// from every straight edge of the quad are discarded.
func (s BorderStencil) Coverage(in FragmentInput) (coverage float64, discard bool) {
	r := s.Rect
	p := in.Coord.Sub(r.Center()).Abs()
	bias := Pt(1/r.FullSize.X, 1/r.FullSize.Y)
	half := r.FullSize.Mul(0.5)

	inner := p.Sub(half.Sub(Pt(r.Radius, r.Radius))).Add(bias)
	outer := p.Sub(half.Sub(Pt(s.RadiusOuter, s.RadiusOuter))).Add(bias)

	coverage = 1
	done := false

	if inner.Min() > 0 && r.Radius > 0 {
		const sc = SmoothingConstant
		dist := inner.Length()
		distOuter := outer.Length()
		h := s.Thickness / 2

		switch {
		case dist < r.Radius-h:
			coverage *= fxmath.Smoothstep(0, 1, (dist-r.Radius+s.Thickness+sc)/(sc*2))
			done = true
		case outer.Min() > 0:
			coverage *= 1 - fxmath.Smoothstep(0, 1, (distOuter-s.RadiusOuter+sc)/(sc*2))
			done = true
		case distOuter < s.RadiusOuter-h:
			coverage = 1
			done = true
		}
	}

	if !done {
		orig := in.TexCoord.MulPt(s.FullSizeUntransformed)
		far := s.FullSizeUntransformed.Sub(orig)
		smallest := min(orig.Min(), far.Min())
		if smallest > s.Thickness {
			return 0, true
		}
	}

	if coverage == 0 {
		return 0, true
	}
	return coverage, false
}

// Shade implements FragmentShader. The gradient is evaluated at the
// fragment's texture coordinate and the result is premultiplied.
func (s BorderStencil) Shade(in FragmentInput) Fragment {
	coverage, discard := s.Coverage(in)
	if discard {
		return discarded
	}

	c := s.Gradients.At(in.TexCoord)
	c.R *= c.A
	c.G *= c.A
	c.B *= c.A
	return Fragment{Color: c.Scale(s.Alpha * coverage)}
}
