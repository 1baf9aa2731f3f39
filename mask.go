package fx

import (
	"math"

	"github.com/gogpu/fx/internal/fxmath"
)

// SmoothingConstant is the half-width of the antialiasing band around a
// rounded corner, in the same units as the corner radius. Larger values
// give blurrier, smoother edges.
const SmoothingConstant = math.Pi / 5.34665792551

// cornerCoord mirrors coord into the bottom-right quadrant of the rect and
// returns it relative to the center of that corner's circle, biased by one
// texel over the full size so samples sit on pixel centers.
func cornerCoord(coord, topLeft, fullSize Point, radius float64) Point {
	p := coord.Sub(topLeft.Add(fullSize.Mul(0.5))).Abs()
	p = p.Sub(fullSize.Mul(0.5).Sub(Pt(radius, radius)))
	return p.Add(Pt(1/fullSize.X, 1/fullSize.Y))
}

// RoundedMask returns the coverage of coord by the rounded rectangle r, and
// whether the fragment lies entirely outside the rounded corner.
//
// Fragments away from the corners are never tested against the circle.
// Inside a corner, the transition band spans 2*SmoothingConstant on either
// side of the radius; the falloff inside it is a smoothstep centered
// SmoothingConstant outside the nominal edge.
//
// RoundedMask does not special-case r.Radius <= 0; callers skip the mask
// for unrounded draws.
func RoundedMask(coord Point, r Rect) (coverage float64, discard bool) {
	p := cornerCoord(coord, r.TopLeft, r.FullSize, r.Radius)

	if p.X+p.Y <= r.Radius {
		return 1, false
	}

	dist := p.Length()
	if dist > r.Radius+SmoothingConstant*2 {
		return 0, true
	}
	if dist > r.Radius-SmoothingConstant*2 {
		return 1 - fxmath.Smoothstep(0, 1, (dist-r.Radius+SmoothingConstant)/(SmoothingConstant*2)), false
	}
	return 1, false
}

// applyRounding multiplies c by the rounded-mask coverage of coord when the
// rect is rounded. ok is false when the fragment must be discarded.
func applyRounding(c RGBA, coord Point, r Rect) (out RGBA, ok bool) {
	if r.Radius <= 0 {
		return c, true
	}
	coverage, discard := RoundedMask(coord, r)
	if discard {
		return RGBA{}, false
	}
	if coverage != 1 {
		c = c.Scale(coverage)
	}
	return c, true
}
