package fx

import (
	"image"
	"math"
)

// Rect is the rounding geometry of a draw: the rectangle whose corners are
// rounded, in the same coordinate space as fragment coordinates.
//
// Radius is expected to be at most min(FullSize.X, FullSize.Y)/2. Larger
// values are not an error; the corner circles then overlap and the mask
// degrades towards a hard edge.
type Rect struct {
	TopLeft  Point
	FullSize Point
	Radius   float64
}

// Center returns the center of the rectangle.
func (r Rect) Center() Point {
	return r.TopLeft.Add(r.FullSize.Mul(0.5))
}

// Box is an axis-aligned draw region in pixels.
type Box struct {
	X, Y, W, H float64
}

// Empty reports whether the box covers no area.
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Rect returns the rounding geometry matching the box.
func (b Box) Rect(radius float64) Rect {
	return Rect{TopLeft: Pt(b.X, b.Y), FullSize: Pt(b.W, b.H), Radius: radius}
}

// Expand grows the box by d on every side.
func (b Box) Expand(d float64) Box {
	return Box{X: b.X - d, Y: b.Y - d, W: b.W + 2*d, H: b.H + 2*d}
}

// Pixels returns the pixels whose centers fall inside the box, clipped to
// bounds.
func (b Box) Pixels(bounds image.Rectangle) image.Rectangle {
	r := image.Rect(
		int(math.Floor(b.X+0.5)),
		int(math.Floor(b.Y+0.5)),
		int(math.Floor(b.X+b.W+0.5)),
		int(math.Floor(b.Y+b.H+0.5)),
	)
	return r.Intersect(bounds)
}
