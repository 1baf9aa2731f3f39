package fx

// SolidQuad fills a quad with a single color, optionally rounded.
//
// Color is emitted as given; callers pass premultiplied colors when they
// composite with the default blend mode.
type SolidQuad struct {
	Color RGBA
	Rect  Rect
}

// Shade implements FragmentShader.
func (q SolidQuad) Shade(in FragmentInput) Fragment {
	c, ok := applyRounding(q.Color, in.Coord, q.Rect)
	if !ok {
		return discarded
	}
	return Fragment{Color: c}
}
