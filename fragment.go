package fx

// FragmentInput is what a fragment program receives for one pixel.
type FragmentInput struct {
	// Coord is the window-space position of the pixel center
	// (gl_FragCoord.xy).
	Coord Point

	// TexCoord is the interpolated texture coordinate, 0..1 across the quad.
	TexCoord Point
}

// Fragment is the result of shading one pixel: a color, or a discard.
type Fragment struct {
	Color   RGBA
	Discard bool
}

// FragmentShader evaluates an effect for a single pixel.
//
// Implementations must be pure: the rasterizer calls Shade concurrently
// from several goroutines.
type FragmentShader interface {
	Shade(in FragmentInput) Fragment
}

// ShaderFunc adapts a function to the FragmentShader interface.
type ShaderFunc func(in FragmentInput) Fragment

// Shade calls f(in).
func (f ShaderFunc) Shade(in FragmentInput) Fragment {
	return f(in)
}

var discarded = Fragment{Discard: true}
