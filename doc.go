// Package fx implements the per-pixel effects of a compositor's renderer.
//
// # Overview
//
// Every effect is a pure function of a fragment's position and a parameter
// set, the same contract as a GPU fragment program. The Go versions serve
// as a software renderer and as the reference the GPU programs in package
// gpu are checked against.
//
// Effects:
//   - RoundedMask: antialiased coverage of a rounded rectangle
//   - SolidQuad: a flat color, optionally rounded
//   - TextureBlit: one texture or a blend of two, with tint and discard rules
//   - BorderStencil: a ring filled with one or two gradients blended in OkLab
//
// The multi-pass blur lives in package blur.
//
// # Quick Start
//
//	import "github.com/gogpu/fx"
//
//	dst := fx.NewPixmap(512, 512)
//	r := fx.NewRasterizer()
//	defer r.Close()
//
//	box := fx.Box{X: 64, Y: 64, W: 384, H: 384}
//	quad := fx.SolidQuad{Color: fx.RGB(0.2, 0.4, 0.8), Rect: box.Rect(24)}
//	_ = r.Draw(dst, box, quad)
//	_ = dst.SavePNG("quad.png")
//
// # Coordinate System
//
//   - Origin (0,0) at top-left of the destination
//   - X increases right
//   - Y increases down
//   - Fragment coordinates are pixel centers (x+0.5, y+0.5)
//   - Texture coordinates run 0..1 across the drawn box
//   - Angles in radians
//
// # Colors
//
// Renderers emit premultiplied RGBA. Gradient stops are OkLabA with
// straight alpha and are converted to gamma-encoded sRGB per fragment.
package fx

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
