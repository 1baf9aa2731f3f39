package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/blur"
)

// Uniform block sizes in bytes. Each matches the size of the WGSL Uniforms
// struct of the program, rounded up to its 16-byte alignment.
const (
	QuadUniformSize       = 96
	TexUniformSize        = 112
	BlurUniformSize       = 80
	BlurFinishUniformSize = 80
	BorderUniformSize     = 432
)

// QuadVertexCount is the number of vertices QuadVertices emits.
const QuadVertexCount = 6

// vertexStride is position (vec2<f32>) followed by tex_coord (vec2<f32>).
const vertexStride = 16

// uniformSize returns the uniform block size of p.
func uniformSize(p Program) uint64 {
	switch p {
	case ProgramQuad:
		return QuadUniformSize
	case ProgramTex, ProgramTexMix:
		return TexUniformSize
	case ProgramBlurPrepare, ProgramBlurDown, ProgramBlurUp:
		return BlurUniformSize
	case ProgramBlurFinish:
		return BlurFinishUniformSize
	case ProgramBorder:
		return BorderUniformSize
	default:
		return 0
	}
}

// block writes little-endian values at byte offsets.
type block []byte

func (b block) f32(off int, v float64) {
	binary.LittleEndian.PutUint32(b[off:off+4], math.Float32bits(float32(v)))
}

func (b block) u32(off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

func (b block) bool32(off int, v bool) {
	if v {
		b.u32(off, 1)
	}
}

func (b block) vec2(off int, p fx.Point) {
	b.f32(off, p.X)
	b.f32(off+4, p.Y)
}

// mat3 writes a mat3x3<f32>: three vec3 columns, each padded to 16 bytes.
func (b block) mat3(off int, m fx.Matrix) {
	cols := m.Columns()
	for c := range 3 {
		for r := range 3 {
			binary.LittleEndian.PutUint32(b[off+c*16+r*4:], math.Float32bits(cols[c*3+r]))
		}
	}
}

// QuadUniforms is the uniform block of ProgramQuad.
type QuadUniforms struct {
	Proj fx.Matrix
	Quad fx.SolidQuad
}

// Bytes packs the block.
func (u QuadUniforms) Bytes() []byte {
	b := make(block, QuadUniformSize)
	b.mat3(0, u.Proj)
	c := u.Quad.Color
	b.f32(48, c.R)
	b.f32(52, c.G)
	b.f32(56, c.B)
	b.f32(60, c.A)
	b.vec2(64, u.Quad.Rect.TopLeft)
	b.vec2(72, u.Quad.Rect.FullSize)
	b.f32(80, u.Quad.Rect.Radius)
	return b
}

// TexUniforms is the uniform block of ProgramTex and ProgramTexMix. The
// samplers of Blit are not part of the block; bind the textures with
// Programs.NewBindGroup.
type TexUniforms struct {
	Proj fx.Matrix
	Blit fx.TextureBlit
}

// Bytes packs the block.
func (u TexUniforms) Bytes() []byte {
	b := make(block, TexUniformSize)
	t := u.Blit
	b.mat3(0, u.Proj)
	b.f32(48, t.Tint[0])
	b.f32(52, t.Tint[1])
	b.f32(56, t.Tint[2])
	b.f32(60, t.Alpha)
	b.vec2(64, t.Rect.TopLeft)
	b.vec2(72, t.Rect.FullSize)
	b.f32(80, t.Rect.Radius)
	b.bool32(84, t.DiscardOpaque)
	b.bool32(88, t.DiscardAlpha)
	b.f32(92, t.DiscardAlphaValue)
	b.bool32(96, t.ApplyTint)
	b.f32(100, t.MixFactor)
	return b
}

// BlurUniforms is the uniform block of the prepare, down and up passes.
// Contrast and Brightness are read by the prepare pass only.
type BlurUniforms struct {
	Proj       fx.Matrix
	Pass       blur.Pass
	Contrast   float64
	Brightness float64
}

// NewBlurUniforms fills a block for one pass of cfg.
func NewBlurUniforms(proj fx.Matrix, cfg blur.Config, pass blur.Pass) BlurUniforms {
	return BlurUniforms{
		Proj:       proj,
		Pass:       pass,
		Contrast:   cfg.Contrast,
		Brightness: cfg.Brightness,
	}
}

// Bytes packs the block.
func (u BlurUniforms) Bytes() []byte {
	b := make(block, BlurUniformSize)
	b.mat3(0, u.Proj)
	b.vec2(48, u.Pass.HalfPixel)
	b.f32(56, u.Pass.Radius)
	b.u32(60, uint32(int32(u.Pass.Passes))) //nolint:gosec // pass count is validated to 1..8
	b.f32(64, u.Pass.Vibrancy)
	b.f32(68, u.Pass.VibrancyDarkness)
	b.f32(72, u.Contrast)
	b.f32(76, u.Brightness)
	return b
}

// BlurFinishUniforms is the uniform block of ProgramBlurFinish.
type BlurFinishUniforms struct {
	Proj   fx.Matrix
	Finish blur.FinishParams
}

// Bytes packs the block.
func (u BlurFinishUniforms) Bytes() []byte {
	b := make(block, BlurFinishUniformSize)
	b.mat3(0, u.Proj)
	b.f32(48, u.Finish.Noise)
	b.f32(52, u.Finish.Brightness)
	b.f32(56, u.Finish.BoostAlpha)
	if c := u.Finish.Colorize; c != nil {
		b.u32(60, 1)
		b.f32(64, c.R)
		b.f32(68, c.G)
		b.f32(72, c.B)
	}
	return b
}

// BorderUniforms is the uniform block of ProgramBorder. At most
// fx.MaxGradientStops stops of each gradient are uploaded.
type BorderUniforms struct {
	Proj   fx.Matrix
	Border fx.BorderStencil
}

// Bytes packs the block.
func (u BorderUniforms) Bytes() []byte {
	b := make(block, BorderUniformSize)
	s := u.Border
	g := s.Gradients

	b.mat3(0, u.Proj)
	putStops(b, 48, g.Primary)
	putStops(b, 208, g.Secondary)
	b.u32(368, uint32(g.Primary.Len()))   //nolint:gosec // at most MaxGradientStops
	b.u32(372, uint32(g.Secondary.Len())) //nolint:gosec // at most MaxGradientStops
	b.f32(376, g.Primary.Angle)
	b.f32(380, g.Secondary.Angle)
	b.f32(384, g.Lerp)
	b.f32(388, s.Alpha)
	b.vec2(392, s.Rect.TopLeft)
	b.vec2(400, s.Rect.FullSize)
	b.vec2(408, s.FullSizeUntransformed)
	b.f32(416, s.Rect.Radius)
	b.f32(420, s.RadiusOuter)
	b.f32(424, s.Thickness)
	return b
}

func putStops(b block, off int, g fx.Gradient) {
	for i, c := range g.Stops[:g.Len()] {
		o := off + i*16
		b.f32(o, c.L)
		b.f32(o+4, c.A)
		b.f32(o+8, c.B)
		b.f32(o+12, c.Alpha)
	}
}

// QuadVertices returns two triangles covering box, with texture
// coordinates running from (0,0) at the top-left corner to (1,1) at the
// bottom-right. Draw them with an Ortho projection; for the unit box use
// fx.ProjectBox instead.
func QuadVertices(box fx.Box) []byte {
	x0, y0 := box.X, box.Y
	x1, y1 := box.X+box.W, box.Y+box.H
	verts := [QuadVertexCount][4]float64{
		{x0, y0, 0, 0},
		{x1, y0, 1, 0},
		{x0, y1, 0, 1},
		{x0, y1, 0, 1},
		{x1, y0, 1, 0},
		{x1, y1, 1, 1},
	}

	b := make(block, QuadVertexCount*vertexStride)
	for i, v := range verts {
		for j, f := range v {
			b.f32(i*vertexStride+j*4, f)
		}
	}
	return b
}
