package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/blur"
)

func f32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off : off+4]))
}

func u32At(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

func checkF32(t *testing.T, b []byte, off int, want float64) {
	t.Helper()
	if got := f32At(b, off); math.Abs(float64(got)-want) > 1e-6 {
		t.Errorf("f32 at %d = %v, want %v", off, got, want)
	}
}

func TestUniformSizes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want int
		p    Program
	}{
		{"quad", QuadUniforms{}.Bytes(), QuadUniformSize, ProgramQuad},
		{"tex", TexUniforms{}.Bytes(), TexUniformSize, ProgramTexMix},
		{"blur", BlurUniforms{}.Bytes(), BlurUniformSize, ProgramBlurUp},
		{"blur finish", BlurFinishUniforms{}.Bytes(), BlurFinishUniformSize, ProgramBlurFinish},
		{"border", BorderUniforms{}.Bytes(), BorderUniformSize, ProgramBorder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.data) != tt.want {
				t.Errorf("len = %d, want %d", len(tt.data), tt.want)
			}
			if tt.want%16 != 0 {
				t.Errorf("size %d is not a multiple of 16", tt.want)
			}
			if got := uniformSize(tt.p); got != uint64(tt.want) {
				t.Errorf("uniformSize(%v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}

func TestProjectionColumns(t *testing.T) {
	b := QuadUniforms{Proj: fx.Ortho(200, 100)}.Bytes()

	// column 0: (A, D, 0), column 1: (B, E, 0), column 2: (C, F, 1)
	checkF32(t, b, 0, 0.01)
	checkF32(t, b, 4, 0)
	checkF32(t, b, 8, 0)
	checkF32(t, b, 16, 0)
	checkF32(t, b, 20, -0.02)
	checkF32(t, b, 32, -1)
	checkF32(t, b, 36, 1)
	checkF32(t, b, 40, 1)
	for _, pad := range []int{12, 28, 44} {
		if u32At(b, pad) != 0 {
			t.Errorf("padding at %d is not zero", pad)
		}
	}
}

func TestQuadUniforms(t *testing.T) {
	b := QuadUniforms{
		Proj: fx.Identity(),
		Quad: fx.SolidQuad{
			Color: fx.RGBA2(0.1, 0.2, 0.3, 0.4),
			Rect:  fx.Rect{TopLeft: fx.Pt(5, 6), FullSize: fx.Pt(70, 80), Radius: 9},
		},
	}.Bytes()

	for i, want := range []float64{0.1, 0.2, 0.3, 0.4, 5, 6, 70, 80, 9} {
		checkF32(t, b, 48+i*4, want)
	}
}

func TestTexUniforms(t *testing.T) {
	b := TexUniforms{
		Proj: fx.Identity(),
		Blit: fx.TextureBlit{
			Alpha:             0.75,
			MixFactor:         0.3,
			DiscardAlpha:      true,
			DiscardAlphaValue: 0.01,
			ApplyTint:         true,
			Tint:              [3]float64{0.5, 0.6, 0.7},
			Rect:              fx.Rect{TopLeft: fx.Pt(1, 2), FullSize: fx.Pt(3, 4), Radius: 5},
		},
	}.Bytes()

	checkF32(t, b, 48, 0.5)
	checkF32(t, b, 52, 0.6)
	checkF32(t, b, 56, 0.7)
	checkF32(t, b, 60, 0.75)
	checkF32(t, b, 64, 1)
	checkF32(t, b, 76, 4)
	checkF32(t, b, 80, 5)
	if u32At(b, 84) != 0 {
		t.Error("discard_opaque set")
	}
	if u32At(b, 88) != 1 {
		t.Error("discard_alpha not set")
	}
	checkF32(t, b, 92, 0.01)
	if u32At(b, 96) != 1 {
		t.Error("apply_tint not set")
	}
	checkF32(t, b, 100, 0.3)
}

func TestBlurUniforms(t *testing.T) {
	cfg := blur.DefaultConfig()
	cfg.Passes = 3
	cfg.Vibrancy = 0.5
	cfg.VibrancyDarkness = 0.25

	b := NewBlurUniforms(fx.Identity(), cfg, cfg.DownPass(64, 32)).Bytes()

	checkF32(t, b, 48, 0.5/32)
	checkF32(t, b, 52, 0.5/16)
	checkF32(t, b, 56, cfg.Radius)
	if got := int32(u32At(b, 60)); got != 3 { //nolint:gosec // test data
		t.Errorf("passes = %d, want 3", got)
	}
	checkF32(t, b, 64, 0.5)
	checkF32(t, b, 68, 0.25)
	checkF32(t, b, 72, cfg.Contrast)
	checkF32(t, b, 76, cfg.Brightness)
}

func TestBlurFinishUniforms(t *testing.T) {
	cfg := blur.DefaultConfig()

	b := BlurFinishUniforms{Proj: fx.Identity(), Finish: cfg.FinishPass()}.Bytes()
	checkF32(t, b, 48, cfg.Noise)
	checkF32(t, b, 52, cfg.Brightness)
	checkF32(t, b, 56, cfg.BoostAlpha)
	if u32At(b, 60) != 0 {
		t.Error("colorize set without a color")
	}

	tint := fx.RGB(0.2, 0.4, 0.6)
	cfg.Colorize = &tint
	b = BlurFinishUniforms{Proj: fx.Identity(), Finish: cfg.FinishPass()}.Bytes()
	if u32At(b, 60) != 1 {
		t.Error("colorize not set")
	}
	checkF32(t, b, 64, 0.2)
	checkF32(t, b, 68, 0.4)
	checkF32(t, b, 72, 0.6)
}

func TestBorderUniforms(t *testing.T) {
	stops := make([]fx.OkLabA, 12)
	for i := range stops {
		stops[i] = fx.OkLabA{L: float64(i) / 10, A: 0.01, B: -0.02, Alpha: 1}
	}
	border := fx.BorderStencil{
		Rect:                  fx.Rect{TopLeft: fx.Pt(8, 9), FullSize: fx.Pt(100, 50), Radius: 12},
		FullSizeUntransformed: fx.Pt(100, 50),
		RadiusOuter:           12,
		Thickness:             2,
		Gradients: fx.GradientConfig{
			Primary:   fx.Gradient{Stops: stops, Angle: 1},
			Secondary: fx.Gradient{Stops: stops[:3], Angle: 4},
			Lerp:      0.25,
		},
		Alpha: 0.9,
	}
	b := BorderUniforms{Proj: fx.Identity(), Border: border}.Bytes()

	checkF32(t, b, 48, 0)
	checkF32(t, b, 48+9*16, 0.9)
	checkF32(t, b, 48+9*16+4, 0.01)
	checkF32(t, b, 48+9*16+8, -0.02)
	checkF32(t, b, 48+9*16+12, 1)
	checkF32(t, b, 208+2*16, 0.2)
	checkF32(t, b, 208+3*16+12, 0) // only three secondary stops

	if got := u32At(b, 368); got != fx.MaxGradientStops {
		t.Errorf("gradient_length = %d, want %d", got, fx.MaxGradientStops)
	}
	if got := u32At(b, 372); got != 3 {
		t.Errorf("gradient2_length = %d, want 3", got)
	}
	checkF32(t, b, 376, 1)
	checkF32(t, b, 380, 4)
	checkF32(t, b, 384, 0.25)
	checkF32(t, b, 388, 0.9)
	checkF32(t, b, 392, 8)
	checkF32(t, b, 396, 9)
	checkF32(t, b, 400, 100)
	checkF32(t, b, 412, 50)
	checkF32(t, b, 416, 12)
	checkF32(t, b, 420, 12)
	checkF32(t, b, 424, 2)
}

func TestQuadVertices(t *testing.T) {
	b := QuadVertices(fx.Box{X: 10, Y: 20, W: 30, H: 40})
	if len(b) != QuadVertexCount*vertexStride {
		t.Fatalf("len = %d, want %d", len(b), QuadVertexCount*vertexStride)
	}

	want := [QuadVertexCount][4]float64{
		{10, 20, 0, 0},
		{40, 20, 1, 0},
		{10, 60, 0, 1},
		{10, 60, 0, 1},
		{40, 20, 1, 0},
		{40, 60, 1, 1},
	}
	for i, v := range want {
		for j, w := range v {
			checkF32(t, b, i*vertexStride+j*4, w)
		}
	}

	// Both triangles are wound the same way.
	area := func(i int) float64 {
		x := func(k int) float64 { return float64(f32At(b, (i+k)*vertexStride)) }
		y := func(k int) float64 { return float64(f32At(b, (i+k)*vertexStride+4)) }
		return (x(1)-x(0))*(y(2)-y(0)) - (x(2)-x(0))*(y(1)-y(0))
	}
	if a0, a1 := area(0), area(3); a0*a1 <= 0 {
		t.Errorf("triangle orientations differ: %v, %v", a0, a1)
	}
}
