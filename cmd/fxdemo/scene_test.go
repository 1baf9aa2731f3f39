package main

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/colornames"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/blur"
)

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSceneExample(t *testing.T) {
	sc, unknown, err := loadScene("testdata/scene.toml")
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	if len(unknown) != 0 {
		t.Errorf("unknown keys: %v", unknown)
	}

	if sc.Width != 320 || sc.Height != 200 {
		t.Errorf("size = %dx%d, want 320x200", sc.Width, sc.Height)
	}
	if len(sc.Shapes) != 2 || sc.Shapes[1].Color != "#a6e3a1" {
		t.Errorf("shapes = %+v", sc.Shapes)
	}
	wantWindow := window{X: 60, Y: 50, W: 200, H: 110, Rounding: 10, Color: "#11111b80", Alpha: 1}
	if diff := cmp.Diff(wantWindow, sc.Window); diff != "" {
		t.Errorf("window mismatch (-want +got):\n%s", diff)
	}
	if sc.Blur.Passes != 2 || sc.Blur.Radius != 6 || sc.Blur.BoostAlpha != 1 {
		t.Errorf("blur = %+v", sc.Blur)
	}
	if sc.Border.Secondary == nil || len(sc.Border.Secondary.Colors) != 3 {
		t.Fatalf("secondary gradient = %+v", sc.Border.Secondary)
	}
	if sc.Border.Gradient.Angle != 45 || sc.Border.Lerp != 0.5 {
		t.Errorf("border = %+v", sc.Border)
	}
}

func TestLoadSceneDefaults(t *testing.T) {
	sc, unknown, err := loadScene("")
	if err != nil || unknown != nil {
		t.Fatalf("loadScene(\"\") = %v, %v", unknown, err)
	}
	if diff := cmp.Diff(defaultScene(), sc); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	// Keys the file leaves out keep their defaults.
	sc, _, err = loadScene(writeScene(t, "width = 100\nheight = 50\n"))
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	if sc.Width != 100 || sc.Window != defaultScene().Window {
		t.Errorf("partial scene = %+v", sc)
	}
}

func TestLoadSceneErrors(t *testing.T) {
	if _, _, err := loadScene(writeScene(t, "width = 0\n")); !errors.Is(err, errSceneSize) {
		t.Errorf("zero width error = %v, want errSceneSize", err)
	}
	if _, _, err := loadScene(writeScene(t, "width = \n")); err == nil {
		t.Error("malformed TOML accepted")
	}
	if _, _, err := loadScene(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file accepted")
	}

	_, unknown, err := loadScene(writeScene(t, "widht = 10\n[window]\nradius = 3\n"))
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	if diff := cmp.Diff([]string{"widht", "window.radius"}, unknown); diff != "" {
		t.Errorf("unknown keys mismatch (-want +got):\n%s", diff)
	}
}

func TestBlurConfig(t *testing.T) {
	b := defaultScene().Blur
	b.Colorize = "#ff0000"
	cfg, err := b.blurConfig()
	if err != nil {
		t.Fatalf("blurConfig: %v", err)
	}
	if cfg.Colorize == nil || *cfg.Colorize != fx.RGB(1, 0, 0) {
		t.Errorf("colorize = %v", cfg.Colorize)
	}

	b.Passes = 0
	if _, err := b.blurConfig(); !errors.Is(err, blur.ErrInvalidPasses) {
		t.Errorf("passes 0 error = %v, want ErrInvalidPasses", err)
	}
	b.Passes = 1
	b.Colorize = "nope"
	if _, err := b.blurConfig(); err == nil {
		t.Error("bad colorize accepted")
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		deg, want float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{360, 0},
		{-90, 3 * math.Pi / 2},
		{450, math.Pi / 2},
	}
	for _, tt := range tests {
		if got := normalizeAngle(tt.deg); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("normalizeAngle(%v) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestBorderGradients(t *testing.T) {
	b := defaultScene().Border
	gc, err := b.gradients()
	if err != nil {
		t.Fatalf("gradients: %v", err)
	}
	if len(gc.Primary.Stops) != 2 || len(gc.Secondary.Stops) != 0 {
		t.Errorf("gradients = %+v", gc)
	}
	if math.Abs(gc.Primary.Angle-math.Pi/4) > 1e-12 {
		t.Errorf("angle = %v, want pi/4", gc.Primary.Angle)
	}

	b.Gradient.Colors = append(b.Gradient.Colors, "#zzzzzz")
	if _, err := b.gradients(); err == nil {
		t.Error("bad color accepted")
	}

	b.Gradient.Colors = make([]string, fx.MaxGradientStops+1)
	if _, err := b.gradients(); err == nil {
		t.Error("too many colors accepted")
	}
}

func TestBorderStencilGeometry(t *testing.T) {
	b := border{Thickness: 4, Alpha: 1, Gradient: gradient{Colors: []string{"#ffffff"}}}
	win := window{X: 10, Y: 20, W: 100, H: 50, Rounding: 6}

	st, box, err := b.stencil(win)
	if err != nil {
		t.Fatalf("stencil: %v", err)
	}
	if box != (fx.Box{X: 6, Y: 16, W: 108, H: 58}) {
		t.Errorf("box = %+v", box)
	}
	if st.Rect.Radius != 10 || st.RadiusOuter != 10 || st.FullSizeUntransformed != fx.Pt(108, 58) {
		t.Errorf("stencil = %+v", st)
	}
}

func TestRender(t *testing.T) {
	sc := defaultScene()
	sc.Width, sc.Height = 96, 64
	sc.Window = window{X: 24, Y: 16, W: 48, H: 32, Rounding: 6, Color: "#000000", Alpha: 1}
	sc.Blur.Passes = 1
	sc.Border.Thickness = 2
	sc.Border.Gradient = gradient{Colors: []string{"#ff0000"}}

	frame, err := render(context.Background(), sc, "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if frame.Width() != 96 || frame.Height() != 64 {
		t.Fatalf("frame %dx%d", frame.Width(), frame.Height())
	}

	bg, _ := fx.ParseHex(sc.Background)
	if got := frame.GetPixel(2, 2); !near(got, bg, 1e-6) {
		t.Errorf("outside pixel = %v, want background %v", got, bg)
	}
	// The opaque black tint hides the backdrop.
	if got := frame.GetPixel(48, 32); !near(got, fx.RGBA{A: 1}, 1e-6) {
		t.Errorf("window center = %v, want black", got)
	}
	// Middle of the top border edge, one pixel above the window. The flat
	// gradient goes through OkLab and back.
	if got := frame.GetPixel(48, 15); !near(got, fx.Red, 0.01) {
		t.Errorf("border pixel = %v, want red", got)
	}
}

func near(a, b fx.RGBA, eps float64) bool {
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps && math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}

func TestRegionSampler(t *testing.T) {
	src := fx.NewPixmap(4, 4)
	src.SetPixel(2, 1, fx.White)
	r := region{src: src, box: fx.Box{X: 2, Y: 1, W: 2, H: 2}}

	// The center of the region's top-left pixel maps to source pixel (2,1).
	if got := r.Sample(0.25, 0.25); got != fx.White {
		t.Errorf("Sample(0.25, 0.25) = %v, want white", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    fx.RGBA
		wantErr bool
	}{
		{in: "#ff0000", want: fx.Red},
		{in: "#00000080", want: fx.RGBA2(0, 0, 0, 128.0/255)},
		{in: "steelblue", want: fx.FromColor(colornames.Steelblue)},
		{in: "White", want: fx.White},
		{in: "notacolor", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !near(got, tt.want, 1e-9) {
				t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBackgroundImageScaled(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			src.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "bg.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	sc := defaultScene()
	sc.Width, sc.Height = 8, 4
	bg, err := background(sc, path)
	if err != nil {
		t.Fatalf("background: %v", err)
	}
	if bg.Width() != 8 || bg.Height() != 4 {
		t.Fatalf("background %dx%d, want 8x4", bg.Width(), bg.Height())
	}
	for _, p := range [][2]int{{0, 0}, {4, 2}, {7, 3}} {
		if got := bg.GetPixel(p[0], p[1]); !near(got, fx.Red, 1e-6) {
			t.Errorf("pixel %v = %v, want red", p, got)
		}
	}

	if _, err := background(sc, filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing background image accepted")
	}
}
