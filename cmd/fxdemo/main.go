// Command fxdemo composites a blurred, bordered window over a background
// with the software kernels and writes the frame as PNG.
//
// Usage:
//
//	fxdemo -scene scene.toml -out frame.png
//	fxdemo -in wallpaper.png -out frame.png -v
//	fxdemo -spirv shaders/
//
// The scene file is TOML; see testdata/scene.toml for every key.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/blur"
	"github.com/gogpu/fx/gpu"
)

func main() {
	var (
		scenePath = flag.String("scene", "", "scene file (TOML); built-in defaults when empty")
		output    = flag.String("out", "frame.png", "output PNG file")
		input     = flag.String("in", "", "background image, scaled to the frame")
		width     = flag.Int("w", 0, "frame width, overrides the scene")
		height    = flag.Int("h", 0, "frame height, overrides the scene")
		spirvDir  = flag.String("spirv", "", "write the SPIR-V of every GPU program to this directory and exit")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	fx.SetLogger(logger)

	if *spirvDir != "" {
		if err := dumpSPIRV(*spirvDir); err != nil {
			logger.Error("dump SPIR-V", "err", err)
			os.Exit(1)
		}
		return
	}

	sc, unknown, err := loadScene(*scenePath)
	if err != nil {
		logger.Error("load scene", "err", err)
		os.Exit(1)
	}
	for _, k := range unknown {
		logger.Warn("unknown scene key", "key", k)
	}
	if *width > 0 {
		sc.Width = *width
	}
	if *height > 0 {
		sc.Height = *height
	}

	frame, err := render(context.Background(), sc, *input)
	if err != nil {
		logger.Error("render", "err", err)
		os.Exit(1)
	}
	if err := frame.SavePNG(*output); err != nil {
		logger.Error("save", "err", err)
		os.Exit(1)
	}
	logger.Info("frame saved", "path", *output, "width", sc.Width, "height", sc.Height)
}

// render draws the scene: background and shapes, then the window's
// blurred backdrop, its tint and finally the border.
func render(ctx context.Context, sc scene, input string) (*fx.Pixmap, error) {
	r := fx.NewRasterizer()
	defer r.Close()

	bg, err := background(sc, input)
	if err != nil {
		return nil, err
	}
	for i, s := range sc.Shapes {
		c, err := parseColor(s.Color)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		box := fx.Box{X: s.X, Y: s.Y, W: s.W, H: s.H}
		q := fx.SolidQuad{Color: c.Premultiply(), Rect: box.Rect(s.Rounding)}
		if err := r.Draw(bg, box, q); err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
	}

	frame := bg.Clone()
	win := sc.Window
	winBox := fx.Box{X: win.X, Y: win.Y, W: win.W, H: win.H}

	if sc.Blur.Enabled {
		cfg, err := sc.Blur.blurConfig()
		if err != nil {
			return nil, err
		}
		p := blur.NewPipeline()
		blurred, err := p.Run(ctx, bg, cfg)
		p.Close()
		if err != nil {
			return nil, err
		}
		backdrop := fx.TextureBlit{
			Tex:   region{src: blurred, box: winBox},
			Alpha: win.Alpha,
			Rect:  winBox.Rect(win.Rounding),
		}
		if err := r.Draw(frame, winBox, backdrop); err != nil {
			return nil, fmt.Errorf("window backdrop: %w", err)
		}
	}

	if win.Color != "" {
		c, err := parseColor(win.Color)
		if err != nil {
			return nil, fmt.Errorf("window color: %w", err)
		}
		c.A *= win.Alpha
		tint := fx.SolidQuad{Color: c.Premultiply(), Rect: winBox.Rect(win.Rounding)}
		if err := r.Draw(frame, winBox, tint); err != nil {
			return nil, fmt.Errorf("window tint: %w", err)
		}
	}

	if sc.Border.Thickness > 0 {
		st, box, err := sc.Border.stencil(win)
		if err != nil {
			return nil, err
		}
		if err := r.Draw(frame, box, st); err != nil {
			return nil, fmt.Errorf("border: %w", err)
		}
	}
	return frame, nil
}

// background returns the scene background, or the input image scaled to
// the frame when one is given.
func background(sc scene, input string) (*fx.Pixmap, error) {
	if input == "" {
		c, err := parseColor(sc.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		pm := fx.NewPixmap(sc.Width, sc.Height)
		pm.Clear(c.Premultiply())
		return pm, nil
	}

	f, err := os.Open(input) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", input, err)
	}

	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("decode %s: empty image", input)
	}
	fit := fx.Scale(float64(sc.Width)/float64(b.Dx()), float64(sc.Height)/float64(b.Dy())).
		Multiply(fx.Translate(-float64(b.Min.X), -float64(b.Min.Y)))
	dst := image.NewRGBA(image.Rect(0, 0, sc.Width, sc.Height))
	xdraw.CatmullRom.Transform(dst, fit.Aff3(), src, b, xdraw.Src, nil)
	return fx.FromImage(dst), nil
}

// region samples the part of src under box, addressed 0..1 across the box.
type region struct {
	src *fx.Pixmap
	box fx.Box
}

func (r region) Sample(u, v float64) fx.RGBA {
	w, h := float64(r.src.Width()), float64(r.src.Height())
	return r.src.Sample((r.box.X+u*r.box.W)/w, (r.box.Y+v*r.box.H)/h)
}

// dumpSPIRV compiles every GPU program and writes <name>.spv files.
func dumpSPIRV(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, p := range gpu.AllPrograms() {
		code, err := gpu.CompileSPIRV(p)
		if err != nil {
			return err
		}
		buf := make([]byte, len(code)*4)
		for i, w := range code {
			buf[i*4] = byte(w)
			buf[i*4+1] = byte(w >> 8)
			buf[i*4+2] = byte(w >> 16)
			buf[i*4+3] = byte(w >> 24)
		}
		path := filepath.Join(dir, p.String()+".spv")
		if err := os.WriteFile(path, buf, 0o644); err != nil { //nolint:gosec // shader binaries are not secret
			return err
		}
		fx.Logger().Debug("wrote SPIR-V", "program", p, "path", path, "words", len(code))
	}
	return nil
}
