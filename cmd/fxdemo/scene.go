package main

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/image/colornames"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/blur"
)

// scene is the TOML description of a frame: a background, optional
// shapes painted on it and one window composited over the result.
type scene struct {
	Width      int
	Height     int
	Background string
	Shapes     []shape `toml:"shape"`
	Window     window
	Blur       blurSettings
	Border     border
}

type shape struct {
	X, Y, W, H float64
	Rounding   float64
	Color      string
}

type window struct {
	X, Y, W, H float64
	Rounding   float64
	// Color tints the blurred backdrop; its alpha sets the tint strength.
	Color string
	Alpha float64
}

type blurSettings struct {
	Enabled          bool
	Radius           float64
	Passes           int
	Vibrancy         float64
	VibrancyDarkness float64 `toml:"vibrancy_darkness"`
	Contrast         float64
	Brightness       float64
	Noise            float64
	BoostAlpha       float64 `toml:"boost_alpha"`
	Colorize         string
}

type gradient struct {
	Colors []string
	// Angle in degrees, clockwise from the +x axis.
	Angle float64
}

type border struct {
	Thickness float64
	Alpha     float64
	Gradient  gradient
	// Secondary is blended over Gradient in OkLab by Lerp.
	Secondary *gradient
	Lerp      float64
}

var errSceneSize = errors.New("scene size must be positive")

// parseColor accepts a hex color or an SVG color keyword such as
// "steelblue".
func parseColor(s string) (fx.RGBA, error) {
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return fx.FromColor(c), nil
	}
	return fx.ParseHex(s)
}

// defaultScene is used for keys missing from the scene file.
func defaultScene() scene {
	b := blur.DefaultConfig()
	return scene{
		Width:      640,
		Height:     400,
		Background: "#1e1e2e",
		Window: window{
			X: 120, Y: 80, W: 400, H: 240,
			Rounding: 10,
			Color:    "#11111b",
			Alpha:    1,
		},
		Blur: blurSettings{
			Enabled:          true,
			Radius:           b.Radius,
			Passes:           b.Passes,
			Vibrancy:         b.Vibrancy,
			VibrancyDarkness: b.VibrancyDarkness,
			Contrast:         b.Contrast,
			Brightness:       b.Brightness,
			Noise:            b.Noise,
			BoostAlpha:       b.BoostAlpha,
		},
		Border: border{
			Thickness: 2,
			Alpha:     1,
			Gradient:  gradient{Colors: []string{"#33ccffee", "#00ff99ee"}, Angle: 45},
		},
	}
}

// loadScene reads a scene file over the defaults. Keys the file sets that
// no field takes are returned so the caller can warn about them.
func loadScene(path string) (scene, []string, error) {
	sc := defaultScene()
	if path == "" {
		return sc, nil, nil
	}

	md, err := toml.DecodeFile(path, &sc)
	if err != nil {
		return scene{}, nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	if sc.Width <= 0 || sc.Height <= 0 {
		return scene{}, nil, fmt.Errorf("%s: %w (got %dx%d)", path, errSceneSize, sc.Width, sc.Height)
	}
	return sc, unknown, nil
}

// blurConfig converts the blur settings.
func (b blurSettings) blurConfig() (blur.Config, error) {
	cfg := blur.Config{
		Radius:           b.Radius,
		Passes:           b.Passes,
		Vibrancy:         b.Vibrancy,
		VibrancyDarkness: b.VibrancyDarkness,
		Contrast:         b.Contrast,
		Brightness:       b.Brightness,
		Noise:            b.Noise,
		BoostAlpha:       b.BoostAlpha,
	}
	if b.Colorize != "" {
		c, err := parseColor(b.Colorize)
		if err != nil {
			return blur.Config{}, fmt.Errorf("blur colorize: %w", err)
		}
		cfg.Colorize = &c
	}
	if err := cfg.Validate(); err != nil {
		return blur.Config{}, err
	}
	return cfg, nil
}

// gradient converts the colors to OkLab stops.
func (g gradient) gradient() (fx.Gradient, error) {
	if len(g.Colors) > fx.MaxGradientStops {
		return fx.Gradient{}, fmt.Errorf("gradient has %d colors, at most %d are used", len(g.Colors), fx.MaxGradientStops)
	}
	stops := make([]fx.OkLabA, len(g.Colors))
	for i, s := range g.Colors {
		c, err := parseColor(s)
		if err != nil {
			return fx.Gradient{}, fmt.Errorf("gradient color %d: %w", i, err)
		}
		stops[i] = fx.OkLabFromRGBA(c)
	}
	return fx.Gradient{Stops: stops, Angle: normalizeAngle(g.Angle)}, nil
}

// normalizeAngle converts degrees to radians in [0, 2*pi).
func normalizeAngle(deg float64) float64 {
	rad := math.Mod(deg*math.Pi/180, 2*math.Pi)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	return rad
}

// gradients converts the border's gradient pair.
func (b border) gradients() (fx.GradientConfig, error) {
	primary, err := b.Gradient.gradient()
	if err != nil {
		return fx.GradientConfig{}, fmt.Errorf("border: %w", err)
	}
	if b.Secondary == nil {
		return fx.SingleGradient(primary), nil
	}
	secondary, err := b.Secondary.gradient()
	if err != nil {
		return fx.GradientConfig{}, fmt.Errorf("border secondary: %w", err)
	}
	return fx.GradientConfig{Primary: primary, Secondary: secondary, Lerp: b.Lerp}, nil
}

// stencil returns the border ring drawn around win, and the box it covers.
func (b border) stencil(win window) (fx.BorderStencil, fx.Box, error) {
	gc, err := b.gradients()
	if err != nil {
		return fx.BorderStencil{}, fx.Box{}, err
	}
	box := fx.Box{X: win.X, Y: win.Y, W: win.W, H: win.H}.Expand(b.Thickness)
	radius := win.Rounding + b.Thickness
	return fx.BorderStencil{
		Rect:                  box.Rect(radius),
		FullSizeUntransformed: fx.Pt(box.W, box.H),
		RadiusOuter:           radius,
		Thickness:             b.Thickness,
		Gradients:             gc,
		Alpha:                 b.Alpha,
	}, box, nil
}
