package blur

import (
	"errors"
	"fmt"

	"github.com/gogpu/fx"
)

// MaxPasses is the largest accepted pass count. Each pass halves the image,
// so eight passes already reduce a 4K frame to a handful of pixels.
const MaxPasses = 8

var (
	// ErrInvalidPasses is returned when Config.Passes is outside 1..MaxPasses.
	ErrInvalidPasses = errors.New("blur: passes out of range")

	// ErrInvalidRadius is returned when Config.Radius is negative.
	ErrInvalidRadius = errors.New("blur: negative radius")
)

// Config describes a complete blur: pre-conditioning, the down/up pass
// chain and the finishing touches.
type Config struct {
	// Radius is the tap spread of every pass, in source texels.
	Radius float64
	// Passes is the number of down passes, matched by as many up passes.
	Passes int

	// Vibrancy is the saturation boost, split evenly across the down passes.
	// Zero disables the boost entirely.
	Vibrancy float64
	// VibrancyDarkness in [0,1] reduces the boost for dark colors less.
	VibrancyDarkness float64

	// Contrast is the gain exponent; 1 leaves colors unchanged.
	Contrast float64
	// Brightness scales RGB: values above 1 before blurring, below 1 after.
	Brightness float64

	// Noise is the grain amplitude added after blurring.
	Noise float64
	// BoostAlpha multiplies the final alpha.
	BoostAlpha float64
	// Colorize, when non-nil, replaces the blurred RGB with this color
	// times alpha.
	Colorize *fx.RGBA
}

// DefaultConfig returns the compositor's stock blur settings.
func DefaultConfig() Config {
	return Config{
		Radius:           8,
		Passes:           1,
		Vibrancy:         0.1696,
		VibrancyDarkness: 0,
		Contrast:         0.8916,
		Brightness:       0.8172,
		Noise:            0.0117,
		BoostAlpha:       1,
	}
}

// Validate reports whether the config can drive a pipeline.
func (c Config) Validate() error {
	if c.Passes < 1 || c.Passes > MaxPasses {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidPasses, c.Passes, MaxPasses)
	}
	if c.Radius < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, c.Radius)
	}
	return nil
}

// DownPass returns the parameters of a down pass reading a srcW x srcH
// image. The pass renders into half that size.
func (c Config) DownPass(srcW, srcH int) Pass {
	return c.pass(fx.Pt(0.5/(float64(srcW)/2), 0.5/(float64(srcH)/2)))
}

// UpPass returns the parameters of an up pass reading a srcW x srcH image.
// The pass renders into twice that size.
func (c Config) UpPass(srcW, srcH int) Pass {
	return c.pass(fx.Pt(0.5/(float64(srcW)*2), 0.5/(float64(srcH)*2)))
}

func (c Config) pass(halfPixel fx.Point) Pass {
	return Pass{
		HalfPixel:        halfPixel,
		Radius:           c.Radius,
		Passes:           c.Passes,
		Vibrancy:         c.Vibrancy,
		VibrancyDarkness: c.VibrancyDarkness,
	}
}

// FinishPass returns the parameters of the final pass.
func (c Config) FinishPass() FinishParams {
	return FinishParams{
		Noise:      c.Noise,
		Brightness: c.Brightness,
		BoostAlpha: c.BoostAlpha,
		Colorize:   c.Colorize,
	}
}
