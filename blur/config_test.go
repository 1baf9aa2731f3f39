package blur

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/fx"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"default", DefaultConfig(), nil},
		{"max passes", plainConfig(MaxPasses, 2), nil},
		{"zero passes", plainConfig(0, 2), ErrInvalidPasses},
		{"too many passes", plainConfig(MaxPasses+1, 2), ErrInvalidPasses},
		{"negative radius", plainConfig(1, -1), ErrInvalidRadius},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigPasses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Passes = 2
	cfg.Vibrancy = 0.3
	cfg.VibrancyDarkness = 0.4

	down := cfg.DownPass(64, 32)
	if down.HalfPixel != fx.Pt(0.5/32, 0.5/16) {
		t.Errorf("down half pixel = %v", down.HalfPixel)
	}
	up := cfg.UpPass(32, 16)
	if up.HalfPixel != fx.Pt(0.5/64, 0.5/32) {
		t.Errorf("up half pixel = %v", up.HalfPixel)
	}
	for _, p := range []Pass{down, up} {
		if p.Radius != cfg.Radius || p.Passes != 2 || p.Vibrancy != 0.3 || p.VibrancyDarkness != 0.4 {
			t.Errorf("pass = %+v does not carry the config", p)
		}
	}

	// A 1-pixel source still yields finite offsets.
	if hp := cfg.DownPass(1, 1).HalfPixel; math.IsInf(hp.X, 0) || hp.X != 1 {
		t.Errorf("1x1 down half pixel = %v, want (1, 1)", hp)
	}

	tint := fx.RGB(1, 0, 0)
	cfg.Colorize = &tint
	fin := cfg.FinishPass()
	if fin.Noise != cfg.Noise || fin.Brightness != cfg.Brightness || fin.BoostAlpha != cfg.BoostAlpha || fin.Colorize != &tint {
		t.Errorf("FinishPass() = %+v", fin)
	}
}
