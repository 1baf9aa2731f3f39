package gpu

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga"

	"github.com/gogpu/fx"
)

// ErrEmptyShader is returned for a program with no shader source.
var ErrEmptyShader = errors.New("gpu: empty shader source")

//go:embed shaders/io.wgsl
var ioSource string

//go:embed shaders/vertex.wgsl
var vertexSource string

//go:embed shaders/rounded.wgsl
var roundedSource string

//go:embed shaders/blit.wgsl
var blitSource string

//go:embed shaders/blur.wgsl
var blurSource string

//go:embed shaders/quad.wgsl
var quadSource string

//go:embed shaders/tex.wgsl
var texSource string

//go:embed shaders/texmix.wgsl
var texMixSource string

//go:embed shaders/blur_prepare.wgsl
var blurPrepareSource string

//go:embed shaders/blur_down.wgsl
var blurDownSource string

//go:embed shaders/blur_up.wgsl
var blurUpSource string

//go:embed shaders/blur_finish.wgsl
var blurFinishSource string

//go:embed shaders/border.wgsl
var borderSource string

// Program identifies one of the effect programs.
type Program int

const (
	ProgramQuad Program = iota
	ProgramTex
	ProgramTexMix
	ProgramBlurPrepare
	ProgramBlurDown
	ProgramBlurUp
	ProgramBlurFinish
	ProgramBorder

	programCount
)

// AllPrograms returns every program in creation order.
func AllPrograms() []Program {
	all := make([]Program, programCount)
	for i := range all {
		all[i] = Program(i)
	}
	return all
}

var programNames = [programCount]string{
	ProgramQuad:        "quad",
	ProgramTex:         "tex",
	ProgramTexMix:      "texmix",
	ProgramBlurPrepare: "blur_prepare",
	ProgramBlurDown:    "blur_down",
	ProgramBlurUp:      "blur_up",
	ProgramBlurFinish:  "blur_finish",
	ProgramBorder:      "border",
}

// String returns the program's name.
func (p Program) String() string {
	if p < 0 || p >= programCount {
		return fmt.Sprintf("Program(%d)", int(p))
	}
	return programNames[p]
}

// parts lists the source files of each program after the common header.
func (p Program) parts() []string {
	switch p {
	case ProgramQuad:
		return []string{quadSource}
	case ProgramTex:
		return []string{blitSource, texSource}
	case ProgramTexMix:
		return []string{blitSource, texMixSource}
	case ProgramBlurPrepare:
		return []string{blurSource, blurPrepareSource}
	case ProgramBlurDown:
		return []string{blurSource, blurDownSource}
	case ProgramBlurUp:
		return []string{blurSource, blurUpSource}
	case ProgramBlurFinish:
		return []string{blurFinishSource}
	case ProgramBorder:
		return []string{borderSource}
	default:
		return nil
	}
}

// Source returns the complete WGSL of p: the smoothing constant, the stage
// interface and rounded-corner function, the program itself and finally
// the shared vertex stage. Declarations precede their uses.
// It returns "" for an unknown program.
func Source(p Program) string {
	parts := p.parts()
	if len(parts) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "const SMOOTHING_CONSTANT: f32 = %.7f;\n\n", fx.SmoothingConstant)
	b.WriteString(ioSource)
	b.WriteString("\n")
	b.WriteString(roundedSource)
	for _, part := range parts {
		b.WriteString("\n")
		b.WriteString(part)
	}
	b.WriteString("\n")
	b.WriteString(vertexSource)
	return b.String()
}

// CompileSPIRV compiles p to SPIR-V words for backends that take SPIR-V
// instead of WGSL.
func CompileSPIRV(p Program) ([]uint32, error) {
	src := Source(p)
	if src == "" {
		return nil, fmt.Errorf("%w: %v", ErrEmptyShader, p)
	}

	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile %v shader: %w", p, err)
	}

	// SPIR-V is little-endian 32-bit words
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}
