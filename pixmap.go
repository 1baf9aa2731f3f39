package fx

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	fxcolor "github.com/gogpu/fx/internal/color"
)

// Sampler is a texture bound to an effect: Sample returns the filtered
// color at normalized coordinates, where (0,0) is the top-left corner of
// the first texel and (1,1) the bottom-right corner of the last.
type Sampler interface {
	Sample(u, v float64) RGBA
}

// Pixmap is a floating-point RGBA image, the software stand-in for a GPU
// texture or framebuffer.
//
// Pixels are stored unclamped, so intermediate blur stages keep values
// outside [0,1] exactly as a float framebuffer would. Colors written by the
// renderers are premultiplied.
type Pixmap struct {
	width  int
	height int
	data   []float32 // RGBA, 4 floats per pixel
}

// NewPixmap creates a transparent pixmap with the given dimensions.
// Non-positive dimensions yield an empty pixmap.
func NewPixmap(width, height int) *Pixmap {
	width = max(width, 0)
	height = max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]float32, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data.
func (p *Pixmap) Data() []float32 {
	return p.data
}

// SetPixel sets the color of a single pixel. Out-of-bounds writes are
// ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = float32(c.R)
	p.data[i+1] = float32(c.G)
	p.data[i+2] = float32(c.B)
	p.data[i+3] = float32(c.A)
}

// GetPixel returns the color of a single pixel, or Transparent outside the
// pixmap.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: float64(p.data[i+0]),
		G: float64(p.data[i+1]),
		B: float64(p.data[i+2]),
		A: float64(p.data[i+3]),
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	r, g, b, a := float32(c.R), float32(c.G), float32(c.B), float32(c.A)
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	c := &Pixmap{width: p.width, height: p.height, data: make([]float32, len(p.data))}
	copy(c.data, p.data)
	return c
}

// Sample implements Sampler with bilinear filtering and clamp-to-edge
// addressing, matching a GL texture configured with LINEAR filtering and
// CLAMP_TO_EDGE wrapping.
func (p *Pixmap) Sample(u, v float64) RGBA {
	if p.width == 0 || p.height == 0 {
		return Transparent
	}

	sx := u*float64(p.width) - 0.5
	sy := v*float64(p.height) - 0.5

	x0 := int(math.Floor(sx))
	y0 := int(math.Floor(sy))
	tx := sx - float64(x0)
	ty := sy - float64(y0)

	x1 := clampInt(x0+1, 0, p.width-1)
	y1 := clampInt(y0+1, 0, p.height-1)
	x0 = clampInt(x0, 0, p.width-1)
	y0 = clampInt(y0, 0, p.height-1)

	c00 := p.GetPixel(x0, y0)
	c10 := p.GetPixel(x1, y0)
	c01 := p.GetPixel(x0, y1)
	c11 := p.GetPixel(x1, y1)

	top := c00.Mix(c10, tx)
	bottom := c01.Mix(c11, tx)
	return top.Mix(bottom, ty)
}

// SampleNearest returns the texel containing (u, v), clamped to the edge.
func (p *Pixmap) SampleNearest(u, v float64) RGBA {
	if p.width == 0 || p.height == 0 {
		return Transparent
	}
	x := clampInt(int(math.Floor(u*float64(p.width))), 0, p.width-1)
	y := clampInt(int(math.Floor(v*float64(p.height))), 0, p.height-1)
	return p.GetPixel(x, y)
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ToImage converts the pixmap to an 8-bit premultiplied image, clamping
// every channel to [0,1].
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	for i := 0; i < len(p.data); i += 4 {
		c := p.pixelRGBA(i)
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// FromImage creates a premultiplied pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())

	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < pm.height; y++ {
			row := rgba.Pix[rgba.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			for x := 0; x < pm.width; x++ {
				c := fxcolor.U8ToF32(fxcolor.ColorU8{R: row[x*4], G: row[x*4+1], B: row[x*4+2], A: row[x*4+3]})
				i := (y*pm.width + x) * 4
				pm.data[i+0] = c.R
				pm.data[i+1] = c.G
				pm.data[i+2] = c.B
				pm.data[i+3] = c.A
			}
		}
		return pm
	}

	for y := 0; y < pm.height; y++ {
		for x := 0; x < pm.width; x++ {
			c := color.RGBA64Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA64)
			i := (y*pm.width + x) * 4
			pm.data[i+0] = float32(c.R) / 65535
			pm.data[i+1] = float32(c.G) / 65535
			pm.data[i+2] = float32(c.B) / 65535
			pm.data[i+3] = float32(c.A) / 65535
		}
	}
	return pm
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, p.ToImage()); err != nil {
		_ = f.Close()
		return fmt.Errorf("fx: encode %s: %w", path, err)
	}
	return f.Close()
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * 4
	return p.pixelRGBA(i)
}

// pixelRGBA converts the pixel at data offset i to a valid 8-bit
// premultiplied color.
func (p *Pixmap) pixelRGBA(i int) color.RGBA {
	u := fxcolor.F32ToU8(fxcolor.ColorF32{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]})
	return color.RGBA{R: min(u.R, u.A), G: min(u.G, u.A), B: min(u.B, u.A), A: u.A}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}
