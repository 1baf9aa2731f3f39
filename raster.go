package fx

import (
	"fmt"

	"github.com/gogpu/fx/internal/parallel"
)

// Rasterizer runs a FragmentShader over an axis-aligned box of a Pixmap,
// the software counterpart of drawing one quad.
//
// Each pixel whose center lies inside the box is shaded once with its
// center as fragment coordinate and its position within the box as texture
// coordinate. Discarded fragments leave the destination untouched.
//
// A Rasterizer owns a worker pool; call Close when done with it.
type Rasterizer struct {
	pool  *parallel.WorkerPool
	blend BlendMode
}

// NewRasterizer creates a rasterizer.
func NewRasterizer(opts ...RasterOption) *Rasterizer {
	o := defaultRasterOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Rasterizer{
		pool:  parallel.NewWorkerPool(o.workers),
		blend: o.blend,
	}
	Logger().Debug("fx: rasterizer created", "workers", r.pool.Workers(), "blend", r.blend)
	return r
}

// Workers returns the number of goroutines shading in parallel.
func (r *Rasterizer) Workers() int {
	return r.pool.Workers()
}

// Draw shades box on dst with s.
//
// Returns ErrNilPixmap if dst is nil and ErrEmptyBox if the box has no
// area. A box entirely outside dst is not an error; nothing is drawn.
func (r *Rasterizer) Draw(dst *Pixmap, box Box, s FragmentShader) error {
	if dst == nil {
		return ErrNilPixmap
	}
	if box.Empty() {
		return fmt.Errorf("fx: draw %vx%v at (%v,%v): %w", box.W, box.H, box.X, box.Y, ErrEmptyBox)
	}

	px := box.Pixels(dst.Bounds())
	if px.Empty() {
		return nil
	}

	r.pool.ExecuteRows(px.Min.Y, px.Max.Y, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := px.Min.X; x < px.Max.X; x++ {
				coord := Pt(float64(x)+0.5, float64(y)+0.5)
				in := FragmentInput{
					Coord:    coord,
					TexCoord: Pt((coord.X-box.X)/box.W, (coord.Y-box.Y)/box.H),
				}
				f := s.Shade(in)
				if f.Discard {
					continue
				}
				r.write(dst, x, y, f.Color)
			}
		}
	})
	return nil
}

func (r *Rasterizer) write(dst *Pixmap, x, y int, src RGBA) {
	if r.blend == BlendReplace {
		dst.SetPixel(x, y, src)
		return
	}
	d := dst.GetPixel(x, y)
	dst.SetPixel(x, y, src.Add(d.Scale(1-src.A)))
}

// Close releases the worker pool. Close is safe to call multiple times.
func (r *Rasterizer) Close() {
	r.pool.Close()
}
