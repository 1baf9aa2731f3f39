package blur

import (
	"context"
	"fmt"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/internal/parallel"
)

// Option configures a Pipeline during creation.
type Option func(*options)

type options struct {
	workers   int
	maxPooled int
}

func defaultOptions() options {
	return options{
		workers:   0, // GOMAXPROCS
		maxPooled: 4,
	}
}

// WithWorkers sets the number of goroutines shading each pass.
// Zero or a negative value uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMaxPooled sets how many intermediate images of each size are kept
// for reuse between runs. Zero keeps all of them.
func WithMaxPooled(n int) Option {
	return func(o *options) {
		o.maxPooled = n
	}
}

// Pipeline runs the dual-Kawase blur over whole images:
//
//	prepare -> down x Passes -> up x Passes -> finish
//
// Each down pass halves the image (never below 1x1) and each up pass
// doubles it back through the same sizes, so the result has the size of
// the source. Stages run strictly in order; the pixels of one stage are
// shaded in parallel row bands.
//
// A Pipeline may run several blurs concurrently. Call Close when done.
type Pipeline struct {
	workers *parallel.WorkerPool
	images  *pixmapPool
}

// NewPipeline creates a blur pipeline.
func NewPipeline(opts ...Option) *Pipeline {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pipeline{
		workers: parallel.NewWorkerPool(o.workers),
		images:  newPixmapPool(o.maxPooled),
	}
}

// Run blurs src according to cfg and returns a new image of the same size.
// src is not modified.
//
// ctx is checked between stages: a cancelled run stops before the next
// stage starts and returns the context's error, never a partial image.
func (p *Pipeline) Run(ctx context.Context, src *fx.Pixmap, cfg Config) (*fx.Pixmap, error) {
	if src == nil {
		return nil, fx.ErrNilPixmap
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src.Width() == 0 || src.Height() == 0 {
		return fx.NewPixmap(src.Width(), src.Height()), nil
	}

	logger := fx.Logger()
	var held []*fx.Pixmap
	defer func() {
		for _, pm := range held {
			p.images.put(pm)
		}
	}()
	acquire := func(w, h int) *fx.Pixmap {
		pm := p.images.get(w, h)
		held = append(held, pm)
		return pm
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("blur: prepare: %w", err)
	}
	cur := acquire(src.Width(), src.Height())
	p.prepare(src, cur, cfg)

	sizes := make([][2]int, 0, cfg.Passes+1)
	sizes = append(sizes, [2]int{cur.Width(), cur.Height()})

	for i := range cfg.Passes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("blur: down pass %d: %w", i, err)
		}
		w, h := max(cur.Width()/2, 1), max(cur.Height()/2, 1)
		dst := acquire(w, h)
		pass := cfg.DownPass(cur.Width(), cur.Height())
		p.shade(dst, func(_, _ int, uv fx.Point) fx.RGBA {
			return Downsample(cur, uv.Mul(0.5), pass)
		})
		logger.Debug("blur: down pass", "index", i, "from", sizes[len(sizes)-1], "to", [2]int{w, h})
		cur = dst
		sizes = append(sizes, [2]int{w, h})
	}

	for i := range cfg.Passes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("blur: up pass %d: %w", i, err)
		}
		size := sizes[cfg.Passes-1-i]
		dst := acquire(size[0], size[1])
		pass := cfg.UpPass(cur.Width(), cur.Height())
		p.shade(dst, func(_, _ int, uv fx.Point) fx.RGBA {
			return Upsample(cur, uv.Mul(2), pass)
		})
		logger.Debug("blur: up pass", "index", i, "to", size)
		cur = dst
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("blur: finish: %w", err)
	}
	out := fx.NewPixmap(src.Width(), src.Height())
	fin := cfg.FinishPass()
	p.shade(out, func(x, y int, uv fx.Point) fx.RGBA {
		return Finish(cur.GetPixel(x, y), uv, fin)
	})
	return out, nil
}

func (p *Pipeline) prepare(src, dst *fx.Pixmap, cfg Config) {
	p.shade(dst, func(x, y int, _ fx.Point) fx.RGBA {
		return Prepare(src.GetPixel(x, y), cfg.Contrast, cfg.Brightness)
	})
}

// shade evaluates fn for every pixel of dst. uv is the pixel center in
// normalized coordinates of dst.
func (p *Pipeline) shade(dst *fx.Pixmap, fn func(x, y int, uv fx.Point) fx.RGBA) {
	w, h := float64(dst.Width()), float64(dst.Height())
	p.workers.ExecuteRows(0, dst.Height(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < dst.Width(); x++ {
				uv := fx.Pt((float64(x)+0.5)/w, (float64(y)+0.5)/h)
				dst.SetPixel(x, y, fn(x, y, uv))
			}
		}
	})
}

// Close releases the worker goroutines. Close is safe to call multiple
// times.
func (p *Pipeline) Close() {
	p.workers.Close()
}
