package fx

// BlendMode selects how a Rasterizer writes fragments into the destination.
type BlendMode uint8

const (
	// BlendSourceOver composites premultiplied fragments over the
	// destination: dst = src + dst*(1-src.a).
	BlendSourceOver BlendMode = iota

	// BlendReplace overwrites the destination pixel with the fragment.
	BlendReplace
)

// String returns a string representation of the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendSourceOver:
		return "SourceOver"
	case BlendReplace:
		return "Replace"
	default:
		return "Unknown"
	}
}

// RasterOption configures a Rasterizer during creation.
//
// Example:
//
//	// Default: GOMAXPROCS workers, source-over blending
//	r := fx.NewRasterizer()
//
//	// Single-threaded, overwriting the destination
//	r := fx.NewRasterizer(fx.WithWorkers(1), fx.WithBlend(fx.BlendReplace))
type RasterOption func(*rasterOptions)

type rasterOptions struct {
	workers int
	blend   BlendMode
}

func defaultRasterOptions() rasterOptions {
	return rasterOptions{
		workers: 0, // GOMAXPROCS
		blend:   BlendSourceOver,
	}
}

// WithWorkers sets the number of goroutines that shade rows in parallel.
// Zero or a negative value uses GOMAXPROCS.
func WithWorkers(n int) RasterOption {
	return func(o *rasterOptions) {
		o.workers = n
	}
}

// WithBlend sets how fragments are written into the destination.
func WithBlend(mode BlendMode) RasterOption {
	return func(o *rasterOptions) {
		o.blend = mode
	}
}
