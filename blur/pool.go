package blur

import (
	"image"
	"sync"

	"github.com/gogpu/fx"
)

// pixmapPool recycles intermediate pass images.
//
// Images are grouped by size. A pass chain asks for the same sequence of
// sizes every frame, so after the first run every Get is served from the
// pool. Pixel contents of a reused image are undefined; every pass writes
// all of its target pixels.
//
// Thread safety: all methods are safe for concurrent use.
type pixmapPool struct {
	mu      sync.Mutex
	buckets map[image.Point][]*fx.Pixmap
	maxSize int // max images per size
}

func newPixmapPool(maxPerBucket int) *pixmapPool {
	return &pixmapPool{
		buckets: make(map[image.Point][]*fx.Pixmap),
		maxSize: maxPerBucket,
	}
}

func (p *pixmapPool) get(width, height int) *fx.Pixmap {
	key := image.Pt(width, height)

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		pm := bucket[n-1]
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()
		return pm
	}
	p.mu.Unlock()

	return fx.NewPixmap(width, height)
}

func (p *pixmapPool) put(pm *fx.Pixmap) {
	if pm == nil {
		return
	}
	key := image.Pt(pm.Width(), pm.Height())

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, pm)
}

// len returns the number of pooled images.
func (p *pixmapPool) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
