package texture

import (
	"image"

	"github.com/nvr-ai/go-texture/raster"
)

// Result holds the eight feature bands of a scan, all covering Rect.
type Result struct {
	Rect  image.Rectangle
	bands [NumFeatures]*raster.Float32
}

// NewResult allocates zeroed feature bands for r.
func NewResult(r image.Rectangle) *Result {
	res := &Result{Rect: r}
	for i := range res.bands {
		res.bands[i] = raster.NewFloat32(r)
	}
	return res
}

// Band returns the band of feature f, or nil for an unknown feature.
func (r *Result) Band(f Feature) *raster.Float32 {
	if f < 0 || int(f) >= NumFeatures {
		return nil
	}
	return r.bands[f]
}

// ByName returns the band with the given channel name, e.g. "haralickCorrelation".
func (r *Result) ByName(name string) (*raster.Float32, error) {
	f, err := ParseFeature(name)
	if err != nil {
		return nil, err
	}
	return r.bands[f], nil
}

// At returns every feature value at (x, y).
func (r *Result) At(x, y int) Features {
	var out Features
	for i, b := range r.bands {
		out[i] = float64(b.At(x, y))
	}
	return out
}

// set writes one pixel of every band. Tiles write disjoint pixels, so no
// locking is needed.
func (r *Result) set(x, y int, f Features) {
	for i, b := range r.bands {
		b.Pix[b.PixOffset(x, y)] = float32(f[i])
	}
}
