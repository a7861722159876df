// Package raster provides the single-band floating point rasters used as texture input and output.
//
// The layout mirrors the standard library image types: Pix holds the samples in
// row-major order, Stride is the distance between vertically adjacent samples and
// Rect is the raster's bounds, which need not start at the origin.
package raster

import (
	"context"
	"image"
	"math"

	"github.com/pkg/errors"
)

// ErrOutOfBounds is returned when a read requests samples outside a source.
var ErrOutOfBounds = errors.New("raster: region outside source bounds")

// Source supplies pixel values for bounds-clipped sub-regions on demand.
//
// Read must return a raster whose Rect equals the requested region. Callers treat
// the returned samples as read-only, so implementations may return shared views.
type Source interface {
	// Bounds reports the full valid extent of the source.
	Bounds() image.Rectangle
	// Read returns the samples covering r.
	Read(ctx context.Context, r image.Rectangle) (*Float64, error)
}

// Float64 is an in-memory single-band raster of float64 samples.
type Float64 struct {
	// Pix holds the samples, row-major.
	Pix []float64
	// Stride is the Pix distance between vertically adjacent samples.
	Stride int
	// Rect is the raster's bounds.
	Rect image.Rectangle
}

// NewFloat64 returns a zeroed raster with the given bounds.
func NewFloat64(r image.Rectangle) *Float64 {
	return &Float64{
		Pix:    make([]float64, r.Dx()*r.Dy()),
		Stride: r.Dx(),
		Rect:   r,
	}
}

// NewFloat64FromRows builds a raster at the origin from a slice of equally sized rows.
//
// Arguments:
//   - rows: The sample rows, rows[y][x].
//
// Returns:
//   - *Float64: The raster, or an error if the rows are ragged or empty.
//
// @example
//
//	band, err := raster.NewFloat64FromRows([][]float64{{1, 1, 2}, {1, 2, 2}, {2, 2, 1}})
func NewFloat64FromRows(rows [][]float64) (*Float64, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("raster: empty rows")
	}
	w := len(rows[0])
	b := NewFloat64(image.Rect(0, 0, w, len(rows)))
	for y, row := range rows {
		if len(row) != w {
			return nil, errors.Errorf("raster: row %d has %d samples, want %d", y, len(row), w)
		}
		copy(b.Pix[y*b.Stride:], row)
	}
	return b, nil
}

// Bounds returns the raster's bounds.
func (b *Float64) Bounds() image.Rectangle { return b.Rect }

// PixOffset returns the index of the sample at (x, y) in Pix.
func (b *Float64) PixOffset(x, y int) int {
	return (y-b.Rect.Min.Y)*b.Stride + (x - b.Rect.Min.X)
}

// At returns the sample at (x, y), or NaN outside the bounds.
func (b *Float64) At(x, y int) float64 {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return math.NaN()
	}
	return b.Pix[b.PixOffset(x, y)]
}

// Set stores v at (x, y). Writes outside the bounds are ignored.
func (b *Float64) Set(x, y int, v float64) {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return
	}
	b.Pix[b.PixOffset(x, y)] = v
}

// SubRaster returns a view of the part of b visible through r. The view shares
// samples with b.
func (b *Float64) SubRaster(r image.Rectangle) *Float64 {
	r = r.Intersect(b.Rect)
	if r.Empty() {
		return &Float64{}
	}
	i := b.PixOffset(r.Min.X, r.Min.Y)
	return &Float64{
		Pix:    b.Pix[i:],
		Stride: b.Stride,
		Rect:   r,
	}
}

// Read implements Source by returning a shared view of r.
func (b *Float64) Read(ctx context.Context, r image.Rectangle) (*Float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.Empty() || !r.In(b.Rect) {
		return nil, errors.Wrapf(ErrOutOfBounds, "read %v from %v", r, b.Rect)
	}
	return b.SubRaster(r), nil
}

// MinMax returns the smallest and largest finite samples. ok is false when the
// raster holds no finite sample.
func (b *Float64) MinMax() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for y := b.Rect.Min.Y; y < b.Rect.Max.Y; y++ {
		row := b.Pix[b.PixOffset(b.Rect.Min.X, y):]
		for _, v := range row[:b.Rect.Dx()] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi, lo <= hi
}

// Float32 is an in-memory single-band raster of float32 samples. Texture
// features are written into Float32 bands.
type Float32 struct {
	Pix    []float32
	Stride int
	Rect   image.Rectangle
}

// NewFloat32 returns a zeroed raster with the given bounds.
func NewFloat32(r image.Rectangle) *Float32 {
	return &Float32{
		Pix:    make([]float32, r.Dx()*r.Dy()),
		Stride: r.Dx(),
		Rect:   r,
	}
}

// Bounds returns the raster's bounds.
func (b *Float32) Bounds() image.Rectangle { return b.Rect }

// PixOffset returns the index of the sample at (x, y) in Pix.
func (b *Float32) PixOffset(x, y int) int {
	return (y-b.Rect.Min.Y)*b.Stride + (x - b.Rect.Min.X)
}

// At returns the sample at (x, y), or NaN outside the bounds.
func (b *Float32) At(x, y int) float32 {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return float32(math.NaN())
	}
	return b.Pix[b.PixOffset(x, y)]
}

// Set stores v at (x, y). Writes outside the bounds are ignored.
func (b *Float32) Set(x, y int, v float32) {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return
	}
	b.Pix[b.PixOffset(x, y)] = v
}

// Row returns the samples of row y restricted to the raster's width.
func (b *Float32) Row(y int) []float32 {
	i := b.PixOffset(b.Rect.Min.X, y)
	return b.Pix[i : i+b.Rect.Dx()]
}
