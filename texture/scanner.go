package texture

import (
	"image"

	"github.com/nvr-ai/go-texture/raster"
)

// windowScanner feeds the pixel pairs of a window into a Cooccurrence.
//
// The resident input block is quantized once up front so that each pixel is
// binned a single time per tile instead of once per window it falls into.
type windowScanner struct {
	radius image.Point
	offset image.Point
	// bounds is the full image extent; windows are clipped to it.
	bounds image.Rectangle
	// rect is the resident block, bins its quantized samples (-1 for no-data).
	rect image.Rectangle
	bins []int32
}

// newWindowScanner quantizes in. buf is reused when large enough.
func newWindowScanner(in *raster.Float64, q Quantizer, radius, offset image.Point, bounds image.Rectangle, buf []int32) *windowScanner {
	r := in.Rect
	n := r.Dx() * r.Dy()
	if cap(buf) < n {
		buf = make([]int32, n)
	}
	buf = buf[:n]

	w := r.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := in.Pix[in.PixOffset(r.Min.X, y):]
		dst := buf[(y-r.Min.Y)*w:]
		for x := 0; x < w; x++ {
			dst[x] = int32(q.Bin(src[x]))
		}
	}

	return &windowScanner{
		radius: radius,
		offset: offset,
		bounds: bounds,
		rect:   r,
		bins:   buf,
	}
}

func (s *windowScanner) binAt(x, y int) int32 {
	return s.bins[(y-s.rect.Min.Y)*s.rect.Dx()+(x-s.rect.Min.X)]
}

// pair returns the bins of the site (x, y) and of its offset neighbor. ok is
// false when the neighbor leaves the image or either site is no-data.
func (s *windowScanner) pair(x, y int) (i, j int, ok bool) {
	nx, ny := x+s.offset.X, y+s.offset.Y
	if !(image.Point{X: nx, Y: ny}.In(s.rect)) {
		return 0, 0, false
	}
	bi, bj := s.binAt(x, y), s.binAt(nx, ny)
	if bi < 0 || bj < 0 {
		return 0, 0, false
	}
	return int(bi), int(bj), true
}

// scan rebuilds acc from scratch for the window centered on center.
func (s *windowScanner) scan(center image.Point, acc *Cooccurrence) {
	acc.Reset()
	w := window(center, s.radius, s.bounds)
	for y := w.Min.Y; y < w.Max.Y; y++ {
		for x := w.Min.X; x < w.Max.X; x++ {
			if i, j, ok := s.pair(x, y); ok {
				acc.Insert(i, j)
			}
		}
	}
}

// slide updates acc, which holds the window of the pixel left of center, to
// hold the window of center: the column leaving on the left is removed and the
// column entering on the right is added.
func (s *windowScanner) slide(center image.Point, acc *Cooccurrence) {
	w := window(center, s.radius, s.bounds)
	s.column(center.X-s.radius.X-1, w.Min.Y, w.Max.Y, acc.Remove)
	s.column(center.X+s.radius.X, w.Min.Y, w.Max.Y, acc.Insert)
}

// column applies fn to every valid pair whose site lies in column x, rows
// [y0, y1). Columns outside the image contribute nothing.
func (s *windowScanner) column(x, y0, y1 int, fn func(i, j int)) {
	if x < s.bounds.Min.X || x >= s.bounds.Max.X {
		return
	}
	for y := y0; y < y1; y++ {
		if i, j, ok := s.pair(x, y); ok {
			fn(i, j)
		}
	}
}
