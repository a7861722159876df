package raster

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

// Range returns the smallest and largest finite samples of band. ok is false
// when no finite sample exists.
func (b *Float32) Range() (lo, hi float32, ok bool) {
	lo, hi = math32.Inf(1), math32.Inf(-1)
	for y := b.Rect.Min.Y; y < b.Rect.Max.Y; y++ {
		for _, v := range b.Row(y) {
			if math32.IsNaN(v) || math32.IsInf(v, 0) {
				continue
			}
			lo = math32.Min(lo, v)
			hi = math32.Max(hi, v)
		}
	}
	return lo, hi, lo <= hi
}

// stretch maps v from [lo, hi] onto [0, top]. Non-finite samples map to 0 and
// a constant band maps to 0 everywhere.
func stretch(v, lo, hi, top float32) float32 {
	if math32.IsNaN(v) || math32.IsInf(v, 0) || hi <= lo {
		return 0
	}
	s := (v - lo) / (hi - lo) * top
	return math32.Max(0, math32.Min(top, math32.Floor(s+0.5)))
}

// StretchGray linearly rescales band onto 8-bit gray.
func StretchGray(band *Float32) *image.Gray {
	dst := image.NewGray(band.Rect)
	lo, hi, _ := band.Range()
	for y := band.Rect.Min.Y; y < band.Rect.Max.Y; y++ {
		for i, v := range band.Row(y) {
			dst.SetGray(band.Rect.Min.X+i, y, color.Gray{Y: uint8(stretch(v, lo, hi, 255))})
		}
	}
	return dst
}

// StretchGray16 linearly rescales band onto 16-bit gray.
func StretchGray16(band *Float32) *image.Gray16 {
	dst := image.NewGray16(band.Rect)
	lo, hi, _ := band.Range()
	for y := band.Rect.Min.Y; y < band.Rect.Max.Y; y++ {
		for i, v := range band.Row(y) {
			dst.SetGray16(band.Rect.Min.X+i, y, color.Gray16{Y: uint16(stretch(v, lo, hi, 65535))})
		}
	}
	return dst
}
