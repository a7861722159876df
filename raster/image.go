package raster

import (
	"image"
	"image/color"

	"github.com/nfnt/resize"
)

// FromImage converts an image into a single-band raster, keeping its bounds.
//
// Gray and Gray16 images keep their native sample values (0-255 and 0-65535).
// Any other color model is reduced to 16-bit luminance first.
//
// Arguments:
//   - img: The source image.
//
// Returns:
//   - *Float64: The converted raster.
func FromImage(img image.Image) *Float64 {
	b := img.Bounds()
	dst := NewFloat64(b)

	switch src := img.(type) {
	case *image.Gray:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			si := src.PixOffset(b.Min.X, y)
			di := dst.PixOffset(b.Min.X, y)
			for x := 0; x < b.Dx(); x++ {
				dst.Pix[di+x] = float64(src.Pix[si+x])
			}
		}
	case *image.Gray16:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.Pix[dst.PixOffset(x, y)] = float64(src.Gray16At(x, y).Y)
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				g := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16)
				dst.Pix[dst.PixOffset(x, y)] = float64(g.Y)
			}
		}
	}
	return dst
}

// Downsample shrinks img by factor (0 < factor <= 1) with bilinear interpolation.
// A factor of 1 or outside (0, 1) returns img unchanged.
func Downsample(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor >= 1 {
		return img
	}
	b := img.Bounds()
	w := uint(float64(b.Dx()) * factor)
	h := uint(float64(b.Dy()) * factor)
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	return resize.Resize(w, h, img, resize.Bilinear)
}
