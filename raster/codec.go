package raster

import (
	"bytes"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"golang.org/x/image/tiff"
)

// Format identifies an on-disk raster encoding.
type Format string

const (
	// FormatTIFF is a 16-bit grayscale TIFF.
	FormatTIFF Format = "tiff"
	// FormatPNG is an 8-bit grayscale PNG.
	FormatPNG Format = "png"
	// FormatWebP is a WebP image (decode only).
	FormatWebP Format = "webp"
	// FormatJPEG is a JPEG image (decode only).
	FormatJPEG Format = "jpeg"
)

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		return FormatTIFF, true
	case ".png":
		return FormatPNG, true
	case ".webp":
		return FormatWebP, true
	case ".jpg", ".jpeg":
		return FormatJPEG, true
	}
	return "", false
}

// Decode reads an encoded image and returns it without conversion.
//
// Arguments:
//   - r: The encoded bytes.
//   - format: The encoding of r.
//
// Returns:
//   - image.Image: The decoded image.
//   - error: If decoding fails.
func Decode(r io.Reader, format Format) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	switch format {
	case FormatTIFF:
		img, err = tiff.Decode(r)
	case FormatWebP:
		img, err = webp.Decode(r)
	case FormatPNG, FormatJPEG:
		img, _, err = image.Decode(r)
	default:
		return nil, errors.Errorf("raster: unsupported format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", format)
	}
	return img, nil
}

// DecodeOptions tunes DecodeFile.
type DecodeOptions struct {
	// Scale downsamples the decoded image when in (0, 1).
	Scale float64
}

// DecodeFile loads path as a single-band raster.
//
// Known extensions are decoded in Go; anything else is handed to OpenCV.
//
// Arguments:
//   - path: The file to load.
//   - opts: Decoding options.
//
// Returns:
//   - *Float64: The raster.
//   - error: If the file cannot be read or decoded.
func DecodeFile(path string, opts DecodeOptions) (*Float64, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		if opts.Scale > 0 && opts.Scale < 1 {
			return nil, errors.Errorf("raster: scaling is not supported for %s", path)
		}
		return ReadMat(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "raster: read file")
	}
	img, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Wrapf(err, "raster: %s", path)
	}
	return FromImage(Downsample(img, opts.Scale)), nil
}

// Encode writes band to w in the given format after stretching it to the
// format's full gray range.
func Encode(w io.Writer, band *Float32, format Format) error {
	switch format {
	case FormatTIFF:
		return errors.Wrap(tiff.Encode(w, StretchGray16(band), &tiff.Options{Compression: tiff.Deflate, Predictor: true}), "encode tiff")
	case FormatPNG:
		return errors.Wrap(png.Encode(w, StretchGray(band)), "encode png")
	default:
		return errors.Errorf("raster: cannot encode format %q", format)
	}
}

// EncodeFile writes band to path in the given format.
func EncodeFile(path string, band *Float32, format Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "raster: create file")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "raster: close file")
		}
	}()
	return Encode(f, band, format)
}
