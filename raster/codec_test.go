package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampBand(w, h int) *Float32 {
	b := NewFloat32(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Set(x, y, float32(x+y*w)*0.5-3)
		}
	}
	return b
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		ok       bool
	}{
		{path: "a/b/energy.tif", expected: FormatTIFF, ok: true},
		{path: "x.TIFF", expected: FormatTIFF, ok: true},
		{path: "x.png", expected: FormatPNG, ok: true},
		{path: "x.webp", expected: FormatWebP, ok: true},
		{path: "x.JPG", expected: FormatJPEG, ok: true},
		{path: "x.bmp", ok: false},
	}
	for _, tt := range tests {
		got, ok := FormatFromPath(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.expected, got, tt.path)
	}
}

func TestEncodeDecodePNG(t *testing.T) {
	band := rampBand(8, 4)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, band, FormatPNG))

	img, err := Decode(&buf, FormatPNG)
	require.NoError(t, err)
	b := FromImage(img)
	assert.Equal(t, band.Rect, b.Rect)
	assert.Equal(t, 0.0, b.At(0, 0))
	assert.Equal(t, 255.0, b.At(7, 3))

	prev := -1.0
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			v := b.At(x, y)
			assert.GreaterOrEqual(t, v, prev, "ramp stays monotonic")
			prev = v
		}
	}
}

func TestEncodeDecodeTIFF(t *testing.T) {
	band := rampBand(5, 5)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, band, FormatTIFF))

	img, err := Decode(&buf, FormatTIFF)
	require.NoError(t, err)
	_, ok := img.(*image.Gray16)
	require.True(t, ok, "16-bit gray survives the round trip, got %T", img)

	b := FromImage(img)
	assert.Equal(t, 0.0, b.At(0, 0))
	assert.Equal(t, 65535.0, b.At(4, 4))
}

func TestEncodeRejectsDecodeOnlyFormats(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, rampBand(2, 2), FormatWebP))
	assert.Error(t, Encode(&buf, rampBand(2, 2), Format("bmp")))
	_, err := Decode(&buf, Format("bmp"))
	assert.Error(t, err)
	_, err = Decode(bytes.NewReader([]byte("not a png")), FormatPNG)
	assert.Error(t, err)
}

func TestDecodeWebP(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	var buf bytes.Buffer
	require.NoError(t, webp.Encode(&buf, img, &webp.Options{Lossless: true}))

	got, err := Decode(&buf, FormatWebP)
	require.NoError(t, err)
	assert.Equal(t, 16, got.Bounds().Dx())
	g := color.GrayModel.Convert(got.At(8, 8)).(color.Gray)
	assert.InDelta(t, 128, int(g.Y), 2)
}

func TestDecodeFileWithScale(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.png")

	img := image.NewGray(image.Rect(0, 0, 32, 16))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	full, err := DecodeFile(path, DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 16), full.Rect)
	assert.Equal(t, 5.0, full.At(5, 0))

	half, err := DecodeFile(path, DecodeOptions{Scale: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 16, half.Rect.Dx())
	assert.Equal(t, 8, half.Rect.Dy())

	_, err = DecodeFile(filepath.Join(dir, "missing.png"), DecodeOptions{})
	assert.Error(t, err)
	_, err = DecodeFile(filepath.Join(dir, "in.raw"), DecodeOptions{Scale: 0.5})
	assert.Error(t, err, "scaling needs a Go decoder")
}

func TestEncodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "energy.tif")
	require.NoError(t, EncodeFile(path, rampBand(4, 3), FormatTIFF))

	b, err := DecodeFile(path, DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), b.Rect)

	assert.Error(t, EncodeFile(filepath.Join(t.TempDir(), "missing", "x.png"), rampBand(1, 1), FormatPNG))
}

func TestStretch(t *testing.T) {
	assert.Equal(t, float32(0), stretch(1, 1, 3, 255))
	assert.Equal(t, float32(128), stretch(2, 1, 3, 255))
	assert.Equal(t, float32(255), stretch(3, 1, 3, 255))
	assert.Equal(t, float32(0), stretch(5, 5, 5, 255), "constant band")
	assert.Equal(t, float32(0), stretch(float32(math.NaN()), 0, 1, 255))

	constant := NewFloat32(image.Rect(0, 0, 3, 1))
	for i := range constant.Pix {
		constant.Pix[i] = 0.25
	}
	assert.Equal(t, []uint8{0, 0, 0}, StretchGray(constant).Pix)

	band := rampBand(3, 1)
	band.Set(1, 0, float32(math.Inf(1)))
	lo, hi, ok := band.Range()
	require.True(t, ok)
	assert.Equal(t, float32(-3), lo)
	assert.Equal(t, float32(-2), hi)
	g := StretchGray16(band)
	assert.Equal(t, color.Gray16{Y: 0}, g.Gray16At(0, 0))
	assert.Equal(t, color.Gray16{Y: 0}, g.Gray16At(1, 0))
	assert.Equal(t, color.Gray16{Y: 65535}, g.Gray16At(2, 0))
}
