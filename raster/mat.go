package raster

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// FromMat copies a single-channel OpenCV matrix into a raster at the origin.
//
// Supported depths are 8-bit and 16-bit unsigned, 16-bit signed, 32-bit and
// 64-bit floating point.
//
// Arguments:
//   - mat: The matrix to copy. It is not closed.
//
// Returns:
//   - *Float64: The raster.
//   - error: If the matrix is empty, multi-channel or of an unsupported depth.
func FromMat(mat gocv.Mat) (*Float64, error) {
	if mat.Empty() {
		return nil, errors.New("raster: mat is empty")
	}
	if mat.Channels() != 1 {
		return nil, errors.Errorf("raster: mat has %d channels, want 1", mat.Channels())
	}

	rows, cols := mat.Rows(), mat.Cols()
	dst := NewFloat64(image.Rect(0, 0, cols, rows))

	var at func(row, col int) float64
	switch mat.Type() {
	case gocv.MatTypeCV8UC1:
		at = func(row, col int) float64 { return float64(mat.GetUCharAt(row, col)) }
	case gocv.MatTypeCV16UC1:
		at = func(row, col int) float64 { return float64(uint16(mat.GetShortAt(row, col))) }
	case gocv.MatTypeCV16SC1:
		at = func(row, col int) float64 { return float64(mat.GetShortAt(row, col)) }
	case gocv.MatTypeCV32FC1:
		at = func(row, col int) float64 { return float64(mat.GetFloatAt(row, col)) }
	case gocv.MatTypeCV64FC1:
		at = func(row, col int) float64 { return mat.GetDoubleAt(row, col) }
	default:
		return nil, errors.Errorf("raster: unsupported mat type %v", mat.Type())
	}

	for y := 0; y < rows; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+cols]
		for x := range row {
			row[x] = at(y, x)
		}
	}
	return dst, nil
}

// ReadMat decodes path with OpenCV, keeping the native bit depth and reducing
// color images to a single luminance channel.
func ReadMat(path string) (*Float64, error) {
	mat := gocv.IMRead(path, gocv.IMReadGrayScale|gocv.IMReadAnyDepth)
	defer mat.Close()
	if mat.Empty() {
		return nil, errors.Errorf("raster: opencv could not decode %s", path)
	}
	return FromMat(mat)
}
