package texture

import (
	"context"
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-texture/raster"
)

func mustRaster(t testing.TB, rows [][]float64) *raster.Float64 {
	t.Helper()
	b, err := raster.NewFloat64FromRows(rows)
	require.NoError(t, err)
	return b
}

// noiseRows returns a deterministic pseudo-random w x h image in [0, 256).
func noiseRows(w, h int, seed uint32) [][]float64 {
	rows := make([][]float64, h)
	for y := range rows {
		rows[y] = make([]float64, w)
		for x := range rows[y] {
			v := uint32(x+y*w)*1103515245 + 12345 + seed*2654435761
			rows[y][x] = float64(v >> 24)
		}
	}
	return rows
}

// withHoles sets every n-th sample to NaN.
func withHoles(rows [][]float64, n int) [][]float64 {
	i := 0
	for y := range rows {
		for x := range rows[y] {
			if i%n == 0 {
				rows[y][x] = math.NaN()
			}
			i++
		}
	}
	return rows
}

// failingSource fails every read that touches bad.
type failingSource struct {
	*raster.Float64
	bad image.Rectangle
	err error
}

func (s *failingSource) Read(ctx context.Context, r image.Rectangle) (*raster.Float64, error) {
	if r.Overlaps(s.bad) {
		return nil, s.err
	}
	return s.Float64.Read(ctx, r)
}

// blockingSource blocks every read until release is closed.
type blockingSource struct {
	*raster.Float64
	entered chan struct{}
	release chan struct{}
}

func (s *blockingSource) Read(ctx context.Context, r image.Rectangle) (*raster.Float64, error) {
	select {
	case s.entered <- struct{}{}:
	default:
	}
	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.Float64.Read(ctx, r)
}

// shiftedSource returns a raster with the wrong bounds.
type shiftedSource struct {
	*raster.Float64
}

func (s shiftedSource) Read(ctx context.Context, r image.Rectangle) (*raster.Float64, error) {
	return raster.NewFloat64(r.Add(image.Pt(1, 0))), nil
}

func requireSameBands(t *testing.T, want, got *Result) {
	t.Helper()
	require.Equal(t, want.Rect, got.Rect)
	for _, f := range AllFeatures() {
		require.Equal(t, want.Band(f).Pix, got.Band(f).Pix, "band %s", f)
	}
}
