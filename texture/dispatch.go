package texture

import (
	"context"
	"image"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/nvr-ai/go-texture/raster"
)

// Compute extracts all eight features for every pixel of region.
//
// The region is split into horizontal tiles that are processed concurrently.
// Each tile negotiates its input with InputRegion, pulls it from src and scans
// its pixels into the shared result; tiles own disjoint rows. The output does
// not depend on the tile count, the worker count or the schedule.
//
// If any tile fails, the remaining tiles are abandoned and no result is
// returned.
//
// Arguments:
//   - ctx: Cancels the scan between rows.
//   - src: The upstream raster.
//   - region: The output region, which must lie inside src.Bounds().
//
// Returns:
//   - *Result: The eight feature bands covering region.
//   - error: ErrQuantizationUnset, a *RegionError or the context error.
func (f *Filter) Compute(ctx context.Context, src raster.Source, region image.Rectangle) (*Result, error) {
	p, err := f.begin()
	if err != nil {
		return nil, err
	}
	defer f.end()

	if err := checkRegion(region, src.Bounds()); err != nil {
		return nil, err
	}

	start := time.Now()
	out := NewResult(region)
	workers := f.workerCount()
	tiles := SplitTiles(region, f.tileCount(region, workers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, tile := range tiles {
		g.Go(func() error {
			return f.computeTile(gctx, p, src, tile, out)
		})
	}
	if err := g.Wait(); err != nil {
		f.log.Error().Err(err).
			Str("region", region.String()).
			Msg("texture scan failed")
		return nil, err
	}

	f.log.Info().
		Str("region", region.String()).
		Int("tiles", len(tiles)).
		Int("workers", workers).
		Dur("elapsed", time.Since(start)).
		Msg("texture scan complete")
	return out, nil
}

// ComputeRegion scans a single tile into out. It is the building block of
// Compute and lets callers drive their own scheduling.
//
// Arguments:
//   - ctx: Cancels the scan between rows.
//   - src: The upstream raster.
//   - tile: The pixels to compute, inside both src.Bounds() and out.Rect.
//   - out: The destination bands.
//
// Returns:
//   - error: ErrQuantizationUnset, a *RegionError or the context error. On
//     error the tile's pixels in out are undefined.
func (f *Filter) ComputeRegion(ctx context.Context, src raster.Source, tile image.Rectangle, out *Result) error {
	p, err := f.begin()
	if err != nil {
		return err
	}
	defer f.end()

	if err := checkRegion(tile, src.Bounds()); err != nil {
		return err
	}
	if !tile.In(out.Rect) {
		return &RegionError{Region: tile, Err: errors.Errorf("outside result bounds %v", out.Rect)}
	}
	return f.computeTile(ctx, p, src, tile, out)
}

func checkRegion(region, bounds image.Rectangle) error {
	if region.Empty() {
		return &RegionError{Region: region, Err: errors.New("empty output region")}
	}
	if !region.In(bounds) {
		return &RegionError{Region: region, Err: errors.Wrapf(raster.ErrOutOfBounds, "source bounds %v", bounds)}
	}
	return nil
}

func (f *Filter) computeTile(ctx context.Context, p scanParams, src raster.Source, tile image.Rectangle, out *Result) (err error) {
	start := time.Now()
	if f.observer != nil {
		defer func() { f.observer.ObserveTile(tile, time.Since(start), err) }()
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	bounds := src.Bounds()
	need := InputRegion(tile, p.radius, p.offset, bounds)
	in, err := src.Read(ctx, need)
	if err != nil {
		return &RegionError{Region: tile, Err: errors.Wrapf(err, "read input %v", need)}
	}
	if in.Rect != need {
		return &RegionError{Region: tile, Err: errors.Errorf("source returned %v for input %v", in.Rect, need)}
	}

	bins := p.quant.Bins()
	tb := f.pool.get(bins)
	defer f.pool.put(tb)
	s := newWindowScanner(in, p.quant, p.radius, p.offset, bounds, tb.bins)
	tb.bins = s.bins
	acc := tb.acc

	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		for x := tile.Min.X; x < tile.Max.X; x++ {
			c := image.Point{X: x, Y: y}
			if x == tile.Min.X || p.rebuild {
				s.scan(c, acc)
			} else {
				s.slide(c, acc)
			}
			feats, _ := ComputeFeatures(acc.Normalized(), acc.MarginalRowSums(), bins)
			out.set(x, y, feats)
		}
	}

	f.log.Debug().
		Str("tile", tile.String()).
		Str("input", need.String()).
		Dur("elapsed", time.Since(start)).
		Msg("tile done")
	return nil
}

// SplitTiles partitions region into at most n horizontal strips of near-equal
// height. The strips are disjoint and cover region exactly.
func SplitTiles(region image.Rectangle, n int) []image.Rectangle {
	rows := region.Dy()
	if region.Empty() {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > rows {
		n = rows
	}

	tiles := make([]image.Rectangle, 0, n)
	base, extra := rows/n, rows%n
	y := region.Min.Y
	for i := 0; i < n; i++ {
		h := base
		if i < extra {
			h++
		}
		tiles = append(tiles, image.Rect(region.Min.X, y, region.Max.X, y+h))
		y += h
	}
	return tiles
}

func (f *Filter) tileCount(region image.Rectangle, workers int) int {
	if f.tiles > 0 {
		return f.tiles
	}
	rows := region.Dy()
	chunk := chooseChunk(rows)
	n := (rows + chunk - 1) / chunk
	if n < workers {
		n = workers
	}
	return n
}

// chooseChunk picks a strip height that balances scheduling overhead and cache
// locality of the resident input block.
func chooseChunk(n int) int {
	switch {
	case n >= 2048:
		return 128
	case n >= 512:
		return 64
	default:
		return 32
	}
}
