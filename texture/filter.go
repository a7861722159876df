// Package texture computes local Haralick texture features over single-band
// rasters.
//
// For every output pixel a window of half-extent Radius is scanned; each window
// site is paired with the site displaced by Offset, both are quantized into
// Bins bins over [Min, Max], and the pair is recorded in a sparse symmetric
// co-occurrence accumulator. Eight descriptors are then derived from the
// normalized distribution and written to eight co-registered output bands.
//
// Usage:
//
//	f, err := texture.New(texture.Config{
//	    Radius: image.Pt(2, 2),
//	    Offset: image.Pt(1, 0),
//	    Bins:   8,
//	    Min:    0,
//	    Max:    255,
//	}, texture.WithWorkers(4))
//	if err != nil {
//	    return err
//	}
//	res, err := f.Compute(ctx, band, band.Bounds())
//	energy := res.Band(texture.Energy)
package texture

import (
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config is the complete parameter set of a texture scan.
type Config struct {
	// Radius is the window half-extent per axis. Both components must be >= 0.
	Radius image.Point `json:"radius" yaml:"radius"`
	// Offset is the co-occurrence displacement. Any integer vector is accepted.
	Offset image.Point `json:"offset" yaml:"offset"`
	// Bins is the number of quantization bins per axis, at least 2.
	Bins int `json:"bins" yaml:"bins"`
	// Min is the lower bound of the quantized range.
	Min float64 `json:"min" yaml:"min"`
	// Max is the upper bound of the quantized range, strictly above Min.
	Max float64 `json:"max" yaml:"max"`
}

// Validate checks every parameter and returns a *ConfigError for the first
// rejected one.
func (c Config) Validate() error {
	if err := validateRadius(c.Radius); err != nil {
		return err
	}
	_, err := NewQuantizer(c.Bins, c.Min, c.Max)
	return err
}

func validateRadius(r image.Point) error {
	if r.X < 0 || r.Y < 0 {
		return &ConfigError{Param: "radius", Value: r, Reason: "components must be >= 0"}
	}
	return nil
}

// Observer is notified when a tile finishes, successfully or not. It is called
// from worker goroutines and must be safe for concurrent use.
type Observer interface {
	ObserveTile(tile image.Rectangle, elapsed time.Duration, err error)
}

// Option configures a Filter.
type Option func(*Filter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(f *Filter) { f.log = log }
}

// WithWorkers bounds the number of tiles processed concurrently. Values <= 0
// select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(f *Filter) { f.workers = n }
}

// WithTiles fixes the number of tiles a region is split into. Values <= 0
// derive the count from the region height and the worker count.
func WithTiles(n int) Option {
	return func(f *Filter) { f.tiles = n }
}

// WithPool shares tile buffers between filters. Passing nil disables reuse.
func WithPool(p *Pool) Option {
	return func(f *Filter) { f.pool = p }
}

// WithObserver registers a tile observer.
func WithObserver(o Observer) Option {
	return func(f *Filter) { f.observer = o }
}

// Filter is a configured texture extractor. Setters are rejected with
// ErrScanInProgress while a scan runs; concurrent scans are allowed.
type Filter struct {
	mu       sync.Mutex
	radius   image.Point
	offset   image.Point
	quant    Quantizer
	quantSet bool
	running  int

	workers  int
	tiles    int
	pool     *Pool
	log      zerolog.Logger
	observer Observer

	// rebuild disables the sliding window and rebuilds every accumulator.
	rebuild bool
}

// NewFilter returns a filter with zero radius and offset. SetBinsAndMinMax must
// be called before the first scan.
func NewFilter(opts ...Option) *Filter {
	f := &Filter{
		pool: new(Pool),
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// New returns a filter fully configured from cfg.
//
// Arguments:
//   - cfg: The scan parameters.
//   - opts: Execution options.
//
// Returns:
//   - *Filter: The filter, ready to scan.
//   - error: A *ConfigError if cfg is rejected.
func New(cfg Config, opts ...Option) (*Filter, error) {
	f := NewFilter(opts...)
	if err := f.SetRadius(cfg.Radius); err != nil {
		return nil, err
	}
	if err := f.SetOffset(cfg.Offset); err != nil {
		return nil, err
	}
	if err := f.SetBinsAndMinMax(cfg.Bins, cfg.Min, cfg.Max); err != nil {
		return nil, err
	}
	return f, nil
}

// SetRadius sets the window half-extent.
func (f *Filter) SetRadius(r image.Point) error {
	if err := validateRadius(r); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running > 0 {
		return ErrScanInProgress
	}
	f.radius = r
	return nil
}

// SetOffset sets the co-occurrence displacement.
func (f *Filter) SetOffset(o image.Point) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running > 0 {
		return ErrScanInProgress
	}
	f.offset = o
	return nil
}

// SetBinsAndMinMax sets the quantization. The three values are validated and
// applied together.
func (f *Filter) SetBinsAndMinMax(bins int, min, max float64) error {
	q, err := NewQuantizer(bins, min, max)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running > 0 {
		return ErrScanInProgress
	}
	f.quant = q
	f.quantSet = true
	return nil
}

// Config returns the current parameters. Bins, Min and Max are zero until
// SetBinsAndMinMax succeeds.
func (f *Filter) Config() Config {
	f.mu.Lock()
	defer f.mu.Unlock()
	lo, hi := f.quant.Range()
	return Config{
		Radius: f.radius,
		Offset: f.offset,
		Bins:   f.quant.Bins(),
		Min:    lo,
		Max:    hi,
	}
}

// InputRegion reports the input a source must supply before output can be
// produced, for the filter's current radius and offset.
func (f *Filter) InputRegion(output, bounds image.Rectangle) image.Rectangle {
	f.mu.Lock()
	radius, offset := f.radius, f.offset
	f.mu.Unlock()
	return InputRegion(output, radius, offset, bounds)
}

// scanParams is the immutable snapshot a scan runs with.
type scanParams struct {
	radius  image.Point
	offset  image.Point
	quant   Quantizer
	rebuild bool
}

// begin snapshots the configuration and marks a scan as running.
func (f *Filter) begin() (scanParams, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.quantSet {
		return scanParams{}, ErrQuantizationUnset
	}
	f.running++
	return scanParams{
		radius:  f.radius,
		offset:  f.offset,
		quant:   f.quant,
		rebuild: f.rebuild,
	}, nil
}

func (f *Filter) end() {
	f.mu.Lock()
	f.running--
	f.mu.Unlock()
}

func (f *Filter) workerCount() int {
	if f.workers > 0 {
		return f.workers
	}
	return runtime.NumCPU()
}
