// Package profiler collects timing statistics for texture scans.
//
// A ScanProfiler is registered on a texture.Filter with texture.WithObserver and
// records every finished tile. Named phases such as decoding or encoding are
// timed with StartOperation. Report writes the collected statistics to a
// zerolog logger.
package profiler

import (
	"image"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TimeTracker tracks timing statistics of one operation over a rolling window.
type TimeTracker struct {
	name      string
	durations []time.Duration
	totalTime time.Duration
	minTime   time.Duration
	maxTime   time.Duration
	count     int64
}

func newTimeTracker(name string, capacity int) *TimeTracker {
	return &TimeTracker{
		name:      name,
		durations: make([]time.Duration, 0, capacity),
	}
}

// record adds d, dropping the oldest sample beyond maxSamples. Min and max
// cover every sample ever recorded.
func (t *TimeTracker) record(d time.Duration, maxSamples int) {
	if t.count == 0 || d < t.minTime {
		t.minTime = d
	}
	if d > t.maxTime {
		t.maxTime = d
	}
	t.count++

	t.durations = append(t.durations, d)
	t.totalTime += d
	if len(t.durations) > maxSamples {
		t.totalTime -= t.durations[0]
		t.durations = t.durations[1:]
	}
}

// Timing is a snapshot of a TimeTracker.
type Timing struct {
	Name  string        `json:"name"`
	Count int64         `json:"count"`
	Avg   time.Duration `json:"avg"`
	Min   time.Duration `json:"min"`
	Max   time.Duration `json:"max"`
	Total time.Duration `json:"total"`
}

func (t *TimeTracker) snapshot() Timing {
	s := Timing{
		Name:  t.name,
		Count: t.count,
		Min:   t.minTime,
		Max:   t.maxTime,
		Total: t.totalTime,
	}
	if n := len(t.durations); n > 0 {
		s.Avg = t.totalTime / time.Duration(n)
	}
	return s
}

// Options configures a ScanProfiler.
type Options struct {
	// MaxSamples bounds the rolling window per operation (default: 4096).
	MaxSamples int
}

// ScanProfiler records tile and phase timings. It is safe for concurrent use.
type ScanProfiler struct {
	mu         sync.Mutex
	maxSamples int
	startTime  time.Time

	tiles     *TimeTracker
	pixels    int64
	failures  int64
	lastError error

	operations map[string]*TimeTracker
}

// New returns an empty profiler.
//
// Arguments:
//   - opts: The profiler options.
//
// Returns:
//   - *ScanProfiler: The profiler, with its clock started.
func New(opts Options) *ScanProfiler {
	if opts.MaxSamples <= 0 {
		opts.MaxSamples = 4096
	}
	return &ScanProfiler{
		maxSamples: opts.MaxSamples,
		startTime:  time.Now(),
		tiles:      newTimeTracker("tile", opts.MaxSamples),
		operations: make(map[string]*TimeTracker),
	}
}

// ObserveTile records one finished tile. Failed tiles are counted but their
// durations are not mixed into the timings.
func (p *ScanProfiler) ObserveTile(tile image.Rectangle, elapsed time.Duration, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.failures++
		p.lastError = err
		return
	}
	p.tiles.record(elapsed, p.maxSamples)
	p.pixels += int64(tile.Dx() * tile.Dy())
}

// StartOperation begins timing a named phase.
//
// Arguments:
//   - name: The phase name, e.g. "decode".
//
// Returns:
//   - func(): Call when the phase completes.
func (p *ScanProfiler) StartOperation(name string) func() {
	start := time.Now()
	return func() {
		p.recordOperation(name, time.Since(start))
	}
}

func (p *ScanProfiler) recordOperation(name string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, ok := p.operations[name]
	if !ok {
		t = newTimeTracker(name, 16)
		p.operations[name] = t
	}
	t.record(d, p.maxSamples)
}

// Stats is a snapshot of everything a profiler recorded.
type Stats struct {
	Uptime     time.Duration `json:"uptime"`
	Tiles      Timing        `json:"tiles"`
	Pixels     int64         `json:"pixels"`
	Failures   int64         `json:"failures"`
	LastError  error         `json:"-"`
	Operations []Timing      `json:"operations"`
	HeapAlloc  uint64        `json:"heap_alloc"`
	NumGC      uint32        `json:"num_gc"`
}

// PixelsPerSecond is the scan throughput measured over summed tile time.
func (s Stats) PixelsPerSecond() float64 {
	if s.Tiles.Total <= 0 {
		return 0
	}
	return float64(s.Pixels) / s.Tiles.Total.Seconds()
}

// Stats returns the current statistics. Operations are sorted by name.
func (p *ScanProfiler) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	s := Stats{
		Uptime:     time.Since(p.startTime),
		Tiles:      p.tiles.snapshot(),
		Pixels:     p.pixels,
		Failures:   p.failures,
		LastError:  p.lastError,
		Operations: make([]Timing, 0, len(p.operations)),
		HeapAlloc:  mem.HeapAlloc,
		NumGC:      mem.NumGC,
	}
	for _, t := range p.operations {
		s.Operations = append(s.Operations, t.snapshot())
	}
	sort.Slice(s.Operations, func(i, j int) bool { return s.Operations[i].Name < s.Operations[j].Name })
	return s
}

// Report writes the statistics to log at info level, one event for the tiles
// and one per operation.
func (p *ScanProfiler) Report(log zerolog.Logger) {
	s := p.Stats()

	ev := log.Info().
		Dur("uptime", s.Uptime.Truncate(time.Millisecond)).
		Int64("tiles", s.Tiles.Count).
		Int64("pixels", s.Pixels).
		Int64("failures", s.Failures).
		Dur("tile_avg", s.Tiles.Avg.Truncate(time.Microsecond)).
		Dur("tile_min", s.Tiles.Min.Truncate(time.Microsecond)).
		Dur("tile_max", s.Tiles.Max.Truncate(time.Microsecond)).
		Float64("pixels_per_sec", s.PixelsPerSecond()).
		Str("heap_alloc", formatBytes(s.HeapAlloc)).
		Uint32("gc_cycles", s.NumGC)
	if s.LastError != nil {
		ev = ev.AnErr("last_error", s.LastError)
	}
	ev.Msg("scan profile")

	for _, op := range s.Operations {
		log.Info().
			Str("operation", op.Name).
			Int64("count", op.Count).
			Dur("avg", op.Avg.Truncate(time.Microsecond)).
			Dur("min", op.Min.Truncate(time.Microsecond)).
			Dur("max", op.Max.Truncate(time.Microsecond)).
			Msg("operation timing")
	}
}
