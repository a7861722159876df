// Package config loads the YAML configuration of the texture command.
//
// Example:
//
//	texture:
//	  radius: {x: 2, y: 2}
//	  offset: {x: 1, y: 0}
//	  bins: 8
//	  min: 0      # optional, derived from the input when omitted
//	  max: 255    # optional
//	execution:
//	  workers: 4
//	input:
//	  scale: 0.5
//	output:
//	  dir: out
//	  format: tiff
//	  features: [energy, entropy]
//	logging:
//	  level: info
//	  format: console
package config

import (
	"bytes"
	"image"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nvr-ai/go-texture/logging"
	"github.com/nvr-ai/go-texture/raster"
	"github.com/nvr-ai/go-texture/texture"
)

// Point is an integer vector in YAML form.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Image converts p to an image.Point.
func (p Point) Image() image.Point { return image.Pt(p.X, p.Y) }

// Texture holds the scan parameters.
type Texture struct {
	Radius Point `json:"radius" yaml:"radius"`
	Offset Point `json:"offset" yaml:"offset"`
	Bins   int   `json:"bins" yaml:"bins"`
	// Min and Max bound the quantized range. When either is nil it is taken
	// from the input's finite samples.
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// Execution controls concurrency.
type Execution struct {
	// Workers bounds concurrent tiles, 0 for one per CPU.
	Workers int `json:"workers" yaml:"workers"`
	// Tiles fixes the tile count, 0 to derive it.
	Tiles int `json:"tiles" yaml:"tiles"`
	// Profile logs per-tile timing after the scan.
	Profile bool `json:"profile" yaml:"profile"`
}

// Input controls decoding.
type Input struct {
	// Scale downsamples the input when in (0, 1).
	Scale float64 `json:"scale" yaml:"scale"`
}

// Output controls which bands are written and how.
type Output struct {
	Dir    string        `json:"dir" yaml:"dir"`
	Format raster.Format `json:"format" yaml:"format"`
	// Features lists channel names to write; empty writes all eight.
	Features []string `json:"features" yaml:"features"`
}

// Logging configures the logger.
type Logging struct {
	Level  string         `json:"level" yaml:"level"`
	Format logging.Format `json:"format" yaml:"format"`
}

// Config is the complete command configuration.
type Config struct {
	Texture   Texture   `json:"texture" yaml:"texture"`
	Execution Execution `json:"execution" yaml:"execution"`
	Input     Input     `json:"input" yaml:"input"`
	Output    Output    `json:"output" yaml:"output"`
	Logging   Logging   `json:"logging" yaml:"logging"`
}

// Default returns the configuration used when no file is given: a 5x5 window,
// horizontal offset, 8 bins and an automatic range.
func Default() Config {
	return Config{
		Texture: Texture{
			Radius: Point{X: 2, Y: 2},
			Offset: Point{X: 1, Y: 0},
			Bins:   8,
		},
		Output: Output{
			Dir:    ".",
			Format: raster.FormatTIFF,
		},
		Logging: Logging{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// Load reads path and overlays it on Default.
//
// Arguments:
//   - path: The YAML file.
//
// Returns:
//   - Config: The validated configuration.
//   - error: If the file cannot be read, parsed or validated.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: read file")
	}
	return Parse(data)
}

// Parse decodes YAML data over Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "config: parse yaml")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	t := c.Texture
	if t.Radius.X < 0 || t.Radius.Y < 0 {
		return &texture.ConfigError{Param: "radius", Value: t.Radius.Image(), Reason: "components must be >= 0"}
	}
	if t.Bins < 2 {
		return &texture.ConfigError{Param: "bins", Value: t.Bins, Reason: "must be at least 2"}
	}
	if t.Min != nil && t.Max != nil {
		if _, err := texture.NewQuantizer(t.Bins, *t.Min, *t.Max); err != nil {
			return err
		}
	}
	if c.Execution.Workers < 0 {
		return errors.Errorf("config: workers must be >= 0, got %d", c.Execution.Workers)
	}
	if c.Execution.Tiles < 0 {
		return errors.Errorf("config: tiles must be >= 0, got %d", c.Execution.Tiles)
	}
	if c.Input.Scale < 0 || c.Input.Scale > 1 {
		return errors.Errorf("config: input scale must be in [0, 1], got %v", c.Input.Scale)
	}
	switch c.Output.Format {
	case raster.FormatTIFF, raster.FormatPNG:
	default:
		return errors.Errorf("config: output format %q is not writable", c.Output.Format)
	}
	if _, err := c.Output.Selected(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrap(err, "config")
	}
	switch c.Logging.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return errors.Errorf("config: unknown log format %q", c.Logging.Format)
	}
	return nil
}

// Selected resolves the feature names to write. An empty list selects all.
func (o Output) Selected() ([]texture.Feature, error) {
	if len(o.Features) == 0 {
		return texture.AllFeatures(), nil
	}
	out := make([]texture.Feature, 0, len(o.Features))
	seen := make(map[texture.Feature]bool, len(o.Features))
	for _, name := range o.Features {
		f, err := texture.ParseFeature(name)
		if err != nil {
			return nil, errors.Wrap(err, "config: output features")
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// HasRange reports whether both Min and Max are set.
func (t Texture) HasRange() bool { return t.Min != nil && t.Max != nil }

// Resolve builds the filter configuration. Missing Min or Max are taken from
// lo and hi, typically the input's sample range.
func (t Texture) Resolve(lo, hi float64) texture.Config {
	if t.Min != nil {
		lo = *t.Min
	}
	if t.Max != nil {
		hi = *t.Max
	}
	return texture.Config{
		Radius: t.Radius.Image(),
		Offset: t.Offset.Image(),
		Bins:   t.Bins,
		Min:    lo,
		Max:    hi,
	}
}

// Options returns the filter options for the execution section.
func (e Execution) Options() []texture.Option {
	return []texture.Option{
		texture.WithWorkers(e.Workers),
		texture.WithTiles(e.Tiles),
	}
}
