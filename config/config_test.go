package config

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-texture/raster"
	"github.com/nvr-ai/go-texture/texture"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.Texture.HasRange())

	features, err := cfg.Output.Selected()
	require.NoError(t, err)
	assert.Equal(t, texture.AllFeatures(), features)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
texture:
  radius: {x: 3, y: 1}
  offset: {x: -1, y: 2}
  bins: 16
  min: 10
  max: 250
execution:
  workers: 3
  tiles: 12
  profile: true
input:
  scale: 0.5
output:
  dir: out
  format: png
  features: [energy, haralickCorrelation, energy]
logging:
  level: debug
  format: json
`))
	require.NoError(t, err)

	assert.Equal(t, image.Pt(3, 1), cfg.Texture.Radius.Image())
	assert.Equal(t, image.Pt(-1, 2), cfg.Texture.Offset.Image())
	assert.True(t, cfg.Texture.HasRange())
	assert.Equal(t, 3, cfg.Execution.Workers)
	assert.True(t, cfg.Execution.Profile)
	assert.Equal(t, 0.5, cfg.Input.Scale)
	assert.Equal(t, raster.FormatPNG, cfg.Output.Format)

	features, err := cfg.Output.Selected()
	require.NoError(t, err)
	assert.Equal(t, []texture.Feature{texture.Energy, texture.HaralickCorrelation}, features)

	tc := cfg.Texture.Resolve(0, 1)
	assert.Equal(t, texture.Config{
		Radius: image.Pt(3, 1),
		Offset: image.Pt(-1, 2),
		Bins:   16,
		Min:    10,
		Max:    250,
	}, tc)
	assert.Len(t, cfg.Execution.Options(), 2)
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("texture:\n  bins: 4\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Texture.Bins)
	assert.Equal(t, Point{X: 2, Y: 2}, cfg.Texture.Radius)
	assert.Equal(t, raster.FormatTIFF, cfg.Output.Format)

	empty, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), empty)
}

func TestResolvePartialRange(t *testing.T) {
	hi := 100.0
	tex := Default().Texture
	tex.Max = &hi

	tc := tex.Resolve(-5, 7)
	assert.Equal(t, -5.0, tc.Min, "min falls back to the input")
	assert.Equal(t, 100.0, tc.Max)
	assert.False(t, tex.HasRange())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		param string
	}{
		{name: "unknown key", yaml: "texture:\n  window: 3\n"},
		{name: "bad yaml", yaml: "texture: [\n"},
		{name: "negative radius", yaml: "texture:\n  radius: {x: -1, y: 0}\n", param: "radius"},
		{name: "one bin", yaml: "texture:\n  bins: 1\n", param: "bins"},
		{name: "degenerate range", yaml: "texture:\n  min: 5\n  max: 5\n", param: "min/max"},
		{name: "negative workers", yaml: "execution:\n  workers: -2\n"},
		{name: "scale", yaml: "input:\n  scale: 2\n"},
		{name: "webp output", yaml: "output:\n  format: webp\n"},
		{name: "unknown feature", yaml: "output:\n  features: [contrast]\n"},
		{name: "log level", yaml: "logging:\n  level: loud\n"},
		{name: "log format", yaml: "logging:\n  format: xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			if tt.param != "" {
				var cfgErr *texture.ConfigError
				require.True(t, errors.As(err, &cfgErr), "expected *texture.ConfigError, got %v", err)
				assert.Equal(t, tt.param, cfgErr.Param)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texture.yaml")
	require.NoError(t, os.WriteFile(path, []byte("texture:\n  bins: 32\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Texture.Bins)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
