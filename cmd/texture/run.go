package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nvr-ai/go-texture/config"
	"github.com/nvr-ai/go-texture/logging"
	"github.com/nvr-ai/go-texture/profiler"
	"github.com/nvr-ai/go-texture/raster"
	"github.com/nvr-ai/go-texture/texture"
)

type runFlags struct {
	input     string
	outputDir string
	workers   int
	profile   bool
}

func newRunCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute feature bands for an image and write one file per feature",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if f.outputDir != "" {
				cfg.Output.Dir = f.outputDir
			}
			if cmd.Flags().Changed("workers") {
				cfg.Execution.Workers = f.workers
			}
			if f.profile {
				cfg.Execution.Profile = true
			}
			return run(cmd, cfg, f.input)
		},
	}
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "input image or directory of images (tiff, png, webp, jpeg or anything OpenCV reads)")
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", "directory for the feature bands")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "concurrent tiles, 0 for one per CPU")
	cmd.Flags().BoolVar(&f.profile, "profile", false, "log per-tile timing after the scan")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func run(cmd *cobra.Command, cfg config.Config, input string) error {
	log, err := logging.New(logging.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Writer:    cmd.ErrOrStderr(),
		Component: "texture",
	})
	if err != nil {
		return err
	}

	var prof *profiler.ScanProfiler
	if cfg.Execution.Profile {
		prof = profiler.New(profiler.Options{})
	}

	info, err := os.Stat(input)
	if err != nil {
		return errors.Wrap(err, "input")
	}
	if !info.IsDir() {
		if err := runImage(cmd.Context(), cfg, input, cfg.Output.Dir, log, prof); err != nil {
			return err
		}
	} else {
		paths, err := raster.ListImages(input)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return errors.Errorf("no images in %s", input)
		}
		for _, path := range paths {
			stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			if err := runImage(cmd.Context(), cfg, path, filepath.Join(cfg.Output.Dir, stem), log, prof); err != nil {
				return err
			}
		}
		log.Info().Int("images", len(paths)).Msg("directory processed")
	}

	if prof != nil {
		prof.Report(log)
	}
	return nil
}

// runImage computes and writes the selected bands of one image into dir.
func runImage(ctx context.Context, cfg config.Config, input, dir string, log zerolog.Logger, prof *profiler.ScanProfiler) error {
	features, err := cfg.Output.Selected()
	if err != nil {
		return err
	}

	opts := append(cfg.Execution.Options(), texture.WithLogger(log))
	if prof != nil {
		opts = append(opts, texture.WithObserver(prof))
	}
	timed := func(name string) func() {
		if prof == nil {
			return func() {}
		}
		return prof.StartOperation(name)
	}

	done := timed("decode")
	band, err := raster.DecodeFile(input, raster.DecodeOptions{Scale: cfg.Input.Scale})
	done()
	if err != nil {
		return errors.Wrapf(err, "load %s", input)
	}
	log.Info().
		Str("input", input).
		Str("bounds", band.Rect.String()).
		Msg("input loaded")

	lo, hi, err := quantizationRange(cfg.Texture, band, log)
	if err != nil {
		return errors.Wrap(err, input)
	}
	filter, err := texture.New(cfg.Texture.Resolve(lo, hi), opts...)
	if err != nil {
		return err
	}

	done = timed("scan")
	res, err := filter.Compute(ctx, band, band.Bounds())
	done()
	if err != nil {
		return errors.Wrap(err, input)
	}

	done = timed("encode")
	defer done()
	return writeBands(res, features, dir, cfg.Output.Format, log)
}

// quantizationRange returns the configured range, filling missing bounds from
// the finite samples of band.
func quantizationRange(t config.Texture, band *raster.Float64, log zerolog.Logger) (float64, float64, error) {
	if t.HasRange() {
		return *t.Min, *t.Max, nil
	}
	lo, hi, ok := band.MinMax()
	if !ok {
		return 0, 0, errors.New("input has no finite samples to derive min and max from")
	}
	if t.Min != nil {
		lo = *t.Min
	}
	if t.Max != nil {
		hi = *t.Max
	}
	if lo >= hi {
		log.Warn().Float64("value", lo).Msg("input range is degenerate, widening by one")
		hi = lo + 1
	}
	log.Info().Float64("min", lo).Float64("max", hi).Msg("quantization range derived from input")
	return lo, hi, nil
}

func writeBands(res *texture.Result, features []texture.Feature, dir string, format raster.Format, log zerolog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	ext := "." + string(format)
	if format == raster.FormatTIFF {
		ext = ".tif"
	}
	for _, f := range features {
		path := filepath.Join(dir, f.String()+ext)
		if err := raster.EncodeFile(path, res.Band(f), format); err != nil {
			return errors.Wrapf(err, "write %s", f)
		}
		log.Debug().Str("feature", f.String()).Str("path", path).Msg("band written")
	}
	log.Info().Int("bands", len(features)).Str("dir", dir).Msg("features written")
	return nil
}
