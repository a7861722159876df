package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nvr-ai/go-texture/texture"
)

func newRegionCmd(g *globalFlags) *cobra.Command {
	var bounds, output string
	cmd := &cobra.Command{
		Use:   "region",
		Short: "Print the input region needed to compute an output region",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			b, err := parseRect(bounds)
			if err != nil {
				return errors.Wrap(err, "--bounds")
			}
			out, err := parseRect(output)
			if err != nil {
				return errors.Wrap(err, "--output")
			}

			in := texture.InputRegion(out, cfg.Texture.Radius.Image(), cfg.Texture.Offset.Image(), b)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d,%d,%d,%d\n", in.Min.X, in.Min.Y, in.Max.X, in.Max.Y)
			return err
		},
	}
	cmd.Flags().StringVar(&bounds, "bounds", "", "image bounds as x0,y0,x1,y1")
	cmd.Flags().StringVar(&output, "output", "", "output region as x0,y0,x1,y1")
	_ = cmd.MarkFlagRequired("bounds")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// parseRect parses "x0,y0,x1,y1".
func parseRect(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, errors.Errorf("want x0,y0,x1,y1, got %q", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, errors.Wrapf(err, "coordinate %d", i)
		}
		v[i] = n
	}
	return image.Rect(v[0], v[1], v[2], v[3]), nil
}
