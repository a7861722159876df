package main

import (
	"github.com/spf13/cobra"

	"github.com/nvr-ai/go-texture/config"
	"github.com/nvr-ai/go-texture/logging"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "texture",
		Short:         "Compute local Haralick texture features",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "log format override (console, json)")

	root.AddCommand(newRunCmd(g), newRegionCmd(g))
	return root
}

// load reads the configuration file, or the defaults when none is given, and
// applies the logging overrides.
func (g *globalFlags) load() (config.Config, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if g.logLevel != "" {
		cfg.Logging.Level = g.logLevel
	}
	if g.logFormat != "" {
		cfg.Logging.Format = logging.Format(g.logFormat)
	}
	return cfg, cfg.Validate()
}
