package main

import (
	"flag"
	"io"
	"os"
	"strconv"

	"github.com/2x3systems/goloops/goloops"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config is the CLI config file layout.  Flags given on the command line override it.
type Config struct {
	goloops.Opts `yaml:",inline"`

	Catalog   string `yaml:"catalog"`   // badger dir caching generated curves; empty for none
	Verbosity int    `yaml:"verbosity"` // klog -v level
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Opts: goloops.DefaultOpts(),
	}
}

// ReadConfig reads a YAML config.  Keys absent from the input keep their DefaultConfig() value.
func ReadConfig(in io.Reader) (Config, error) {
	cfg := DefaultConfig()
	err := yaml.NewDecoder(in).Decode(&cfg)
	if err == io.EOF {
		err = nil
	}
	if err != nil {
		return cfg, errors.Wrap(goloops.ErrBadOpts, err.Error())
	}
	if err = cfg.Opts.Validate(); err != nil {
		return cfg, err
	}
	if cfg.Verbosity < 0 {
		return cfg, errors.Wrapf(goloops.ErrBadOpts, "verbosity must be >= 0 (got %d)", cfg.Verbosity)
	}
	return cfg, nil
}

// addOptsFlags registers the flags that override Config fields.
func addOptsFlags(cmd *cobra.Command, withCatalog bool) {
	def := DefaultConfig()
	cmd.Flags().IntVarP(&cliFlags.TargetCurves, "target", "n", def.TargetCurves, "max number of guide curves")
	cmd.Flags().BoolVar(&cliFlags.WalkBoundaries, "walk", def.WalkBoundaries, "trace along mesh boundaries")
	if withCatalog {
		cmd.Flags().StringVar(&cliFlags.Catalog, "catalog", "", "badger dir caching generated curves")
	}
}

var activeConfig = DefaultConfig()

// loadConfig merges the config file (if any) with the flags explicitly set on cmd.
func loadConfig(cmd *cobra.Command, klogFlags *flag.FlagSet) error {
	cfg := DefaultConfig()
	if configPath != "" {
		file, err := os.Open(configPath)
		if err != nil {
			return err
		}
		cfg, err = ReadConfig(file)
		file.Close()
		if err != nil {
			return errors.Wrapf(err, "reading %q", configPath)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("target") {
		cfg.TargetCurves = cliFlags.TargetCurves
	}
	if flags.Changed("walk") {
		cfg.WalkBoundaries = cliFlags.WalkBoundaries
	}
	if flags.Changed("catalog") {
		cfg.Catalog = cliFlags.Catalog
	}
	if err := cfg.Opts.Validate(); err != nil {
		return err
	}

	if cfg.Verbosity > 0 && !flags.Changed("v") {
		klogFlags.Set("v", strconv.Itoa(cfg.Verbosity))
	}

	activeConfig = cfg
	return nil
}
