package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sunnyxujian/minivue/internal/config"
)

func configCmd() *cobra.Command {
	var (
		initFile bool
		devMode  bool
	)

	cmd := &cobra.Command{
		Use:   "config [dir]",
		Short: "Check the project configuration",
		Long: `Load and validate minivue.yaml and print the effective settings.

Without a directory, the nearest minivue.yaml in the working directory
or one of its parents is used.

Examples:
  minivue config
  minivue config ./app
  minivue config --init
  minivue config --init --dev ./app`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			if initFile {
				return runConfigInit(dir, devMode)
			}
			return runConfigShow(dir, len(args) > 0)
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "Write a default minivue.yaml")
	cmd.Flags().BoolVar(&devMode, "dev", false, "Enable development warnings in the written file")

	return cmd
}

func runConfigInit(dir string, devMode bool) error {
	if config.Exists(dir) {
		return fmt.Errorf("%s already exists in %s", config.ConfigFileName, dir)
	}

	cfg := config.New()
	cfg.DevMode = devMode
	path := filepath.Join(dir, config.ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	success("Created %s", path)
	return nil
}

func runConfigShow(dir string, exact bool) error {
	if !exact {
		root, err := config.FindProjectRoot(dir)
		if err != nil {
			return err
		}
		dir = root
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	success("Loaded %s", cfg.Path())
	info("devMode:     %t", cfg.DevMode)
	info("reentrancy:  %s", cfg.ReentrancyPolicy())
	info("logLevel:    %s", cfg.Level())
	info("tracerName:  %s", cfg.TracerName)
	if cfg.Metrics.Enabled {
		info("metrics:     %s (subsystem %q)", cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
	} else {
		info("metrics:     disabled")
	}
	return nil
}
