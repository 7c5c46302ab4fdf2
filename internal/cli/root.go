// Package cli implements the command-line interface for rubiksify.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/rubiksify/internal/config"
	"github.com/SeamusWaldron/rubiksify/internal/logging"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string

	// Set up by the root command before any subcommand runs.
	cfg    *config.Config
	logger = logging.Discard()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "rubiksify",
	Short: "Turn images into Rubik's Cube mosaics",
	Long: `rubiksify - build a picture out of 3x3 cubes.

An image is rendered into a mosaic sized to a grid of cube faces, the mosaic
is decomposed into one cube per grid cell, and every cube is resolved to the
move sequence that turns a solved cube into it.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.rubiksify/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.rubiksify/rubiksify.db)")
	logging.RegisterFlags(rootCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	l, err := logging.FromFlags(cmd, os.Stderr)
	if err != nil {
		return err
	}
	logger = l
	slog.SetDefault(logger)

	path := configPath
	if path == "" {
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	if cfg, err = config.Load(path); err != nil {
		return err
	}
	logger.Debug("configuration loaded", "path", path)
	return nil
}
