package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/rubiksify/internal/detector"
	"github.com/SeamusWaldron/rubiksify/internal/pipeline"
	"github.com/SeamusWaldron/rubiksify/internal/remote"
	"github.com/SeamusWaldron/rubiksify/internal/renderer"
	"github.com/SeamusWaldron/rubiksify/internal/solver"
	"github.com/SeamusWaldron/rubiksify/internal/state"
	"github.com/SeamusWaldron/rubiksify/internal/storage"
)

// Recipe overrides shared by commands that render.
var (
	gridWidth  int
	gridHeight int
	ditherName string
	exactSize  bool
)

func addRecipeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&gridWidth, "width", 0, "Mosaic width in cubes (default from config)")
	cmd.Flags().IntVar(&gridHeight, "height", 0, "Mosaic height in cubes (default from config)")
	cmd.Flags().StringVar(&ditherName, "dither", "", "Dither mode: None, Riemersma or FloydSteinberg (default from config)")
	cmd.Flags().BoolVar(&exactSize, "exact", false, "Force the exact mosaic size")
}

// currentRecipe returns the configured recipe with any flag overrides.
func currentRecipe(cmd *cobra.Command) (renderer.Recipe, error) {
	r, err := cfg.Recipe()
	if err != nil {
		return renderer.Recipe{}, err
	}

	flags := cmd.Flags()
	if f := flags.Lookup("width"); f != nil && f.Changed {
		r.Width = gridWidth
	}
	if f := flags.Lookup("height"); f != nil && f.Changed {
		r.Height = gridHeight
	}
	if f := flags.Lookup("dither"); f != nil && f.Changed {
		if r.Dither, err = renderer.ParseDither(ditherName); err != nil {
			return renderer.Recipe{}, err
		}
	}
	if f := flags.Lookup("exact"); f != nil && f.Changed {
		r.ExactSize = exactSize
	}
	return r, r.Validate()
}

// newOrchestrator wires the remote clients from the configuration.
func newOrchestrator(recipe renderer.Recipe) (*pipeline.Orchestrator, error) {
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}
	rc := remote.NewClient(remote.WithTimeout(timeout), remote.WithLogger(logger))

	return pipeline.New(
		renderer.NewClient(rc, cfg.Endpoints.Renderer, logger),
		detector.NewClient(rc, cfg.Endpoints.Detector, logger),
		solver.NewClient(rc, cfg.Endpoints.Solver),
		pipeline.WithSettings(recipe),
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithLogger(logger),
	), nil
}

// interruptible returns a context cancelled on Ctrl-C.
func interruptible(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}

// getDBPath returns the database path from flag, config, state or default.
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg != nil && cfg.Database != "" {
		return cfg.Database, nil
	}
	if sf, err := state.NewDefaultStateFile(); err == nil && sf.DBPath() != "" {
		return sf.DBPath(), nil
	}
	return storage.DefaultDBPath()
}

func openDB() (*storage.DB, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// writeFile writes data to path, creating the parent directory.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
