package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/export"
	"github.com/SeamusWaldron/rubiksify/internal/pipeline"
	"github.com/SeamusWaldron/rubiksify/internal/state"
	"github.com/SeamusWaldron/rubiksify/internal/storage"
)

var (
	exportOutput string
	exportVerify bool
	exportNoSave bool
)

var exportCmd = &cobra.Command{
	Use:   "export <mosaic>",
	Short: "Solve every cube of a mosaic and write export.json",
	Long: `Detect the cubes of a mosaic, resolve each one to a generator and write
the export document.

Each record holds the grid position, the cube definition, the generator, its
move count and the colors the cube's stickers stand for. Runs are archived in
the database unless --no-save is given.

Examples:
  rubiksify export mosaic.png
  rubiksify export mosaic.png -o out/export.json --verify
  rubiksify export mosaic.png -o - --no-save`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addExportFlags(exportCmd)
}

func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "export.json", "Output file (- for stdout)")
	cmd.Flags().BoolVar(&exportVerify, "verify", false, "Replay each generator and report cubes it does not reproduce")
	cmd.Flags().BoolVar(&exportNoSave, "no-save", false, "Do not archive the run in the database")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := interruptible(cmd)
	defer cancel()

	orch, err := openMosaic(args[0])
	if err != nil {
		return err
	}

	cubes, err := orch.Detect(ctx)
	if err != nil {
		return err
	}
	w, h := rubiksify.GridExtent(cubes)
	progressf("Detected %d cubes (%dx%d grid)\n", len(cubes), w, h)

	return exportCubes(ctx, orch, filepath.Base(args[0]))
}

// progressf prints progress to stdout, or stderr when the export itself goes
// to stdout.
func progressf(format string, args ...any) {
	out := os.Stdout
	if exportOutput == "-" {
		out = os.Stderr
	}
	fmt.Fprintf(out, format, args...)
}

// exportCubes solves the detected cubes, writes the document and archives the
// run.
func exportCubes(ctx context.Context, orch *pipeline.Orchestrator, imageName string) error {
	start := time.Now()
	records, err := orch.Export(ctx, func(done, total int) {
		progressf("\rSolving %d/%d", done, total)
	})
	progressf("\n")
	if err != nil {
		return err
	}

	stats := orch.Cache().Stats()
	moves := 0
	for _, r := range records {
		moves += r.MoveCount
	}
	progressf("Solved %d cubes in %s (%d moves, %d distinct, %d cached)\n",
		len(records), time.Since(start).Round(time.Millisecond), moves, orch.Cache().Len(), stats.Hits)

	if exportVerify {
		bad := export.Verify(ctx, logger, records)
		if len(bad) == 0 {
			progressf("Verified %d generators\n", len(records))
		} else {
			progressf("%s\n", errorStyle.Render(fmt.Sprintf("%d of %d generators do not reproduce their cube", len(bad), len(records))))
			for _, r := range bad {
				progressf("  (%d,%d) %s\n", r.X, r.Y, r.Generator)
			}
		}
	}

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, records); err != nil {
		return err
	}
	if exportOutput == "-" {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	} else {
		if err := writeFile(exportOutput, buf.Bytes()); err != nil {
			return err
		}
		progressf("Exported %d cubes (%s) to %s\n", len(records), humanize.Bytes(uint64(buf.Len())), exportOutput)
	}

	if exportNoSave {
		return nil
	}
	return archiveRun(imageName, orch.Snapshot(), records)
}

func archiveRun(imageName string, snap pipeline.Snapshot, records []export.Record) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	recipe := snap.Settings
	if snap.MosaicRecipe != nil {
		recipe = *snap.MosaicRecipe
	}

	runID, err := storage.Archive(db, imageName, recipe, records)
	if err != nil {
		return err
	}
	progressf("Archived run %s\n", runID)

	if sf, err := state.NewDefaultStateFile(); err != nil {
		logger.Warn("failed to load state file", "error", err)
	} else if err := sf.SetLastRun(runID); err != nil {
		logger.Warn("failed to update state file", "error", err)
	}
	return nil
}
