package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/rubiksify"
)

var runMosaicOut string

var runCmd = &cobra.Command{
	Use:   "run <image>",
	Short: "Render, detect and export in one go",
	Long: `Run the whole pipeline on an image: render the mosaic, detect the cubes,
solve them and write the export document.

Examples:
  rubiksify run photo.jpg
  rubiksify run photo.jpg --width 30 --height 20 --mosaic-out mosaic.png -o export.json`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runMosaicOut, "mosaic-out", "", "Also save the rendered mosaic to this file")
	addRecipeFlags(runCmd)
	addExportFlags(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := interruptible(cmd)
	defer cancel()

	recipe, err := currentRecipe(cmd)
	if err != nil {
		return err
	}

	imagePath := args[0]
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	orch, err := newOrchestrator(recipe)
	if err != nil {
		return err
	}
	if err := orch.LoadImage(filepath.Base(imagePath), data); err != nil {
		return err
	}

	progressf("Rendering %s as %dx%d cubes...\n", imagePath, recipe.Width, recipe.Height)
	mosaic, err := orch.Render(ctx)
	if err != nil {
		return err
	}
	progressf("Rendered %dx%d %s mosaic (%s)\n", mosaic.Width, mosaic.Height, mosaic.Format, humanize.Bytes(uint64(len(mosaic.Data))))

	if runMosaicOut != "" {
		if err := writeFile(runMosaicOut, mosaic.Data); err != nil {
			return err
		}
		rememberMosaic(imagePath, runMosaicOut, orch.Snapshot().MosaicRecipe)
	}

	cubes, err := orch.Detect(ctx)
	if err != nil {
		return err
	}
	w, h := rubiksify.GridExtent(cubes)
	progressf("Detected %d cubes (%dx%d grid)\n", len(cubes), w, h)

	return exportCubes(ctx, orch, filepath.Base(imagePath))
}
