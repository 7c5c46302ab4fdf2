package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/rubiksify/internal/renderer"
	"github.com/SeamusWaldron/rubiksify/internal/state"
)

var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render <image>",
	Short: "Render an image into a cube mosaic",
	Long: `Send an image to the mosaic renderer and save the quantized result.

The mosaic has 3 pixels per cube along each side, one per sticker, and uses
only the six palette colors.

Examples:
  rubiksify render photo.jpg -o mosaic.png
  rubiksify render photo.jpg --width 20 --height 15 --dither None`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "mosaic.png", "Output file for the mosaic")
	addRecipeFlags(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
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

	w, h := recipe.PixelSize()
	fmt.Printf("Rendering %s (%s) as %dx%d cubes (%dx%d px, %s)...\n",
		imagePath, humanize.Bytes(uint64(len(data))), recipe.Width, recipe.Height, w, h, recipe.Dither)

	mosaic, err := orch.Render(ctx)
	if err != nil {
		return err
	}

	if err := writeFile(renderOutput, mosaic.Data); err != nil {
		return err
	}
	fmt.Printf("Saved %dx%d %s mosaic (%s) to %s\n",
		mosaic.Width, mosaic.Height, mosaic.Format, humanize.Bytes(uint64(len(mosaic.Data))), renderOutput)

	rememberMosaic(imagePath, renderOutput, orch.Snapshot().MosaicRecipe)
	return nil
}

// rememberMosaic records the mosaic in the state file. Failures are logged
// only, the mosaic itself is already written.
func rememberMosaic(imagePath, mosaicPath string, recipe *renderer.Recipe) {
	if recipe == nil {
		return
	}
	sf, err := state.NewDefaultStateFile()
	if err == nil {
		err = sf.SetLastMosaic(absPath(imagePath), absPath(mosaicPath), *recipe, time.Now().UTC())
	}
	if err != nil {
		logger.Warn("failed to update state file", "error", err)
	}
}
