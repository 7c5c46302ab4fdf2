package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/pipeline"
	"github.com/SeamusWaldron/rubiksify/internal/renderer"
	"github.com/SeamusWaldron/rubiksify/internal/state"
)

var detectFormat string

var detectCmd = &cobra.Command{
	Use:   "detect <mosaic>",
	Short: "Decompose a mosaic into cubes",
	Long: `Send a rendered mosaic to the cube detector and list the detected cubes.

Each cube is printed as its grid position, its 54-sticker definition and the
orientation pairs that recolor it.

Examples:
  rubiksify detect mosaic.png
  rubiksify detect mosaic.png --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().StringVar(&detectFormat, "format", "txt", "Output format (txt, json)")
}

func runDetect(cmd *cobra.Command, args []string) error {
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

	switch strings.ToLower(detectFormat) {
	case "txt":
		w, h := rubiksify.GridExtent(cubes)
		fmt.Printf("Detected %d cubes (%dx%d grid)\n", len(cubes), w, h)
		for _, c := range cubes {
			fmt.Printf("%3d,%-3d %s %s\n", c.X, c.Y, c.Defn, c.Orientation)
		}
	case "json":
		data, err := json.MarshalIndent(cubes, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	default:
		return fmt.Errorf("unknown format: %s (use txt or json)", detectFormat)
	}
	return nil
}

// openMosaic creates an orchestrator holding the mosaic at path. When the
// state file recorded how that mosaic was rendered, its recipe becomes the
// current settings so detection uses the same palette.
func openMosaic(path string) (*pipeline.Orchestrator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mosaic: %w", err)
	}
	mosaic, err := renderer.Inspect(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	recipe, err := cfg.Recipe()
	if err != nil {
		return nil, err
	}
	if sf, err := state.NewDefaultStateFile(); err == nil {
		st := sf.State()
		if st.MosaicRecipe != nil && st.LastMosaic == absPath(path) {
			recipe = st.MosaicRecipe.Clone()
			logger.Debug("using recorded mosaic recipe", "mosaic", path)
		}
	}

	orch, err := newOrchestrator(recipe)
	if err != nil {
		return nil, err
	}
	if err := orch.LoadMosaic(mosaic); err != nil {
		return nil, err
	}
	return orch, nil
}
