package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/rubiksify/internal/config"
	"github.com/SeamusWaldron/rubiksify/internal/state"
	"github.com/SeamusWaldron/rubiksify/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and the last mosaic and run",
	Long: `Display the active configuration, the endpoints in use, the last rendered
mosaic and whether it is stale for the current settings, and the last archived
run.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	stateFile, err := state.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	st := stateFile.State()

	fmt.Println(titleStyle.Render("rubiksify Status"))
	fmt.Println()

	path := configPath
	if path == "" {
		path, _ = config.DefaultPath()
	}
	fmt.Printf("Config:      %s\n", path)

	recipe, err := cfg.Recipe()
	if err != nil {
		return err
	}
	timeout, _ := cfg.RequestTimeout()
	fmt.Printf("Grid:        %dx%d cubes (%s", recipe.Width, recipe.Height, recipe.Dither)
	if recipe.ExactSize {
		fmt.Print(", exact")
	}
	fmt.Println(")")
	fmt.Printf("Palette:     %s\n", paletteLegend(recipe.Palette))
	fmt.Printf("Concurrency: %d\n", cfg.Concurrency)
	fmt.Printf("Timeout:     %s\n", timeout)
	fmt.Println()

	fmt.Println(phaseStyle.Render("Endpoints"))
	fmt.Printf("Renderer:    %s\n", cfg.Endpoints.Renderer)
	fmt.Printf("Detector:    %s\n", cfg.Endpoints.Detector)
	fmt.Printf("Solver:      %s\n", cfg.Endpoints.Solver)
	fmt.Println()

	fmt.Println(phaseStyle.Render("Last mosaic"))
	if st.LastMosaic == "" {
		fmt.Println("No mosaic rendered yet")
	} else {
		fmt.Printf("Mosaic:      %s\n", st.LastMosaic)
		fmt.Printf("Image:       %s\n", st.LastImage)
		if !st.RenderedAt.IsZero() {
			fmt.Printf("Rendered:    %s\n", humanize.Time(st.RenderedAt))
		}
		if stateFile.MosaicStale(recipe) {
			fmt.Println(errorStyle.Render("Settings changed since this mosaic was rendered, re-render to apply them"))
		} else {
			fmt.Println(statusStyle.Render("Up to date with current settings"))
		}
	}
	fmt.Println()

	dbFile, err := getDBPath()
	if err != nil {
		return err
	}
	fmt.Printf("Database:    %s\n", dbFile)

	db, err := storage.Open(dbFile)
	if err == nil {
		defer db.Close()
		if err := db.MigrateUp(); err == nil {
			runs, _ := storage.NewRunRepository(db).List(1)
			if len(runs) > 0 {
				fmt.Printf("Last run:    %s (%s, %d cubes)\n", runs[0].RunID, humanize.Time(runs[0].CreatedAt), runs[0].CubeCount)
			} else {
				fmt.Println("No runs archived yet")
			}
		}
	}

	return nil
}
