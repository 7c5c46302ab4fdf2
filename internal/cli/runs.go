package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/analysis"
	"github.com/SeamusWaldron/rubiksify/internal/storage"
)

var (
	runsLimit   int
	runsShowAll bool
	showLast    bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse archived export runs",
	Long:  `Commands for listing and inspecting export runs stored in the database.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	Long:  `Display a list of recent export runs with their recipe and totals.`,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show details of a run",
	Long: `Display a run's recipe, palette and the generators of its cubes.

Use --last to show the most recent run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRunsShow,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.AddCommand(runsListCmd)
	runsListCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "Number of runs to show")

	runsCmd.AddCommand(runsShowCmd)
	runsShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent run")
	runsShowCmd.Flags().BoolVar(&runsShowAll, "all", false, "List every cube instead of the first 20")

	runsCmd.AddCommand(runsDeleteCmd)
}

func runRunsList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := storage.NewRunRepository(db).List(runsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs archived yet")
		fmt.Println("Create one with: rubiksify run <image>")
		return nil
	}

	fmt.Printf("Recent runs (showing %d):\n", len(runs))
	fmt.Println()
	fmt.Printf("%-36s  %-14s  %-8s  %-15s  %-6s  %-7s  %s\n", "ID", "Created", "Grid", "Dither", "Cubes", "Moves", "Image")
	fmt.Println("------------------------------------  --------------  --------  ---------------  ------  -------  -----")

	for _, r := range runs {
		image := "-"
		if r.ImageName != nil {
			image = *r.ImageName
			if len(image) > 30 {
				image = image[:27] + "..."
			}
		}
		grid := fmt.Sprintf("%dx%d", r.Recipe.Width, r.Recipe.Height)
		if r.Recipe.ExactSize {
			grid += "!"
		}
		fmt.Printf("%-36s  %-14s  %-8s  %-15s  %-6d  %-7d  %s\n",
			r.RunID,
			humanize.Time(r.CreatedAt),
			grid,
			r.Recipe.Dither,
			r.CubeCount,
			r.TotalMoves,
			image,
		)
	}

	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	runRepo := storage.NewRunRepository(db)

	var run *storage.Run
	switch {
	case showLast:
		run, err = runRepo.GetLast()
	case len(args) > 0:
		run, err = runRepo.Get(args[0])
	default:
		return fmt.Errorf("please provide a run ID or use --last")
	}
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run not found")
	}

	cubes, err := storage.NewCubeRepository(db).GetByRun(run.RunID)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Run Details"))
	fmt.Println()
	fmt.Printf("ID:      %s\n", run.RunID)
	fmt.Printf("Created: %s (%s)\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"), humanize.Time(run.CreatedAt))
	if run.ImageName != nil {
		fmt.Printf("Image:   %s\n", *run.ImageName)
	}
	fmt.Printf("Grid:    %dx%d cubes", run.Recipe.Width, run.Recipe.Height)
	if run.Recipe.ExactSize {
		fmt.Print(" (exact)")
	}
	fmt.Println()
	fmt.Printf("Dither:  %s\n", run.Recipe.Dither)
	fmt.Printf("Palette: %s\n", paletteLegend(run.Recipe.Palette))
	fmt.Println()

	summary, err := analysis.Summarize(cubes, 3, 5)
	if err != nil {
		return fmt.Errorf("failed to analyse run: %w", err)
	}

	fmt.Println(phaseStyle.Render("Statistics"))
	fmt.Printf("Cubes:   %d (%d already solved)\n", summary.Cubes, summary.SolvedCubes)
	fmt.Printf("Moves:   %s\n", humanize.Comma(int64(summary.TotalMoves)))
	if summary.Cubes > 0 {
		fmt.Printf("Average: %.1f moves per cube (min %d, max %d)\n", summary.AvgMoves, summary.MinMoves, summary.MaxMoves)
	}
	fmt.Printf("Turns:   %d quarter, %d half\n", summary.QuarterTurns, summary.HalfTurns)
	fmt.Print("Faces:  ")
	for _, f := range rubiksify.Faces {
		fmt.Printf(" %s:%d", f, summary.FaceTurns[f])
	}
	fmt.Println()
	if n := summary.Redundant(); n > 0 {
		fmt.Printf("Redundant: %d moves could be merged (%.1f%% efficient)\n", n, summary.Efficiency*100)
	}
	fmt.Println()

	if len(summary.TopSequences) > 0 {
		fmt.Println(phaseStyle.Render("Common Sequences"))
		for _, g := range summary.TopSequences {
			fmt.Printf("  %-12s x%d\n", strings.Join(g.Sequence, " "), g.Count)
		}
		fmt.Println()
	}

	shown := cubes
	if !runsShowAll && len(shown) > 20 {
		shown = shown[:20]
	}
	fmt.Println(phaseStyle.Render("Cubes"))
	for _, c := range shown {
		fmt.Printf("  (%d,%d) %3d  %s\n", c.X, c.Y, c.MoveCount, moveStyle.Render(c.Generator))
	}
	if len(shown) < len(cubes) {
		fmt.Println(statusStyle.Render(fmt.Sprintf("  ... %d more (use --all)", len(cubes)-len(shown))))
	}

	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.NewRunRepository(db).Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted run %s\n", args[0])
	return nil
}
