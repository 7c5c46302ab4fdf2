package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/rubiksify"
)

var solvePreview bool

var solveCmd = &cobra.Command{
	Use:   "solve <cubeDefn>",
	Short: "Find the generator for a single cube",
	Long: `Ask the solver for the move sequence that turns a solved cube into the
given 54-sticker definition (faces in U, R, F, D, L, B order).

Examples:
  rubiksify solve UUFUUFUUFRRRRRRRRRFFDFFDFFDDDBDDBDDBLLLLLLLLLUBBUBBUBB
  rubiksify solve <cubeDefn> --preview`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().BoolVar(&solvePreview, "preview", false, "Show the cube net and check the generator locally")
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx, cancel := interruptible(cmd)
	defer cancel()

	defn := rubiksify.CubeDefn(strings.ToUpper(strings.TrimSpace(args[0])))
	if err := rubiksify.ValidateDefn(defn); err != nil {
		return err
	}

	recipe, err := cfg.Recipe()
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(recipe)
	if err != nil {
		return err
	}

	gen, err := orch.Solve(ctx, defn)
	if err != nil {
		return err
	}

	if !solvePreview {
		fmt.Println(gen)
		return nil
	}

	fmt.Println(titleStyle.Render("Cube"))
	fmt.Print(renderNet(defn, recipe.Palette))
	fmt.Println()
	fmt.Printf("Generator: %s\n", moveStyle.Render(gen))
	fmt.Printf("Moves:     %d\n", rubiksify.MoveCount(gen))

	if err := rubiksify.VerifyGenerator(defn, gen); err != nil {
		fmt.Println(errorStyle.Render("Local replay does not reproduce the cube: " + err.Error()))
	} else {
		fmt.Println(statusStyle.Render("Local replay reproduces the cube"))
	}
	return nil
}
