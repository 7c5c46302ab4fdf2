package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/rubiksify"
)

var browseCmd = &cobra.Command{
	Use:   "browse <mosaic>",
	Short: "Browse the cubes of a mosaic interactively",
	Long: `Detect the cubes of a mosaic and step through them one by one.

For each cube the browser shows how to hold a solved cube, the face that ends
up pointing at you and the generator to apply. Generators are fetched as cubes
are visited.

Controls:
  Up/k, Down/j   - Previous / next cube
  PgUp, PgDn     - Jump a page
  g              - Go to coordinates (type x,y then Enter)
  r              - Retry a failed solve
  q/Esc          - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx, cancel := interruptible(cmd)
	defer cancel()

	orch, err := openMosaic(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Detecting cubes in %s...\n", args[0])
	cubes, err := orch.Detect(ctx)
	if err != nil {
		return err
	}
	if len(cubes) == 0 {
		fmt.Println("No cubes detected")
		return nil
	}

	model := newBrowseModel(ctx, cubes, orch.Snapshot().Settings.Palette, orch.Solve)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse error: %w", err)
	}
	return nil
}

type solveFunc func(ctx context.Context, defn rubiksify.CubeDefn) (string, error)

// Messages
type solvedMsg struct {
	index int
	gen   string
	err   error
}

type browseModel struct {
	ctx     context.Context
	solve   solveFunc
	cubes   []rubiksify.CubeRecord
	palette rubiksify.Palette
	width   int
	height  int

	cursor   int
	pageSize int

	gens    map[int]string
	errs    map[int]error
	pending map[int]bool

	skipping  bool
	skipInput string
	message   string
	quitting  bool
}

func newBrowseModel(ctx context.Context, cubes []rubiksify.CubeRecord, palette rubiksify.Palette, solve solveFunc) *browseModel {
	w, h := rubiksify.GridExtent(cubes)
	return &browseModel{
		ctx:      ctx,
		solve:    solve,
		cubes:    cubes,
		palette:  palette.Clone(),
		width:    w,
		height:   h,
		pageSize: 10,
		gens:     make(map[int]string),
		errs:     make(map[int]error),
		pending:  make(map[int]bool),
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.ensureSolved(m.cursor)
}

// ensureSolved starts solving cube i unless it is solved or in flight.
func (m *browseModel) ensureSolved(i int) tea.Cmd {
	if i < 0 || i >= len(m.cubes) {
		return nil
	}
	if _, ok := m.gens[i]; ok || m.pending[i] {
		return nil
	}
	m.pending[i] = true
	delete(m.errs, i)

	ctx, solve, defn := m.ctx, m.solve, m.cubes[i].Defn
	return func() tea.Msg {
		gen, err := solve(ctx, defn)
		return solvedMsg{index: i, gen: gen, err: err}
	}
}

func (m *browseModel) moveTo(i int) tea.Cmd {
	if i < 0 {
		i = 0
	}
	if i >= len(m.cubes) {
		i = len(m.cubes) - 1
	}
	m.cursor = i
	return m.ensureSolved(i)
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Leave room for the title, nets and help.
		if rows := msg.Height - 16; rows > 3 {
			m.pageSize = rows
		}

	case solvedMsg:
		delete(m.pending, msg.index)
		if msg.err != nil {
			m.errs[msg.index] = msg.err
		} else {
			m.gens[msg.index] = msg.gen
		}

	case tea.KeyMsg:
		if m.skipping {
			return m, m.updateSkip(msg)
		}

		m.message = ""
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			return m, m.moveTo(m.cursor - 1)
		case "down", "j":
			return m, m.moveTo(m.cursor + 1)
		case "pgup":
			return m, m.moveTo(m.cursor - m.pageSize)
		case "pgdown":
			return m, m.moveTo(m.cursor + m.pageSize)
		case "home":
			return m, m.moveTo(0)
		case "end":
			return m, m.moveTo(len(m.cubes) - 1)
		case "g":
			m.skipping = true
			m.skipInput = ""
		case "r":
			return m, m.ensureSolved(m.cursor)
		}
	}

	return m, nil
}

func (m *browseModel) updateSkip(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.skipping = false
	case tea.KeyBackspace:
		if len(m.skipInput) > 0 {
			m.skipInput = m.skipInput[:len(m.skipInput)-1]
		}
	case tea.KeyEnter:
		m.skipping = false
		x, y, err := parseCoords(m.skipInput)
		if err != nil {
			m.message = err.Error()
			return nil
		}
		i, ok := rubiksify.FindCube(m.cubes, x, y)
		if !ok {
			m.message = fmt.Sprintf("No cube at (%d,%d)", x, y)
			return nil
		}
		return m.moveTo(i)
	case tea.KeySpace:
		m.skipInput += ","
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r >= '0' && r <= '9') || r == ',' {
				m.skipInput += string(r)
			}
		}
	}
	return nil
}

// parseCoords parses "x,y" or "x y".
func parseCoords(s string) (int, int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("enter coordinates as x,y")
	}
	x, errX := strconv.Atoi(fields[0])
	y, errY := strconv.Atoi(fields[1])
	if errX != nil || errY != nil {
		return 0, 0, fmt.Errorf("invalid coordinates %q", s)
	}
	return x, y, nil
}

func (m *browseModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("rubiksify - %d cubes (%dx%d)", len(m.cubes), m.width, m.height)))
	b.WriteString("\n\n")

	// List window around the cursor.
	start := m.cursor - m.pageSize/2
	if start > len(m.cubes)-m.pageSize {
		start = len(m.cubes) - m.pageSize
	}
	if start < 0 {
		start = 0
	}
	end := min(start+m.pageSize, len(m.cubes))
	for i := start; i < end; i++ {
		line := fmt.Sprintf("(%d,%d)  %s", m.cubes[i].X, m.cubes[i].Y, m.statusOf(i))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.detail())
	b.WriteString("\n")

	switch {
	case m.skipping:
		b.WriteString(phaseStyle.Render("Go to x,y: ") + m.skipInput + "_\n")
	case m.message != "":
		b.WriteString(errorStyle.Render(m.message) + "\n")
	}

	b.WriteString(helpStyle.Render("up/down=move  pgup/pgdn=page  g=go to x,y  r=retry  q=quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *browseModel) statusOf(i int) string {
	switch {
	case m.pending[i]:
		return statusStyle.Render("solving...")
	case m.errs[i] != nil:
		return errorStyle.Render("failed")
	}
	if gen, ok := m.gens[i]; ok {
		return fmt.Sprintf("%d moves", rubiksify.MoveCount(gen))
	}
	return ""
}

// detail shows how to hold the cube, the target face and the generator.
func (m *browseModel) detail() string {
	cube := m.cubes[m.cursor]

	var b strings.Builder
	front, top, err := cube.Heading()
	colored, cerr := cube.Colorized()
	if err != nil || cerr != nil {
		b.WriteString(errorStyle.Render("Orientation does not cover this cube"))
		b.WriteString("\n")
	} else {
		hold, _ := rubiksify.Colorize(rubiksify.SolvedDefn(), cube.Orientation)
		holdNet := statusStyle.Render(fmt.Sprintf("Hold: %s front, %s up", front, top)) + "\n" + renderNet(hold, m.palette)
		target := statusStyle.Render("Result (front face)") + "\n" + strings.Join(renderFace(colored, rubiksify.FaceF, m.palette), "\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, holdNet, "    ", target))
		b.WriteString("\n")
	}

	switch {
	case m.pending[m.cursor]:
		b.WriteString(statusStyle.Render("Solving..."))
	case m.errs[m.cursor] != nil:
		b.WriteString(errorStyle.Render("Solve failed: " + m.errs[m.cursor].Error()))
	default:
		if gen, ok := m.gens[m.cursor]; ok {
			b.WriteString("Moves: " + moveStyle.Render(gen))
		}
	}
	b.WriteString("\n")
	return b.String()
}
