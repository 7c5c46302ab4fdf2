package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/rubiksify"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))
)

// sticker renders one facelet as a two-cell block in its palette color.
func sticker(label rubiksify.Face, palette rubiksify.Palette) string {
	c, ok := palette[label]
	if !ok {
		return label.String() + " "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ")
}

// renderFace draws the 3x3 block of face f.
func renderFace(defn rubiksify.CubeDefn, f rubiksify.Face, palette rubiksify.Palette) []string {
	stickers, err := rubiksify.ExtractFace(defn, f)
	if err != nil {
		return []string{"??????", "??????", "??????"}
	}
	rows := make([]string, 3)
	for r := 0; r < 3; r++ {
		var b strings.Builder
		for c := 0; c < 3; c++ {
			b.WriteString(sticker(rubiksify.Face(stickers[r*3+c]), palette))
		}
		rows[r] = b.String()
	}
	return rows
}

// renderNet draws the unfolded cube with L, F, R, B side by side.
func renderNet(defn rubiksify.CubeDefn, palette rubiksify.Palette) string {
	pad := strings.Repeat(" ", 6)
	face := func(f rubiksify.Face) []string { return renderFace(defn, f, palette) }

	var b strings.Builder
	for _, row := range face(rubiksify.FaceU) {
		b.WriteString(pad + row + "\n")
	}
	l, f, r, bk := face(rubiksify.FaceL), face(rubiksify.FaceF), face(rubiksify.FaceR), face(rubiksify.FaceB)
	for i := 0; i < 3; i++ {
		b.WriteString(l[i] + f[i] + r[i] + bk[i] + "\n")
	}
	for _, row := range face(rubiksify.FaceD) {
		b.WriteString(pad + row + "\n")
	}
	return b.String()
}

// paletteLegend shows each face label in its color.
func paletteLegend(palette rubiksify.Palette) string {
	var parts []string
	for _, f := range rubiksify.RendererOrder {
		parts = append(parts, f.String()+" "+sticker(f, palette)+" "+palette[f].Hex())
	}
	return strings.Join(parts, "  ")
}
