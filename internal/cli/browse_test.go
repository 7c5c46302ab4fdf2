package cli

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/rubiksify"
)

func browseCubes() []rubiksify.CubeRecord {
	var cubes []rubiksify.CubeRecord
	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			cubes = append(cubes, rubiksify.CubeRecord{X: x, Y: y, Defn: rubiksify.SolvedDefn(), Orientation: rubiksify.IdentityOrientation()})
		}
	}
	return cubes
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd synchronously and feeds its message back into m.
func run(m *browseModel, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	m.Update(cmd())
}

func TestBrowseSolvesLazily(t *testing.T) {
	calls := 0
	solve := func(ctx context.Context, defn rubiksify.CubeDefn) (string, error) {
		calls++
		return "R U R'", nil
	}
	m := newBrowseModel(context.Background(), browseCubes(), rubiksify.DefaultPalette(), solve)

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.True(t, m.pending[0])
	run(m, cmd)

	assert.Equal(t, "R U R'", m.gens[0])
	assert.False(t, m.pending[0])
	assert.Equal(t, 1, calls)

	// Revisiting a solved cube does not solve again.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	run(m, cmd)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Nil(t, cmd)
	assert.Equal(t, 2, calls)
	assert.Contains(t, m.View(), "3 moves")
}

func TestBrowseSkipToCoordinates(t *testing.T) {
	solve := func(ctx context.Context, defn rubiksify.CubeDefn) (string, error) { return "R", nil }
	m := newBrowseModel(context.Background(), browseCubes(), rubiksify.DefaultPalette(), solve)

	m.Update(runes("g"))
	require.True(t, m.skipping)
	m.Update(runes("2"))
	m.Update(runes(","))
	m.Update(runes("3"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.skipping)
	assert.Equal(t, 11, m.cursor)
	assert.NotNil(t, cmd)
}

func TestBrowseSkipToMissingCoordinates(t *testing.T) {
	solve := func(ctx context.Context, defn rubiksify.CubeDefn) (string, error) { return "R", nil }
	m := newBrowseModel(context.Background(), browseCubes(), rubiksify.DefaultPalette(), solve)

	m.Update(runes("g"))
	m.Update(runes("99,99"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, "No cube at (99,99)", m.message)
	assert.Contains(t, m.View(), "No cube at (99,99)")
}

func TestBrowseFailedSolveCanRetry(t *testing.T) {
	fail := true
	solve := func(ctx context.Context, defn rubiksify.CubeDefn) (string, error) {
		if fail {
			return "", errors.New("solver unavailable")
		}
		return "F2", nil
	}
	m := newBrowseModel(context.Background(), browseCubes(), rubiksify.DefaultPalette(), solve)

	run(m, m.Init())
	assert.Error(t, m.errs[0])
	assert.Contains(t, m.View(), "solver unavailable")

	fail = false
	_, cmd := m.Update(runes("r"))
	run(m, cmd)
	assert.NoError(t, m.errs[0])
	assert.Equal(t, "F2", m.gens[0])
}

func TestParseCoords(t *testing.T) {
	x, y, err := parseCoords("4,2")
	require.NoError(t, err)
	assert.Equal(t, 4, x)
	assert.Equal(t, 2, y)

	x, y, err = parseCoords("7 1")
	require.NoError(t, err)
	assert.Equal(t, 7, x)
	assert.Equal(t, 1, y)

	_, _, err = parseCoords("4")
	assert.Error(t, err)
}

func TestRenderNetShape(t *testing.T) {
	net := renderNet(rubiksify.SolvedDefn(), rubiksify.DefaultPalette())
	lines := 0
	for _, c := range net {
		if c == '\n' {
			lines++
		}
	}
	assert.Equal(t, 9, lines)
}
