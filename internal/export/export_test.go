package export

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/solver"
)

type tableSolver struct {
	mu    sync.Mutex
	gens  map[rubiksify.CubeDefn]string
	calls int
}

func (s *tableSolver) Solve(ctx context.Context, defn rubiksify.CubeDefn) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	gen, ok := s.gens[defn]
	if !ok {
		return "", fmt.Errorf("%w: no solution", rubiksify.ErrProtocol)
	}
	return gen, nil
}

func replay(t *testing.T, gen string) rubiksify.CubeDefn {
	t.Helper()
	d, err := rubiksify.Replay(gen)
	require.NoError(t, err)
	return d
}

func TestExportAllPreservesOrder(t *testing.T) {
	gens := []string{"R", "U", "F2", "L'", "R U", "D B"}
	backend := &tableSolver{gens: map[rubiksify.CubeDefn]string{}}
	var cubes []rubiksify.CubeRecord
	for i, g := range gens {
		d := replay(t, g)
		backend.gens[d] = g
		cubes = append(cubes, rubiksify.CubeRecord{X: i % 3, Y: i / 3, Defn: d, Orientation: rubiksify.IdentityOrientation()})
	}

	var progress []int
	agg := NewAggregator(backend, WithConcurrency(2))
	records, err := agg.ExportAll(context.Background(), cubes, rubiksify.DefaultPalette(), func(done, total int) {
		assert.Equal(t, len(cubes), total)
		progress = append(progress, done)
	})
	require.NoError(t, err)
	require.Len(t, records, len(cubes))

	for i, r := range records {
		assert.Equal(t, cubes[i].X, r.X)
		assert.Equal(t, cubes[i].Y, r.Y)
		assert.Equal(t, cubes[i].Defn, r.Defn)
		assert.Equal(t, gens[i], r.Generator)
		assert.Equal(t, rubiksify.MoveCount(gens[i]), r.MoveCount)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, progress)
	assert.Empty(t, Verify(context.Background(), nil, records))
}

func TestExportAllFailsWhole(t *testing.T) {
	known := replay(t, "R")
	backend := &tableSolver{gens: map[rubiksify.CubeDefn]string{known: "R"}}
	cubes := []rubiksify.CubeRecord{
		{X: 0, Y: 0, Defn: known, Orientation: rubiksify.IdentityOrientation()},
		{X: 1, Y: 0, Defn: replay(t, "U"), Orientation: rubiksify.IdentityOrientation()},
	}

	records, err := NewAggregator(backend).ExportAll(context.Background(), cubes, rubiksify.DefaultPalette(), nil)
	require.ErrorIs(t, err, rubiksify.ErrProtocol)
	assert.Nil(t, records)
}

func TestExportAllUsesCache(t *testing.T) {
	d := replay(t, "R U")
	backend := &tableSolver{gens: map[rubiksify.CubeDefn]string{d: "R U"}}
	cache := solver.NewCache(backend, nil)

	cubes := make([]rubiksify.CubeRecord, 5)
	for i := range cubes {
		cubes[i] = rubiksify.CubeRecord{X: i, Defn: d, Orientation: rubiksify.IdentityOrientation()}
	}

	agg := NewAggregator(cache, WithConcurrency(1))
	_, err := agg.ExportAll(context.Background(), cubes, rubiksify.DefaultPalette(), nil)
	require.NoError(t, err)
	_, err = agg.ExportAll(context.Background(), cubes, rubiksify.DefaultPalette(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, backend.calls)
}

func TestExportAllRejectsIncompletePalette(t *testing.T) {
	palette := rubiksify.DefaultPalette()
	delete(palette, rubiksify.FaceB)

	_, err := NewAggregator(&tableSolver{}).ExportAll(context.Background(), nil, palette, nil)
	assert.ErrorIs(t, err, rubiksify.ErrValidation)
}

func TestNewRecordResolvesColors(t *testing.T) {
	cube := rubiksify.CubeRecord{
		X:           2,
		Y:           3,
		Defn:        rubiksify.SolvedDefn(),
		Orientation: rubiksify.Orientation{rubiksify.FaceU: rubiksify.FaceR, rubiksify.FaceF: rubiksify.FaceB},
	}

	r, err := NewRecord(cube, "R U R'", rubiksify.DefaultPalette())
	require.NoError(t, err)

	assert.Equal(t, 3, r.MoveCount)
	assert.Equal(t, OrientationColor{ColorName: rubiksify.FaceR, ColorValue: rubiksify.MustParseColor("#FF0000")}, r.Orientation[rubiksify.FaceU])
	assert.Equal(t, OrientationColor{ColorName: rubiksify.FaceB, ColorValue: rubiksify.MustParseColor("#00FF00")}, r.Orientation[rubiksify.FaceF])
}

func TestWriteJSON(t *testing.T) {
	cube := rubiksify.CubeRecord{
		Defn:        rubiksify.SolvedDefn(),
		Orientation: rubiksify.Orientation{rubiksify.FaceU: rubiksify.FaceR},
	}
	r, err := NewRecord(cube, "R U", rubiksify.DefaultPalette())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []Record{r}))

	want := `[{
		"x": 0,
		"y": 0,
		"cubeDefn": "` + string(rubiksify.SolvedDefn()) + `",
		"generator": "R U",
		"moveCount": 2,
		"orientation": {"U": {"colorName": "R", "colorValue": "#FF0000"}}
	}]`
	assert.JSONEq(t, want, buf.String())

	back, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, []Record{r}, back)
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.JSONEq(t, `[]`, buf.String())
}

func TestVerifyReportsMismatch(t *testing.T) {
	records := []Record{
		{Defn: replay(t, "R U"), Generator: "R U"},
		{X: 1, Defn: replay(t, "R U"), Generator: "U R"},
	}

	bad := Verify(context.Background(), nil, records)
	require.Len(t, bad, 1)
	assert.Equal(t, 1, bad[0].X)
}
