package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/export"
	"github.com/SeamusWaldron/rubiksify/internal/renderer"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.MigrateUp())
	return db
}

func testRecipe() renderer.Recipe {
	return renderer.Recipe{
		Dither:    renderer.DitherRiemersma,
		Width:     4,
		Height:    3,
		ExactSize: true,
		Palette:   rubiksify.DefaultPalette(),
	}
}

func testRecords(t *testing.T) []export.Record {
	t.Helper()
	palette := rubiksify.DefaultPalette()
	var out []export.Record
	for i, gen := range []string{"R U", "F2 B'", "L"} {
		d, err := rubiksify.Replay(gen)
		require.NoError(t, err)
		rec, err := export.NewRecord(rubiksify.CubeRecord{
			X: i, Y: 1, Defn: d,
			Orientation: rubiksify.Orientation{rubiksify.FaceU: rubiksify.FaceF, rubiksify.FaceR: rubiksify.FaceR},
		}, gen, palette)
		require.NoError(t, err)
		out = append(out, rec)
	}
	return out
}

func TestMigrateUpIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.MigrateUp())

	v, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestArchiveRoundTrip(t *testing.T) {
	db := openTestDB(t)
	records := testRecords(t)

	id, err := Archive(db, "photo.jpg", testRecipe(), records)
	require.NoError(t, err)

	run, err := NewRunRepository(db).Get(id)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, id, run.RunID)
	require.NotNil(t, run.ImageName)
	assert.Equal(t, "photo.jpg", *run.ImageName)
	assert.True(t, run.Recipe.Equal(testRecipe()))
	assert.Equal(t, 3, run.CubeCount)
	assert.Equal(t, 5, run.TotalMoves)
	assert.False(t, run.CreatedAt.IsZero())

	got, err := NewCubeRepository(db).GetByRun(id)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestRunRepositoryListAndLast(t *testing.T) {
	db := openTestDB(t)
	runs := NewRunRepository(db)

	first, err := runs.Create("", testRecipe(), 0, 0)
	require.NoError(t, err)
	second, err := runs.Create("b.png", testRecipe(), 2, 7)
	require.NoError(t, err)

	last, err := runs.GetLast()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, second, last.RunID)

	list, err := runs.List(10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].RunID)
	assert.Equal(t, first, list[1].RunID)
	assert.Nil(t, list[1].ImageName)
}

func TestRunRepositoryMissing(t *testing.T) {
	db := openTestDB(t)
	runs := NewRunRepository(db)

	run, err := runs.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, run)

	last, err := runs.GetLast()
	require.NoError(t, err)
	assert.Nil(t, last)

	assert.ErrorIs(t, runs.Delete("nope"), rubiksify.ErrValidation)
}

func TestDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	id, err := Archive(db, "a.png", testRecipe(), testRecords(t))
	require.NoError(t, err)

	require.NoError(t, NewRunRepository(db).Delete(id))

	cubes, err := NewCubeRepository(db).GetByRun(id)
	require.NoError(t, err)
	assert.Empty(t, cubes)
}

func TestCreateBatch(t *testing.T) {
	db := openTestDB(t)
	id, err := NewRunRepository(db).Create("a.png", testRecipe(), 3, 5)
	require.NoError(t, err)

	records := testRecords(t)
	require.NoError(t, NewCubeRepository(db).CreateBatch(id, records))

	got, err := NewCubeRepository(db).GetByRun(id)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	// Duplicate indices violate the primary key and roll back.
	assert.Error(t, NewCubeRepository(db).CreateBatch(id, records))
	got, err = NewCubeRepository(db).GetByRun(id)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
