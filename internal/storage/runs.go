package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/renderer"
)

// timeLayout sorts lexically in creation order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one archived export.
type Run struct {
	RunID      string
	CreatedAt  time.Time
	ImageName  *string
	Recipe     renderer.Recipe
	CubeCount  int
	TotalMoves int
}

// RunRepository provides CRUD operations for runs.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create creates a new run and returns its ID.
func (r *RunRepository) Create(imageName string, recipe renderer.Recipe, cubeCount, totalMoves int) (string, error) {
	return createRun(r.db.DB, imageName, recipe, cubeCount, totalMoves)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func createRun(ex execer, imageName string, recipe renderer.Recipe, cubeCount, totalMoves int) (string, error) {
	palette, err := json.Marshal(recipe.Palette)
	if err != nil {
		return "", fmt.Errorf("failed to encode palette: %w", err)
	}

	var imagePtr *string
	if imageName != "" {
		imagePtr = &imageName
	}

	id := uuid.New().String()
	_, err = ex.Exec(`
		INSERT INTO runs (run_id, created_at, image_name, dither, width, height, exact_size, palette_json, cube_count, total_moves)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, time.Now().UTC().Format(timeLayout), imagePtr, string(recipe.Dither),
		recipe.Width, recipe.Height, recipe.ExactSize, string(palette), cubeCount, totalMoves)
	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}

	return id, nil
}

const runColumns = `run_id, created_at, image_name, dither, width, height, exact_size, palette_json, cube_count, total_moves`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run          Run
		createdAtStr string
		dither       string
		paletteJSON  string
	)
	err := row.Scan(&run.RunID, &createdAtStr, &run.ImageName, &dither,
		&run.Recipe.Width, &run.Recipe.Height, &run.Recipe.ExactSize,
		&paletteJSON, &run.CubeCount, &run.TotalMoves)
	if err != nil {
		return nil, err
	}

	run.CreatedAt, _ = time.Parse(timeLayout, createdAtStr)
	run.Recipe.Dither = renderer.Dither(dither)
	if err := json.Unmarshal([]byte(paletteJSON), &run.Recipe.Palette); err != nil {
		return nil, fmt.Errorf("failed to decode palette of run %s: %w", run.RunID, err)
	}
	return &run, nil
}

// Get retrieves a run by ID. It returns nil when no run matches.
func (r *RunRepository) Get(runID string) (*Run, error) {
	run, err := scanRun(r.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// GetLast retrieves the most recent run.
func (r *RunRepository) GetLast() (*Run, error) {
	run, err := scanRun(r.db.QueryRow(`SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, rowid DESC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last run: %w", err)
	}
	return run, nil
}

// List retrieves recent runs, newest first.
func (r *RunRepository) List(limit int) ([]Run, error) {
	rows, err := r.db.Query(`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Delete removes a run and its cubes.
func (r *RunRepository) Delete(runID string) error {
	res, err := r.db.Exec("DELETE FROM runs WHERE run_id = ?", runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: no run %s", rubiksify.ErrValidation, runID)
	}
	return nil
}
