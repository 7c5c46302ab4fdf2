package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/export"
	"github.com/SeamusWaldron/rubiksify/internal/renderer"
)

// CubeRepository stores the solved cubes of a run.
type CubeRepository struct {
	db *DB
}

// NewCubeRepository creates a new cube repository.
func NewCubeRepository(db *DB) *CubeRepository {
	return &CubeRepository{db: db}
}

// CreateBatch stores records in a single transaction, keeping their order.
func (r *CubeRepository) CreateBatch(runID string, records []export.Record) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		return insertCubes(tx, runID, records)
	})
}

func insertCubes(tx *sql.Tx, runID string, records []export.Record) error {
	stmt, err := tx.Prepare(`
		INSERT INTO run_cubes (run_id, cube_index, x, y, cube_defn, generator, move_count, orientation_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare cube insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		orientation, err := json.Marshal(rec.Orientation)
		if err != nil {
			return fmt.Errorf("failed to encode orientation of cube %d: %w", i, err)
		}
		_, err = stmt.Exec(runID, i, rec.X, rec.Y, string(rec.Defn), rec.Generator, rec.MoveCount, string(orientation))
		if err != nil {
			return fmt.Errorf("failed to create cube %d: %w", i, err)
		}
	}
	return nil
}

// GetByRun retrieves the cubes of a run in export order.
func (r *CubeRepository) GetByRun(runID string) ([]export.Record, error) {
	rows, err := r.db.Query(`
		SELECT x, y, cube_defn, generator, move_count, orientation_json
		FROM run_cubes
		WHERE run_id = ?
		ORDER BY cube_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cubes: %w", err)
	}
	defer rows.Close()

	var records []export.Record
	for rows.Next() {
		var (
			rec         export.Record
			defn        string
			orientation string
		)
		if err := rows.Scan(&rec.X, &rec.Y, &defn, &rec.Generator, &rec.MoveCount, &orientation); err != nil {
			return nil, fmt.Errorf("failed to scan cube: %w", err)
		}
		rec.Defn = rubiksify.CubeDefn(defn)
		if err := json.Unmarshal([]byte(orientation), &rec.Orientation); err != nil {
			return nil, fmt.Errorf("failed to decode orientation: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Archive stores a run and its cubes atomically and returns the run ID.
func Archive(db *DB, imageName string, recipe renderer.Recipe, records []export.Record) (string, error) {
	total := 0
	for _, rec := range records {
		total += rec.MoveCount
	}

	var id string
	err := db.Transaction(func(tx *sql.Tx) error {
		var err error
		if id, err = createRun(tx, imageName, recipe, len(records), total); err != nil {
			return err
		}
		return insertCubes(tx, id, records)
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive run: %w", err)
	}
	return id, nil
}
