// Package state keeps the small JSON file that carries the last mosaic and
// export run across invocations.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SeamusWaldron/rubiksify/internal/config"
	"github.com/SeamusWaldron/rubiksify/internal/renderer"
)

// AppState represents the persistent application state.
type AppState struct {
	DBPath       string           `json:"db_path,omitempty"`
	LastImage    string           `json:"last_image,omitempty"`
	LastMosaic   string           `json:"last_mosaic,omitempty"`
	MosaicRecipe *renderer.Recipe `json:"mosaic_recipe,omitempty"`
	RenderedAt   time.Time        `json:"rendered_at,omitzero"`
	LastRunID    string           `json:"last_run_id,omitempty"`
}

// StateFile manages the application state file.
type StateFile struct {
	path  string
	state AppState
}

// DefaultStatePath returns the default state file path.
func DefaultStatePath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.json"), nil
}

// NewStateFile creates a state file manager, loading the file if it exists.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}

	if err := sf.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	return sf, nil
}

// NewDefaultStateFile creates a state file manager with the default path.
func NewDefaultStateFile() (*StateFile, error) {
	path, err := DefaultStatePath()
	if err != nil {
		return nil, err
	}
	return NewStateFile(path)
}

// Path returns the file location.
func (sf *StateFile) Path() string {
	return sf.path
}

// Load loads the state from disk.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &sf.state); err != nil {
		return fmt.Errorf("failed to parse state file %s: %w", sf.path, err)
	}
	return nil
}

// Save saves the state to disk.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// State returns the current state.
func (sf *StateFile) State() AppState {
	return sf.state
}

// SetDBPath sets the database path.
func (sf *StateFile) SetDBPath(path string) error {
	sf.state.DBPath = path
	return sf.Save()
}

// SetLastMosaic records a rendered mosaic and the recipe it was made with.
func (sf *StateFile) SetLastMosaic(image, mosaic string, recipe renderer.Recipe, at time.Time) error {
	r := recipe.Clone()
	sf.state.LastImage = image
	sf.state.LastMosaic = mosaic
	sf.state.MosaicRecipe = &r
	sf.state.RenderedAt = at
	return sf.Save()
}

// SetLastRun records the id of the latest archived export run.
func (sf *StateFile) SetLastRun(runID string) error {
	sf.state.LastRunID = runID
	return sf.Save()
}

// MosaicStale reports whether the last mosaic would render differently with
// current. It is false when no mosaic has been recorded.
func (sf *StateFile) MosaicStale(current renderer.Recipe) bool {
	if sf.state.LastMosaic == "" {
		return false
	}
	if sf.state.MosaicRecipe == nil {
		return true
	}
	return !sf.state.MosaicRecipe.Equal(current)
}

// HasLastRun returns true if an export run has been archived.
func (sf *StateFile) HasLastRun() bool {
	return sf.state.LastRunID != ""
}

// LastRunID returns the id of the latest archived export run.
func (sf *StateFile) LastRunID() string {
	return sf.state.LastRunID
}

// DBPath returns the database path.
func (sf *StateFile) DBPath() string {
	return sf.state.DBPath
}
