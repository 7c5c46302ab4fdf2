// Package export resolves every detected cube to a generator and assembles the
// export document.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/batch"
	"github.com/SeamusWaldron/rubiksify/internal/logging"
	"github.com/SeamusWaldron/rubiksify/internal/solver"
)

// DefaultConcurrency is the number of solves allowed in flight at once.
const DefaultConcurrency = batch.DefaultLimit

// OrientationColor is the resolved target of one orientation entry.
type OrientationColor struct {
	ColorName  rubiksify.Face  `json:"colorName"`
	ColorValue rubiksify.Color `json:"colorValue"`
}

// Record is one entry of the export document.
type Record struct {
	X           int                                 `json:"x"`
	Y           int                                 `json:"y"`
	Defn        rubiksify.CubeDefn                  `json:"cubeDefn"`
	Generator   string                              `json:"generator"`
	MoveCount   int                                 `json:"moveCount"`
	Orientation map[rubiksify.Face]OrientationColor `json:"orientation"`
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithConcurrency sets the solve concurrency ceiling.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		a.concurrency = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logging.OrDiscard(l)
	}
}

// Aggregator runs the solver over a cube set.
type Aggregator struct {
	solver      solver.Solver
	concurrency int
	logger      *slog.Logger
}

// NewAggregator creates an Aggregator. s is usually a *solver.Cache.
func NewAggregator(s solver.Solver, opts ...Option) *Aggregator {
	a := &Aggregator{
		solver:      s,
		concurrency: DefaultConcurrency,
		logger:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ExportAll solves every cube and returns one record per cube in input order.
// Any failed solve fails the whole export.
func (a *Aggregator) ExportAll(ctx context.Context, cubes []rubiksify.CubeRecord, palette rubiksify.Palette, onProgress batch.ProgressFunc) ([]Record, error) {
	if err := palette.Validate(); err != nil {
		return nil, err
	}
	palette = palette.Clone()

	records, err := batch.Map(ctx, cubes, a.concurrency, func(ctx context.Context, cube rubiksify.CubeRecord) (Record, error) {
		gen, err := a.solver.Solve(ctx, cube.Defn)
		if err != nil {
			return Record{}, fmt.Errorf("cube (%d,%d): %w", cube.X, cube.Y, err)
		}
		return NewRecord(cube, gen, palette)
	}, onProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to export cubes: %w", err)
	}

	a.logger.InfoContext(ctx, "export finished", "cubes", len(records))
	return records, nil
}

// Verify replays every generator on a simulated solved cube and returns the
// records whose result differs from their cube definition. The solver's move
// conventions are outside our control, so a mismatch is only a warning.
func Verify(ctx context.Context, logger *slog.Logger, records []Record) []Record {
	logger = logging.OrDiscard(logger)
	var mismatched []Record
	for _, r := range records {
		if err := rubiksify.VerifyGenerator(r.Defn, r.Generator); err != nil {
			logger.WarnContext(ctx, "generator does not reproduce cube",
				"x", r.X, "y", r.Y, "generator", r.Generator, "error", err)
			mismatched = append(mismatched, r)
		}
	}
	return mismatched
}

// NewRecord combines a cube, its generator and the palette into a Record.
func NewRecord(cube rubiksify.CubeRecord, generator string, palette rubiksify.Palette) (Record, error) {
	orientation := make(map[rubiksify.Face]OrientationColor, len(cube.Orientation))
	for src, dst := range cube.Orientation {
		c, ok := palette[dst]
		if !ok {
			return Record{}, fmt.Errorf("%w: palette has no color for %s", rubiksify.ErrValidation, dst)
		}
		orientation[src] = OrientationColor{ColorName: dst, ColorValue: c}
	}
	return Record{
		X:           cube.X,
		Y:           cube.Y,
		Defn:        cube.Defn,
		Generator:   generator,
		MoveCount:   rubiksify.MoveCount(generator),
		Orientation: orientation,
	}, nil
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// ReadJSON decodes an export document written by WriteJSON.
func ReadJSON(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	return records, nil
}
