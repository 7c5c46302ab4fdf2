package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/batch"
	"github.com/SeamusWaldron/rubiksify/internal/detector"
	"github.com/SeamusWaldron/rubiksify/internal/export"
	"github.com/SeamusWaldron/rubiksify/internal/logging"
	"github.com/SeamusWaldron/rubiksify/internal/renderer"
	"github.com/SeamusWaldron/rubiksify/internal/solver"
)

// Option configures an Orchestrator.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	settings    renderer.Recipe
	concurrency int
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = logging.OrDiscard(l)
	}
}

// WithSettings sets the initial recipe inputs.
func WithSettings(r renderer.Recipe) Option {
	return func(o *options) {
		o.settings = r.Clone()
	}
}

// WithConcurrency sets the export solve ceiling.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// Orchestrator drives Reduce against the remote services. It owns the solve
// cache, so generators are reused for as long as the Orchestrator lives.
// Methods are safe for concurrent use; a second operation started while one
// is in flight fails with ErrBusy.
type Orchestrator struct {
	renderer renderer.Renderer
	detector detector.Detector
	cache    *solver.Cache
	exporter *export.Aggregator
	logger   *slog.Logger

	mu   sync.Mutex
	snap Snapshot
}

// New creates an Orchestrator. s is wrapped in a fresh solve cache.
func New(r renderer.Renderer, d detector.Detector, s solver.Solver, opts ...Option) *Orchestrator {
	o := &options{
		logger:      logging.Discard(),
		settings:    DefaultSettings(),
		concurrency: export.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(o)
	}

	cache := solver.NewCache(s, o.logger)
	return &Orchestrator{
		renderer: r,
		detector: d,
		cache:    cache,
		exporter: export.NewAggregator(cache, export.WithConcurrency(o.concurrency), export.WithLogger(o.logger)),
		logger:   o.logger,
		snap:     Snapshot{Settings: o.settings},
	}
}

func (o *Orchestrator) dispatch(ev Event) ([]Effect, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	from := o.snap.Phase
	next, effects, err := Reduce(o.snap, ev)
	if err != nil {
		return nil, err
	}
	o.snap = next
	if from != next.Phase {
		o.logger.Debug("pipeline transition", "event", fmt.Sprintf("%T", ev), "from", from.String(), "to", next.Phase.String())
	}
	return effects, nil
}

// Snapshot returns the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snap
}

// Stale reports whether the mosaic no longer matches the current settings.
func (o *Orchestrator) Stale() bool {
	return o.Snapshot().Stale()
}

// Cache returns the solve cache owned by the orchestrator.
func (o *Orchestrator) Cache() *solver.Cache {
	return o.cache
}

// LoadImage replaces the source image, discarding mosaic and cubes.
func (o *Orchestrator) LoadImage(name string, data []byte) error {
	_, err := o.dispatch(LoadImage{Name: name, Data: data})
	return err
}

// LoadMosaic installs an existing mosaic, discarding cubes.
func (o *Orchestrator) LoadMosaic(m *renderer.Mosaic) error {
	_, err := o.dispatch(LoadMosaic{Mosaic: m})
	return err
}

// UpdateSettings replaces the recipe inputs.
func (o *Orchestrator) UpdateSettings(r renderer.Recipe) error {
	_, err := o.dispatch(UpdateSettings{Settings: r})
	return err
}

// Render renders the loaded image with the current settings.
func (o *Orchestrator) Render(ctx context.Context) (*renderer.Mosaic, error) {
	effects, err := o.dispatch(RenderRequested{})
	if err != nil {
		return nil, err
	}
	eff := effects[0].(RenderEffect)

	m, err := o.renderer.Render(ctx, eff.Image, eff.Recipe)
	if err != nil {
		o.logger.WarnContext(ctx, "render failed", "error", err)
		_, _ = o.dispatch(RenderFailed{Err: err})
		return nil, err
	}
	if _, err := o.dispatch(RenderSucceeded{Mosaic: m, Recipe: eff.Recipe}); err != nil {
		return nil, err
	}
	return m, nil
}

// Detect decomposes the current mosaic into cubes.
func (o *Orchestrator) Detect(ctx context.Context) ([]rubiksify.CubeRecord, error) {
	effects, err := o.dispatch(DetectRequested{})
	if err != nil {
		return nil, err
	}
	eff := effects[0].(DetectEffect)

	cubes, err := o.detector.Decompose(ctx, eff.Mosaic, eff.Palette)
	if err != nil {
		o.logger.WarnContext(ctx, "detect failed", "error", err)
		_, _ = o.dispatch(DetectFailed{Err: err})
		return nil, err
	}
	if _, err := o.dispatch(DetectSucceeded{Cubes: cubes}); err != nil {
		return nil, err
	}
	return cubes, nil
}

// Export solves every detected cube. Any failed solve fails the export and
// leaves the detected cubes in place.
func (o *Orchestrator) Export(ctx context.Context, onProgress batch.ProgressFunc) ([]export.Record, error) {
	effects, err := o.dispatch(ExportRequested{})
	if err != nil {
		return nil, err
	}
	eff := effects[0].(ExportEffect)

	records, err := o.exporter.ExportAll(ctx, eff.Cubes, eff.Palette, onProgress)
	if err != nil {
		o.logger.WarnContext(ctx, "export failed", "error", err)
		_, _ = o.dispatch(ExportFailed{Err: err})
		return nil, err
	}
	if _, err := o.dispatch(ExportSucceeded{Records: records}); err != nil {
		return nil, err
	}
	return records, nil
}

// Solve resolves a single cube through the shared cache.
func (o *Orchestrator) Solve(ctx context.Context, defn rubiksify.CubeDefn) (string, error) {
	return o.cache.Solve(ctx, defn)
}
