package pipeline

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/renderer"
)

type fakeRenderer struct {
	err     error
	block   chan struct{}
	started chan struct{}
	recipes []renderer.Recipe
}

func (f *fakeRenderer) Render(ctx context.Context, img []byte, recipe renderer.Recipe) (*renderer.Mosaic, error) {
	f.recipes = append(f.recipes, recipe)
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	w, h := recipe.PixelSize()
	return &renderer.Mosaic{Data: append([]byte("mosaic:"), img...), Format: "png", Width: w, Height: h}, nil
}

type fakeDetector struct {
	cubes []rubiksify.CubeRecord
	err   error
}

func (f *fakeDetector) Decompose(ctx context.Context, mosaic []byte, palette rubiksify.Palette) ([]rubiksify.CubeRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cubes, nil
}

type fakeSolver struct {
	mu    sync.Mutex
	calls int
	fail  atomic.Bool
}

func (f *fakeSolver) Solve(ctx context.Context, defn rubiksify.CubeDefn) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.fail.Load() {
		return "", fmt.Errorf("%w: Failed", rubiksify.ErrProtocol)
	}
	return "R U", nil
}

func testCubes(t *testing.T) []rubiksify.CubeRecord {
	t.Helper()
	d, err := rubiksify.Replay("R U")
	require.NoError(t, err)
	return []rubiksify.CubeRecord{
		{X: 0, Y: 0, Defn: d, Orientation: rubiksify.IdentityOrientation()},
		{X: 1, Y: 0, Defn: d, Orientation: rubiksify.IdentityOrientation()},
		{X: 0, Y: 1, Defn: rubiksify.SolvedDefn(), Orientation: rubiksify.IdentityOrientation()},
	}
}

func TestOrchestratorFullRun(t *testing.T) {
	ctx := context.Background()
	solve := &fakeSolver{}
	o := New(&fakeRenderer{}, &fakeDetector{cubes: testCubes(t)}, solve, WithConcurrency(2))

	require.NoError(t, o.LoadImage("in.png", []byte("img")))

	m, err := o.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, m.Width)
	assert.False(t, o.Stale())

	cubes, err := o.Detect(ctx)
	require.NoError(t, err)
	assert.Len(t, cubes, 3)

	records, err := o.Export(ctx, nil)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 1, records[1].X)
	assert.Equal(t, "R U", records[0].Generator)

	// Two distinct definitions, the duplicate is served by the cache.
	assert.Equal(t, 2, solve.calls)
	assert.Equal(t, 2, o.Cache().Len())

	gen, err := o.Solve(ctx, rubiksify.SolvedDefn())
	require.NoError(t, err)
	assert.Equal(t, "R U", gen)
	assert.Equal(t, 2, solve.calls)

	assert.Equal(t, PhaseCubesDetected, o.Snapshot().Phase)
}

func TestOrchestratorRenderFailureKeepsMosaic(t *testing.T) {
	ctx := context.Background()
	r := &fakeRenderer{}
	o := New(r, &fakeDetector{cubes: testCubes(t)}, &fakeSolver{})

	require.NoError(t, o.LoadImage("in.png", []byte("img")))
	first, err := o.Render(ctx)
	require.NoError(t, err)
	_, err = o.Detect(ctx)
	require.NoError(t, err)

	r.err = fmt.Errorf("%w: HTTP 502", rubiksify.ErrTransport)
	_, err = o.Render(ctx)
	require.ErrorIs(t, err, rubiksify.ErrTransport)

	snap := o.Snapshot()
	assert.Equal(t, PhaseCubesDetected, snap.Phase)
	assert.Same(t, first, snap.Mosaic)
	assert.Len(t, snap.Cubes, 3)
	assert.Equal(t, OpNone, snap.Busy)
}

func TestOrchestratorExportFailureKeepsCubes(t *testing.T) {
	ctx := context.Background()
	solve := &fakeSolver{}
	solve.fail.Store(true)
	o := New(&fakeRenderer{}, &fakeDetector{cubes: testCubes(t)}, solve)

	require.NoError(t, o.LoadImage("in.png", []byte("img")))
	_, err := o.Render(ctx)
	require.NoError(t, err)
	_, err = o.Detect(ctx)
	require.NoError(t, err)

	_, err = o.Export(ctx, nil)
	require.ErrorIs(t, err, rubiksify.ErrProtocol)
	assert.Equal(t, PhaseCubesDetected, o.Snapshot().Phase)
	assert.Zero(t, o.Cache().Len())

	solve.fail.Store(false)
	records, err := o.Export(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestOrchestratorRejectsConcurrentOperation(t *testing.T) {
	r := &fakeRenderer{block: make(chan struct{}), started: make(chan struct{})}
	o := New(r, &fakeDetector{}, &fakeSolver{})
	require.NoError(t, o.LoadImage("in.png", []byte("img")))

	done := make(chan error, 1)
	go func() {
		_, err := o.Render(context.Background())
		done <- err
	}()
	<-r.started

	_, err := o.Render(context.Background())
	assert.ErrorIs(t, err, rubiksify.ErrBusy)
	assert.ErrorIs(t, o.LoadImage("x.png", []byte("x")), rubiksify.ErrBusy)

	close(r.block)
	require.NoError(t, <-done)
	assert.Equal(t, PhaseMosaicRendered, o.Snapshot().Phase)
}

func TestOrchestratorSettingsAndStale(t *testing.T) {
	r := &fakeRenderer{}
	o := New(r, &fakeDetector{}, &fakeSolver{})
	require.NoError(t, o.LoadImage("in.png", []byte("img")))
	_, err := o.Render(context.Background())
	require.NoError(t, err)

	settings := DefaultSettings()
	settings.ExactSize = true
	require.NoError(t, o.UpdateSettings(settings))
	assert.True(t, o.Stale())

	_, err = o.Render(context.Background())
	require.NoError(t, err)
	assert.False(t, o.Stale())
	require.Len(t, r.recipes, 2)
	assert.True(t, r.recipes[1].ExactSize)
}

func TestOrchestratorLoadMosaic(t *testing.T) {
	o := New(&fakeRenderer{}, &fakeDetector{cubes: testCubes(t)}, &fakeSolver{})

	_, err := o.Detect(context.Background())
	require.ErrorIs(t, err, rubiksify.ErrInvalidTransition)

	require.NoError(t, o.LoadMosaic(&renderer.Mosaic{Data: []byte("png")}))
	cubes, err := o.Detect(context.Background())
	require.NoError(t, err)
	assert.Len(t, cubes, 3)
	assert.True(t, o.Stale())
}
