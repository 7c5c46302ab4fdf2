// Package pipeline sequences image -> mosaic -> cubes -> export as an explicit
// state machine. Reduce is pure; Orchestrator executes its effects against the
// remote clients.
package pipeline

import (
	"fmt"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/export"
	"github.com/SeamusWaldron/rubiksify/internal/renderer"
)

// Phase is the furthest stage the pipeline has results for.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseImageLoaded
	PhaseMosaicRendered
	PhaseCubesDetected
	PhaseExporting
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseImageLoaded:
		return "image loaded"
	case PhaseMosaicRendered:
		return "mosaic rendered"
	case PhaseCubesDetected:
		return "cubes detected"
	case PhaseExporting:
		return "exporting"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Op is a remote operation in flight.
type Op int

const (
	OpNone Op = iota
	OpRender
	OpDetect
	OpExport
)

func (o Op) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpRender:
		return "render"
	case OpDetect:
		return "detect"
	case OpExport:
		return "export"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Snapshot is the complete pipeline state. Slices and the mosaic are shared
// between snapshots and must be treated as read-only.
type Snapshot struct {
	Phase Phase
	Busy  Op

	// Settings are the current recipe inputs.
	Settings renderer.Recipe

	ImageName string
	Image     []byte

	Mosaic *renderer.Mosaic
	// MosaicRecipe is the recipe Mosaic was rendered with, nil when the
	// mosaic was loaded from elsewhere.
	MosaicRecipe *renderer.Recipe

	Cubes []rubiksify.CubeRecord

	// rollback is the state restored when the in-flight operation fails.
	rollback *Snapshot
}

// Stale reports whether the mosaic would render differently under the
// current settings. A mosaic of unknown recipe is always stale.
func (s Snapshot) Stale() bool {
	if s.Mosaic == nil {
		return false
	}
	if s.MosaicRecipe == nil {
		return true
	}
	return !s.MosaicRecipe.Equal(s.Settings)
}

// Event is an input to Reduce.
type Event interface {
	event()
}

type (
	// LoadImage replaces the source image.
	LoadImage struct {
		Name string
		Data []byte
	}
	// LoadMosaic installs a previously rendered mosaic.
	LoadMosaic struct {
		Mosaic *renderer.Mosaic
	}
	// UpdateSettings replaces the recipe inputs.
	UpdateSettings struct {
		Settings renderer.Recipe
	}
	RenderRequested struct{}
	RenderSucceeded struct {
		Mosaic *renderer.Mosaic
		Recipe renderer.Recipe
	}
	RenderFailed struct {
		Err error
	}
	DetectRequested struct{}
	DetectSucceeded struct {
		Cubes []rubiksify.CubeRecord
	}
	DetectFailed struct {
		Err error
	}
	ExportRequested struct{}
	ExportSucceeded struct {
		Records []export.Record
	}
	ExportFailed struct {
		Err error
	}
)

func (LoadImage) event()       {}
func (LoadMosaic) event()      {}
func (UpdateSettings) event()  {}
func (RenderRequested) event() {}
func (RenderSucceeded) event() {}
func (RenderFailed) event()    {}
func (DetectRequested) event() {}
func (DetectSucceeded) event() {}
func (DetectFailed) event()    {}
func (ExportRequested) event() {}
func (ExportSucceeded) event() {}
func (ExportFailed) event()    {}

// Effect is remote work requested by Reduce.
type Effect interface {
	effect()
}

// RenderEffect asks for Image to be rendered with Recipe.
type RenderEffect struct {
	Image  []byte
	Recipe renderer.Recipe
}

// DetectEffect asks for Mosaic to be decomposed under Palette.
type DetectEffect struct {
	Mosaic  []byte
	Palette rubiksify.Palette
}

// ExportEffect asks for Cubes to be solved and exported under Palette.
type ExportEffect struct {
	Cubes   []rubiksify.CubeRecord
	Palette rubiksify.Palette
}

func (RenderEffect) effect() {}
func (DetectEffect) effect() {}
func (ExportEffect) effect() {}
