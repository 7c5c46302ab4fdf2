package pipeline

import (
	"fmt"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/renderer"
)

// Reduce applies ev to s and returns the next state plus the remote work it
// requires. On error s is returned unchanged.
//
// Upstream changes invalidate downstream results: a new image clears the
// mosaic and cubes, a new mosaic clears the cubes. Settings changes only mark
// the mosaic stale. A failed operation restores the state from before it was
// requested.
func Reduce(s Snapshot, ev Event) (Snapshot, []Effect, error) {
	switch ev := ev.(type) {
	case LoadImage:
		if s.Busy != OpNone {
			return s, nil, busy(s)
		}
		if len(ev.Data) == 0 {
			return s, nil, fmt.Errorf("%w: empty image", rubiksify.ErrValidation)
		}
		next := s
		next.Phase = PhaseImageLoaded
		next.ImageName = ev.Name
		next.Image = ev.Data
		next.Mosaic = nil
		next.MosaicRecipe = nil
		next.Cubes = nil
		return next, nil, nil

	case LoadMosaic:
		if s.Busy != OpNone {
			return s, nil, busy(s)
		}
		if ev.Mosaic == nil || len(ev.Mosaic.Data) == 0 {
			return s, nil, fmt.Errorf("%w: empty mosaic", rubiksify.ErrValidation)
		}
		next := s
		next.Phase = PhaseMosaicRendered
		next.Mosaic = ev.Mosaic
		next.MosaicRecipe = nil
		next.Cubes = nil
		return next, nil, nil

	case UpdateSettings:
		if err := ev.Settings.Validate(); err != nil {
			return s, nil, err
		}
		next := s
		next.Settings = ev.Settings.Clone()
		return next, nil, nil

	case RenderRequested:
		if s.Busy != OpNone {
			return s, nil, busy(s)
		}
		if len(s.Image) == 0 {
			return s, nil, invalid(s, "render")
		}
		if err := s.Settings.Validate(); err != nil {
			return s, nil, err
		}
		next := begin(s, OpRender)
		return next, []Effect{RenderEffect{Image: s.Image, Recipe: s.Settings.Clone()}}, nil

	case RenderSucceeded:
		if s.Busy != OpRender {
			return s, nil, invalid(s, "render result")
		}
		recipe := ev.Recipe.Clone()
		next := finish(s)
		next.Phase = PhaseMosaicRendered
		next.Mosaic = ev.Mosaic
		next.MosaicRecipe = &recipe
		next.Cubes = nil
		return next, nil, nil

	case RenderFailed:
		if s.Busy != OpRender {
			return s, nil, invalid(s, "render failure")
		}
		return restore(s), nil, nil

	case DetectRequested:
		if s.Busy != OpNone {
			return s, nil, busy(s)
		}
		if s.Mosaic == nil {
			return s, nil, invalid(s, "detect")
		}
		next := begin(s, OpDetect)
		return next, []Effect{DetectEffect{Mosaic: s.Mosaic.Data, Palette: s.Settings.Palette.Clone()}}, nil

	case DetectSucceeded:
		if s.Busy != OpDetect {
			return s, nil, invalid(s, "detect result")
		}
		next := finish(s)
		next.Phase = PhaseCubesDetected
		next.Cubes = ev.Cubes
		return next, nil, nil

	case DetectFailed:
		if s.Busy != OpDetect {
			return s, nil, invalid(s, "detect failure")
		}
		return restore(s), nil, nil

	case ExportRequested:
		if s.Busy != OpNone {
			return s, nil, busy(s)
		}
		if s.Phase != PhaseCubesDetected {
			return s, nil, invalid(s, "export")
		}
		next := begin(s, OpExport)
		next.Phase = PhaseExporting
		return next, []Effect{ExportEffect{Cubes: s.Cubes, Palette: s.Settings.Palette.Clone()}}, nil

	case ExportSucceeded:
		if s.Busy != OpExport {
			return s, nil, invalid(s, "export result")
		}
		next := finish(s)
		next.Phase = PhaseCubesDetected
		return next, nil, nil

	case ExportFailed:
		if s.Busy != OpExport {
			return s, nil, invalid(s, "export failure")
		}
		return restore(s), nil, nil

	default:
		return s, nil, fmt.Errorf("%w: unknown event %T", rubiksify.ErrInvalidTransition, ev)
	}
}

func begin(s Snapshot, op Op) Snapshot {
	prev := s
	next := s
	next.Busy = op
	next.rollback = &prev
	return next
}

func finish(s Snapshot) Snapshot {
	next := s
	next.Busy = OpNone
	next.rollback = nil
	return next
}

// restore returns the pre-call state. Settings changed while the call was in
// flight are kept.
func restore(s Snapshot) Snapshot {
	if s.rollback == nil {
		return finish(s)
	}
	prev := *s.rollback
	prev.Settings = s.Settings
	return prev
}

func busy(s Snapshot) error {
	return fmt.Errorf("%w: %s in progress", rubiksify.ErrBusy, s.Busy)
}

func invalid(s Snapshot, what string) error {
	return fmt.Errorf("%w: cannot %s while %s", rubiksify.ErrInvalidTransition, what, s.Phase)
}

// DefaultSettings returns the recipe used before any settings are applied.
func DefaultSettings() renderer.Recipe {
	return renderer.Recipe{
		Dither:  renderer.DitherFloydSteinberg,
		Width:   10,
		Height:  10,
		Palette: rubiksify.DefaultPalette(),
	}
}
