// Package renderer talks to the remote mosaic renderer.
package renderer

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/rubiksify"
)

// Dither selects the renderer's dithering mode.
type Dither string

const (
	DitherNone           Dither = "None"
	DitherRiemersma      Dither = "Riemersma"
	DitherFloydSteinberg Dither = "FloydSteinberg"
)

// ParseDither parses a dither mode name, case-insensitively.
func ParseDither(s string) (Dither, error) {
	for _, d := range []Dither{DitherNone, DitherRiemersma, DitherFloydSteinberg} {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	if strings.EqualFold(s, "floyd-steinberg") {
		return DitherFloydSteinberg, nil
	}
	return "", fmt.Errorf("%w: unknown dither mode %q (use None, Riemersma or FloydSteinberg)", rubiksify.ErrValidation, s)
}

// StickersPerCube is the number of mosaic pixels along one side of a cube face.
const StickersPerCube = 3

// Recipe holds every input that shapes a rendered mosaic. A mosaic is stale
// when the current recipe no longer equals the one it was rendered with.
type Recipe struct {
	Dither    Dither            `json:"dither"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	ExactSize bool              `json:"exactSize"`
	Palette   rubiksify.Palette `json:"palette"`
}

// Validate checks grid dimensions, dither mode and palette.
func (r Recipe) Validate() error {
	if r.Width < 1 || r.Height < 1 {
		return fmt.Errorf("%w: grid must be at least 1x1 cubes, got %dx%d", rubiksify.ErrValidation, r.Width, r.Height)
	}
	if _, err := ParseDither(string(r.Dither)); err != nil {
		return err
	}
	return r.Palette.Validate()
}

// Clone returns a copy whose palette is independent of r's.
func (r Recipe) Clone() Recipe {
	out := r
	out.Palette = r.Palette.Clone()
	return out
}

// Equal reports whether two recipes would render the same mosaic.
func (r Recipe) Equal(other Recipe) bool {
	return r.Dither == other.Dither &&
		r.Width == other.Width &&
		r.Height == other.Height &&
		r.ExactSize == other.ExactSize &&
		r.Palette.Equal(other.Palette)
}

// PixelSize returns the target mosaic size in pixels.
func (r Recipe) PixelSize() (int, int) {
	return StickersPerCube * r.Width, StickersPerCube * r.Height
}

// ColorString encodes the recipe for the renderer query:
//
//	<dither>;<W>x<H>[!];<rgbU>;<rgbD>;<rgbL>;<rgbR>;<rgbF>;<rgbB>
func (r Recipe) ColorString() string {
	w, h := r.PixelSize()
	size := fmt.Sprintf("%dx%d", w, h)
	if r.ExactSize {
		size += "!"
	}
	parts := append([]string{string(r.Dither), size}, r.Palette.Triples(rubiksify.RendererOrder)...)
	return strings.Join(parts, ";")
}
