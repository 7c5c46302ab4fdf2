package rubiksify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB sticker color.
type Color struct {
	R, G, B uint8
}

// ParseColor parses a "#RRGGBB" or "#RGB" hex string.
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return Color{}, fmt.Errorf("%w: color %q: %v", ErrValidation, s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// MustParseColor is like ParseColor but panics on error. Intended for constants.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as an upper-case "#RRGGBB" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// Components returns the decimal R, G and B components.
func (c Color) Components() []string {
	return []string{
		strconv.Itoa(int(c.R)),
		strconv.Itoa(int(c.G)),
		strconv.Itoa(int(c.B)),
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Palette assigns a color to each of the six faces.
type Palette map[Face]Color

// RendererOrder is the face order the mosaic renderer expects.
var RendererOrder = [6]Face{FaceU, FaceD, FaceL, FaceR, FaceF, FaceB}

// DefaultPalette returns the standard sticker scheme held with yellow on top
// and blue in front.
func DefaultPalette() Palette {
	return Palette{
		FaceU: MustParseColor("#FFFF00"),
		FaceD: MustParseColor("#FFFFFF"),
		FaceL: MustParseColor("#FFA500"),
		FaceR: MustParseColor("#FF0000"),
		FaceF: MustParseColor("#0000FF"),
		FaceB: MustParseColor("#00FF00"),
	}
}

// Validate checks that the palette holds exactly the six faces.
func (p Palette) Validate() error {
	for _, f := range Faces {
		if _, ok := p[f]; !ok {
			return fmt.Errorf("%w: palette has no color for face %s", ErrValidation, f)
		}
	}
	if len(p) != len(Faces) {
		return fmt.Errorf("%w: palette has %d entries, want %d", ErrValidation, len(p), len(Faces))
	}
	return nil
}

// Clone returns an independent copy of the palette.
func (p Palette) Clone() Palette {
	out := make(Palette, len(p))
	for f, c := range p {
		out[f] = c
	}
	return out
}

// Equal reports whether two palettes assign the same colors.
func (p Palette) Equal(other Palette) bool {
	if len(p) != len(other) {
		return false
	}
	for f, c := range p {
		if oc, ok := other[f]; !ok || oc != c {
			return false
		}
	}
	return true
}

// Components flattens the palette to decimal RGB components in the given
// face order.
func (p Palette) Components(order [6]Face) []string {
	out := make([]string, 0, 3*len(order))
	for _, f := range order {
		out = append(out, p[f].Components()...)
	}
	return out
}

// Triples returns one comma-joined "r,g,b" string per face in the given order.
func (p Palette) Triples(order [6]Face) []string {
	out := make([]string, 0, len(order))
	for _, f := range order {
		out = append(out, strings.Join(p[f].Components(), ","))
	}
	return out
}
