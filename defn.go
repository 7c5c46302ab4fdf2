package rubiksify

import (
	"fmt"
	"strings"
)

// DefnLength is the number of stickers in a cube definition.
const DefnLength = 54

// CubeDefn is a 54-character cube-face string: six 9-sticker blocks in
// U, R, F, D, L, B order. Within a block stickers are row-major:
//
//	0 1 2
//	3 4 5
//	6 7 8
type CubeDefn string

// SolvedDefn returns the canonical solved cube definition.
func SolvedDefn() CubeDefn {
	var b strings.Builder
	b.Grow(DefnLength)
	for _, f := range Faces {
		for i := 0; i < 9; i++ {
			b.WriteByte(byte(f))
		}
	}
	return CubeDefn(b.String())
}

// ValidateDefn checks the length and alphabet of a cube definition.
func ValidateDefn(defn CubeDefn) error {
	if len(defn) != DefnLength {
		return fmt.Errorf("%w: cube definition has %d characters, want %d", ErrValidation, len(defn), DefnLength)
	}
	for i := 0; i < len(defn); i++ {
		if !Face(defn[i]).Valid() {
			return fmt.Errorf("%w: cube definition has %q at index %d", ErrValidation, defn[i], i)
		}
	}
	return nil
}

// ExtractFace returns the nine stickers of a face.
func ExtractFace(defn CubeDefn, face Face) (string, error) {
	if len(defn) != DefnLength {
		return "", fmt.Errorf("%w: cube definition has %d characters, want %d", ErrValidation, len(defn), DefnLength)
	}
	idx, ok := FaceIndex(face)
	if !ok {
		return "", fmt.Errorf("%w: unknown face %q", ErrValidation, byte(face))
	}
	start := idx * 9
	return string(defn[start : start+9]), nil
}

// ColorAt returns sticker i (0-8) of a face.
func ColorAt(defn CubeDefn, face Face, i int) (Face, error) {
	if i < 0 || i > 8 {
		return 0, fmt.Errorf("%w: sticker index %d out of range", ErrValidation, i)
	}
	stickers, err := ExtractFace(defn, face)
	if err != nil {
		return 0, err
	}
	return Face(stickers[i]), nil
}

// Colorize maps every sticker of defn through the orientation. It fails if the
// orientation has no entry for a label present in defn.
func Colorize(defn CubeDefn, o Orientation) (CubeDefn, error) {
	s, err := colorizeString(string(defn), o)
	if err != nil {
		return "", err
	}
	return CubeDefn(s), nil
}

// ColorizeFace applies an orientation to the stickers of a single face.
func ColorizeFace(stickers string, o Orientation) (string, error) {
	return colorizeString(stickers, o)
}

func colorizeString(s string, o Orientation) (string, error) {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		target, ok := o[Face(s[i])]
		if !ok {
			return "", fmt.Errorf("%w: orientation has no mapping for %q", ErrValidation, s[i])
		}
		out[i] = byte(target)
	}
	return string(out), nil
}
