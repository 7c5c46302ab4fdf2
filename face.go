package rubiksify

import "fmt"

// Face is one of the six face labels of a cube.
type Face byte

const (
	FaceU Face = 'U' // Up
	FaceR Face = 'R' // Right
	FaceF Face = 'F' // Front
	FaceD Face = 'D' // Down
	FaceL Face = 'L' // Left
	FaceB Face = 'B' // Back
)

// Faces lists the faces in cube definition order.
var Faces = [6]Face{FaceU, FaceR, FaceF, FaceD, FaceL, FaceB}

// FaceIndex returns the block index of a face within a cube definition.
func FaceIndex(f Face) (int, bool) {
	switch f {
	case FaceU:
		return 0, true
	case FaceR:
		return 1, true
	case FaceF:
		return 2, true
	case FaceD:
		return 3, true
	case FaceL:
		return 4, true
	case FaceB:
		return 5, true
	default:
		return -1, false
	}
}

// Valid reports whether f is one of the six face labels.
func (f Face) Valid() bool {
	_, ok := FaceIndex(f)
	return ok
}

func (f Face) String() string {
	if !f.Valid() {
		return "?"
	}
	return string(rune(f))
}

// ParseFace parses a single-letter face label.
func ParseFace(s string) (Face, error) {
	if len(s) != 1 || !Face(s[0]).Valid() {
		return 0, fmt.Errorf("%w: unknown face %q", ErrValidation, s)
	}
	return Face(s[0]), nil
}

// MarshalText implements encoding.TextMarshaler so faces can key JSON maps.
func (f Face) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: unknown face %d", ErrValidation, byte(f))
	}
	return []byte{byte(f)}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Face) UnmarshalText(b []byte) error {
	parsed, err := ParseFace(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
