package rubiksify

import (
	"fmt"
	"sort"
	"strings"
)

// Orientation maps a sticker label to the logical face it stands for after the
// cube is reoriented. It recolors a definition without changing its topology.
type Orientation map[Face]Face

// IdentityOrientation maps every face to itself.
func IdentityOrientation() Orientation {
	o := make(Orientation, len(Faces))
	for _, f := range Faces {
		o[f] = f
	}
	return o
}

// ParseOrientationPair parses a two-character source/target token such as "UR".
func ParseOrientationPair(token string) (Face, Face, error) {
	if len(token) != 2 {
		return 0, 0, fmt.Errorf("%w: orientation pair %q must have 2 characters", ErrValidation, token)
	}
	src, dst := Face(token[0]), Face(token[1])
	if !src.Valid() || !dst.Valid() {
		return 0, 0, fmt.Errorf("%w: orientation pair %q has unknown face", ErrValidation, token)
	}
	return src, dst, nil
}

// Covers reports whether o has a mapping for every label present in defn.
func (o Orientation) Covers(defn CubeDefn) bool {
	for i := 0; i < len(defn); i++ {
		if _, ok := o[Face(defn[i])]; !ok {
			return false
		}
	}
	return true
}

// Pairs returns the orientation as sorted "ST" tokens, the detector's wire form.
func (o Orientation) Pairs() []string {
	pairs := make([]string, 0, len(o))
	for src, dst := range o {
		pairs = append(pairs, string([]byte{byte(src), byte(dst)}))
	}
	sort.Strings(pairs)
	return pairs
}

func (o Orientation) String() string {
	return strings.Join(o.Pairs(), ",")
}
