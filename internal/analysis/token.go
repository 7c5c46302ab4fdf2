package analysis

import (
	"github.com/SeamusWaldron/rubiksify"
)

// Token encoding for n-gram detection.
// Encodes a Move as a single byte: face index (0-5) * 3 + turn (0-2),
// giving 18 values for all moves.

func turnToIndex(t rubiksify.Turn) uint8 {
	switch t {
	case rubiksify.CCW:
		return 1
	case rubiksify.Double:
		return 2
	default:
		return 0
	}
}

func indexToTurn(i uint8) rubiksify.Turn {
	switch i {
	case 1:
		return rubiksify.CCW
	case 2:
		return rubiksify.Double
	default:
		return rubiksify.CW
	}
}

// moveToken encodes a Move as a single byte.
func moveToken(m rubiksify.Move) uint8 {
	faceIdx, _ := rubiksify.FaceIndex(m.Face)
	return uint8(faceIdx)*3 + turnToIndex(m.Turn)
}

// moveFromToken decodes a token back to a Move.
func moveFromToken(token uint8) rubiksify.Move {
	faceIdx := int(token / 3)
	if faceIdx >= len(rubiksify.Faces) {
		faceIdx = 0
	}
	return rubiksify.Move{
		Face: rubiksify.Faces[faceIdx],
		Turn: indexToTurn(token % 3),
	}
}

// mergeMoves merges two same-face moves into one.
// Returns false if they cancel out (e.g., R + R' = nothing).
func mergeMoves(m1, m2 rubiksify.Move) (rubiksify.Move, bool) {
	// Quarter turns: CW=1, CCW=-1, Double=2
	total := ((int(m1.Turn)+int(m2.Turn))%4 + 4) % 4
	switch total {
	case 0:
		return rubiksify.Move{}, false
	case 3:
		return rubiksify.Move{Face: m1.Face, Turn: rubiksify.CCW}, true
	default:
		return rubiksify.Move{Face: m1.Face, Turn: rubiksify.Turn(total)}, true
	}
}

// Simplify merges runs of same-face moves, so "R R" becomes "R2" and
// "U U'" disappears. The result has the same effect on the cube.
func Simplify(moves []rubiksify.Move) []rubiksify.Move {
	out := make([]rubiksify.Move, 0, len(moves))
	for _, m := range moves {
		if n := len(out); n > 0 && out[n-1].Face == m.Face {
			merged, ok := mergeMoves(out[n-1], m)
			out = out[:n-1]
			if ok {
				out = append(out, merged)
			}
			continue
		}
		out = append(out, m)
	}
	return out
}
