package rubiksify

import (
	"fmt"
	"strings"
)

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// Move is a single face turn of a generator.
type Move struct {
	Face Face
	Turn Turn
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return m.Face.String() + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
	}
	return inv
}

// ParseMove parses a standard notation token such as R, R', R2 or R2'.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, fmt.Errorf("%w: empty move", ErrValidation)
	}

	face := Face(s[0])
	if !face.Valid() {
		return Move{}, fmt.Errorf("%w: move %q has unknown face", ErrValidation, s)
	}

	turn := CW
	switch s[1:] {
	case "":
	case "'", "`":
		turn = CCW
	case "2", "2'", "2`":
		turn = Double
	default:
		return Move{}, fmt.Errorf("%w: move %q has unknown suffix", ErrValidation, s)
	}

	return Move{Face: face, Turn: turn}, nil
}

// ParseGenerator parses a space-separated move sequence. Unlike a lenient
// notation reader it rejects any token it cannot parse.
func ParseGenerator(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))
	for i, part := range parts {
		m, err := ParseMove(part)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// FormatMoves formats moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}
	return strings.Join(parts, " ")
}

// InverseMoves returns the sequence that undoes moves.
func InverseMoves(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}

// MoveCount returns the number of tokens in a generator string.
func MoveCount(generator string) int {
	return len(strings.Fields(generator))
}
