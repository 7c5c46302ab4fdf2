// Package analysis computes statistics over the generators of an exported
// cube set.
package analysis

import (
	"fmt"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/export"
)

// Summary describes the move content of an export.
type Summary struct {
	Cubes       int `json:"cubes"`
	SolvedCubes int `json:"solved_cubes"` // cubes whose generator is empty

	TotalMoves      int     `json:"total_moves"`
	SimplifiedMoves int     `json:"simplified_moves"`
	MinMoves        int     `json:"min_moves"`
	MaxMoves        int     `json:"max_moves"`
	AvgMoves        float64 `json:"avg_moves"`
	Efficiency      float64 `json:"efficiency"` // SimplifiedMoves / TotalMoves

	FaceTurns    map[rubiksify.Face]int `json:"face_turns"`
	QuarterTurns int                    `json:"quarter_turns"`
	HalfTurns    int                    `json:"half_turns"`

	TopSequences []NGram `json:"top_sequences,omitempty"`
}

// Summarize computes a Summary over records. seqLen and topK control the
// recurring sequence search; either at zero disables it.
func Summarize(records []export.Record, seqLen, topK int) (*Summary, error) {
	s := &Summary{
		Cubes:     len(records),
		FaceTurns: make(map[rubiksify.Face]int, len(rubiksify.Faces)),
	}
	for _, f := range rubiksify.Faces {
		s.FaceTurns[f] = 0
	}

	sequences := make([][]rubiksify.Move, 0, len(records))
	for i, rec := range records {
		moves, err := rubiksify.ParseGenerator(rec.Generator)
		if err != nil {
			return nil, fmt.Errorf("cube (%d,%d): %w", rec.X, rec.Y, err)
		}

		n := len(moves)
		if n == 0 {
			s.SolvedCubes++
		}
		if i == 0 || n < s.MinMoves {
			s.MinMoves = n
		}
		if n > s.MaxMoves {
			s.MaxMoves = n
		}
		s.TotalMoves += n

		for _, m := range moves {
			s.FaceTurns[m.Face]++
			if m.Turn == rubiksify.Double {
				s.HalfTurns++
			} else {
				s.QuarterTurns++
			}
		}

		simplified := Simplify(moves)
		s.SimplifiedMoves += len(simplified)
		sequences = append(sequences, simplified)
	}

	if s.Cubes > 0 {
		s.AvgMoves = float64(s.TotalMoves) / float64(s.Cubes)
	}
	if s.TotalMoves > 0 {
		s.Efficiency = float64(s.SimplifiedMoves) / float64(s.TotalMoves)
	} else {
		s.Efficiency = 1
	}

	s.TopSequences = MineNGrams(sequences, seqLen, topK)
	return s, nil
}

// Redundant returns the number of moves that simplification would remove.
func (s *Summary) Redundant() int {
	return s.TotalMoves - s.SimplifiedMoves
}
