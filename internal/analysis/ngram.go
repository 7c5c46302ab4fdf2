package analysis

import (
	"sort"
	"strings"

	"github.com/SeamusWaldron/rubiksify"
)

// NGram is a move sequence that recurs across generators.
type NGram struct {
	N        int      `json:"n"`
	Sequence []string `json:"sequence"`
	Count    int      `json:"count"`
}

// MineNGrams returns the topK most frequent n-move windows across all
// sequences, most frequent first. Windows never span two sequences.
func MineNGrams(sequences [][]rubiksify.Move, n, topK int) []NGram {
	if n <= 0 || topK <= 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, moves := range sequences {
		if len(moves) < n {
			continue
		}
		tokens := make([]byte, len(moves))
		for i, m := range moves {
			tokens[i] = moveToken(m)
		}
		for i := 0; i+n <= len(tokens); i++ {
			counts[string(tokens[i:i+n])]++
		}
	}

	grams := make([]NGram, 0, len(counts))
	for key, count := range counts {
		seq := make([]string, len(key))
		for i := 0; i < len(key); i++ {
			seq[i] = moveFromToken(key[i]).Notation()
		}
		grams = append(grams, NGram{N: n, Sequence: seq, Count: count})
	}

	// Ties are broken by sequence text for stable output.
	sort.Slice(grams, func(i, j int) bool {
		if grams[i].Count != grams[j].Count {
			return grams[i].Count > grams[j].Count
		}
		return strings.Join(grams[i].Sequence, " ") < strings.Join(grams[j].Sequence, " ")
	})

	if len(grams) > topK {
		grams = grams[:topK]
	}
	return grams
}
