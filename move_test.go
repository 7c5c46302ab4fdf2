package rubiksify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
	}{
		{"R", Move{FaceR, CW}},
		{"U'", Move{FaceU, CCW}},
		{"F`", Move{FaceF, CCW}},
		{"D2", Move{FaceD, Double}},
		{"B2'", Move{FaceB, Double}},
		{" L ", Move{FaceL, CW}},
	}
	for _, tt := range tests {
		got, err := ParseMove(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "X", "R3", "r"} {
		_, err := ParseMove(bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}

func TestParseGeneratorIsStrict(t *testing.T) {
	moves, err := ParseGenerator("R U R' U'")
	require.NoError(t, err)
	assert.Equal(t, "R U R' U'", FormatMoves(moves))

	_, err = ParseGenerator("R U Q")
	assert.ErrorIs(t, err, ErrValidation)

	moves, err = ParseGenerator("")
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestInverseMoves(t *testing.T) {
	moves, err := ParseGenerator("R U2 F'")
	require.NoError(t, err)
	assert.Equal(t, "F U2 R'", FormatMoves(InverseMoves(moves)))
}

func TestMoveCount(t *testing.T) {
	assert.Equal(t, 4, MoveCount("R U R' U'"))
	assert.Equal(t, 0, MoveCount("  "))
}

func TestReplayThenInverseRestoresSolved(t *testing.T) {
	gen := "R U2 F' L D B2 R' U"
	moves, err := ParseGenerator(gen)
	require.NoError(t, err)

	c := NewCube()
	c.Apply(moves...)
	require.False(t, c.IsSolved())
	c.Apply(InverseMoves(moves)...)
	assert.True(t, c.IsSolved())
}

func TestVerifyGenerator(t *testing.T) {
	gen := "F R U' L2 B D'"
	defn, err := Replay(gen)
	require.NoError(t, err)

	assert.NoError(t, VerifyGenerator(defn, gen))
	assert.ErrorIs(t, VerifyGenerator(SolvedDefn(), gen), ErrGeneratorMismatch)
	assert.ErrorIs(t, VerifyGenerator(defn, "R Q"), ErrValidation)
	assert.NoError(t, VerifyGenerator(SolvedDefn(), ""))
}
