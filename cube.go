package rubiksify

import (
	"fmt"
	"strings"
)

// face block indices in definition order
const (
	iU = iota
	iR
	iF
	iD
	iL
	iB
)

// Cube is a 3x3 sticker model used to replay generators locally.
// Each face has 9 facelets indexed as:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// Faces are stored in definition order (U, R, F, D, L, B), so a Cube converts
// to and from a CubeDefn without reordering.
type Cube struct {
	Facelets [6][9]Face
}

// NewCube creates a solved cube.
func NewCube() *Cube {
	c := &Cube{}
	for idx, f := range Faces {
		for i := 0; i < 9; i++ {
			c.Facelets[idx][i] = f
		}
	}
	return c
}

// CubeFromDefn builds a cube from a validated definition.
func CubeFromDefn(defn CubeDefn) (*Cube, error) {
	if err := ValidateDefn(defn); err != nil {
		return nil, err
	}
	c := &Cube{}
	for i := 0; i < DefnLength; i++ {
		c.Facelets[i/9][i%9] = Face(defn[i])
	}
	return c, nil
}

// Defn returns the cube as a 54-character definition.
func (c *Cube) Defn() CubeDefn {
	b := make([]byte, 0, DefnLength)
	for idx := range c.Facelets {
		for i := 0; i < 9; i++ {
			b = append(b, byte(c.Facelets[idx][i]))
		}
	}
	return CubeDefn(b)
}

// Clone creates a deep copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := *c
	return &clone
}

// IsSolved returns true if every face shows a single label.
func (c *Cube) IsSolved() bool {
	for idx := range c.Facelets {
		center := c.Facelets[idx][4]
		for i := 0; i < 9; i++ {
			if c.Facelets[idx][i] != center {
				return false
			}
		}
	}
	return true
}

// Apply applies moves in order.
func (c *Cube) Apply(moves ...Move) {
	for _, m := range moves {
		c.Move(m.Face, m.Turn)
	}
}

// Move turns a face. Unknown faces are ignored.
func (c *Cube) Move(face Face, turn Turn) {
	idx, ok := FaceIndex(face)
	if !ok {
		return
	}
	switch turn {
	case CW:
		c.quarter(idx)
	case CCW:
		c.quarter(idx)
		c.quarter(idx)
		c.quarter(idx)
	case Double:
		c.quarter(idx)
		c.quarter(idx)
	}
}

// strip is three facelets on one face bordering the turning face.
type strip struct {
	face int
	pos  [3]int
}

// rings lists, for a clockwise turn of each face, the four bordering strips in
// the order stickers travel: ring[0] moves to ring[1], ring[1] to ring[2]...
var rings = [6][4]strip{
	iU: {{iF, [3]int{0, 1, 2}}, {iL, [3]int{0, 1, 2}}, {iB, [3]int{0, 1, 2}}, {iR, [3]int{0, 1, 2}}},
	iR: {{iU, [3]int{2, 5, 8}}, {iB, [3]int{6, 3, 0}}, {iD, [3]int{2, 5, 8}}, {iF, [3]int{2, 5, 8}}},
	iF: {{iU, [3]int{6, 7, 8}}, {iR, [3]int{0, 3, 6}}, {iD, [3]int{2, 1, 0}}, {iL, [3]int{8, 5, 2}}},
	iD: {{iF, [3]int{6, 7, 8}}, {iR, [3]int{6, 7, 8}}, {iB, [3]int{6, 7, 8}}, {iL, [3]int{6, 7, 8}}},
	iL: {{iU, [3]int{0, 3, 6}}, {iF, [3]int{0, 3, 6}}, {iD, [3]int{0, 3, 6}}, {iB, [3]int{8, 5, 2}}},
	iB: {{iU, [3]int{2, 1, 0}}, {iL, [3]int{0, 3, 6}}, {iD, [3]int{6, 7, 8}}, {iR, [3]int{8, 5, 2}}},
}

// quarter applies a clockwise quarter turn of the face at idx.
func (c *Cube) quarter(idx int) {
	f := &c.Facelets[idx]
	// Corners 0->2->8->6, edges 1->5->7->3
	f[0], f[2], f[8], f[6] = f[6], f[0], f[2], f[8]
	f[1], f[5], f[7], f[3] = f[3], f[1], f[5], f[7]

	ring := rings[idx]
	var saved [3]Face
	last := ring[3]
	for k := 0; k < 3; k++ {
		saved[k] = c.Facelets[last.face][last.pos[k]]
	}
	for s := 3; s > 0; s-- {
		dst, src := ring[s], ring[s-1]
		for k := 0; k < 3; k++ {
			c.Facelets[dst.face][dst.pos[k]] = c.Facelets[src.face][src.pos[k]]
		}
	}
	first := ring[0]
	for k := 0; k < 3; k++ {
		c.Facelets[first.face][first.pos[k]] = saved[k]
	}
}

// String renders the cube as an unfolded net with L, F, R, B side by side.
func (c *Cube) String() string {
	var b strings.Builder
	row := func(idx, r int) {
		for col := 0; col < 3; col++ {
			b.WriteString(c.Facelets[idx][r*3+col].String())
			b.WriteByte(' ')
		}
	}

	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(iU, r)
		b.WriteByte('\n')
	}
	for r := 0; r < 3; r++ {
		for _, idx := range []int{iL, iF, iR, iB} {
			row(idx, r)
		}
		b.WriteByte('\n')
	}
	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(iD, r)
		b.WriteByte('\n')
	}
	return b.String()
}

// Debug returns a simple debug string.
func (c *Cube) Debug() string {
	return fmt.Sprintf("Solved: %v", c.IsSolved())
}
