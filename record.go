package rubiksify

// CubeRecord is one detected cube of the mosaic.
type CubeRecord struct {
	X           int         `json:"x"`
	Y           int         `json:"y"`
	Defn        CubeDefn    `json:"cubeDefn"`
	Orientation Orientation `json:"orientation"`
}

// Colorized returns the definition recolored through the record's orientation.
func (r CubeRecord) Colorized() (CubeDefn, error) {
	return Colorize(r.Defn, r.Orientation)
}

// Heading returns the labels that must face front and up before the
// generator is applied: the centers of the oriented solved cube.
func (r CubeRecord) Heading() (front, top Face, err error) {
	solved, err := Colorize(SolvedDefn(), r.Orientation)
	if err != nil {
		return 0, 0, err
	}
	if front, err = ColorAt(solved, FaceF, 4); err != nil {
		return 0, 0, err
	}
	if top, err = ColorAt(solved, FaceU, 4); err != nil {
		return 0, 0, err
	}
	return front, top, nil
}

// FindCube returns the index of the record at (x, y). The boolean is false
// and the index -1 when no record sits there.
func FindCube(cubes []CubeRecord, x, y int) (int, bool) {
	for i, c := range cubes {
		if c.X == x && c.Y == y {
			return i, true
		}
	}
	return -1, false
}

// GridExtent returns the mosaic size in cubes by scanning every coordinate.
// It does not rely on the detector emitting records in raster order.
func GridExtent(cubes []CubeRecord) (width, height int) {
	for _, c := range cubes {
		if c.X+1 > width {
			width = c.X + 1
		}
		if c.Y+1 > height {
			height = c.Y + 1
		}
	}
	return width, height
}
