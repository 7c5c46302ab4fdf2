// Package rubiksify provides the cube model shared by the mosaic pipeline:
// cube definitions, orientations, palettes, generators and detected cube
// records.
//
// # Cube Definitions
//
// A cube definition is a 54-character string of face labels in U, R, F, D,
// L, B block order:
//
//	defn := rubiksify.SolvedDefn()
//	front, _ := rubiksify.ExtractFace(defn, rubiksify.FaceF) // "FFFFFFFFF"
//
// An Orientation recolors a definition for the way the physical cube is held:
//
//	colored, err := rubiksify.Colorize(defn, record.Orientation)
//
// # Generators
//
// Generators returned by the solver are space-separated moves. They can be
// replayed locally on a simulated cube:
//
//	got, err := rubiksify.Replay("R U R' U'")
//	err = rubiksify.VerifyGenerator(record.Defn, generator)
//
// # Mosaic Grid
//
// Detected cubes carry zero-based grid coordinates:
//
//	w, h := rubiksify.GridExtent(cubes)
//	idx, ok := rubiksify.FindCube(cubes, 2, 3)
package rubiksify
