package rubiksify

import "fmt"

// Replay applies a generator to a solved cube and returns the resulting
// definition.
func Replay(generator string) (CubeDefn, error) {
	moves, err := ParseGenerator(generator)
	if err != nil {
		return "", err
	}
	c := NewCube()
	c.Apply(moves...)
	return c.Defn(), nil
}

// VerifyGenerator checks that the generator turns a solved cube into defn.
func VerifyGenerator(defn CubeDefn, generator string) error {
	if err := ValidateDefn(defn); err != nil {
		return err
	}
	got, err := Replay(generator)
	if err != nil {
		return err
	}
	if got != defn {
		return fmt.Errorf("%w: got %s", ErrGeneratorMismatch, got)
	}
	return nil
}
