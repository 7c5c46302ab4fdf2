package detector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SeamusWaldron/rubiksify"
)

// LineError reports a response line that could not be parsed.
type LineError struct {
	Line int // 1-based line number in the response body
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("detector line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Parse converts a detector response body into cube records. Each non-empty
// line is "x,y,cubeDefn,pair,pair,..." where a pair is a source and target
// face label. The first malformed line fails the whole response.
func Parse(body string) ([]rubiksify.CubeRecord, error) {
	var cubes []rubiksify.CubeRecord
	for i, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := parseLine(line)
		if err != nil {
			return nil, &LineError{Line: i + 1, Text: line, Err: err}
		}
		cubes = append(cubes, rec)
	}
	return cubes, nil
}

func parseLine(line string) (rubiksify.CubeRecord, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 3 {
		return rubiksify.CubeRecord{}, fmt.Errorf("%w: want at least 3 fields, got %d", rubiksify.ErrValidation, len(fields))
	}

	x, err := parseCoord(fields[0])
	if err != nil {
		return rubiksify.CubeRecord{}, fmt.Errorf("x: %w", err)
	}
	y, err := parseCoord(fields[1])
	if err != nil {
		return rubiksify.CubeRecord{}, fmt.Errorf("y: %w", err)
	}

	defn := rubiksify.CubeDefn(strings.TrimSpace(fields[2]))
	if err := rubiksify.ValidateDefn(defn); err != nil {
		return rubiksify.CubeRecord{}, err
	}

	orientation := make(rubiksify.Orientation, len(fields)-3)
	for _, token := range fields[3:] {
		src, dst, err := rubiksify.ParseOrientationPair(strings.TrimSpace(token))
		if err != nil {
			return rubiksify.CubeRecord{}, err
		}
		orientation[src] = dst
	}

	return rubiksify.CubeRecord{X: x, Y: y, Defn: defn, Orientation: orientation}, nil
}

func parseCoord(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: coordinate %q is not an integer", rubiksify.ErrValidation, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: coordinate %d is negative", rubiksify.ErrValidation, v)
	}
	return v, nil
}
