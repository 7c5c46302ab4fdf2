// rubiksify - CLI application for turning images into Rubik's Cube mosaics.
package main

import (
	"github.com/SeamusWaldron/rubiksify/internal/cli"
)

func main() {
	cli.Execute()
}
