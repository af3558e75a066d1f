package edittest

import (
	"fmt"

	"github.com/rjkroege/richedit/draw"
)

// NiceColourName names the common colors so that test failures are
// readable.
func NiceColourName(num draw.Color) string {
	lookuptable := map[draw.Color]string{
		draw.Black:         "Black",
		draw.Blue:          "Blue",
		draw.Darkyellow:    "Darkyellow",
		draw.Medblue:       "Medblue",
		draw.Notacolor:     "Notacolor",
		draw.Palebluegreen: "Palebluegreen",
		draw.Palegreygreen: "Palegreygreen",
		draw.Paleyellow:    "Paleyellow",
		draw.Purpleblue:    "Purpleblue",
		draw.Red:           "Red",
		draw.Transparent:   "Transparent",
		draw.White:         "White",
		draw.Yellowgreen:   "Yellowgreen",
	}

	if s, ok := lookuptable[num]; ok {
		return s
	}
	return fmt.Sprintf("color(%x)", uint32(num))
}
