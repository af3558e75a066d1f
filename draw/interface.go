// Package draw is the measurement surface of the editing core. Fonts
// and colors are opaque handles to the document: it only asks a Font
// for widths and vertical metrics.
package draw

// Font measures text. Widths are in pixels (or cells for terminal
// fonts). Descent is Height() - Ascent().
type Font interface {
	Name() string
	Height() int
	Ascent() int
	BytesWidth(b []byte) int
	RunesWidth(r []rune) int
	StringWidth(s string) int
}

// Descent returns the part of f's height below the baseline.
func Descent(f Font) int {
	return f.Height() - f.Ascent()
}

// RuneWidth measures a single rune with f.
func RuneWidth(f Font, r rune) int {
	var buf [1]rune
	buf[0] = r
	return f.RunesWidth(buf[:])
}
