// Package edittest contains utility functions that help with testing
// the editing core: fixed-metric fonts and a host that records what
// the document asked it to do.
package edittest

import (
	"unicode/utf8"

	"github.com/rjkroege/richedit/draw"
)

// MockFontName is the name of fonts made by NewFont.
const MockFontName = "mock"

// mockFont implements draw.Font and mocks as a fixed width font.
type mockFont struct {
	name                  string
	width, height, ascent int
}

// NewFont returns a draw.Font that mocks a fixed-width font. The
// ascent is three quarters of the height.
func NewFont(width, height int) draw.Font {
	return NewNamedFont(MockFontName, width, height, height*3/4)
}

// NewNamedFont returns a fixed-width font with the given metrics. Fonts
// made by separate calls are distinct even when their metrics match.
func NewNamedFont(name string, width, height, ascent int) draw.Font {
	return &mockFont{
		name:   name,
		width:  width,
		height: height,
		ascent: ascent,
	}
}

func (f *mockFont) Name() string             { return f.name }
func (f *mockFont) Height() int              { return f.height }
func (f *mockFont) Ascent() int              { return f.ascent }
func (f *mockFont) BytesWidth(b []byte) int  { return f.width * utf8.RuneCount(b) }
func (f *mockFont) RunesWidth(r []rune) int  { return f.width * len(r) }
func (f *mockFont) StringWidth(s string) int { return f.width * utf8.RuneCountInString(s) }
