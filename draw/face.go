package draw

import (
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// faceFont implements Font over a golang.org/x/image/font.Face.
type faceFont struct {
	name   string
	face   font.Face
	height int
	ascent int
}

var _ = Font((*faceFont)(nil))

// NewFaceFont adapts face to Font. Metrics are rounded to whole pixels.
func NewFaceFont(name string, face font.Face) Font {
	m := face.Metrics()
	h := m.Height.Ceil()
	if h <= 0 {
		h = (m.Ascent + m.Descent).Ceil()
	}
	return &faceFont{
		name:   name,
		face:   face,
		height: h,
		ascent: m.Ascent.Ceil(),
	}
}

func (f *faceFont) Name() string { return f.name }
func (f *faceFont) Height() int  { return f.height }
func (f *faceFont) Ascent() int  { return f.ascent }

func (f *faceFont) RunesWidth(r []rune) int {
	var w fixed.Int26_6
	prev := rune(-1)
	for _, c := range r {
		if prev >= 0 {
			w += f.face.Kern(prev, c)
		}
		a, ok := f.face.GlyphAdvance(c)
		if !ok {
			a, _ = f.face.GlyphAdvance('�')
		}
		w += a
		prev = c
	}
	return w.Round()
}

func (f *faceFont) StringWidth(s string) int {
	return font.MeasureString(f.face, s).Round()
}

func (f *faceFont) BytesWidth(b []byte) int {
	r := make([]rune, 0, utf8.RuneCount(b))
	for len(b) > 0 {
		c, n := utf8.DecodeRune(b)
		r = append(r, c)
		b = b[n:]
	}
	return f.RunesWidth(r)
}
