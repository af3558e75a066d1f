package draw

import (
	draw "9fans.net/go/draw"
)

const (
	Black         = draw.Black
	White         = draw.White
	Red           = draw.Red
	Blue          = draw.Blue
	Darkyellow    = draw.Darkyellow
	Medblue       = draw.Medblue
	Notacolor     = draw.Notacolor
	Palebluegreen = draw.Palebluegreen
	Palegreygreen = draw.Palegreygreen
	Paleyellow    = draw.Paleyellow
	Purpleblue    = draw.Purpleblue
	Transparent   = draw.Transparent
	Yellowgreen   = draw.Yellowgreen
)

// Color is an RGBA value. Notacolor marks an absent background.
type Color = draw.Color

type drawFont = draw.Font

// fontImpl implements Font over a Plan 9 font.
type fontImpl struct {
	*drawFont
}

var _ = Font((*fontImpl)(nil))

// NewPlan9Font wraps a font opened with (*draw.Display).OpenFont.
func NewPlan9Font(f *draw.Font) Font {
	return &fontImpl{f}
}

func (f *fontImpl) Name() string  { return f.drawFont.Name }
func (f *fontImpl) Height() int   { return f.drawFont.Height }
func (f *fontImpl) Ascent() int   { return f.drawFont.Ascent }
