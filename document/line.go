package document

import (
	"github.com/rjkroege/richedit/draw"
	"github.com/rjkroege/richedit/lineindex"
)

// Alignment places a line horizontally in the viewport.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "left"
}

// Ending is the terminator following the text of a line. The values
// are bits so that a set of endings can be passed as a mask.
type Ending int

const (
	EndWrap Ending = 1 << iota // soft break made by word wrap
	EndLimp                    // \r
	EndHard                    // \r\n
	EndSoft                    // \r\r\n
	EndRich                    // \n
	EndNone                    // end of document

	EndBreaks = EndLimp | EndHard | EndSoft | EndRich
)

// Terminator returns the characters that e stands for.
func (e Ending) Terminator() string {
	switch e {
	case EndLimp:
		return "\r"
	case EndHard:
		return "\r\n"
	case EndSoft:
		return "\r\r\n"
	case EndRich:
		return "\n"
	}
	return ""
}

// Len returns the length of e in a flat character index.
func (e Ending) Len() int { return len(e.Terminator()) }

func (e Ending) String() string {
	switch e {
	case EndWrap:
		return "wrap"
	case EndLimp:
		return "limp"
	case EndHard:
		return "hard"
	case EndSoft:
		return "soft"
	case EndRich:
		return "rich"
	case EndNone:
		return "none"
	}
	return "mixed"
}

// LineEnding finds the first terminator in s at or after start whose
// kind is in mask. It returns its index and kind, or len(s) and
// EndNone when there is none.
func LineEnding(s []rune, start int, mask Ending) (int, Ending) {
	for i := start; i < len(s); {
		var e Ending
		switch {
		case s[i] == '\n':
			e = EndRich
		case s[i] != '\r':
			i++
			continue
		case i+2 < len(s) && s[i+1] == '\r' && s[i+2] == '\n':
			e = EndSoft
		case i+1 < len(s) && s[i+1] == '\n':
			e = EndHard
		default:
			e = EndLimp
		}
		if e&mask != 0 {
			return i, e
		}
		i += e.Len()
	}
	return len(s), EndNone
}

// Line is one line of a document: its text, the runs formatting it
// and the layout computed for it.
type Line struct {
	doc  *Document
	node *lineindex.Node[*Line]

	text   []rune
	widths []int // widths[i] is the pixel offset of caret position i
	runs   []*Run
	ending Ending

	align         Alignment
	indent        int
	hangingIndent int
	rightIndent   int

	y          int
	height     int
	ascent     int
	alignShift int
	recalc     bool
}

func newLine(d *Document, text []rune, font draw.Font, color draw.Color, ending Ending) *Line {
	l := &Line{
		doc:           d,
		text:          text,
		widths:        make([]int, len(text)+1),
		ending:        ending,
		align:         d.alignment,
		indent:        d.indent,
		hangingIndent: d.hangingIndent,
		rightIndent:   d.rightIndent,
		recalc:        true,
	}
	l.addRun(0, &Run{
		Start:     1,
		Font:      font,
		Color:     color,
		BackColor: draw.Notacolor,
	})
	return l
}

// Number returns the 1-based line number of l.
func (l *Line) Number() int {
	if l.node == nil {
		return 0
	}
	return l.node.Rank()
}

func (l *Line) Text() string    { return string(l.text) }
func (l *Line) Len() int        { return len(l.text) }
func (l *Line) Ending() Ending  { return l.ending }
func (l *Line) Runs() []*Run    { return l.runs }
func (l *Line) Y() int          { return l.y }
func (l *Line) Height() int     { return l.height }
func (l *Line) Ascent() int     { return l.ascent }
func (l *Line) AlignShift() int { return l.alignShift }

// Width returns the pixel offset of the end of l, margins and indent
// included.
func (l *Line) Width() int { return l.widths[len(l.text)] }

// X returns the horizontal pixel offset of caret position pos,
// alignment included.
func (l *Line) X(pos int) int {
	return l.widths[clamp(pos, 0, len(l.text))] + l.alignShift
}

// PosAtX returns the caret position nearest to the pixel offset x.
func (l *Line) PosAtX(x int) int {
	x -= l.alignShift
	for pos := 1; pos <= len(l.text); pos++ {
		if x < (l.widths[pos-1]+l.widths[pos]+1)/2 {
			return pos - 1
		}
	}
	return len(l.text)
}

func (l *Line) Alignment() Alignment { return l.align }

// SetAlignment changes the alignment used at the next layout.
func (l *Line) SetAlignment(a Alignment) {
	l.align = a
	l.recalc = true
}

// Indent returns the first line, hanging and right indents.
func (l *Line) Indent() (first, hanging, right int) {
	return l.indent, l.hangingIndent, l.rightIndent
}

// SetIndent changes the indents used at the next layout.
func (l *Line) SetIndent(first, hanging, right int) {
	l.indent, l.hangingIndent, l.rightIndent = first, hanging, right
	l.recalc = true
}

// Next returns the line after l or nil.
func (l *Line) Next() *Line {
	if l.node == nil {
		return nil
	}
	if n := l.doc.lines.Next(l.node); n != nil {
		return n.Value
	}
	return nil
}

// Prev returns the line before l or nil.
func (l *Line) Prev() *Line {
	if l.node == nil {
		return nil
	}
	if n := l.doc.lines.Prev(l.node); n != nil {
		return n.Value
	}
	return nil
}

func (l *Line) isLast() bool {
	return l.node != nil && l.doc.lines.Next(l.node) == nil
}

// IsWrapContinuation reports whether l was made by word wrap out of
// the line before it.
func (l *Line) IsWrapContinuation() bool {
	p := l.Prev()
	return p != nil && p.ending == EndWrap
}

// insertString inserts s at caret position pos. The text takes the
// formatting of f when f is not nil, else of the run at pos.
func (l *Line) insertString(pos int, s []rune, f *Run) {
	n := len(s)
	if n == 0 {
		return
	}
	pos = clamp(pos, 0, len(l.text))

	i := l.runIndexAt(pos)
	if f != nil && !l.runs[i].sameFormat(f) {
		i = l.breakAt(pos + 1)
		nr := f.clone()
		nr.Start = pos + 1
		l.addRun(i, nr)
		for _, r := range l.runs[i+1:] {
			r.Start += n
		}
	} else {
		for _, r := range l.runs[i+1:] {
			r.Start += n
		}
	}

	text := make([]rune, 0, len(l.text)+n)
	text = append(text, l.text[:pos]...)
	text = append(text, s...)
	text = append(text, l.text[pos:]...)
	l.text = text
	l.widths = resize(l.widths, len(l.text)+1)
	l.recalc = true
}

// deleteCharacters removes count characters from caret position pos.
func (l *Line) deleteCharacters(pos, count int) {
	pos = clamp(pos, 0, len(l.text))
	count = clamp(count, 0, len(l.text)-pos)
	if count == 0 {
		return
	}
	end := pos + count
	for _, r := range l.runs {
		switch {
		case r.Start > end:
			r.Start -= count
		case r.Start > pos+1:
			r.Start = pos + 1
		}
	}
	l.text = append(l.text[:pos], l.text[end:]...)
	l.widths = resize(l.widths, len(l.text)+1)
	l.streamline(l.isLast())
	l.recalc = true
}

// appendRuns adds text formatted by runs, whose starts are relative
// to text, at the end of l.
func (l *Line) appendRuns(text []rune, runs []*Run) {
	off := len(l.text)
	l.text = append(l.text, text...)
	for _, r := range runs {
		r.Start += off
		l.addRun(len(l.runs), r)
	}
	l.widths = resize(l.widths, len(l.text)+1)
	l.recalc = true
}

// resize sets the length of w to n. Offsets in front of an edit stay
// valid until the line is laid out again.
func resize(w []int, n int) []int {
	if cap(w) >= n {
		return w[:n]
	}
	nw := make([]int, n)
	copy(nw, w)
	return nw
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
