package document

import (
	"fmt"

	"github.com/rjkroege/richedit/draw"
)

// Format selects the fields FormatText overwrites.
type Format int

const (
	FormatFont Format = 1 << iota
	FormatColor
	FormatBackColor

	FormatAll = FormatFont | FormatColor | FormatBackColor
)

// Run is a span of one line sharing a font and colors. The runs of a
// line are contiguous, do not overlap and together cover the whole
// text of the line.
type Run struct {
	// Start is the 1-based position of the first character.
	Start int

	Font      draw.Font
	Color     draw.Color
	BackColor draw.Color // draw.Notacolor when unset

	// Metrics set by layout. Shift moves the run down so that every
	// run of the line shares one baseline.
	Ascent int
	Height int
	Shift  int

	line *Line
}

// Line returns the line holding r.
func (r *Run) Line() *Line { return r.line }

// Len returns the number of characters in r.
func (r *Run) Len() int {
	i := r.index()
	if i+1 < len(r.line.runs) {
		return r.line.runs[i+1].Start - r.Start
	}
	return len(r.line.text) - r.Start + 1
}

// End returns the 1-based position of the last character of r. It is
// Start-1 for an empty run.
func (r *Run) End() int { return r.Start + r.Len() - 1 }

// Text returns the characters of r.
func (r *Run) Text() string {
	return string(r.line.text[r.Start-1 : r.End()])
}

// X returns the horizontal pixel offset of the start of r.
func (r *Run) X() int {
	return r.line.X(r.Start - 1)
}

// Width returns the measured width of r in pixels.
func (r *Run) Width() int {
	return r.line.widths[r.End()] - r.line.widths[r.Start-1]
}

func (r *Run) String() string {
	font := "<nil>"
	if r.Font != nil {
		font = r.Font.Name()
	}
	return fmt.Sprintf("[%d,%d) %q font=%s color=%08x back=%08x", r.Start, r.End()+1, r.Text(), font, uint32(r.Color), uint32(r.BackColor))
}

func (r *Run) index() int {
	for i, o := range r.line.runs {
		if o == r {
			return i
		}
	}
	panic(fmt.Sprintf("run %d not on its line", r.Start))
}

func (r *Run) sameFormat(o *Run) bool {
	return r.Font == o.Font && r.Color == o.Color && r.BackColor == o.BackColor
}

// clone copies the formatting of r. The copy is not on any line.
func (r *Run) clone() *Run {
	cp := new(Run)
	*cp = *r
	cp.line = nil
	return cp
}

// Break splits r so that a run with r's formatting starts at the
// 1-based position pos. Breaking at r's own start returns r. It returns
// nil when pos is past the end of the line or outside r.
func (r *Run) Break(pos int) *Run {
	l := r.line
	switch {
	case pos == r.Start:
		return r
	case pos > len(l.text) || pos < r.Start || pos > r.End():
		return nil
	}
	nr := r.clone()
	nr.Start = pos
	l.addRun(r.index()+1, nr)
	return nr
}

// Combine merges o into r when o directly follows r and has the same
// formatting.
func (r *Run) Combine(o *Run) bool {
	i := r.index()
	if i+1 >= len(r.line.runs) || r.line.runs[i+1] != o || !r.sameFormat(o) {
		return false
	}
	r.line.closeRuns(i+1, i+1)
	return true
}

// addRun inserts r at index i of the run slice.
func (l *Line) addRun(i int, r *Run) {
	if i > len(l.runs) {
		panic(fmt.Sprint("Line.addRun", " i=", i, " len(runs)=", len(l.runs)))
	}
	r.line = l
	l.runs = append(l.runs, nil)
	copy(l.runs[i+1:], l.runs[i:])
	l.runs[i] = r
}

// closeRuns removes the runs i0 through i1.
func (l *Line) closeRuns(i0, i1 int) {
	if i0 >= len(l.runs) || i1 >= len(l.runs) || i1 < i0 {
		panic(fmt.Sprint("Line.closeRuns bounds bad", " i0=", i0, " i1=", i1, " len(runs)=", len(l.runs)))
	}
	for _, r := range l.runs[i0 : i1+1] {
		r.line = nil
	}
	i1++
	copy(l.runs[i0:], l.runs[i1:])
	l.runs = l.runs[:len(l.runs)-(i1-i0)]
}

// breakAt makes sure a run starts at the 1-based position pos and
// returns the index of the first run starting at or after pos.
func (l *Line) breakAt(pos int) int {
	for i, r := range l.runs {
		if r.Start >= pos {
			return i
		}
		if pos <= r.End() {
			nr := r.clone()
			nr.Start = pos
			l.addRun(i+1, nr)
			return i + 1
		}
	}
	return len(l.runs)
}

// runIndexAt returns the index of the run whose formatting applies to
// text inserted at caret position pos. An empty run sitting at pos
// wins; otherwise the run holding the character before pos.
func (l *Line) runIndexAt(pos int) int {
	for i, r := range l.runs {
		if r.Start-1 == pos && r.Len() == 0 {
			return i
		}
	}
	if pos <= 0 {
		return 0
	}
	for i, r := range l.runs {
		if r.Start <= pos && pos <= r.End() {
			return i
		}
	}
	return len(l.runs) - 1
}

// RunAt returns the run that owns caret position pos.
func (l *Line) RunAt(pos int) *Run {
	return l.runs[l.runIndexAt(pos)]
}

// streamline drops empty runs and merges neighbours with the same
// formatting. An empty trailing run survives on the last line of the
// document, and a line always keeps at least one run.
func (l *Line) streamline(last bool) {
	lens := make([]int, len(l.runs))
	for i, r := range l.runs {
		lens[i] = r.Len()
	}

	kept := l.runs[:0]
	for i, r := range l.runs {
		keep := lens[i] > 0 ||
			(i == len(l.runs)-1 && (last || len(kept) == 0))
		if !keep {
			r.line = nil
			continue
		}
		if n := len(kept); n > 0 && kept[n-1].sameFormat(r) {
			r.line = nil
			continue
		}
		if len(kept) == 0 {
			r.Start = 1
		}
		kept = append(kept, r)
	}
	for i := len(kept); i < len(l.runs); i++ {
		l.runs[i] = nil
	}
	l.runs = kept
}

// FormatText applies the fields of font, color and back selected by
// mask to the characters [start, start+length) of l, where start is
// 1-based. A zero length leaves an empty run at start that formats
// the next text typed there. It reports whether the line height will
// change.
func (l *Line) FormatText(start, length int, font draw.Font, color, back draw.Color, mask Format) bool {
	if start < 1 {
		start = 1
	}
	if start > len(l.text)+1 {
		start = len(l.text) + 1
	}
	if length < 0 {
		length = 0
	}
	if start+length > len(l.text)+1 {
		length = len(l.text) + 1 - start
	}
	l.recalc = true

	apply := func(r *Run) {
		if mask&FormatFont != 0 && font != nil {
			r.Font = font
		}
		if mask&FormatColor != 0 {
			r.Color = color
		}
		if mask&FormatBackColor != 0 {
			r.BackColor = back
		}
	}

	if length == 0 {
		i := l.breakAt(start)
		var tmpl *Run
		if i > 0 {
			tmpl = l.runs[i-1]
		} else {
			tmpl = l.runs[0]
		}
		nr := tmpl.clone()
		nr.Start = start
		apply(nr)
		l.addRun(i, nr)
		return mask&FormatFont != 0 && font != nil && font.Height() != l.height
	}

	i0 := l.breakAt(start)
	i1 := l.breakAt(start + length)
	for _, r := range l.runs[i0:i1] {
		apply(r)
	}
	l.streamline(l.isLast())
	return mask&FormatFont != 0 && font != nil && font.Height() != l.height
}
