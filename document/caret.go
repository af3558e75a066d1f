package document

import (
	"image"
)

// Direction is a caret movement for MoveCaret.
type Direction int

const (
	CharForward Direction = iota
	CharBack
	CharForwardNoWrap // stops at the end of the line
	CharBackNoWrap    // stops at the start of the line
	WordForward
	WordBack
	LineUp
	LineDown
	Home
	End
	PgUp
	PgDn
	CtrlHome
	CtrlEnd
	CtrlPgUp // first line in view
	CtrlPgDn // last line in view
	SelectionStart
	SelectionEnd
)

// Caret returns the caret position.
func (d *Document) Caret() Marker { return d.caret }

// CaretPoint returns the top left of the caret in document
// coordinates.
func (d *Document) CaretPoint() image.Point { return d.caretPt }

// PositionCaret moves the caret to caret position pos of line. The
// selection is left alone.
func (d *Document) PositionCaret(line *Line, pos int) {
	if line == nil || line.node == nil {
		return
	}
	old := d.caret
	d.caret = Marker{Line: line, Pos: clamp(pos, 0, len(line.text))}
	d.dropCaretRun(old)
	d.updateCaret()
}

// PositionCaretAt moves the caret to the position nearest the document
// point (x, y).
func (d *Document) PositionCaretAt(x, y int) {
	m := d.FindCursor(x, y)
	d.PositionCaret(m.Line, m.Pos)
}

// MoveCaret moves the caret in direction dir. Vertical moves keep the
// pixel column rather than the character offset.
func (d *Document) MoveCaret(dir Direction) {
	old := d.caret
	line, pos := d.caret.Line, d.caret.Pos

	switch dir {
	case CharForward, CharForwardNoWrap:
		switch {
		case pos < len(line.text):
			pos++
		case dir == CharForwardNoWrap:
		case line.Next() != nil:
			next := line.Next()
			// A wrap break is not a character.
			if line.ending == EndWrap {
				pos = min(1, len(next.text))
			} else {
				pos = 0
			}
			line = next
		}

	case CharBack, CharBackNoWrap:
		switch {
		case pos > 0:
			pos--
		case dir == CharBackNoWrap:
		case line.Prev() != nil:
			line = line.Prev()
			pos = len(line.text)
			if line.ending == EndWrap && pos > 0 {
				pos--
			}
		}

	case WordForward:
		if pos == len(line.text) {
			if next := line.Next(); next != nil {
				line, pos = next, 0
			}
			break
		}
		for pos < len(line.text) && !IsWordSeparator(line.text[pos]) {
			pos++
		}
		for pos < len(line.text) && IsWordSeparator(line.text[pos]) {
			pos++
		}

	case WordBack:
		if pos == 0 {
			if prev := line.Prev(); prev != nil {
				line, pos = prev, len(prev.text)
			}
			break
		}
		pos--
		for pos > 0 && IsWordSeparator(line.text[pos]) {
			pos--
		}
		for pos > 0 && !IsWordSeparator(line.text[pos-1]) {
			pos--
		}

	case LineUp, LineDown:
		target := line.Prev()
		if dir == LineDown {
			target = line.Next()
		}
		if target != nil {
			pos = target.PosAtX(line.X(pos))
			line = target
		}

	case Home:
		pos = 0

	case End:
		pos = len(line.text)

	case PgUp:
		if line.Number() == 1 {
			pos = 0
			break
		}
		m := d.FindCursor(line.X(pos), max(line.y-d.viewportRect().Dy(), 0))
		line, pos = m.Line, m.Pos

	case PgDn:
		if line.isLast() {
			pos = len(line.text)
			break
		}
		m := d.FindCursor(line.X(pos), min(line.y+d.viewportRect().Dy(), d.height-1))
		line, pos = m.Line, m.Pos

	case CtrlHome:
		line, pos = d.FirstLine(), 0

	case CtrlEnd:
		line = d.LastLine()
		pos = len(line.text)

	case CtrlPgUp:
		line, pos = d.LineAtPixel(d.viewportRect().Min.Y), 0

	case CtrlPgDn:
		line = d.LineAtPixel(d.viewportRect().Max.Y)
		if p := line.Prev(); p != nil && line.y+line.height > d.viewportRect().Max.Y {
			line = p
		}
		pos = len(line.text)

	case SelectionStart:
		line, pos = d.selStart.Line, d.selStart.Pos

	case SelectionEnd:
		line, pos = d.selEnd.Line, d.selEnd.Pos
	}

	d.caret = Marker{Line: line, Pos: pos}
	d.dropCaretRun(old)
	d.updateCaret()
}

// dropCaretRun removes the empty run a zero length FormatText left at
// the old caret position once the caret has moved away from it.
func (d *Document) dropCaretRun(old Marker) {
	l := old.Line
	if old == d.caret || l == nil || l.node == nil || len(l.runs) < 2 {
		return
	}
	for _, r := range l.runs {
		if r.Len() == 0 {
			l.streamline(l.isLast())
			l.recalc = true
			d.UpdateView(l, 0)
			return
		}
	}
}

// updateCaret places the caret display over the caret marker and tells
// observers when it moved.
func (d *Document) updateCaret() {
	line := d.caret.Line
	if line == nil || line.node == nil {
		return
	}
	d.caret.Pos = clamp(d.caret.Pos, 0, len(line.text))
	r := line.RunAt(d.caret.Pos)

	h := r.Height
	if h == 0 {
		h = r.Font.Height()
	}
	// An empty caret run may carry a font taller than the line.
	if line.height > 0 && h > line.height {
		h = line.height
	}
	x := line.X(d.caret.Pos)
	if d.wrap {
		// Hanging whitespace may end past the edge.
		x = min(x, d.viewWidth()-line.rightIndent-caretWidth)
	}
	pt := image.Pt(x, line.y+r.Shift)

	if d.caretDisplay != nil {
		if h != d.caretHeight {
			d.caretDisplay.CreateCaret(caretWidth, h)
		}
		d.caretDisplay.SetCaretPos(pt.Sub(d.viewportRect().Min))
		if d.selVisible {
			d.caretDisplay.HideCaret()
		} else {
			d.caretDisplay.ShowCaret()
		}
	}
	d.caretHeight = h

	if pt == d.caretPt && d.caret == d.caretNotified {
		return
	}
	d.caretPt = pt
	d.caretNotified = d.caret
	caret := d.caret
	d.notify(func(o Observer) { o.CaretMoved(caret) })
}

// LineAtPixel returns the line covering document row y. Rows above the
// first line map to it, rows below the last line to the last.
func (d *Document) LineAtPixel(y int) *Line {
	lo, hi := 1, d.lines.Len()
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if d.GetLine(mid).y <= y {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return d.GetLine(lo)
}

// FindCursor returns the caret position nearest the document point
// (x, y).
func (d *Document) FindCursor(x, y int) Marker {
	line := d.FirstLine()
	if d.multiline {
		line = d.LineAtPixel(y)
	}
	return Marker{Line: line, Pos: line.PosAtX(x)}
}
