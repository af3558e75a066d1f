package document

import (
	"strings"
)

// SelectionMode is the unit ExpandSelection selects by.
type SelectionMode int

const (
	SelectPosition SelectionMode = iota
	SelectWord
	SelectLine
)

func (d *Document) SelectionStart() Marker  { return d.selStart }
func (d *Document) SelectionEnd() Marker    { return d.selEnd }
func (d *Document) SelectionAnchor() Marker { return d.selAnchor }

// SelectionVisible reports whether a non-empty selection is shown.
func (d *Document) SelectionVisible() bool { return d.selVisible }

// SelectionLength returns the flat length of the selection.
func (d *Document) SelectionLength() int {
	if d.selStart == d.selEnd {
		return 0
	}
	return d.CharIndex(d.selEnd.Line, d.selEnd.Pos) - d.CharIndex(d.selStart.Line, d.selStart.Pos)
}

// SelectionText returns the selected text with its line terminators.
func (d *Document) SelectionText() string {
	if d.selStart == d.selEnd {
		return ""
	}
	start, end := d.selStart, d.selEnd
	if start.Line == end.Line {
		return string(start.Line.text[start.Pos:end.Pos])
	}
	var sb strings.Builder
	sb.WriteString(string(start.Line.text[start.Pos:]))
	sb.WriteString(start.Line.ending.Terminator())
	for l := start.Line.Next(); l != nil && l != end.Line; l = l.Next() {
		sb.WriteString(string(l.text))
		sb.WriteString(l.ending.Terminator())
	}
	sb.WriteString(string(end.Line.text[:end.Pos]))
	return sb.String()
}

// setSelectionVisible shows or hides the selection. The caret is
// hidden while a selection is shown.
func (d *Document) setSelectionVisible(on bool) {
	d.selVisible = on
	if d.caretDisplay == nil {
		return
	}
	if on {
		d.caretDisplay.HideCaret()
	} else {
		d.caretDisplay.ShowCaret()
	}
}

func (d *Document) invalidateSelection() {
	d.invalidate(d.selStart.Line, d.selStart.Pos, d.selEnd.Line, d.selEnd.Pos)
}

// SetSelectionToCaret collapses the selection onto the caret when
// start is set. Otherwise it extends the selection from the anchor to
// the caret.
func (d *Document) SetSelectionToCaret(start bool) {
	if start {
		d.invalidateSelection()
		d.selStart = d.caret
		d.selEnd = d.caret
		d.selAnchor = d.caret
		d.selPrev = d.caret
		d.anchorWordStart = d.caret.Pos
		d.selEndAnchor = false
		d.setSelectionVisible(false)
		return
	}

	moving := d.selEnd
	if d.selEndAnchor {
		moving = d.selStart
	}
	if moving != d.caret {
		d.invalidate(moving.Line, moving.Pos, d.caret.Line, d.caret.Pos)
	}
	d.selectFromAnchor(d.caret, d.caret)
	d.setSelectionVisible(d.selStart != d.selEnd)
}

// selectFromAnchor selects between the anchor and to; before is used
// instead when to lies before the anchor.
func (d *Document) selectFromAnchor(before, to Marker) {
	if before.Less(d.selAnchor) {
		d.selStart = before
		d.selEnd = d.selAnchor
		d.selEndAnchor = true
	} else {
		d.selStart = d.selAnchor
		d.selEnd = to
		d.selEndAnchor = false
	}
}

// SetSelection selects from (start, sp) to (end, ep). The ends may be
// given in either order; the anchor is the first one given.
func (d *Document) SetSelection(start *Line, sp int, end *Line, ep int) {
	if start == nil || end == nil {
		return
	}
	if d.selVisible {
		d.invalidateSelection()
	}
	a := Marker{Line: start, Pos: clamp(sp, 0, len(start.text))}
	b := Marker{Line: end, Pos: clamp(ep, 0, len(end.text))}
	if b.Compare(a) <= 0 {
		d.selStart, d.selEnd = b, a
		d.selEndAnchor = true
	} else {
		d.selStart, d.selEnd = a, b
		d.selEndAnchor = false
	}
	d.selAnchor = a
	d.selPrev = b
	d.anchorWordStart = a.Pos

	if a == b {
		d.setSelectionVisible(false)
		return
	}
	d.setSelectionVisible(true)
	d.invalidateSelection()
}

// SetSelectionStart moves the start of the selection, which becomes
// the anchor.
func (d *Document) SetSelectionStart(line *Line, pos int, invalidate bool) {
	if line == nil {
		return
	}
	m := Marker{Line: line, Pos: clamp(pos, 0, len(line.text))}
	if invalidate {
		d.invalidate(d.selStart.Line, d.selStart.Pos, m.Line, m.Pos)
	}
	d.selStart = m
	d.selAnchor = m
	d.selEndAnchor = false
	if d.selEnd.Less(d.selStart) {
		d.selEnd = d.selStart
	}
	d.setSelectionVisible(d.selStart != d.selEnd)
	if invalidate {
		d.invalidateSelection()
	}
}

// SetSelectionEnd moves the free end of the selection to (line, pos),
// swapping ends when it passes the anchor.
func (d *Document) SetSelectionEnd(line *Line, pos int, invalidate bool) {
	if line == nil {
		return
	}
	m := Marker{Line: line, Pos: clamp(pos, 0, len(line.text))}
	if m == d.selStart {
		d.selAnchor = d.selStart
		d.selEnd = d.selStart
		d.selEndAnchor = false
	} else if m.Compare(d.selAnchor) <= 0 {
		d.selStart = m
		d.selEnd = d.selAnchor
		d.selEndAnchor = true
	} else {
		d.selStart = d.selAnchor
		d.selEnd = m
		d.selEndAnchor = false
	}

	if d.selStart == d.selEnd {
		d.setSelectionVisible(false)
		return
	}
	d.setSelectionVisible(true)
	if invalidate {
		d.invalidateSelection()
	}
}

// SetSelectionStartIndex and SetSelectionEndIndex take a flat index.
// Negative indexes are ignored.
func (d *Document) SetSelectionStartIndex(index int, invalidate bool) {
	if index < 0 {
		return
	}
	m := d.PositionOf(index)
	d.SetSelectionStart(m.Line, m.Pos, invalidate)
}

func (d *Document) SetSelectionEndIndex(index int, invalidate bool) {
	if index < 0 {
		return
	}
	m := d.PositionOf(index)
	d.SetSelectionEnd(m.Line, m.Pos, invalidate)
}

// SelectAll selects the whole document and puts the caret at its end.
func (d *Document) SelectAll() {
	last := d.LastLine()
	d.SetSelection(d.FirstLine(), 0, last, len(last.text))
	d.caret = d.selEnd
	d.updateCaret()
}

// ExpandSelection selects by mode. With toCaret the selection grows
// from the anchor to the caret; otherwise it is set around the caret
// and the caret's word or line becomes the anchor. Only the part of
// the view between the old and the new selection end is invalidated.
func (d *Document) ExpandSelection(mode SelectionMode, toCaret bool) {
	caret := d.caret
	line := caret.Line

	if !toCaret {
		switch mode {
		case SelectLine:
			d.invalidate(line, 0, line, len(line.text))
			d.selStart = Marker{Line: line}
			d.selEnd = Marker{Line: line, Pos: len(line.text)}
			d.anchorWordStart = 0
		case SelectWord:
			sp := FindWordSeparator(line, caret.Pos, false)
			ep := FindWordSeparator(line, caret.Pos, true)
			d.invalidate(line, sp, line, ep)
			d.selStart = Marker{Line: line, Pos: sp}
			d.selEnd = Marker{Line: line, Pos: ep}
			d.anchorWordStart = sp
		default:
			d.SetSelectionToCaret(true)
			return
		}
		d.selAnchor = d.selEnd
		d.selPrev = caret
		d.selEndAnchor = true
		d.setSelectionVisible(d.selStart != d.selEnd)
		return
	}

	// The anchor marks the end of the first word or line selected;
	// anchorWordStart remembers where that word or line began.
	anchorStart := Marker{Line: d.selAnchor.Line, Pos: clamp(d.anchorWordStart, 0, d.selAnchor.Pos)}
	switch mode {
	case SelectLine:
		if d.selPrev.Less(caret) {
			d.invalidate(d.selPrev.Line, 0, line, len(line.text))
		} else {
			d.invalidate(d.selPrev.Line, len(d.selPrev.Line.text), line, 0)
		}
		if line.Number() <= d.selAnchor.Line.Number() {
			d.selStart = Marker{Line: line}
			d.selEnd = d.selAnchor
			d.selEndAnchor = true
		} else {
			d.selStart = anchorStart
			d.selEnd = Marker{Line: line, Pos: len(line.text)}
			d.selEndAnchor = false
		}
		d.selPrev = caret

	case SelectWord:
		sp := FindWordSeparator(line, caret.Pos, false)
		ep := FindWordSeparator(line, caret.Pos, true)
		if d.selPrev.Less(caret) {
			d.invalidate(d.selPrev.Line, d.selPrev.Pos, line, ep)
		} else {
			d.invalidate(d.selPrev.Line, d.selPrev.Pos, line, sp)
		}
		if caret.Less(d.selAnchor) {
			d.selStart = Marker{Line: line, Pos: sp}
			d.selEnd = d.selAnchor
			d.selPrev = d.selStart
			d.selEndAnchor = true
		} else {
			d.selStart = anchorStart
			d.selEnd = Marker{Line: line, Pos: ep}
			d.selPrev = d.selEnd
			d.selEndAnchor = false
		}

	default:
		d.SetSelectionToCaret(false)
		return
	}
	d.setSelectionVisible(d.selStart != d.selEnd)
}
