package document

import (
	"go.uber.org/zap"
)

// Split moves the text and runs of line from caret position pos on
// into a new line inserted after it, and returns the new line. A soft
// split ends line with EndWrap so that layout may join the two again;
// a hard split ends it with the document's line terminator. The caret
// moves along when it is at or after pos; the selection markers when
// they are after pos.
func (d *Document) Split(line *Line, pos int, soft bool) *Line {
	pos = clamp(pos, 0, len(line.text))
	nl := &Line{
		doc:           d,
		text:          append([]rune(nil), line.text[pos:]...),
		ending:        line.ending,
		align:         line.align,
		indent:        line.indent,
		hangingIndent: line.hangingIndent,
		rightIndent:   line.rightIndent,
		recalc:        true,
	}
	nl.widths = make([]int, len(nl.text)+1)

	if pos == len(line.text) {
		nr := line.RunAt(pos).clone()
		nr.Start = 1
		nl.addRun(0, nr)
	} else {
		i := line.breakAt(pos + 1)
		moved := append([]*Run(nil), line.runs[i:]...)
		if i == 0 {
			nr := moved[0].clone()
			nr.Start = 1
			line.addRun(0, nr)
			i = 1
		}
		for j := i; j < len(line.runs); j++ {
			line.runs[j] = nil
		}
		line.runs = line.runs[:i]
		for _, r := range moved {
			r.Start -= pos
			nl.addRun(len(nl.runs), r)
		}
	}

	line.text = line.text[:pos]
	if len(line.widths) > pos+1 {
		line.widths = line.widths[:pos+1]
	} else {
		line.widths = resize(line.widths, pos+1)
	}
	if soft {
		line.ending = EndWrap
	} else {
		line.ending = d.ending
	}
	line.recalc = true
	nl.node = d.lines.Insert(line.Number()+1, nl)

	move := func(m *Marker, inclusive bool) {
		if m.Line == line && (m.Pos > pos || inclusive && m.Pos == pos) {
			m.Line = nl
			m.Pos -= pos
		}
	}
	move(&d.caret, true)
	move(&d.selStart, false)
	move(&d.selEnd, false)
	move(&d.selAnchor, false)
	move(&d.selPrev, false)

	d.log.Debug("split", zap.Int("line", line.Number()), zap.Int("pos", pos), zap.Bool("soft", soft))
	d.checkValid("Split")
	return nl
}

// Combine appends the text and runs of second to first, removes
// second and moves the markers on it to first.
func (d *Document) Combine(first, second *Line) {
	if first == nil || second == nil || first == second || second.node == nil {
		return
	}
	off := len(first.text)
	runs := second.runs
	second.runs = nil
	first.appendRuns(second.text, runs)
	first.ending = second.ending

	for _, m := range d.markers() {
		if m.Line == second {
			m.Line = first
			m.Pos += off
		}
	}
	d.lines.Delete(second.node)
	second.node = nil
	first.streamline(first.isLast())
	first.recalc = true

	d.log.Debug("combine", zap.Int("line", first.Number()), zap.Int("pos", off))
	d.checkValid("Combine")
}

type segment struct {
	text   []rune
	ending Ending
}

// splitText cuts s at every line break. The last segment ends with
// EndNone.
func splitText(s []rune) []segment {
	var segs []segment
	for start := 0; ; {
		i, e := LineEnding(s, start, EndBreaks)
		segs = append(segs, segment{text: s[start:i], ending: e})
		if e == EndNone {
			return segs
		}
		start = i + e.Len()
	}
}

// Insert inserts s at caret position pos of line. Line breaks in s
// split line and make one new line per break, keeping each break's
// terminator. When updateCaret is set the caret moves to the end of
// the inserted text.
func (d *Document) Insert(line *Line, pos int, updateCaret bool, s string) {
	d.insert(line, pos, updateCaret, []rune(s), nil)
}

// insert formats the text like tmpl, or like the run at pos when tmpl
// is nil.
func (d *Document) insert(line *Line, pos int, updateCaret bool, s []rune, tmpl *Run) {
	if len(s) == 0 || line == nil {
		return
	}
	pos = clamp(pos, 0, len(line.text))
	segs := splitText(s)
	if !d.multiline && len(segs) > 1 {
		segs = []segment{{text: dropBreaks(s), ending: EndNone}}
	}
	if tmpl == nil {
		tmpl = line.RunAt(pos).clone()
	}

	// Markers at pos stay in front of the new text.
	var at []*Marker
	for _, m := range d.markers() {
		if m.Line == line && m.Pos == pos {
			at = append(at, m)
		}
	}

	var end Marker
	if len(segs) == 1 {
		line.insertString(pos, segs[0].text, tmpl)
		d.charCount += len(segs[0].text)
		for _, m := range d.markers() {
			if m.Line == line && m.Pos > pos {
				m.Pos += len(segs[0].text)
			}
		}
		end = Marker{Line: line, Pos: pos + len(segs[0].text)}
	} else {
		tail := d.Split(line, pos, false)
		line.insertString(pos, segs[0].text, tmpl)
		line.ending = segs[0].ending
		d.charCount += len(segs[0].text)

		prev := line
		for _, seg := range segs[1 : len(segs)-1] {
			prev = d.insertLine(prev.Number()+1, append([]rune(nil), seg.text...), tmpl.clone(), seg.ending)
			d.charCount += len(seg.text)
		}
		last := segs[len(segs)-1]
		tail.insertString(0, last.text, tmpl)
		d.charCount += len(last.text)
		for _, m := range d.markers() {
			if m.Line == tail {
				m.Pos += len(last.text)
			}
		}
		end = Marker{Line: tail, Pos: len(last.text)}
	}
	for _, m := range at {
		*m = Marker{Line: line, Pos: pos}
	}
	d.checkValid("Insert")

	if updateCaret {
		d.caret = end
	}
	d.UpdateViewRange(line, len(segs), pos)
	if updateCaret {
		d.updateCaret()
	}
	d.notifyLength()
}

// wrapPrev marks the line before a wrap continuation for layout and
// returns it, since text removed from line may now fit there. It
// returns nil when line is not a continuation.
func (d *Document) wrapPrev(line *Line) *Line {
	p := line.Prev()
	if p == nil || p.ending != EndWrap {
		return nil
	}
	p.recalc = true
	return p
}

func dropBreaks(s []rune) []rune {
	out := make([]rune, 0, len(s))
	for _, c := range s {
		if c != '\r' && c != '\n' {
			out = append(out, c)
		}
	}
	return out
}

// InsertString inserts s at caret position pos of line and records it
// for undo.
func (d *Document) InsertString(line *Line, pos int, s string) {
	loc := d.location(line, pos)
	d.Insert(line, pos, false, s)
	d.undo.RecordInsertString(loc, s)
}

// InsertChar types ch at the caret. Consecutive characters undo as
// one Typing action. When moveCaret is set the caret moves past ch and
// the selection collapses onto it.
func (d *Document) InsertChar(ch rune, moveCaret bool) {
	if !d.multiline && (ch == '\r' || ch == '\n') {
		return
	}
	loc := d.location(d.caret.Line, d.caret.Pos)
	d.Insert(d.caret.Line, d.caret.Pos, false, string(ch))
	d.undo.RecordTyping(loc, ch)
	if moveCaret {
		d.PlaceCaret(loc.Index + 1)
	}
}

// DeleteChars removes count characters of line from caret position
// pos. Markers behind the removed text move back.
func (d *Document) DeleteChars(line *Line, pos, count int) {
	if line == nil {
		return
	}
	pos = clamp(pos, 0, len(line.text))
	count = clamp(count, 0, len(line.text)-pos)
	if count == 0 {
		return
	}
	line.deleteCharacters(pos, count)
	d.charCount -= count
	for _, m := range d.markers() {
		if m.Line == line && m.Pos > pos {
			m.Pos = max(pos, m.Pos-count)
		}
	}
	d.checkValid("DeleteChars")

	if p := d.wrapPrev(line); p != nil {
		d.UpdateViewRange(p, 2, 0)
	} else {
		d.UpdateView(line, pos)
	}
	d.notifyLength()
}

// DeleteChar deletes one character before (or, when forward is set,
// after) caret position pos as one undoable step. Deleting across a
// line break joins the lines.
func (d *Document) DeleteChar(line *Line, pos int, forward bool) {
	pos = clamp(pos, 0, len(line.text))
	start, length := Marker{Line: line, Pos: pos}, 1
	switch {
	case forward && pos == len(line.text):
		if line.Next() == nil {
			return
		}
		if line.ending != EndWrap {
			length = line.ending.Len()
		}
	case forward:
	case pos > 0:
		start.Pos--
	default:
		p := line.Prev()
		if p == nil {
			return
		}
		start = Marker{Line: p, Pos: p.Len()}
		if p.ending == EndWrap {
			start.Pos--
		} else {
			length = p.ending.Len()
		}
	}
	if start.Pos < 0 {
		return
	}

	loc := d.location(start.Line, start.Pos)
	end := d.PositionOf(loc.Index + length)
	d.undo.BeginUserAction("Delete")
	d.undo.RecordDeleteString(loc, d.Duplicate(start, end))
	d.DeleteMultiline(start.Line, start.Pos, length)
	d.undo.EndUserAction()
	d.PlaceCaret(loc.Index)
}

// DeleteMultiline removes length characters of the flat index from
// caret position pos of line. When the range crosses lines the
// covered lines are deleted and the two ends are combined.
func (d *Document) DeleteMultiline(line *Line, pos, length int) {
	if line == nil || length <= 0 {
		return
	}
	pos = clamp(pos, 0, len(line.text))
	start := Marker{Line: line, Pos: pos}
	end := d.PositionOf(d.CharIndex(line, pos) + length)
	if end.Line == line {
		d.DeleteChars(line, pos, end.Pos-pos)
		return
	}

	d.SuspendRedraw()
	for _, m := range d.markers() {
		switch {
		case m.Compare(start) >= 0 && m.Compare(end) <= 0:
			*m = start
		case m.Line == end.Line:
			m.Pos -= end.Pos
		}
	}

	n := len(line.text) - pos
	line.deleteCharacters(pos, n)
	d.charCount -= n
	end.Line.deleteCharacters(0, end.Pos)
	d.charCount -= end.Pos
	for l := line.Next(); l != nil && l != end.Line; {
		next := l.Next()
		d.charCount -= len(l.text)
		d.lines.Delete(l.node)
		l.node = nil
		l = next
	}
	d.Combine(line, end.Line)

	// Every line below moved up.
	first := line
	if p := d.wrapPrev(line); p != nil {
		first = p
	}
	d.UpdateViewRange(first, d.lines.Len()-first.Number()+1, pos)
	d.ResumeRedraw(true)
	d.notifyLength()
}

// ReplaceSelection replaces the selected text with s as one undoable
// step. The new text takes the formatting at the start of the
// selection. When selectNew is set the new text is selected, else the
// caret follows it.
func (d *Document) ReplaceSelection(s string, selectNew bool) {
	start := d.selStart
	loc := d.location(start.Line, start.Pos)
	tmpl := start.Line.RunAt(start.Pos).clone()
	r := []rune(s)

	d.SuspendLayout()
	d.undo.BeginUserAction("Replace")
	if n := d.SelectionLength(); n > 0 {
		d.undo.RecordDeleteString(loc, d.Duplicate(d.selStart, d.selEnd))
		d.DeleteMultiline(start.Line, start.Pos, n)
	}
	if len(r) > 0 {
		d.insert(start.Line, start.Pos, false, r, tmpl)
		d.undo.RecordInsertString(loc, s)
	}
	d.undo.EndUserAction()

	if selectNew {
		b, e := d.PositionOf(loc.Index), d.PositionOf(loc.Index+len(r))
		d.SetSelection(b.Line, b.Pos, e.Line, e.Pos)
		d.caret = e
	} else {
		d.caret = d.PositionOf(loc.Index + len(r))
		d.SetSelectionToCaret(true)
	}
	d.ResumeLayout(false)
	d.updateCaret()
	d.notifyLength()
}

// DeleteRange removes length characters from the flat index.
func (d *Document) DeleteRange(index, length int) {
	m := d.PositionOf(index)
	d.DeleteMultiline(m.Line, m.Pos, length)
}

// InsertText inserts s at the flat index.
func (d *Document) InsertText(index int, s string) {
	m := d.PositionOf(index)
	d.Insert(m.Line, m.Pos, false, s)
}

// PlaceCaret moves the caret to the flat index and collapses the
// selection onto it.
func (d *Document) PlaceCaret(index int) {
	m := d.PositionOf(index)
	d.PositionCaret(m.Line, m.Pos)
	d.SetSelectionToCaret(true)
}
