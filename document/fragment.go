package document

import (
	"strings"

	"github.com/rjkroege/richedit/undo"
)

// Fragment is a formatted copy of a span of a document. It is the
// snapshot kept for undoing a deletion.
type Fragment struct {
	lines []fragmentLine
}

type fragmentLine struct {
	text   []rune
	runs   []*Run // detached, starts relative to text
	ending Ending // EndNone on the last line
}

var _ undo.Snapshot = (*Fragment)(nil)

// Len returns the flat length of f.
func (f *Fragment) Len() int {
	n := 0
	for _, fl := range f.lines {
		n += len(fl.text) + fl.ending.Len()
	}
	return n
}

// String returns the text of f with its line terminators.
func (f *Fragment) String() string {
	var sb strings.Builder
	for _, fl := range f.lines {
		sb.WriteString(string(fl.text))
		sb.WriteString(fl.ending.Terminator())
	}
	return sb.String()
}

// Duplicate copies the text and formatting from start to end.
func (d *Document) Duplicate(start, end Marker) *Fragment {
	if end.Less(start) {
		start, end = end, start
	}
	f := &Fragment{}
	for l := start.Line; l != nil; l = l.Next() {
		from, to := 0, len(l.text)
		if l == start.Line {
			from = start.Pos
		}
		last := l == end.Line
		if last {
			to = end.Pos
		}
		fl := fragmentLine{ending: EndNone}
		if !last {
			fl.ending = l.ending
		}
		fl.text, fl.runs = l.copyRange(from, to)
		f.lines = append(f.lines, fl)
		if last {
			break
		}
	}
	return f
}

// copyRange copies caret positions from through to of l with detached
// copies of the runs covering them.
func (l *Line) copyRange(from, to int) ([]rune, []*Run) {
	from = clamp(from, 0, len(l.text))
	to = clamp(to, from, len(l.text))
	text := append([]rune(nil), l.text[from:to]...)

	var runs []*Run
	for i, r := range l.runs {
		end := len(l.text) + 1
		if i+1 < len(l.runs) {
			end = l.runs[i+1].Start
		}
		if end-1 <= from || r.Start > to {
			continue
		}
		cp := r.clone()
		cp.Start = max(r.Start, from+1) - from
		runs = append(runs, cp)
	}
	if len(runs) == 0 {
		cp := l.RunAt(from).clone()
		cp.Start = 1
		runs = append(runs, cp)
	}
	return text, runs
}

// InsertSnapshot inserts a Fragment made by Duplicate at the flat
// index, optionally selecting it.
func (d *Document) InsertSnapshot(index int, s undo.Snapshot, selectIt bool) {
	f, ok := s.(*Fragment)
	if !ok || len(f.lines) == 0 {
		return
	}
	m := d.PositionOf(index)
	d.InsertFragment(m.Line, m.Pos, f)

	if selectIt {
		b, e := d.PositionOf(index), d.PositionOf(index+f.Len())
		d.SetSelection(b.Line, b.Pos, e.Line, e.Pos)
		d.caret = e
		d.updateCaret()
	}
}

// InsertFragment inserts f with its formatting at caret position pos
// of line.
func (d *Document) InsertFragment(line *Line, pos int, f *Fragment) {
	d.SuspendLayout()
	tail := d.Split(line, pos, false)
	cur := line
	for i, fl := range f.lines {
		if i > 0 {
			cur = d.insertLine(cur.Number()+1, nil, fl.runs[0].clone(), EndNone)
		}
		text, runs := append([]rune(nil), fl.text...), make([]*Run, 0, len(fl.runs))
		for _, r := range fl.runs {
			runs = append(runs, r.clone())
		}
		cur.appendRuns(text, runs)
		if i < len(f.lines)-1 {
			cur.ending = fl.ending
			cur.streamline(false)
		}
		d.charCount += len(fl.text)
	}
	d.Combine(cur, tail)
	d.checkValid("InsertFragment")

	d.UpdateViewRange(line, len(f.lines), pos)
	d.ResumeLayout(false)
	d.notifyLength()
}
