package document

import (
	"image"
	"math"

	"go.uber.org/zap"
)

// SuspendLayout defers relayout until the matching ResumeLayout. Calls
// nest; the dirty line range accumulates while suspended.
func (d *Document) SuspendLayout() {
	if d.layoutSuspended == 0 {
		d.layoutStart = math.MaxInt
		d.layoutEnd = math.MinInt
		d.layoutOptimize = true
		d.layoutPending = false
	}
	d.layoutSuspended++
}

// ResumeLayout ends a SuspendLayout window. When the outermost window
// closes and either immediate is set or an edit was deferred, the
// accumulated range is laid out once.
func (d *Document) ResumeLayout(immediate bool) {
	if d.layoutSuspended > 0 {
		d.layoutSuspended--
	}
	if d.layoutSuspended > 0 || !(immediate || d.layoutPending) || d.layoutStart == math.MaxInt {
		return
	}
	start := clamp(d.layoutStart, 1, d.lines.Len())
	end := clamp(d.layoutEnd, start, d.lines.Len())
	optimize := d.layoutOptimize
	d.layoutPending = false
	d.layoutStart, d.layoutEnd = math.MaxInt, math.MinInt

	d.log.Debug("resume layout", zap.Int("start", start), zap.Int("end", end))
	changed := d.RecalculateDocument(start, end, optimize)
	if d.redrawSuspended > 0 {
		d.deferRedraw(start, end)
		return
	}
	line := d.GetLine(start)
	if changed {
		d.invalidateBelow(line.y)
		return
	}
	last := d.GetLine(min(end, d.lines.Len()))
	d.invalidateRows(line.y, last.y+last.height)
}

// SuspendRedraw defers invalidation until the matching ResumeRedraw.
func (d *Document) SuspendRedraw() {
	if d.redrawSuspended == 0 {
		d.redrawStart = math.MaxInt
		d.redrawEnd = math.MinInt
		d.redrawPending = false
	}
	d.redrawSuspended++
}

// ResumeRedraw ends a SuspendRedraw window. When the outermost window
// closes with immediate set, every line from the first one touched to
// the end of the document is brought up to date and repainted.
func (d *Document) ResumeRedraw(immediate bool) {
	if d.redrawSuspended > 0 {
		d.redrawSuspended--
	}
	if d.redrawSuspended > 0 || !immediate || !d.redrawPending {
		return
	}
	start := clamp(d.redrawStart, 1, d.lines.Len())
	d.redrawPending = false
	d.redrawStart, d.redrawEnd = math.MaxInt, math.MinInt
	line := d.GetLine(start)
	d.UpdateViewRange(line, d.lines.Len()-start+1, 0)
}

func (d *Document) deferRedraw(start, end int) {
	d.redrawStart = min(d.redrawStart, start)
	d.redrawEnd = max(d.redrawEnd, end)
	d.redrawPending = true
}

// UpdateView lays out line after an edit at caret position pos and
// invalidates what changed: the rest of the view when the line height
// or structure changed, otherwise the line from pos on.
func (d *Document) UpdateView(line *Line, pos int) {
	n := line.Number()
	if d.redrawSuspended > 0 {
		d.deferRedraw(n, n)
		return
	}
	if d.layoutSuspended > 0 {
		d.RecalculateDocument(n, n, true)
		return
	}

	pos = clamp(pos, 0, len(line.text))
	prevX, prevY := line.X(pos), line.y
	prevBottom := line.y + line.height

	changed := d.RecalculateDocument(n, n, true)
	y := min(prevY, line.y)
	if changed {
		d.invalidateBelow(y)
		return
	}
	bottom := max(prevBottom, line.y+line.height) + 1
	if line.align == AlignLeft {
		vp := d.viewportRect()
		x := max(min(prevX, line.X(pos))-1, vp.Min.X)
		d.invalidateDoc(image.Rect(x, y, vp.Max.X, bottom))
		return
	}
	d.invalidateRows(y, bottom)
}

// UpdateViewRange lays out count lines from line and invalidates
// them, or everything below them when heights or structure changed.
func (d *Document) UpdateViewRange(line *Line, count int, pos int) {
	n := line.Number()
	if d.redrawSuspended > 0 {
		d.deferRedraw(n, n+count)
		return
	}
	if d.layoutSuspended > 0 {
		d.RecalculateDocument(n, n+count, true)
		return
	}

	top := line.y
	end := d.GetLine(min(n+count, d.lines.Len()))
	bottom := end.y + end.height

	changed := d.RecalculateDocument(n, n+count, true)
	y := min(top, line.y)
	if changed {
		d.invalidateBelow(y)
		return
	}
	end = d.GetLine(min(n+count, d.lines.Len()))
	d.invalidateRows(y, max(bottom, end.y+end.height))
}

// invalidate repaints the text between two caret positions: the tail
// of the first line, the lines in between and the head of the last.
func (d *Document) invalidate(l1 *Line, p1 int, l2 *Line, p2 int) {
	if l1 == l2 && p1 == p2 {
		return
	}
	a, b := Marker{Line: l1, Pos: p1}, Marker{Line: l2, Pos: p2}
	if b.Less(a) {
		a, b = b, a
	}
	l1, p1, l2, p2 = a.Line, a.Pos, b.Line, b.Pos

	if l1 == l2 {
		d.invalidateDoc(image.Rect(l1.X(p1), l1.y, l1.X(p2)+1, l1.y+l1.height))
		return
	}
	right := d.viewportRect().Max.X
	d.invalidateDoc(image.Rect(l1.X(p1), l1.y, right, l1.y+l1.height))
	if next := l1.Next(); next != nil && next != l2 {
		d.invalidateRows(next.y, l2.y)
	}
	d.invalidateDoc(image.Rect(l2.X(0), l2.y, l2.X(p2)+1, l2.y+l2.height))
}

// invalidateRows repaints the full width of the document rows
// [top, bottom).
func (d *Document) invalidateRows(top, bottom int) {
	vp := d.viewportRect()
	d.invalidateDoc(image.Rect(vp.Min.X, top, vp.Max.X, bottom))
}

// invalidateBelow repaints everything from document row y down, or the
// whole view when y is above it.
func (d *Document) invalidateBelow(y int) {
	vp := d.viewportRect()
	if y < vp.Min.Y {
		d.invalidateAll()
		return
	}
	d.invalidateDoc(image.Rect(vp.Min.X, y, vp.Max.X, vp.Max.Y))
}

// invalidateDoc passes r, in document coordinates, to the host in
// viewport coordinates.
func (d *Document) invalidateDoc(r image.Rectangle) {
	if d.host == nil || r.Empty() {
		return
	}
	d.host.Invalidate(r.Sub(d.viewportRect().Min))
}

func (d *Document) invalidateAll() {
	if d.host == nil {
		return
	}
	d.host.InvalidateAll()
}
