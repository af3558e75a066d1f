package document

import (
	"unicode"

	"github.com/rjkroege/richedit/draw"
	"go.uber.org/zap"
)

// charWidth measures c drawn with font at offset x from the start of
// the text. Tabs advance to the next tab stop.
func (d *Document) charWidth(font draw.Font, c rune, x int) int {
	if c == '\t' && d.tabStop > 0 {
		return d.tabStop - x%d.tabStop
	}
	return draw.RuneWidth(font, c)
}

// left returns the offset of caret position 0 of l.
func (d *Document) left(l *Line) int {
	if l.IsWrapContinuation() {
		return d.margins.Left + l.hangingIndent
	}
	return d.margins.Left + l.indent
}

// recalculate measures l, wrapping it into a continuation line when it
// is too wide and pulling continuation lines back when it has room. It
// reports whether the height of l or the line structure changed.
func (l *Line) recalculate(d *Document) bool {
	if d.password != 0 {
		return l.recalculatePassword(d)
	}

	prev := l.height
	changed := false
	left := d.left(l)
	limit := d.viewWidth() - d.margins.Right - l.rightIndent

	l.widths = resize(l.widths, len(l.text)+1)
	l.widths[0] = left
	wrapPos := 0
	pos := 1
	for {
		wrapped := false
		ri := 0
		for ; pos <= len(l.text); pos++ {
			for ri < len(l.runs)-1 && pos >= l.runs[ri+1].Start {
				ri++
			}
			c := l.text[pos-1]
			l.widths[pos] = l.widths[pos-1] + d.charWidth(l.runs[ri].Font, c, l.widths[pos-1]-left)

			// Whitespace may hang past the edge.
			if unicode.IsSpace(c) {
				wrapPos = pos
				continue
			}
			if d.wrap && d.multiline && pos > 1 && l.widths[pos] > limit {
				at := pos - 1
				if wrapPos > 0 {
					at = wrapPos
				}
				d.Split(l, at, true)
				wrapped = true
				changed = true
				break
			}
		}
		if wrapped || l.ending != EndWrap {
			break
		}
		next := l.Next()
		if next == nil {
			l.ending = EndNone
			break
		}
		measured := append([]int(nil), l.widths[:pos]...)
		d.Combine(l, next)
		changed = true
		l.widths = resize(l.widths, len(l.text)+1)
		copy(l.widths, measured)
	}

	l.measureRuns()
	l.recalc = false
	if changed {
		d.log.Debug("reflow", zap.Int("line", l.Number()), zap.Int("len", len(l.text)), zap.Stringer("ending", l.ending))
	}
	return changed || l.height != prev
}

// recalculatePassword lays out l as len(text) copies of the password
// glyph drawn with the first run's font. Password lines never wrap.
func (l *Line) recalculatePassword(d *Document) bool {
	prev := l.height
	r := l.runs[0]
	w := draw.RuneWidth(r.Font, d.password)

	l.widths = resize(l.widths, len(l.text)+1)
	l.widths[0] = d.left(l)
	for pos := 1; pos <= len(l.text); pos++ {
		l.widths[pos] = l.widths[pos-1] + w
	}

	l.height = r.Font.Height()
	l.ascent = r.Font.Ascent()
	for _, o := range l.runs {
		o.Height = l.height
		o.Ascent = l.ascent
		o.Shift = 0
	}
	l.recalc = false
	return l.height != prev
}

// measureRuns sets the vertical metrics of every run and of l. Empty
// runs only count on an empty line.
func (l *Line) measureRuns() {
	l.height, l.ascent = 0, 0
	for i, r := range l.runs {
		r.Height = r.Font.Height()
		r.Ascent = r.Font.Ascent()
		end := len(l.text) + 1
		if i+1 < len(l.runs) {
			end = l.runs[i+1].Start
		}
		if end == r.Start && len(l.text) > 0 {
			continue
		}
		if r.Height > l.height {
			l.height = r.Height
		}
		if r.Ascent > l.ascent {
			l.ascent = r.Ascent
		}
	}
	for _, r := range l.runs {
		r.Shift = l.ascent - r.Ascent
	}
}

// calculateAlignment sets the horizontal shift of l in a viewport of
// the given width.
func (l *Line) calculateAlignment(width int) {
	switch l.align {
	case AlignCenter:
		l.alignShift = (width - l.Width()) / 2
	case AlignRight:
		l.alignShift = width - l.Width()
	default:
		l.alignShift = 0
	}
}

// RecalculateDocument lays out lines start through end. When optimize
// is set only lines marked dirty are measured; otherwise every line in
// the range is and the result is always true. A line whose height or
// structure changes extends the range to the end of the document. It
// reports whether the layout changed.
func (d *Document) RecalculateDocument(start, end int, optimize bool) bool {
	if d.layoutSuspended > 0 {
		d.layoutStart = min(d.layoutStart, start)
		d.layoutEnd = max(d.layoutEnd, end)
		d.layoutOptimize = d.layoutOptimize && optimize
		d.layoutPending = true
		return true
	}

	start = max(start, 1)
	end = min(end, d.lines.Len())
	line := d.GetLine(start)
	if line == nil || end < start {
		return false
	}

	changed := !optimize
	y := d.margins.Top
	if p := line.Prev(); p != nil {
		y = p.y + p.height
	}
	width := d.viewWidth()

	for n := start; line != nil && n <= end; n++ {
		line.y = y
		if !optimize || line.recalc {
			count := d.lines.Len()
			if line.recalculate(d) {
				changed = true
				end = d.lines.Len()
			} else {
				end += d.lines.Len() - count
			}
		}
		line.calculateAlignment(width)
		y += line.height
		line = line.Next()
	}
	d.log.Debug("recalculate", zap.Int("start", start), zap.Int("end", end), zap.Bool("optimize", optimize), zap.Bool("changed", changed))

	d.updateSize()
	d.updateCaret()
	return changed
}

// updateSize recomputes the document extent and notifies observers of
// changes.
func (d *Document) updateSize() {
	width := 0
	for n := d.lines.First(); n != nil; n = d.lines.Next(n) {
		if w := n.Value.Width() + d.margins.Right; w > width {
			width = w
		}
	}
	height := d.margins.Top
	if last := d.lines.Last(); last != nil {
		height = last.Value.y + last.Value.height
	}

	if width != d.width {
		d.width = width
		d.notify(func(o Observer) { o.WidthChanged(width) })
	}
	if height != d.height {
		d.height = height
		d.notify(func(o Observer) { o.HeightChanged(height) })
	}
}
