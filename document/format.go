package document

import (
	"github.com/rjkroege/richedit/draw"
)

// FormatText applies the fields of font, color and back selected by
// mask to the text between the caret positions (startLine, startPos)
// and (endLine, endPos). An empty range leaves an empty run at the
// position that formats the next text typed there.
func (d *Document) FormatText(startLine *Line, startPos int, endLine *Line, endPos int, font draw.Font, color, back draw.Color, mask Format) {
	if startLine == nil || endLine == nil {
		return
	}
	a := Marker{Line: startLine, Pos: clamp(startPos, 0, len(startLine.text))}
	b := Marker{Line: endLine, Pos: clamp(endPos, 0, len(endLine.text))}
	if b.Less(a) {
		a, b = b, a
	}

	count := 0
	for l := a.Line; l != nil; l = l.Next() {
		from, to := 0, len(l.text)
		if l == a.Line {
			from = a.Pos
		}
		if l == b.Line {
			to = b.Pos
		}
		// Only a single position range leaves an empty run behind.
		if to > from || a.Line == b.Line {
			l.FormatText(from+1, to-from, font, color, back, mask)
		}
		count++
		if l == b.Line {
			break
		}
	}
	d.UpdateViewRange(a.Line, count, a.Pos)
	d.updateCaret()
}
