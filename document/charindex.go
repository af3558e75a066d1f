package document

// CharIndex returns the flat index of caret position pos of line: the
// characters of every line before it, each followed by its
// terminator, plus pos. Wrap breaks have no terminator, so reflow
// never moves an index.
func (d *Document) CharIndex(line *Line, pos int) int {
	if line == nil || line.node == nil {
		return 0
	}
	index := clamp(pos, 0, len(line.text))
	for l := line.Prev(); l != nil; l = l.Prev() {
		index += len(l.text) + l.ending.Len()
	}
	return index
}

// PositionOf returns the caret position at the flat index. An index
// inside a terminator maps to the end of its line; an index at a wrap
// break maps to the end of the wrapped line rather than the start of
// its continuation. Indexes out of range are clamped.
func (d *Document) PositionOf(index int) Marker {
	if index < 0 {
		index = 0
	}
	for node := d.lines.First(); node != nil; node = d.lines.Next(node) {
		l := node.Value
		if index <= len(l.text) {
			return Marker{Line: l, Pos: index}
		}
		index -= len(l.text) + l.ending.Len()
		if index < 0 {
			return Marker{Line: l, Pos: len(l.text)}
		}
	}
	last := d.LastLine()
	return Marker{Line: last, Pos: len(last.text)}
}
