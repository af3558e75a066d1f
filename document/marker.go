package document

// Marker locates a caret position: a line and an offset in it from 0
// to the line length. Markers order by line number, then position.
type Marker struct {
	Line *Line
	Pos  int
}

// LineNumber returns the number of m's line.
func (m Marker) LineNumber() int { return m.Line.Number() }

// Run returns the run that owns m.
func (m Marker) Run() *Run { return m.Line.RunAt(m.Pos) }

// Compare returns -1, 0 or 1 as m is before, at or after o.
func (m Marker) Compare(o Marker) int {
	if m.Line != o.Line {
		if m.Line.Number() < o.Line.Number() {
			return -1
		}
		return 1
	}
	switch {
	case m.Pos < o.Pos:
		return -1
	case m.Pos > o.Pos:
		return 1
	}
	return 0
}

func (m Marker) Less(o Marker) bool { return m.Compare(o) < 0 }
