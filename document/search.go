package document

import (
	"unicode"

	"go.uber.org/zap"
)

// FindOptions modify Find.
type FindOptions int

const (
	FindReverse   FindOptions = 1 << iota // return the last match in the range
	FindMatchCase                         // compare case sensitively
	FindWholeWord                         // match only between word separators
)

// IsWordSeparator reports whether r ends a word.
func IsWordSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '(', ')', '\r', '\n':
		return true
	}
	return false
}

// FindWordSeparator returns the end (forward) or start (backward) of
// the word around caret position pos of line. Forward, the separator
// that ends the word is included.
func FindWordSeparator(line *Line, pos int, forward bool) int {
	n := len(line.text)
	if forward {
		for i := pos + 1; i < n; i++ {
			if IsWordSeparator(line.text[i]) {
				return i + 1
			}
		}
		return n
	}
	for i := min(pos, n) - 1; i > 0; i-- {
		if IsWordSeparator(line.text[i-1]) {
			return i
		}
	}
	return 0
}

// ParagraphStart returns the first line of the paragraph holding line:
// the line after the nearest real line break before it.
func (d *Document) ParagraphStart(line *Line) *Line {
	for p := line.Prev(); p != nil && p.ending == EndWrap; p = p.Prev() {
		line = p
	}
	return line
}

// ParagraphEnd returns the last line of the paragraph holding line.
func (d *Document) ParagraphEnd(line *Line) *Line {
	for line.ending == EndWrap {
		next := line.Next()
		if next == nil {
			break
		}
		line = next
	}
	return line
}

// FindChars returns the first position in [start, end) holding any
// rune of set.
func (d *Document) FindChars(set []rune, start, end Marker) (Marker, bool) {
	for l, pos := start.Line, start.Pos; l != nil; l, pos = l.Next(), 0 {
		n := len(l.text)
		if l == end.Line {
			n = min(n, end.Pos)
		}
		for ; pos < n; pos++ {
			for _, c := range set {
				if l.text[pos] == c {
					return Marker{Line: l, Pos: pos}, true
				}
			}
		}
		if l == end.Line {
			break
		}
	}
	return Marker{}, false
}

// streamChar is one character of the search stream: a text character
// or one character of a line terminator.
type streamChar struct {
	c     rune
	at    Marker // position of c
	after Marker // position following c
}

// stream calls fn for every character between start and end, line
// terminators included and wrap breaks skipped, until fn returns
// false.
func (d *Document) stream(start, end Marker, fn func(streamChar) bool) {
	for l, pos := start.Line, start.Pos; l != nil; l, pos = l.Next(), 0 {
		last := l == end.Line
		n := len(l.text)
		if last {
			n = min(n, end.Pos)
		}
		for ; pos < n; pos++ {
			if !fn(streamChar{c: l.text[pos], at: Marker{Line: l, Pos: pos}, after: Marker{Line: l, Pos: pos + 1}}) {
				return
			}
		}
		if last {
			return
		}
		next := l.Next()
		term := []rune(l.ending.Terminator())
		for i, c := range term {
			after := Marker{Line: l, Pos: len(l.text)}
			if i == len(term)-1 && next != nil {
				after = Marker{Line: next}
			}
			if !fn(streamChar{c: c, at: Marker{Line: l, Pos: len(l.text)}, after: after}) {
				return
			}
		}
	}
}

// boundaryBefore reports whether a word may start at m.
func boundaryBefore(m Marker) bool {
	if m.Pos > 0 {
		return IsWordSeparator(m.Line.text[m.Pos-1])
	}
	p := m.Line.Prev()
	if p == nil || p.ending != EndWrap || len(p.text) == 0 {
		return true
	}
	return IsWordSeparator(p.text[len(p.text)-1])
}

// Find searches [start, end) for needle in a single pass over the
// lines and returns the bounds of the first match, or of the last one
// with FindReverse. Line terminators in the document match the same
// characters in needle; wrap breaks match nothing.
func (d *Document) Find(needle string, start, end Marker, opts FindOptions) (Marker, Marker, bool) {
	fold := func(c rune) rune {
		if opts&FindMatchCase == 0 {
			return unicode.ToLower(c)
		}
		return c
	}
	pat := []rune(needle)
	if len(pat) == 0 || start.Line == nil || end.Line == nil {
		return Marker{}, Marker{}, false
	}
	for i, c := range pat {
		pat[i] = fold(c)
	}
	fail := kmpTable(pat)
	whole := opts&FindWholeWord != 0
	reverse := opts&FindReverse != 0

	n := len(pat)
	ring := make([]streamChar, n)
	sepBefore := make([]bool, n)
	k, matched := 0, 0
	prevSep := boundaryBefore(start)

	// A whole word match waits for the character after it.
	var pending bool
	var pendS, pendE Marker

	var found bool
	var bestS, bestE Marker
	accept := func(s, e Marker) bool {
		found, bestS, bestE = true, s, e
		return reverse
	}

	d.stream(start, end, func(sc streamChar) bool {
		c := sc.c
		if pending {
			pending = false
			if IsWordSeparator(c) && !accept(pendS, pendE) {
				return false
			}
		}

		ring[k%n] = sc
		sepBefore[k%n] = prevSep
		prevSep = IsWordSeparator(c)
		k++

		c = fold(c)
		for matched > 0 && pat[matched] != c {
			matched = fail[matched-1]
		}
		if pat[matched] == c {
			matched++
		}
		if matched < n {
			return true
		}
		matched = fail[n-1]

		first := (k - n) % n
		s, e := ring[first].at, sc.after
		if whole {
			if sepBefore[first] {
				pending, pendS, pendE = true, s, e
			}
			return true
		}
		return accept(s, e)
	})
	if pending {
		accept(pendS, pendE)
	}

	if found {
		d.log.Debug("find", zap.String("needle", needle), zap.Int("line", bestS.LineNumber()), zap.Int("pos", bestS.Pos))
	}
	return bestS, bestE, found
}

// kmpTable returns the failure function of pat: for each prefix, the
// length of its longest proper prefix that is also a suffix.
func kmpTable(pat []rune) []int {
	fail := make([]int, len(pat))
	for i, k := 1, 0; i < len(pat); i++ {
		for k > 0 && pat[i] != pat[k] {
			k = fail[k-1]
		}
		if pat[i] == pat[k] {
			k++
		}
		fail[i] = k
	}
	return fail
}
