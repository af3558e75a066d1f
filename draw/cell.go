package draw

import (
	"github.com/mattn/go-runewidth"
)

// CellFont measures in terminal cells: every line is one cell high
// and East Asian wide runes take two columns.
type CellFont struct {
	// EastAsian treats ambiguous-width runes as wide.
	EastAsian bool
}

var _ = Font(CellFont{})

func (f CellFont) cond() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = f.EastAsian
	return c
}

func (f CellFont) Name() string {
	if f.EastAsian {
		return "cell-eastasian"
	}
	return "cell"
}

func (CellFont) Height() int { return 1 }
func (CellFont) Ascent() int { return 1 }

func (f CellFont) StringWidth(s string) int { return f.cond().StringWidth(s) }
func (f CellFont) BytesWidth(b []byte) int  { return f.cond().StringWidth(string(b)) }

func (f CellFont) RunesWidth(r []rune) int {
	c := f.cond()
	w := 0
	for _, x := range r {
		w += c.RuneWidth(x)
	}
	return w
}
