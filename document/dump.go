package document

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Validate checks the structure of d and returns the first broken
// invariant it finds.
func (d *Document) Validate() error {
	if err := d.lines.Validate(); err != nil {
		return fmt.Errorf("line index: %w", err)
	}

	chars, n := 0, 0
	for node := d.lines.First(); node != nil; node = d.lines.Next(node) {
		n++
		l := node.Value
		if l.node != node {
			return fmt.Errorf("line %d: node back pointer is stale", n)
		}
		if got := l.Number(); got != n {
			return fmt.Errorf("line %d: numbered %d", n, got)
		}
		if len(l.widths) != len(l.text)+1 {
			return fmt.Errorf("line %d: %d widths for %d characters", n, len(l.widths), len(l.text))
		}
		if err := l.validateRuns(); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if next := d.lines.Next(node); next == nil && l.ending != EndNone {
			return fmt.Errorf("line %d: last line ends with %v", n, l.ending)
		} else if next != nil && l.ending == EndNone {
			return fmt.Errorf("line %d: inner line has no ending", n)
		}
		chars += len(l.text)
	}
	if chars != d.charCount {
		return fmt.Errorf("character count %d, lines hold %d", d.charCount, chars)
	}

	names := []string{"caret", "selection start", "selection end", "selection anchor", "previous selection"}
	for i, m := range d.markers() {
		if m.Line == nil || m.Line.node == nil {
			return fmt.Errorf("%s is on a deleted line", names[i])
		}
		if m.Pos < 0 || m.Pos > len(m.Line.text) {
			return fmt.Errorf("%s at %d outside line %d of length %d", names[i], m.Pos, m.Line.Number(), len(m.Line.text))
		}
	}
	if d.selEnd.Less(d.selStart) {
		return fmt.Errorf("selection ends before it starts")
	}
	return nil
}

// validateRuns checks that the runs of l are contiguous, start at 1
// and together cover the text.
func (l *Line) validateRuns() error {
	if len(l.runs) == 0 {
		return fmt.Errorf("no runs")
	}
	if l.runs[0].Start != 1 {
		return fmt.Errorf("first run starts at %d", l.runs[0].Start)
	}
	sum := 0
	for i, r := range l.runs {
		if r.line != l {
			return fmt.Errorf("run %d belongs to another line", i)
		}
		if r.Font == nil {
			return fmt.Errorf("run %d has no font", i)
		}
		if r.Len() < 0 {
			return fmt.Errorf("run %d at %d overlaps the next", i, r.Start)
		}
		sum += r.Len()
	}
	if sum != len(l.text) {
		return fmt.Errorf("runs cover %d of %d characters", sum, len(l.text))
	}
	return nil
}

// checkValid panics when validation is on and d is broken. op names
// the edit that broke it.
func (d *Document) checkValid(op string) {
	if !d.validate {
		return
	}
	if err := d.Validate(); err != nil {
		d.log.Error("document invariant broken", zap.String("op", op), zap.Error(err))
		panic(fmt.Sprintf("%s: %v", op, err))
	}
}

// Dump writes every line of d with its layout and runs to w. It panics
// when d is broken.
func (d *Document) Dump(w io.Writer) {
	if err := d.Validate(); err != nil {
		d.log.Error("document invariant broken", zap.String("op", "Dump"), zap.Error(err))
		panic(err)
	}
	fmt.Fprintf(w, "%d lines, %d chars, %dx%d\n", d.lines.Len(), d.charCount, d.width, d.height)
	for node := d.lines.First(); node != nil; node = d.lines.Next(node) {
		l := node.Value
		fmt.Fprintf(w, "line %d y=%d h=%d ending=%v %q\n", l.Number(), l.y, l.height, l.ending, string(l.text))
		for _, r := range l.runs {
			fmt.Fprintf(w, "\t%v\n", r)
		}
	}
	fmt.Fprintf(w, "caret %d:%d selection %d:%d-%d:%d\n",
		d.caret.LineNumber(), d.caret.Pos,
		d.selStart.LineNumber(), d.selStart.Pos,
		d.selEnd.LineNumber(), d.selEnd.Pos)
}
