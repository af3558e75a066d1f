package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rjkroege/richedit/draw"
	"github.com/rjkroege/richedit/edittest"
)

func helloDoc(t *testing.T) (*Document, *Line) {
	t.Helper()
	d := newDoc(t)
	d.Insert(d.FirstLine(), 0, true, "Hello")
	return d, d.FirstLine()
}

func TestLineFormatText(t *testing.T) {
	d, l := helloDoc(t)

	if l.FormatText(1, 3, bold, 0, 0, FormatFont) {
		t.Errorf("FormatText with a font of the same height reported a height change")
	}
	want := []runDesc{{"Hel", "bold"}, {"lo", edittest.MockFontName}}
	if diff := cmp.Diff(want, runsOf(l)); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
	checkValid(t, d)

	if !l.FormatText(4, 2, big, 0, 0, FormatFont) {
		t.Errorf("FormatText with a taller font reported no height change")
	}
	want = []runDesc{{"Hel", "bold"}, {"lo", "big"}}
	if diff := cmp.Diff(want, runsOf(l)); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}

	// Restoring the default format everywhere leaves a single run.
	l.FormatText(1, 5, plain, draw.Black, draw.Notacolor, FormatAll)
	want = []runDesc{{"Hello", edittest.MockFontName}}
	if diff := cmp.Diff(want, runsOf(l)); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
	checkValid(t, d)
}

func TestLineFormatColors(t *testing.T) {
	d, l := helloDoc(t)
	l.FormatText(2, 2, nil, draw.Red, draw.Paleyellow, FormatColor|FormatBackColor)

	var got []string
	for _, r := range l.Runs() {
		got = append(got, r.Text()+" "+edittest.NiceColourName(r.Color)+" "+edittest.NiceColourName(r.BackColor))
	}
	want := []string{"H Black Notacolor", "el Red Paleyellow", "lo Black Notacolor"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
	// A nil font leaves the font alone even when selected by the mask.
	l.FormatText(1, 5, nil, 0, 0, FormatFont)
	for _, r := range l.Runs() {
		if r.Font != plain {
			t.Errorf("run %v lost its font", r)
		}
	}
	checkValid(t, d)
}

func TestRunBreakAndCombine(t *testing.T) {
	d, l := helloDoc(t)
	r := l.Runs()[0]

	if got := r.Break(1); got != r {
		t.Errorf("Break at the run start returned %v", got)
	}
	if got := r.Break(9); got != nil {
		t.Errorf("Break past the line returned %v", got)
	}
	nr := r.Break(3)
	if nr == nil {
		t.Fatal("Break(3) returned nil")
	}
	if diff := cmp.Diff([]runDesc{{"He", "mock"}, {"llo", "mock"}}, runsOf(l)); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
	if got, want := nr.X(), 20; got != want {
		t.Errorf("X got %d, want %d", got, want)
	}
	if got, want := nr.Width(), 30; got != want {
		t.Errorf("Width got %d, want %d", got, want)
	}
	checkValid(t, d)

	if nr.Combine(r) {
		t.Errorf("Combine with the run before succeeded")
	}
	if !r.Combine(nr) {
		t.Errorf("Combine of equal neighbours failed")
	}
	if got, want := len(l.Runs()), 1; got != want {
		t.Errorf("run count got %d, want %d", got, want)
	}
	if nr.Line() != nil {
		t.Errorf("combined run is still on a line")
	}
	checkValid(t, d)
}

func TestStreamline(t *testing.T) {
	d, l := helloDoc(t)
	l.Runs()[0].Break(2)
	l.Runs()[1].Break(4)
	l.FormatText(4, 0, bold, 0, 0, FormatFont)
	if got, want := len(l.Runs()), 4; got != want {
		t.Fatalf("run count got %d, want %d", got, want)
	}

	l.streamline(false)
	once := runsOf(l)
	l.streamline(false)
	if diff := cmp.Diff(once, runsOf(l)); diff != "" {
		t.Errorf("second streamline changed the runs (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]runDesc{{"Hello", "mock"}}, once); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
	checkValid(t, d)
}

func TestStreamlineKeepsTrailingRunOnLastLine(t *testing.T) {
	d, l := helloDoc(t)
	l.FormatText(6, 0, bold, 0, 0, FormatFont)
	l.streamline(true)
	want := []runDesc{{"Hello", "mock"}, {"", "bold"}}
	if diff := cmp.Diff(want, runsOf(l)); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
	checkValid(t, d)
}

func TestFormatAtCaret(t *testing.T) {
	d, l := helloDoc(t)
	d.PositionCaret(l, 2)
	d.FormatText(l, 2, l, 2, bold, 0, 0, FormatFont)
	want := []runDesc{{"He", "mock"}, {"", "bold"}, {"llo", "mock"}}
	if diff := cmp.Diff(want, runsOf(l)); diff != "" {
		t.Fatalf("runs mismatch (-want +got):\n%s", diff)
	}

	d.InsertChar('X', true)
	if got, want := l.Text(), "HeXllo"; got != want {
		t.Errorf("Text got %q, want %q", got, want)
	}
	want = []runDesc{{"He", "mock"}, {"X", "bold"}, {"llo", "mock"}}
	if diff := cmp.Diff(want, runsOf(l)); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
	if got, want := d.Caret(), (Marker{Line: l, Pos: 3}); got != want {
		t.Errorf("caret got %v:%d, want %v:%d", got.LineNumber(), got.Pos, want.LineNumber(), want.Pos)
	}
	checkValid(t, d)
}

func TestCaretRunDroppedWhenCaretLeaves(t *testing.T) {
	d, l := helloDoc(t)
	d.PositionCaret(l, 2)
	d.FormatText(l, 2, l, 2, big, 0, 0, FormatFont)
	if got, want := l.Height(), 20; got != want {
		t.Errorf("an empty run changed the line height to %d", got)
	}

	d.PositionCaret(l, 4)
	if diff := cmp.Diff([]runDesc{{"Hello", "mock"}}, runsOf(l)); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
	checkValid(t, d)
}

func TestDocumentFormatAcrossLines(t *testing.T) {
	d := newDoc(t)
	d.Insert(d.FirstLine(), 0, false, "one\ntwo\nthree")
	l1, l3 := d.GetLine(1), d.GetLine(3)
	d.FormatText(l3, 2, l1, 1, bold, 0, 0, FormatFont)

	want := [][]runDesc{
		{{"o", "mock"}, {"ne", "bold"}},
		{{"two", "bold"}},
		{{"th", "bold"}, {"ree", "mock"}},
	}
	var got [][]runDesc
	for l := d.FirstLine(); l != nil; l = l.Next() {
		got = append(got, runsOf(l))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
	checkValid(t, d)
}

func TestInsertTakesFormatOfPrecedingText(t *testing.T) {
	d, l := helloDoc(t)
	l.FormatText(1, 2, bold, 0, 0, FormatFont)
	d.Insert(l, 2, false, "yy")
	d.Insert(l, 0, false, "<")
	want := []runDesc{{"<Heyy", "bold"}, {"llo", "mock"}}
	if diff := cmp.Diff(want, runsOf(l)); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
	checkValid(t, d)
}
