package document

import (
	"image"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rjkroege/richedit/edittest"
)

func TestMoveCaret(t *testing.T) {
	d := newDoc(t)
	d.Insert(d.FirstLine(), 0, false, "hello world (foo)\nxy")
	l1, l2 := d.GetLine(1), d.GetLine(2)

	tests := []struct {
		name string
		from Marker
		dir  Direction
		want string
	}{
		{"char forward", Marker{l1, 3}, CharForward, "1:4"},
		{"char forward over break", Marker{l1, 17}, CharForward, "2:0"},
		{"char forward no wrap", Marker{l1, 17}, CharForwardNoWrap, "1:17"},
		{"char forward at end", Marker{l2, 2}, CharForward, "2:2"},
		{"char back over break", Marker{l2, 0}, CharBack, "1:17"},
		{"char back no wrap", Marker{l2, 0}, CharBackNoWrap, "2:0"},
		{"char back at start", Marker{l1, 0}, CharBack, "1:0"},
		{"word forward", Marker{l1, 0}, WordForward, "1:6"},
		{"word forward over parens", Marker{l1, 6}, WordForward, "1:13"},
		{"word forward at line end", Marker{l1, 17}, WordForward, "2:0"},
		{"word back", Marker{l1, 13}, WordBack, "1:6"},
		{"word back inside word", Marker{l1, 9}, WordBack, "1:6"},
		{"word back at line start", Marker{l2, 0}, WordBack, "1:17"},
		{"line down keeps column", Marker{l1, 5}, LineDown, "2:2"},
		{"line up keeps column", Marker{l2, 1}, LineUp, "1:1"},
		{"line up on first line", Marker{l1, 4}, LineUp, "1:4"},
		{"home", Marker{l1, 7}, Home, "1:0"},
		{"end", Marker{l1, 7}, End, "1:17"},
		{"document start", Marker{l2, 1}, CtrlHome, "1:0"},
		{"document end", Marker{l1, 1}, CtrlEnd, "2:2"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d.PositionCaret(tc.from.Line, tc.from.Pos)
			d.MoveCaret(tc.dir)
			if got := where(d.Caret()); got != tc.want {
				t.Errorf("caret got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestMoveCaretAcrossWrap(t *testing.T) {
	d := newDoc(t, WithViewport(100, 400))
	d.Insert(d.FirstLine(), 0, false, "hello world foo")
	l1, l2 := d.GetLine(1), d.GetLine(2)

	// The end of a wrapped line and the start of its continuation are
	// one position.
	d.PositionCaret(l1, 6)
	d.MoveCaret(CharForward)
	if got, want := where(d.Caret()), "2:1"; got != want {
		t.Errorf("forward got %s, want %s", got, want)
	}
	d.PositionCaret(l2, 0)
	d.MoveCaret(CharBack)
	if got, want := where(d.Caret()), "1:5"; got != want {
		t.Errorf("back got %s, want %s", got, want)
	}
}

func TestPageMoves(t *testing.T) {
	d := newDoc(t)
	d.Insert(d.FirstLine(), 0, false, strings.Repeat("line\n", 29)+"last")
	if got, want := d.Height(), 600; got != want {
		t.Fatalf("Height got %d, want %d", got, want)
	}

	d.PositionCaret(d.FirstLine(), 2)
	d.MoveCaret(PgDn)
	if got, want := where(d.Caret()), "21:2"; got != want {
		t.Errorf("PgDn got %s, want %s", got, want)
	}
	d.MoveCaret(PgUp)
	if got, want := where(d.Caret()), "1:2"; got != want {
		t.Errorf("PgUp got %s, want %s", got, want)
	}
	d.MoveCaret(PgUp)
	if got, want := where(d.Caret()), "1:0"; got != want {
		t.Errorf("PgUp on the first line got %s, want %s", got, want)
	}
	d.MoveCaret(CtrlPgDn)
	if got, want := where(d.Caret()), "20:4"; got != want {
		t.Errorf("CtrlPgDn got %s, want %s", got, want)
	}
	d.MoveCaret(CtrlPgUp)
	if got, want := where(d.Caret()), "1:0"; got != want {
		t.Errorf("CtrlPgUp got %s, want %s", got, want)
	}
	d.PositionCaret(d.LastLine(), 1)
	d.MoveCaret(PgDn)
	if got, want := where(d.Caret()), "30:4"; got != want {
		t.Errorf("PgDn on the last line got %s, want %s", got, want)
	}
}

func TestPositionCaretAt(t *testing.T) {
	d := newDoc(t)
	d.Insert(d.FirstLine(), 0, false, "abcdef\nxy")

	tests := []struct {
		x, y int
		want string
	}{
		{25, 30, "2:2"},
		{24, 5, "1:2"},
		{26, 5, "1:3"},
		{-10, -10, "1:0"},
		{500, 500, "2:2"},
	}
	for _, tc := range tests {
		d.PositionCaretAt(tc.x, tc.y)
		if got := where(d.Caret()); got != tc.want {
			t.Errorf("PositionCaretAt(%d, %d) got %s, want %s", tc.x, tc.y, got, tc.want)
		}
	}
	if got, want := d.CaretPoint(), image.Pt(20, 20); got != want {
		t.Errorf("CaretPoint got %v, want %v", got, want)
	}
}

func TestSingleLineFindCursor(t *testing.T) {
	d := newDoc(t, WithMultiline(false))
	d.Insert(d.FirstLine(), 0, false, "abc")
	if got, want := where(d.FindCursor(15, 300)), "1:2"; got != want {
		t.Errorf("FindCursor got %s, want %s", got, want)
	}
}

func TestSelection(t *testing.T) {
	d := newDoc(t)
	d.Insert(d.FirstLine(), 0, false, "hello world\nsecond")
	l1, l2 := d.GetLine(1), d.GetLine(2)

	d.SetSelection(l1, 5, l1, 1)
	if got, want := d.SelectionText(), "ello"; got != want {
		t.Errorf("reversed SetSelection got %q, want %q", got, want)
	}
	if got, want := where(d.SelectionAnchor()), "1:5"; got != want {
		t.Errorf("anchor got %s, want %s", got, want)
	}

	d.SetSelection(l1, 6, l2, 3)
	if got, want := d.SelectionText(), "world\nsec"; got != want {
		t.Errorf("SelectionText got %q, want %q", got, want)
	}
	if got, want := d.SelectionLength(), 9; got != want {
		t.Errorf("SelectionLength got %d, want %d", got, want)
	}

	d.SetSelectionStartIndex(6, false)
	d.SetSelectionEndIndex(11, false)
	if got, want := d.SelectionText(), "world"; got != want {
		t.Errorf("index selection got %q, want %q", got, want)
	}
	d.SetSelectionEndIndex(2, false)
	if got, want := d.SelectionText(), "llo "; got != want {
		t.Errorf("selection past the anchor got %q, want %q", got, want)
	}

	d.SelectAll()
	if got, want := d.SelectionText(), "hello world\nsecond"; got != want {
		t.Errorf("SelectAll got %q, want %q", got, want)
	}
	if got, want := where(d.Caret()), "2:6"; got != want {
		t.Errorf("caret after SelectAll got %s, want %s", got, want)
	}
	checkValid(t, d)
}

func TestSelectionFollowsCaret(t *testing.T) {
	d := newDoc(t)
	d.Insert(d.FirstLine(), 0, false, "abcdef")
	l := d.FirstLine()

	d.PositionCaret(l, 2)
	d.SetSelectionToCaret(true)
	d.PositionCaret(l, 5)
	d.SetSelectionToCaret(false)
	if got, want := d.SelectionText(), "cde"; got != want {
		t.Errorf("extended selection got %q, want %q", got, want)
	}
	d.PositionCaret(l, 0)
	d.SetSelectionToCaret(false)
	if got, want := d.SelectionText(), "ab"; got != want {
		t.Errorf("selection before the anchor got %q, want %q", got, want)
	}
	d.MoveCaret(SelectionEnd)
	if got, want := where(d.Caret()), "1:2"; got != want {
		t.Errorf("SelectionEnd got %s, want %s", got, want)
	}
	d.SetSelectionToCaret(true)
	if d.SelectionLength() != 0 || d.SelectionVisible() {
		t.Errorf("selection not collapsed")
	}
}

func TestExpandSelection(t *testing.T) {
	d := newDoc(t)
	d.Insert(d.FirstLine(), 0, false, "hello world (foo)\nnext line")
	l1, l2 := d.GetLine(1), d.GetLine(2)

	d.PositionCaret(l1, 8)
	d.ExpandSelection(SelectWord, false)
	if got, want := d.SelectionText(), "world "; got != want {
		t.Errorf("word got %q, want %q", got, want)
	}

	d.PositionCaret(l1, 14)
	d.ExpandSelection(SelectWord, true)
	if got, want := d.SelectionText(), "world (foo)"; got != want {
		t.Errorf("word forward got %q, want %q", got, want)
	}

	d.PositionCaret(l1, 2)
	d.ExpandSelection(SelectWord, true)
	if got, want := d.SelectionText(), "hello world "; got != want {
		t.Errorf("word backward got %q, want %q", got, want)
	}

	d.PositionCaret(l1, 3)
	d.ExpandSelection(SelectLine, false)
	if got, want := d.SelectionText(), "hello world (foo)"; got != want {
		t.Errorf("line got %q, want %q", got, want)
	}
	d.PositionCaret(l2, 2)
	d.ExpandSelection(SelectLine, true)
	if got, want := d.SelectionText(), "hello world (foo)\nnext line"; got != want {
		t.Errorf("lines got %q, want %q", got, want)
	}

	d.ExpandSelection(SelectPosition, false)
	if d.SelectionLength() != 0 {
		t.Errorf("SelectPosition left a selection of %d", d.SelectionLength())
	}
	checkValid(t, d)
}

func hostDoc(t *testing.T, text string) (*Document, *edittest.Host) {
	t.Helper()
	h := edittest.NewHost(1000, 400)
	d := newDoc(t, WithHost(h), WithCaretDisplay(h))
	if text != "" {
		d.Insert(d.FirstLine(), 0, false, text)
	}
	h.Clear()
	return d, h
}

func TestInvalidation(t *testing.T) {
	t.Run("insert", func(t *testing.T) {
		d, h := hostDoc(t, "")
		d.Insert(d.FirstLine(), 0, false, "abc")
		if diff := cmp.Diff([]string{"invalidate (0,0)-(1000,20)"}, h.Ops()); diff != "" {
			t.Errorf("ops mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("delete", func(t *testing.T) {
		d, h := hostDoc(t, "abc")
		d.DeleteChars(d.FirstLine(), 1, 1)
		if diff := cmp.Diff([]string{"invalidate (9,0)-(1000,21)"}, h.Ops()); diff != "" {
			t.Errorf("ops mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("height change", func(t *testing.T) {
		d, h := hostDoc(t, "abc")
		l := d.FirstLine()
		d.FormatText(l, 0, l, 3, big, 0, 0, FormatFont)
		want := []string{"caret create 1x40", "invalidate (0,0)-(1000,400)"}
		if diff := cmp.Diff(want, h.Ops()); diff != "" {
			t.Errorf("ops mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("selection", func(t *testing.T) {
		d, h := hostDoc(t, "abc")
		l := d.FirstLine()
		d.SetSelection(l, 1, l, 3)
		if diff := cmp.Diff([]string{"invalidate (10,0)-(31,20)"}, h.Ops()); diff != "" {
			t.Errorf("ops mismatch (-want +got):\n%s", diff)
		}
		if _, visible := h.Caret(); visible {
			t.Errorf("caret shown over a selection")
		}
		d.SetSelectionToCaret(true)
		if _, visible := h.Caret(); !visible {
			t.Errorf("caret hidden after the selection collapsed")
		}
	})
	t.Run("scrolled", func(t *testing.T) {
		d, h := hostDoc(t, "a\nbcd")
		h.Scroll(image.Pt(0, 20))
		l2 := d.GetLine(2)
		d.SetSelection(l2, 0, l2, 2)
		if diff := cmp.Diff([]string{"invalidate (0,0)-(21,20)"}, h.Ops()); diff != "" {
			t.Errorf("ops mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("scrolled above edit", func(t *testing.T) {
		d, h := hostDoc(t, "a\nbcd")
		h.Scroll(image.Pt(0, 20))
		d.Insert(d.FirstLine(), 0, false, "x\n")
		if diff := cmp.Diff([]string{"invalidate all"}, h.Ops()); diff != "" {
			t.Errorf("ops mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestCaretDisplay(t *testing.T) {
	d, h := hostDoc(t, "")
	d.Insert(d.FirstLine(), 0, true, "abc")
	r, visible := h.Caret()
	if want := image.Rect(30, 0, 31, 20); r != want || !visible {
		t.Errorf("caret got %v %v, want %v shown", r, visible, want)
	}

	// Hanging whitespace does not push the caret out of the view.
	d.Insert(d.FirstLine(), 3, true, strings.Repeat(" ", 120))
	if r, _ := h.Caret(); r.Min.X != 999 {
		t.Errorf("caret x got %d, want 999", r.Min.X)
	}
}

func TestRedrawSuspended(t *testing.T) {
	d, h := hostDoc(t, "abc\ndef")
	d.SuspendRedraw()
	d.Insert(d.GetLine(2), 0, false, "x")
	d.DeleteChars(d.FirstLine(), 0, 1)
	if len(h.Ops()) != 0 {
		t.Errorf("invalidated while suspended: %v", h.Ops())
	}
	d.ResumeRedraw(true)
	if diff := cmp.Diff([]string{"invalidate (0,0)-(1000,40)"}, h.Ops()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"bc", "xdef"}, lineTexts(d)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}
