package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWrapAndUnwrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "hello world", 200, []string{"hello world"}},
		{"at whitespace", "hello world foo", 100, []string{"hello ", "world foo"}},
		{"mid word", "abcdefghijkl", 100, []string{"abcdefghij", "kl"}},
		{"hanging spaces", "abcdefghij   xyz", 100, []string{"abcdefghij   ", "xyz"}},
		{"several", "aa bb cc dd ee", 60, []string{"aa bb ", "cc dd ", "ee"}},
		{"paragraphs", "aaaa bbbb\ncc", 50, []string{"aaaa ", "bbbb", "cc"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newDoc(t, WithViewport(tc.width, 400))
			d.Insert(d.FirstLine(), 0, false, tc.text)
			if diff := cmp.Diff(tc.want, lineTexts(d)); diff != "" {
				t.Errorf("wrapped lines mismatch (-want +got):\n%s", diff)
			}
			if got := d.Text(); got != tc.text {
				t.Errorf("Text got %q, want %q", got, tc.text)
			}

			d.SetViewport(1000, 400)
			want := []string{tc.text}
			if tc.name == "paragraphs" {
				want = []string{"aaaa bbbb", "cc"}
			}
			if diff := cmp.Diff(want, lineTexts(d)); diff != "" {
				t.Errorf("unwrapped lines mismatch (-want +got):\n%s", diff)
			}
			checkValid(t, d)
		})
	}
}

func TestWrapEndings(t *testing.T) {
	d := newDoc(t, WithViewport(100, 400))
	d.Insert(d.FirstLine(), 0, false, "hello world foo")
	if diff := cmp.Diff([]Ending{EndWrap, EndNone}, lineEndings(d)); diff != "" {
		t.Errorf("endings mismatch (-want +got):\n%s", diff)
	}
	if !d.GetLine(2).IsWrapContinuation() || d.GetLine(1).IsWrapContinuation() {
		t.Errorf("wrong wrap continuation flags")
	}
	if got, want := d.Length(), 15; got != want {
		t.Errorf("Length got %d, want %d", got, want)
	}
}

func TestSetWrap(t *testing.T) {
	d := newDoc(t, WithViewport(100, 400))
	d.Insert(d.FirstLine(), 0, false, "hello world foo")
	d.SetWrap(false)
	if diff := cmp.Diff([]string{"hello world foo"}, lineTexts(d)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if got, want := d.Width(), 150; got != want {
		t.Errorf("Width got %d, want %d", got, want)
	}
	d.SetWrap(true)
	if got, want := d.LineCount(), 2; got != want {
		t.Errorf("LineCount got %d, want %d", got, want)
	}
}

func TestDeleteUnwraps(t *testing.T) {
	d := newDoc(t, WithViewport(100, 400))
	d.Insert(d.FirstLine(), 0, false, "hello world foo")
	d.DeleteChars(d.FirstLine(), 0, 6)
	if diff := cmp.Diff([]string{"world foo"}, lineTexts(d)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	checkValid(t, d)
}

func TestHangingIndent(t *testing.T) {
	d := newDoc(t, WithViewport(100, 400), WithIndent(0, 20, 0))
	d.Insert(d.FirstLine(), 0, false, "aaaa bbbb cccc")
	if diff := cmp.Diff([]string{"aaaa bbbb ", "cccc"}, lineTexts(d)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if got, want := d.GetLine(2).X(0), 20; got != want {
		t.Errorf("continuation X(0) got %d, want %d", got, want)
	}
	if got, want := d.GetLine(1).X(0), 0; got != want {
		t.Errorf("first line X(0) got %d, want %d", got, want)
	}
}

func TestMargins(t *testing.T) {
	d := newDoc(t, WithViewport(100, 400), WithMargins(5, 3, 15))
	d.Insert(d.FirstLine(), 0, false, "aaaa bbbb")
	// 80 pixels of text between the margins.
	if diff := cmp.Diff([]string{"aaaa ", "bbbb"}, lineTexts(d)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	l := d.FirstLine()
	if l.X(0) != 5 || l.Y() != 3 {
		t.Errorf("first line origin got (%d, %d), want (5, 3)", l.X(0), l.Y())
	}
	if got, want := d.GetLine(2).Y(), 23; got != want {
		t.Errorf("second line Y got %d, want %d", got, want)
	}
	if got, want := d.Height(), 43; got != want {
		t.Errorf("Height got %d, want %d", got, want)
	}
}

func TestAlignment(t *testing.T) {
	tests := []struct {
		align Alignment
		shift int
	}{
		{AlignLeft, 0},
		{AlignCenter, 30},
		{AlignRight, 60},
	}
	for _, tc := range tests {
		t.Run(tc.align.String(), func(t *testing.T) {
			d := newDoc(t, WithViewport(100, 400), WithAlignment(tc.align))
			d.Insert(d.FirstLine(), 0, false, "abcd")
			l := d.FirstLine()
			if got := l.AlignShift(); got != tc.shift {
				t.Errorf("AlignShift got %d, want %d", got, tc.shift)
			}
			if got, want := l.X(2), tc.shift+20; got != want {
				t.Errorf("X(2) got %d, want %d", got, want)
			}
			if got, want := l.PosAtX(tc.shift+24), 2; got != want {
				t.Errorf("PosAtX got %d, want %d", got, want)
			}
		})
	}
}

func TestTabStops(t *testing.T) {
	d := newDoc(t, WithTabStop(32))
	d.Insert(d.FirstLine(), 0, false, "a\tb\t\tc")
	l := d.FirstLine()
	want := []int{0, 10, 32, 42, 64, 96, 106}
	for pos, x := range want {
		if got := l.X(pos); got != x {
			t.Errorf("X(%d) got %d, want %d", pos, got, x)
		}
	}
}

func TestPassword(t *testing.T) {
	d := newDoc(t, WithViewport(30, 400), WithPasswordChar('*'))
	d.Insert(d.FirstLine(), 0, false, "secret words")
	if got, want := d.LineCount(), 1; got != want {
		t.Errorf("password line wrapped into %d lines", got)
	}
	l := d.FirstLine()
	if got, want := l.Width(), 120; got != want {
		t.Errorf("Width got %d, want %d", got, want)
	}
	if got, want := l.Height(), 20; got != want {
		t.Errorf("Height got %d, want %d", got, want)
	}
}

func TestMixedFontBaseline(t *testing.T) {
	d := newDoc(t)
	d.Insert(d.FirstLine(), 0, false, "Hello")
	l := d.FirstLine()
	if !l.FormatText(1, 2, big, 0, 0, FormatFont) {
		t.Errorf("FormatText with a taller font reported no height change")
	}
	d.RecalculateDocument(1, 1, true)

	if l.Height() != 40 || l.Ascent() != 30 {
		t.Errorf("line metrics got height %d ascent %d, want 40 30", l.Height(), l.Ascent())
	}
	var shifts []int
	for _, r := range l.Runs() {
		shifts = append(shifts, r.Shift)
	}
	// The plain font has an ascent of 15.
	if diff := cmp.Diff([]int{0, 15}, shifts); diff != "" {
		t.Errorf("baseline shifts mismatch (-want +got):\n%s", diff)
	}
	if got, want := d.Height(), 40; got != want {
		t.Errorf("document Height got %d, want %d", got, want)
	}
}

func TestRecalculateDocumentChanged(t *testing.T) {
	d := newDoc(t)
	d.Insert(d.FirstLine(), 0, false, "one\ntwo")

	// Nothing is dirty, yet a full relayout always reports a change.
	if !d.RecalculateDocument(1, 2, false) {
		t.Errorf("non-optimized relayout reported no change")
	}
	if d.RecalculateDocument(1, 2, true) {
		t.Errorf("optimized relayout of clean lines reported a change")
	}
	if d.GetLine(5) != nil || d.RecalculateDocument(5, 9, true) {
		t.Errorf("relayout out of range reported a change")
	}
}

func TestSuspendLayout(t *testing.T) {
	d := newDoc(t, WithViewport(100, 400))
	d.SuspendLayout()
	d.SuspendLayout()
	d.Insert(d.FirstLine(), 0, false, "hello world foo")
	d.ResumeLayout(true)
	if got, want := d.LineCount(), 1; got != want {
		t.Errorf("layout ran inside a nested window: LineCount got %d, want %d", got, want)
	}
	d.ResumeLayout(false)
	if diff := cmp.Diff([]string{"hello ", "world foo"}, lineTexts(d)); diff != "" {
		t.Errorf("deferred layout mismatch (-want +got):\n%s", diff)
	}
}
