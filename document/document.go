// Package document is a multiline formatted text editing engine. A
// Document is a sequence of lines held in an order-statistics tree;
// each line carries its text, the runs that format it and its layout.
// The document owns the caret and the selection, reflows lines to the
// viewport width, searches, and records edits for undo.
//
// The document never draws. It measures text with draw.Font values
// and asks its Host to invalidate the regions that need repainting.
package document

import (
	"image"
	"strings"

	"github.com/rjkroege/richedit/config"
	"github.com/rjkroege/richedit/draw"
	"github.com/rjkroege/richedit/lineindex"
	"github.com/rjkroege/richedit/undo"
	"go.uber.org/zap"
)

// Host is the surface displaying a document. Rectangles passed to
// Invalidate are in viewport coordinates.
type Host interface {
	// Viewport returns the visible part of the document: its origin is
	// the scroll offset and its size the viewport size.
	Viewport() image.Rectangle
	Invalidate(r image.Rectangle)
	InvalidateAll()
}

// CaretDisplay shows the caret. Positions are in viewport
// coordinates.
type CaretDisplay interface {
	CreateCaret(width, height int)
	SetCaretPos(pt image.Point)
	ShowCaret()
	HideCaret()
}

const caretWidth = 1

var _ undo.Editor = (*Document)(nil)

// Document is a formatted multiline text. It is not safe for
// concurrent use.
type Document struct {
	lines *lineindex.Tree[*Line]

	font  draw.Font
	color draw.Color

	caret         Marker
	caretHeight   int
	caretPt       image.Point
	caretNotified Marker

	selStart        Marker
	selEnd          Marker
	selAnchor       Marker
	selPrev         Marker
	anchorWordStart int
	selEndAnchor    bool
	selVisible      bool

	wrap          bool
	multiline     bool
	alignment     Alignment
	ending        Ending
	password      rune
	tabStop       int
	margins       config.Margins
	indent        int
	hangingIndent int
	rightIndent   int
	viewport      image.Rectangle

	charCount  int
	lastLength int
	width      int
	height     int

	layoutSuspended int
	layoutPending   bool
	layoutOptimize  bool
	layoutStart     int
	layoutEnd       int

	redrawSuspended int
	redrawPending   bool
	redrawStart     int
	redrawEnd       int

	host         Host
	caretDisplay CaretDisplay
	observers    map[Observer]struct{}
	undo         *undo.Manager
	undoLimit    int
	log          *zap.Logger
	validate     bool
}

// New returns a document holding one empty line. Options are applied
// over config.Default in order.
func New(opts ...Option) *Document {
	d := &Document{
		font:  draw.CellFont{},
		color: draw.Black,
		log:   zap.NewNop(),
	}
	WithConfig(config.Default())(d)
	for _, opt := range opts {
		opt(d)
	}
	d.undo = undo.New(d, d.undoLimit)
	d.Empty()
	return d
}

// Empty discards all text and undo history, leaving one empty line.
func (d *Document) Empty() {
	d.lines = lineindex.New[*Line]()
	d.charCount = 0
	l := d.Add(1, "", d.font, d.color, EndNone)

	d.caret = Marker{Line: l}
	d.selStart = d.caret
	d.selEnd = d.caret
	d.selAnchor = d.caret
	d.selPrev = d.caret
	d.selEndAnchor = false
	d.selVisible = false
	d.undo.Clear()

	d.RecalculateDocument(1, 1, false)
	d.invalidateAll()
	d.notifyLength()
}

// Add inserts a line holding text with one run of the given format so
// that it becomes line number n. Numbers outside [1, LineCount()+1]
// are clamped.
func (d *Document) Add(n int, text string, font draw.Font, color draw.Color, ending Ending) *Line {
	l := d.insertLine(n, []rune(text), &Run{Font: font, Color: color, BackColor: draw.Notacolor}, ending)
	d.charCount += len(l.text)
	return l
}

// insertLine makes line n from text formatted like tmpl. The character
// count is left to the caller.
func (d *Document) insertLine(n int, text []rune, tmpl *Run, ending Ending) *Line {
	if tmpl.Font == nil {
		tmpl.Font = d.font
	}
	l := newLine(d, text, tmpl.Font, tmpl.Color, ending)
	l.runs[0].BackColor = tmpl.BackColor
	l.node = d.lines.Insert(n, l)
	return l
}

// Delete removes line from the document. The last remaining line is
// never removed. Markers on line move to the start of the following
// line, or the end of the preceding one.
func (d *Document) Delete(line *Line) {
	if line == nil || line.node == nil || d.lines.Len() == 1 {
		return
	}
	next, prev := line.Next(), line.Prev()
	for _, m := range d.markers() {
		if m.Line != line {
			continue
		}
		if next != nil {
			*m = Marker{Line: next}
		} else {
			*m = Marker{Line: prev, Pos: prev.Len()}
		}
	}

	d.charCount -= len(line.text)
	d.lines.Delete(line.node)
	line.node = nil
	if next == nil {
		prev.ending = EndNone
	}
	d.log.Debug("delete line", zap.Int("len", len(line.text)))
	d.checkValid("Delete")
}

// GetLine returns line n or nil when there is no such line.
func (d *Document) GetLine(n int) *Line {
	if node := d.lines.Get(n); node != nil {
		return node.Value
	}
	return nil
}

// FirstLine returns line 1.
func (d *Document) FirstLine() *Line { return d.lines.First().Value }

// LastLine returns the final line.
func (d *Document) LastLine() *Line { return d.lines.Last().Value }

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return d.lines.Len() }

// CharCount returns the number of characters, line terminators
// excluded.
func (d *Document) CharCount() int { return d.charCount }

// Length returns the flat length of the document: every character
// plus the length of every line terminator.
func (d *Document) Length() int {
	n := 0
	for node := d.lines.First(); node != nil; node = d.lines.Next(node) {
		n += len(node.Value.text) + node.Value.ending.Len()
	}
	return n
}

// Width and Height return the extent of the laid out document.
func (d *Document) Width() int  { return d.width }
func (d *Document) Height() int { return d.height }

// Text returns the whole document with its line terminators.
func (d *Document) Text() string {
	var sb strings.Builder
	for node := d.lines.First(); node != nil; node = d.lines.Next(node) {
		sb.WriteString(string(node.Value.text))
		sb.WriteString(node.Value.ending.Terminator())
	}
	return sb.String()
}

// Wrap reports whether lines wrap at the viewport width.
func (d *Document) Wrap() bool { return d.wrap }

// SetWrap turns word wrap on or off and lays the document out again.
func (d *Document) SetWrap(wrap bool) {
	if d.wrap == wrap {
		return
	}
	d.wrap = wrap
	d.ViewportChanged()
}

// Multiline reports whether the document may hold more than one line.
func (d *Document) Multiline() bool { return d.multiline }

// ViewportChanged lays out the whole document again. Hosts call it
// after the viewport width changes.
func (d *Document) ViewportChanged() {
	d.RecalculateDocument(1, d.lines.Len(), false)
	d.invalidateAll()
}

// SetViewport resizes the viewport of a document without a Host and
// lays it out again.
func (d *Document) SetViewport(width, height int) {
	o := d.viewport.Min
	d.viewport = image.Rectangle{Min: o, Max: o.Add(image.Pt(width, height))}
	d.ViewportChanged()
}

func (d *Document) viewportRect() image.Rectangle {
	if d.host != nil {
		return d.host.Viewport()
	}
	return d.viewport
}

func (d *Document) viewWidth() int { return d.viewportRect().Dx() }

// markers returns every marker that structural edits must keep valid.
func (d *Document) markers() []*Marker {
	return []*Marker{&d.caret, &d.selStart, &d.selEnd, &d.selAnchor, &d.selPrev}
}

// Undo reverts the most recent step. It returns false when there is
// nothing to undo.
func (d *Document) Undo() bool {
	ok := d.undo.Undo()
	d.notifyLength()
	return ok
}

// Redo repeats the most recently undone step.
func (d *Document) Redo() bool {
	ok := d.undo.Redo()
	d.notifyLength()
	return ok
}

// UndoManager returns the undo log of d.
func (d *Document) UndoManager() *undo.Manager { return d.undo }

// BeginUserAction and EndUserAction bracket edits that undo as one
// step.
func (d *Document) BeginUserAction(name string) { d.undo.BeginUserAction(name) }
func (d *Document) EndUserAction()              { d.undo.EndUserAction() }

// location returns the undo location of caret position pos of line.
func (d *Document) location(line *Line, pos int) undo.Location {
	return undo.Location{Line: line.Number(), Pos: pos, Index: d.CharIndex(line, pos)}
}
