package document

import (
	"image"

	"github.com/rjkroege/richedit/config"
	"github.com/rjkroege/richedit/draw"
	"go.uber.org/zap"
)

// Option configures a Document. Options are applied by New in order.
type Option func(*Document)

// WithConfig applies the document section of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(d *Document) {
		c := &cfg.Document
		d.wrap = c.Wrap
		d.multiline = c.Multiline
		d.alignment = parseAlignment(c.Alignment)
		d.ending = parseEnding(c.LineEnding)
		d.tabStop = c.TabStop
		d.undoLimit = c.UndoLimit
		d.password = c.Password()
		d.margins = c.Margins
		d.indent = c.Indent.First
		d.hangingIndent = c.Indent.Hanging
		d.rightIndent = c.Indent.Right
		d.viewport = image.Rect(0, 0, c.Viewport.Width, c.Viewport.Height)
	}
}

func parseAlignment(s string) Alignment {
	switch s {
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	}
	return AlignLeft
}

func parseEnding(s string) Ending {
	switch s {
	case "crlf":
		return EndHard
	case "cr":
		return EndLimp
	}
	return EndRich
}

// WithFont sets the font of new text.
func WithFont(f draw.Font) Option {
	return func(d *Document) {
		d.font = f
	}
}

// WithColor sets the color of new text.
func WithColor(c draw.Color) Option {
	return func(d *Document) {
		d.color = c
	}
}

// WithHost sets the surface that supplies the viewport and repaints.
func WithHost(h Host) Option {
	return func(d *Document) {
		d.host = h
	}
}

// WithCaretDisplay sets where the caret is shown.
func WithCaretDisplay(c CaretDisplay) Option {
	return func(d *Document) {
		d.caretDisplay = c
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(d *Document) {
		d.log = l
	}
}

// WithWrap turns word wrap on or off.
func WithWrap(wrap bool) Option {
	return func(d *Document) {
		d.wrap = wrap
	}
}

// WithMultiline allows more than one line. A single line document
// never wraps.
func WithMultiline(multiline bool) Option {
	return func(d *Document) {
		d.multiline = multiline
	}
}

// WithAlignment sets the alignment of new lines.
func WithAlignment(a Alignment) Option {
	return func(d *Document) {
		d.alignment = a
	}
}

// WithLineEnding sets the terminator used when a line is broken by an
// edit rather than by inserted text.
func WithLineEnding(e Ending) Option {
	return func(d *Document) {
		d.ending = e
	}
}

// WithPasswordChar draws every character as r. Zero turns it off.
func WithPasswordChar(r rune) Option {
	return func(d *Document) {
		d.password = r
	}
}

// WithTabStop sets the distance in pixels between tab stops.
func WithTabStop(px int) Option {
	return func(d *Document) {
		d.tabStop = px
	}
}

// WithMargins sets the gaps between the viewport edges and the text.
func WithMargins(left, top, right int) Option {
	return func(d *Document) {
		d.margins = config.Margins{Left: left, Top: top, Right: right}
	}
}

// WithIndent sets the indents of new lines.
func WithIndent(first, hanging, right int) Option {
	return func(d *Document) {
		d.indent, d.hangingIndent, d.rightIndent = first, hanging, right
	}
}

// WithViewport sets the viewport size used when there is no Host.
func WithViewport(width, height int) Option {
	return func(d *Document) {
		d.viewport = image.Rect(0, 0, width, height)
	}
}

// WithUndoLimit bounds the undo log. Zero means unbounded.
func WithUndoLimit(n int) Option {
	return func(d *Document) {
		d.undoLimit = n
	}
}

// WithValidation checks the document after every structural edit and
// panics on the first broken invariant.
func WithValidation(on bool) Option {
	return func(d *Document) {
		d.validate = on
	}
}
