package edittest

import (
	"fmt"
	"image"
)

// Host is a document host that keeps its viewport in memory and
// records every invalidation and caret call as a string.
type Host struct {
	viewport image.Rectangle
	ops      []string

	caretSize image.Point
	caretPos  image.Point
	visible   bool
}

// NewHost returns a Host with a width x height viewport scrolled to
// the origin.
func NewHost(width, height int) *Host {
	return &Host{viewport: image.Rect(0, 0, width, height)}
}

// Viewport returns the visible part of the document.
func (h *Host) Viewport() image.Rectangle { return h.viewport }

// Resize changes the viewport size, keeping the scroll offset.
func (h *Host) Resize(width, height int) {
	h.viewport.Max = h.viewport.Min.Add(image.Pt(width, height))
}

// Scroll moves the viewport origin to pt.
func (h *Host) Scroll(pt image.Point) {
	h.viewport = h.viewport.Sub(h.viewport.Min).Add(pt)
}

func (h *Host) Invalidate(r image.Rectangle) {
	h.ops = append(h.ops, fmt.Sprintf("invalidate %v", r))
}

func (h *Host) InvalidateAll() {
	h.ops = append(h.ops, "invalidate all")
}

func (h *Host) CreateCaret(width, height int) {
	h.caretSize = image.Pt(width, height)
	h.ops = append(h.ops, fmt.Sprintf("caret create %dx%d", width, height))
}

func (h *Host) SetCaretPos(pt image.Point) {
	h.caretPos = pt
}

func (h *Host) ShowCaret() { h.visible = true }
func (h *Host) HideCaret() { h.visible = false }

// Caret returns the caret rectangle and whether it is shown.
func (h *Host) Caret() (image.Rectangle, bool) {
	return image.Rectangle{Min: h.caretPos, Max: h.caretPos.Add(h.caretSize)}, h.visible
}

// Ops returns the recorded operations.
func (h *Host) Ops() []string { return h.ops }

// Clear forgets the recorded operations.
func (h *Host) Clear() { h.ops = nil }
