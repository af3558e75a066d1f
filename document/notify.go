package document

import (
	"fmt"
)

// Observer implementations can register themselves with a Document to
// be told about changes a host usually reacts to by scrolling or
// resizing.
type Observer interface {
	// CaretMoved is called when the caret marker or its pixel position
	// changes.
	CaretMoved(caret Marker)

	// WidthChanged and HeightChanged report the new extent of the laid
	// out document.
	WidthChanged(width int)
	HeightChanged(height int)

	// LengthChanged reports the new character count.
	LengthChanged(chars int)
}

// AddObserver adds o as an observer of d.
func (d *Document) AddObserver(o Observer) {
	if d.observers == nil {
		d.observers = make(map[Observer]struct{})
	}
	d.observers[o] = struct{}{}
}

// DelObserver removes o as an observer of d.
func (d *Document) DelObserver(o Observer) error {
	if _, exists := d.observers[o]; exists {
		delete(d.observers, o)
		return nil
	}
	return fmt.Errorf("can't find observer in Document.DelObserver")
}

func (d *Document) notify(fn func(Observer)) {
	for o := range d.observers {
		fn(o)
	}
}

func (d *Document) notifyLength() {
	if d.charCount == d.lastLength {
		return
	}
	d.lastLength = d.charCount
	n := d.charCount
	d.notify(func(o Observer) { o.LengthChanged(n) })
}
