// Package undo records edits as a log of actions and replays them
// backwards (undo) or forwards (redo) against an Editor.
//
// Actions are grouped two ways. Consecutive single characters typed
// at adjacent positions coalesce into one Typing action. Anything
// recorded between BeginUserAction and the matching EndUserAction is
// undone and redone as one step. An undone action moves to the redo
// stack unchanged, so redo replays the recorded data rather than
// inverting the inverse.
package undo

// Kind identifies an Action.
type Kind int

const (
	Typing Kind = iota
	InsertString
	DeleteString
	UserActionBegin
	UserActionEnd
)

func (k Kind) String() string {
	switch k {
	case Typing:
		return "Typing"
	case InsertString:
		return "InsertString"
	case DeleteString:
		return "DeleteString"
	case UserActionBegin:
		return "UserActionBegin"
	case UserActionEnd:
		return "UserActionEnd"
	}
	return "Kind(?)"
}

// Snapshot is a formatting-preserving copy of deleted text. Len is its
// length as a flat character count, line terminators included.
type Snapshot interface {
	Len() int
}

// Editor is the document surface an undo log is replayed against.
// Positions are flat character indexes, which do not move when the
// document reflows.
type Editor interface {
	SuspendLayout()
	ResumeLayout(immediate bool)
	SuspendRedraw()
	ResumeRedraw(immediate bool)

	DeleteRange(index, length int)
	InsertText(index int, s string)
	InsertSnapshot(index int, s Snapshot, selectIt bool)
	PlaceCaret(index int)
}

// Location is where an action happened: the line and position at
// recording time and the flat index used for replay.
type Location struct {
	Line, Pos int
	Index     int
}

// Action is one entry of the undo log.
type Action struct {
	Kind Kind
	Location
	Name     string
	Text     []rune
	Snapshot Snapshot
}

// Manager holds the undo and redo stacks for one Editor.
type Manager struct {
	ed     Editor
	limit  int
	undo   []*Action
	redo   []*Action
	depth  int
	name   string
	locked bool
}

// New returns a Manager replaying against ed. A positive limit bounds
// the number of entries on the undo stack; the oldest whole steps are
// dropped first.
func New(ed Editor, limit int) *Manager {
	return &Manager{ed: ed, limit: limit}
}

// Clear forgets all recorded actions.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
	m.depth = 0
}

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Locked reports whether a replay is in progress. Nothing is recorded
// while locked.
func (m *Manager) Locked() bool { return m.locked }

// Peek returns the action on top of the undo stack.
func (m *Manager) Peek() (Action, bool) {
	if len(m.undo) == 0 {
		return Action{}, false
	}
	return *m.undo[len(m.undo)-1], true
}

// UndoName names the step Undo would revert.
func (m *Manager) UndoName() string {
	if len(m.undo) == 0 {
		return ""
	}
	return actionName(m.undo[len(m.undo)-1])
}

// RedoName names the step Redo would repeat.
func (m *Manager) RedoName() string {
	if len(m.redo) == 0 {
		return ""
	}
	return actionName(m.redo[len(m.redo)-1])
}

func actionName(a *Action) string {
	switch a.Kind {
	case Typing:
		return "Typing"
	case InsertString:
		return "Insert"
	case DeleteString:
		return "Delete"
	}
	return a.Name
}

// BeginUserAction opens a step. Nested calls join the outermost step.
func (m *Manager) BeginUserAction(name string) {
	if m.locked {
		return
	}
	m.depth++
	if m.depth > 1 {
		return
	}
	m.name = name
	m.push(&Action{Kind: UserActionBegin, Name: name})
}

// EndUserAction closes the step opened by BeginUserAction. A step
// that recorded nothing is discarded.
func (m *Manager) EndUserAction() {
	if m.locked || m.depth == 0 {
		return
	}
	m.depth--
	if m.depth > 0 {
		return
	}
	if n := len(m.undo); n > 0 && m.undo[n-1].Kind == UserActionBegin {
		m.undo = m.undo[:n-1]
		return
	}
	m.push(&Action{Kind: UserActionEnd, Name: m.name})
}

// RecordTyping records ch typed at loc, extending the open Typing
// action when ch lands directly after it.
func (m *Manager) RecordTyping(loc Location, ch rune) {
	if m.locked {
		return
	}
	if n := len(m.undo); n > 0 {
		a := m.undo[n-1]
		if a.Kind == Typing && a.Index+len(a.Text) == loc.Index {
			a.Text = append(a.Text, ch)
			m.redo = nil
			return
		}
	}
	m.push(&Action{Kind: Typing, Location: loc, Text: []rune{ch}})
}

// RecordInsertString records s inserted at loc.
func (m *Manager) RecordInsertString(loc Location, s string) {
	if m.locked || s == "" {
		return
	}
	m.push(&Action{Kind: InsertString, Location: loc, Text: []rune(s)})
}

// RecordDeleteString records the deletion at loc of the text captured
// by snap.
func (m *Manager) RecordDeleteString(loc Location, snap Snapshot) {
	if m.locked || snap == nil || snap.Len() == 0 {
		return
	}
	m.push(&Action{Kind: DeleteString, Location: loc, Snapshot: snap})
}

func (m *Manager) push(a *Action) {
	m.undo = append(m.undo, a)
	m.redo = nil
	if m.limit > 0 && m.depth == 0 {
		m.trim()
	}
}

// trim drops whole steps from the bottom of the undo stack.
func (m *Manager) trim() {
	for len(m.undo) > m.limit {
		n := 1
		if m.undo[0].Kind == UserActionBegin {
			for n < len(m.undo) && m.undo[n-1].Kind != UserActionEnd {
				n++
			}
		}
		m.undo = m.undo[n:]
	}
}

func (m *Manager) replay(fn func()) {
	m.locked = true
	m.ed.SuspendRedraw()
	m.ed.SuspendLayout()
	fn()
	m.ed.ResumeLayout(true)
	m.ed.ResumeRedraw(true)
	m.locked = false
}

// Undo reverts the most recent step: one standalone action, or
// everything back to the UserActionBegin of a step. It returns false
// when there is nothing to undo.
func (m *Manager) Undo() bool {
	if len(m.undo) == 0 || m.depth > 0 {
		return false
	}
	m.replay(func() {
		group := false
		for len(m.undo) > 0 {
			a := m.undo[len(m.undo)-1]
			m.undo = m.undo[:len(m.undo)-1]
			m.redo = append(m.redo, a)

			switch a.Kind {
			case UserActionEnd:
				group = true
			case UserActionBegin:
				return
			case Typing, InsertString:
				m.ed.DeleteRange(a.Index, len(a.Text))
				m.ed.PlaceCaret(a.Index)
			case DeleteString:
				m.ed.InsertSnapshot(a.Index, a.Snapshot, true)
			}
			if !group {
				return
			}
		}
	})
	return true
}

// Redo repeats the most recently undone step. It returns false when
// there is nothing to redo.
func (m *Manager) Redo() bool {
	if len(m.redo) == 0 || m.depth > 0 {
		return false
	}
	m.replay(func() {
		group := false
		for len(m.redo) > 0 {
			a := m.redo[len(m.redo)-1]
			m.redo = m.redo[:len(m.redo)-1]
			m.undo = append(m.undo, a)

			switch a.Kind {
			case UserActionBegin:
				group = true
			case UserActionEnd:
				return
			case Typing, InsertString:
				m.ed.InsertText(a.Index, string(a.Text))
				m.ed.PlaceCaret(a.Index + len(a.Text))
			case DeleteString:
				m.ed.DeleteRange(a.Index, a.Snapshot.Len())
				m.ed.PlaceCaret(a.Index)
			}
			if !group {
				return
			}
		}
	})
	return true
}
