package analyze

import "fmt"

// Snapshot captures the full text buffer and cursor position before an
// edit, so one Undo restores both verbatim.
type Snapshot struct {
	Text   string
	Cursor int
}

// Editor owns a plain text buffer plus a cursor offset. It never touches a
// rendering-layer object; the caller is responsible for writing the buffer
// back into whatever text control it owns and for triggering any change
// notification its framework requires.
type Editor struct {
	text   string
	cursor int
	undo   []Snapshot // unbounded; callers needing bounded memory must impose one
}

// NewEditor creates an editor over the given initial text
func NewEditor(text string) *Editor {
	return &Editor{text: text}
}

// Text returns the current buffer
func (e *Editor) Text() string {
	return e.text
}

// Cursor returns the current cursor offset
func (e *Editor) Cursor() int {
	return e.cursor
}

// SetText replaces the buffer and cursor without recording history.
// Used for caller-driven edits (typing), which are not undoable here.
func (e *Editor) SetText(text string, cursor int) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}
	e.text = text
	e.cursor = cursor
}

// ApplyTransition inserts phrase plus a single space immediately before the
// first non-whitespace character after position, preserving all original
// whitespace runs. The edit is pushed onto the undo stack first.
func (e *Editor) ApplyTransition(position int, phrase string) error {
	if position < 0 || position > len(e.text) {
		return fmt.Errorf("position %d out of range [0, %d]", position, len(e.text))
	}

	e.undo = append(e.undo, Snapshot{Text: e.text, Cursor: e.cursor})

	insertAt := position
	for insertAt < len(e.text) && isWhitespace(e.text[insertAt]) {
		insertAt++
	}

	inserted := phrase + " "
	e.text = e.text[:insertAt] + inserted + e.text[insertAt:]
	e.cursor = insertAt + len(inserted)

	return nil
}

// Undo pops the most recent snapshot and restores text plus cursor.
// Returns false when there is nothing to undo. Multiple undos replay
// sequentially through the stack, one level per call.
func (e *Editor) Undo() bool {
	if len(e.undo) == 0 {
		return false
	}

	last := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.text = last.Text
	e.cursor = last.Cursor

	return true
}

// UndoDepth returns the number of snapshots on the undo stack
func (e *Editor) UndoDepth() int {
	return len(e.undo)
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
