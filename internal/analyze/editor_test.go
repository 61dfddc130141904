package analyze

import "testing"

func TestEditor_ApplyTransition(t *testing.T) {
	text := "Para one.\n\nPara two."
	e := NewEditor(text)

	position := len("Para one.")
	if err := e.ApplyTransition(position, "However,"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := "Para one.\n\nHowever, Para two."
	if e.Text() != want {
		t.Errorf("got %q, want %q", e.Text(), want)
	}

	// Cursor lands after the inserted phrase and its trailing space
	wantCursor := len("Para one.\n\nHowever, ")
	if e.Cursor() != wantCursor {
		t.Errorf("cursor = %d, want %d", e.Cursor(), wantCursor)
	}
}

func TestEditor_ApplyTransition_AtEnd(t *testing.T) {
	e := NewEditor("No trailing text")
	if err := e.ApplyTransition(len("No trailing text"), "Finally,"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if e.Text() != "No trailing textFinally, " {
		t.Errorf("unexpected text: %q", e.Text())
	}
}

func TestEditor_ApplyTransition_OutOfRange(t *testing.T) {
	e := NewEditor("short")
	if err := e.ApplyTransition(-1, "However,"); err == nil {
		t.Error("expected error for negative position")
	}
	if err := e.ApplyTransition(100, "However,"); err == nil {
		t.Error("expected error for position past end")
	}
	if e.UndoDepth() != 0 {
		t.Errorf("failed applies must not push undo snapshots, depth = %d", e.UndoDepth())
	}
}

func TestEditor_Undo(t *testing.T) {
	text := "Para one.\n\nPara two."
	e := NewEditor(text)
	e.SetText(text, 4)

	if err := e.ApplyTransition(len("Para one."), "Moreover,"); err != nil {
		t.Fatal(err)
	}
	if e.UndoDepth() != 1 {
		t.Fatalf("expected undo depth 1, got %d", e.UndoDepth())
	}

	if !e.Undo() {
		t.Fatal("expected Undo to succeed")
	}
	if e.Text() != text {
		t.Errorf("undo did not restore text: %q", e.Text())
	}
	if e.Cursor() != 4 {
		t.Errorf("undo did not restore cursor: %d", e.Cursor())
	}

	if e.Undo() {
		t.Error("expected Undo on empty stack to return false")
	}
}

func TestEditor_UndoReplaysSequentially(t *testing.T) {
	text := "A.\n\nB.\n\nC."
	e := NewEditor(text)

	if err := e.ApplyTransition(len("A."), "First,"); err != nil {
		t.Fatal(err)
	}
	afterFirst := e.Text()

	if err := e.ApplyTransition(len(afterFirst), "Finally,"); err != nil {
		t.Fatal(err)
	}

	if !e.Undo() {
		t.Fatal("first undo failed")
	}
	if e.Text() != afterFirst {
		t.Errorf("expected one undo level, got %q", e.Text())
	}

	if !e.Undo() {
		t.Fatal("second undo failed")
	}
	if e.Text() != text {
		t.Errorf("expected original text, got %q", e.Text())
	}
}

func TestEditor_SetTextClampsCursor(t *testing.T) {
	e := NewEditor("")

	e.SetText("hello", 99)
	if e.Cursor() != 5 {
		t.Errorf("expected cursor clamped to 5, got %d", e.Cursor())
	}

	e.SetText("hello", -3)
	if e.Cursor() != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", e.Cursor())
	}

	// SetText records no history
	if e.UndoDepth() != 0 {
		t.Errorf("expected no undo history from SetText, depth = %d", e.UndoDepth())
	}
}
