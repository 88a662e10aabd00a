package editor

import (
	"strconv"
	"strings"
	"testing"
)

func TestInsertAndBackspaceGraphemeAware(t *testing.T) {
	m := New()
	m.InsertTextAtCursor("👨‍👩‍👧")
	if m.GetText() == "" {
		t.Fatalf("expected buffer to contain the inserted grapheme")
	}
	m.Backspace()
	if m.GetText() != "" {
		t.Fatalf("expected empty buffer after backspace, got %q", m.GetText())
	}
	if m.cursor.Col != 0 {
		t.Errorf("cursor.Col = %d, want 0", m.cursor.Col)
	}
}

func TestBackspaceJoinDoesNotTrimTrailingWhitespace(t *testing.T) {
	m := New()
	m.SetText("foo  \nbar")
	m.cursor = Position{Line: 1, Col: 0}
	m.Backspace()
	if m.GetText() != "foo  bar" {
		t.Errorf("GetText() = %q, want %q (trailing whitespace preserved on join)", m.GetText(), "foo  bar")
	}
}

func TestDeleteWordBackward(t *testing.T) {
	m := New()
	m.SetText("hello world")
	m.cursor.Col = len("hello world")
	m.DeleteWordBackward()
	if m.GetText() != "hello " {
		t.Errorf("GetText() = %q, want %q", m.GetText(), "hello ")
	}
}

func TestLargePasteCreatesMarker(t *testing.T) {
	m := New()
	var lines []string
	for i := 0; i < 12; i++ {
		lines = append(lines, "line"+strconv.Itoa(i))
	}
	original := strings.Join(lines, "\n")

	m.PasteIngestion(original)

	if len(m.pasteTable) != 1 {
		t.Fatalf("expected 1 paste table entry, got %d", len(m.pasteTable))
	}
	if !strings.Contains(m.GetText(), "[paste #1 +12 lines]") {
		t.Errorf("GetText() = %q, want it to contain the 12-line marker", m.GetText())
	}

	var submitted string
	m.OnSubmit(func(s string) { submitted = s })
	m.Submit()
	if submitted != original {
		t.Errorf("submitted = %q, want %q", submitted, original)
	}
	if len(m.pasteTable) != 0 {
		t.Errorf("expected paste table cleared after submit, got %d entries", len(m.pasteTable))
	}
}

func TestSmallPasteSplicesInline(t *testing.T) {
	m := New()
	m.PasteIngestion("hi there")
	if m.GetText() != "hi there" {
		t.Errorf("GetText() = %q, want %q", m.GetText(), "hi there")
	}
	if len(m.pasteTable) != 0 {
		t.Errorf("expected no paste table entry for a small paste, got %d", len(m.pasteTable))
	}
}

func TestSubmitTrimsAndResets(t *testing.T) {
	m := New()
	var submitted string
	m.OnSubmit(func(s string) { submitted = s })
	m.SetText("  hello  ")
	m.Submit()
	if submitted != "hello" {
		t.Errorf("submitted = %q, want %q", submitted, "hello")
	}
	if m.GetText() != "" {
		t.Errorf("expected buffer reset to empty after submit, got %q", m.GetText())
	}
}

func TestSubmitSuppressedWhenDisabled(t *testing.T) {
	m := New()
	called := false
	m.OnSubmit(func(s string) { called = true })
	m.SetDisableSubmit(true)
	m.SetText("hello")
	m.Submit()
	if called {
		t.Errorf("expected submit sink not to fire when disableSubmit is set")
	}
	if m.GetText() != "hello" {
		t.Errorf("expected buffer untouched when submit suppressed, got %q", m.GetText())
	}
}

func TestHistoryRecall(t *testing.T) {
	m := New()
	m.OnSubmit(func(string) {})
	m.SetText("first")
	m.Submit()
	m.SetText("second")
	m.Submit()

	m.CursorUp()
	if m.GetText() != "second" {
		t.Fatalf("after first Up, GetText() = %q, want %q", m.GetText(), "second")
	}
	m.CursorUp()
	if m.GetText() != "first" {
		t.Fatalf("after second Up, GetText() = %q, want %q", m.GetText(), "first")
	}
	m.CursorDown()
	if m.GetText() != "second" {
		t.Fatalf("after Down, GetText() = %q, want %q", m.GetText(), "second")
	}
	m.CursorDown()
	if m.GetText() != "" {
		t.Fatalf("after second Down, GetText() = %q, want empty", m.GetText())
	}
}

func TestHistoryNoAdjacentDuplicates(t *testing.T) {
	m := New()
	m.OnSubmit(func(string) {})
	m.SetText("same")
	m.Submit()
	m.SetText("same")
	m.Submit()
	if len(m.history.entries) != 1 {
		t.Errorf("expected history to dedup adjacent identical entries, got %d entries: %v", len(m.history.entries), m.history.entries)
	}
}
