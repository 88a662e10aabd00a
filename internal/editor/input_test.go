package editor

import "testing"

func TestCSIuShiftedCodepoint(t *testing.T) {
	m := New()
	m.HandleInput([]byte("\x1b[97:65;2u"))
	if m.GetText() != "A" {
		t.Errorf("GetText() = %q, want %q", m.GetText(), "A")
	}
}

func TestCSIuCtrlDropped(t *testing.T) {
	m := New()
	m.HandleInput([]byte("\x1b[97;5u")) // mod=5 -> bits=4 (ctrl)
	if m.GetText() != "" {
		t.Errorf("expected ctrl-modified CSI-u to be dropped, got %q", m.GetText())
	}
}

func TestBracketedPasteWithTrailingBytes(t *testing.T) {
	m := New()
	m.HandleInput([]byte("\x1b[200~hello\x1b[201~world"))
	if m.GetText() != "helloworld" {
		t.Errorf("GetText() = %q, want %q", m.GetText(), "helloworld")
	}
}

func TestBackslashCRCompatNewline(t *testing.T) {
	m := New()
	m.HandleInput([]byte("\\"))
	m.HandleInput([]byte("\r"))
	if len(m.lines) != 2 {
		t.Fatalf("expected backslash+CR to insert a newline, got lines %#v", m.lines)
	}
}

func TestBackslashAloneInsertsLiterally(t *testing.T) {
	m := New()
	m.HandleInput([]byte("\\"))
	m.HandleInput([]byte("x"))
	if m.GetText() != "\\x" {
		t.Errorf("GetText() = %q, want %q", m.GetText(), "\\x")
	}
}

func TestPrintableFallback(t *testing.T) {
	m := New()
	m.HandleInput([]byte("hi"))
	if m.GetText() != "hi" {
		t.Errorf("GetText() = %q, want %q", m.GetText(), "hi")
	}
}

func TestArrowKeyMovesCursor(t *testing.T) {
	m := New()
	m.HandleInput([]byte("hi"))
	m.HandleInput([]byte("\x1b[D"))
	if m.cursor.Col != 1 {
		t.Errorf("cursor.Col = %d, want 1", m.cursor.Col)
	}
}

func TestEnterSubmits(t *testing.T) {
	m := New()
	var got string
	m.OnSubmit(func(s string) { got = s })
	m.HandleInput([]byte("hello"))
	m.HandleInput([]byte("\r"))
	if got != "hello" {
		t.Errorf("submitted = %q, want %q", got, "hello")
	}
}
