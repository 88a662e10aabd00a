package editor

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// pasteAccumulator buffers bytes received between a bracketed-paste start
// and end marker.
type pasteAccumulator struct {
	buf strings.Builder
}

const (
	bracketedPasteStart = "\x1b[200~"
	bracketedPasteEnd   = "\x1b[201~"
)

// csiuPattern matches the Kitty keyboard protocol's CSI-u form:
// ESC [ <cp>(:<shifted>)?(:<base>)?(;<mod>(:<sub>)?)? u
var csiuPattern = regexp.MustCompile(`^\x1b\[(\d+)(?::(\d+))?(?::(\d+))?(?:;(\d+)(?::(\d+))?)?u`)

// namedSequences maps literal ANSI escape sequences to the chord name the
// keymap resolves. Longer sequences are listed before their prefixes so a
// straightforward prefix scan finds the most specific match first.
var namedSequences = []struct {
	seq   string
	chord string
}{
	{"\x1b[1;5D", "ctrl+left"},
	{"\x1b[1;5C", "ctrl+right"},
	{"\x1b[1;3D", "alt+left"},
	{"\x1b[1;3C", "alt+right"},
	{"\x1b[3~", "delete"},
	{"\x1b[5~", "pgup"},
	{"\x1b[6~", "pgdown"},
	{"\x1b[1~", "home"},
	{"\x1b[4~", "end"},
	{"\x1b[A", "up"},
	{"\x1b[B", "down"},
	{"\x1b[C", "right"},
	{"\x1b[D", "left"},
	{"\x1b[H", "home"},
	{"\x1b[F", "end"},
	{"\x1bOH", "home"},
	{"\x1bOF", "end"},
}

// HandleInput decodes one chunk of raw terminal bytes and dispatches every
// intent it contains, in order, per the ordering policy of §4.2.
func (m *Model) HandleInput(data []byte) {
	for len(data) > 0 {
		consumed := m.handleOneEvent(data)
		if consumed <= 0 {
			// Unrecognized single byte: drop it and keep going, per §7
			// "malformed input is data, not an error".
			consumed = 1
		}
		if consumed > len(data) {
			consumed = len(data)
		}
		data = data[consumed:]
	}
}

func (m *Model) handleOneEvent(data []byte) int {
	// 1. Bracketed-paste state takes precedence over everything else.
	if m.pasteAccum != nil {
		return m.continuePaste(data)
	}
	if strings.HasPrefix(string(data), bracketedPasteStart) {
		m.pasteAccum = &pasteAccumulator{}
		return len(bracketedPasteStart)
	}

	// 2. Pending-backslash compatibility shim.
	if m.pendingBackslash {
		m.pendingBackslash = false
		if len(data) > 0 && data[0] == '\r' {
			m.NewlineInsertion()
			return 1
		}
		m.InsertTextAtCursor("\\")
		return m.handleOneEvent(data)
	}

	// Resolve this event to either a named chord or a CSI-u printable.
	if chord, n, ok := decodeNamedChord(data); ok {
		return m.dispatchChord(chord, n)
	}

	if loc := csiuPattern.FindSubmatchIndex(data); loc != nil {
		consumed := loc[1]
		if r, ok := decodeCSIu(data[:consumed]); ok {
			m.InsertTextAtCursor(string(r))
		}
		return consumed
	}

	if data[0] == '\\' {
		m.pendingBackslash = true
		return 1
	}

	r, size := utf8.DecodeRune(data)
	if r == utf8.RuneError && size <= 1 {
		return 1
	}
	if r >= 32 {
		m.InsertTextAtCursor(string(r))
		return size
	}
	return size
}

// HandleKeyMsg is the entry point for hosts that already decode raw bytes
// into structured key events (e.g. a bubbletea program) and so have no use
// for HandleInput's byte-level state machine. chord is the event's string
// form (as bubbletea's tea.KeyMsg.String() produces: "ctrl+c", "enter",
// "a", ...); runes is the set of decoded runes for a printable key or a
// paste event; isPaste marks a host-level bracketed-paste event delivered
// as a whole rather than byte-by-byte.
func (m *Model) HandleKeyMsg(chord string, runes []rune, isPaste bool) {
	if isPaste {
		m.PasteIngestion(string(runes))
		return
	}
	// A plain printable keypress reports its own text as the chord (e.g.
	// "a", "é"); the keymap has no binding for it, so insert it directly
	// rather than losing it to dispatchChord's silent fallthrough.
	if len(runes) > 0 && chord == string(runes) {
		m.InsertTextAtCursor(string(runes))
		return
	}
	// bubbletea reports Shift+Space as the chord "shift+space" rather than
	// as its own rune text, since space is otherwise indistinguishable from
	// a named binding. It still means a regular space per §4.2.
	if chord == "shift+space" {
		m.InsertTextAtCursor(" ")
		return
	}
	m.dispatchChord(chord, 0)
}

// dispatchChord resolves chord to an intent (honoring autocomplete
// precedence while the overlay is active) and performs it, returning the
// number of bytes the caller should consume.
func (m *Model) dispatchChord(chord string, consumed int) int {
	km := defaultKeymap()
	in := km.resolve(chord, m.overlay.Active)

	if in == intentCopy {
		// Passed through: the editor recognizes the binding but performs
		// no buffer mutation. The host is responsible for the actual
		// clipboard write.
		return consumed
	}

	if m.overlay.Active {
		switch in {
		case intentSelectUp:
			m.overlay.SelectPrev()
			return consumed
		case intentSelectDown:
			m.overlay.SelectNext()
			return consumed
		case intentSelectCancel:
			m.overlay.Reset()
			return consumed
		case intentSelectConfirm:
			applied, wasSlash := m.ApplySelectedCompletion()
			if applied && wasSlash {
				m.Submit()
			}
			return consumed
		case intentTab:
			m.ApplySelectedCompletion()
			return consumed
		}
	}

	switch in {
	case intentSubmit:
		m.Submit()
	case intentNewLine:
		m.NewlineInsertion()
	case intentCursorUp:
		m.CursorUp()
	case intentCursorDown:
		m.CursorDown()
	case intentCursorLeft:
		m.CursorLeft()
	case intentCursorRight:
		m.CursorRight()
	case intentCursorLineStart:
		m.CursorLineStart()
	case intentCursorLineEnd:
		m.CursorLineEnd()
	case intentCursorWordLeft:
		m.CursorWordLeft()
	case intentCursorWordRight:
		m.CursorWordRight()
	case intentDeleteCharBackward:
		m.Backspace()
	case intentDeleteCharForward:
		m.ForwardDelete()
	case intentDeleteWordBackward:
		m.DeleteWordBackward()
	case intentDeleteToLineStart:
		m.DeleteToLineStart()
	case intentDeleteToLineEnd:
		m.DeleteToLineEnd()
	case intentPageUp:
		m.PageUp()
	case intentPageDown:
		m.PageDown()
	case intentTab:
		if !m.tryForcedFileCompletion() {
			// Tab with nothing to complete falls through silently; the
			// editor has no concept of literal tab insertion.
		}
	}
	return consumed
}

// continuePaste scans for the bracketed-paste end marker inside data. If
// found, the accumulated text is handed to PasteIngestion and any trailing
// bytes in the same chunk are left for the caller to re-decode.
func (m *Model) continuePaste(data []byte) int {
	s := string(data)
	if idx := strings.Index(s, bracketedPasteEnd); idx != -1 {
		m.pasteAccum.buf.WriteString(s[:idx])
		text := m.pasteAccum.buf.String()
		m.pasteAccum = nil
		m.PasteIngestion(text)
		return idx + len(bracketedPasteEnd)
	}
	m.pasteAccum.buf.WriteString(s)
	return len(data)
}

// decodeNamedChord matches data against literal arrow/home/end/etc.
// sequences and single control bytes, returning the chord name and the
// number of bytes consumed.
func decodeNamedChord(data []byte) (chord string, consumed int, ok bool) {
	s := string(data)
	for _, ns := range namedSequences {
		if strings.HasPrefix(s, ns.seq) {
			return ns.chord, len(ns.seq), true
		}
	}
	switch data[0] {
	case 0x7f, 0x08:
		return "backspace", 1, true
	case 0x09:
		return "tab", 1, true
	case 0x0d:
		return "enter", 1, true
	case 0x0a:
		return "\n", 1, true
	case 0x1b:
		if len(data) == 1 {
			return "esc", 1, true
		}
	case 0x01:
		return "ctrl+a", 1, true
	case 0x05:
		return "ctrl+e", 1, true
	case 0x17:
		return "ctrl+w", 1, true
	case 0x15:
		return "ctrl+u", 1, true
	case 0x0b:
		return "ctrl+k", 1, true
	case 0x19:
		return "ctrl+y", 1, true
	}
	return "", 0, false
}

// decodeCSIu decodes one CSI-u escape sequence (already matched by
// csiuPattern) into the rune it represents, applying the Kitty modifier
// rules of §4.2: Alt/Ctrl drop the event, Shift prefers the shifted
// codepoint, and codepoints below 32 are always dropped.
func decodeCSIu(seq []byte) (rune, bool) {
	m := csiuPattern.FindSubmatch(seq)
	if m == nil {
		return 0, false
	}
	cp, _ := strconv.Atoi(string(m[1]))
	var shifted int
	if len(m[2]) > 0 {
		shifted, _ = strconv.Atoi(string(m[2]))
	}
	mod := 1
	if len(m[4]) > 0 {
		mod, _ = strconv.Atoi(string(m[4]))
	}
	bits := mod - 1
	const (
		bitShift = 1
		bitAlt   = 2
		bitCtrl  = 4
	)
	if bits&bitAlt != 0 || bits&bitCtrl != 0 {
		return 0, false
	}
	result := cp
	if bits&bitShift != 0 && shifted != 0 {
		result = shifted
	}
	if result < 32 {
		return 0, false
	}
	return rune(result), true
}
